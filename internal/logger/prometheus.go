package logger

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

// MetricNamespace prefixes every metric of the service.
const MetricNamespace = "wishlist"

var (
	statementsOnce sync.Once
	statements     *prometheus.CounterVec
)

// PrometheusHook counts log statements per level.
type PrometheusHook struct {
	counter *prometheus.CounterVec
}

// Run implements zerolog.Hook.
func (h PrometheusHook) Run(_ *zerolog.Event, level zerolog.Level, _ string) {
	if h.counter == nil || level == zerolog.NoLevel {
		return
	}

	h.counter.WithLabelValues(level.String()).Inc()
}

// NewPrometheusHook returns a hook feeding wishlist_log_statements_total.
// The counter is registered once per process; service is only used on the first call.
func NewPrometheusHook(service string) PrometheusHook {
	statementsOnce.Do(func() {
		statements = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   MetricNamespace,
				Name:        "log_statements_total",
				Help:        "Number of log statements, differentiated by log level.",
				ConstLabels: prometheus.Labels{"service": service},
			},
			[]string{"level"},
		)
	})

	return PrometheusHook{counter: statements}
}
