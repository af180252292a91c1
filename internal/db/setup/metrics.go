package setup

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var runsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "wishlist_setup_runs_total",
	Help: "Number of setup runs by outcome.",
}, []string{"status"})
