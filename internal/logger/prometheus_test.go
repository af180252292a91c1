package logger

import (
	"bytes"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusHook(t *testing.T) {
	hook := NewPrometheusHook("test")
	require.NotNil(t, hook.counter)

	before := testutil.ToFloat64(hook.counter.WithLabelValues("warn"))

	hook.Run(nil, zerolog.WarnLevel, "")
	hook.Run(nil, zerolog.NoLevel, "")

	assert.InDelta(t, before+1, testutil.ToFloat64(hook.counter.WithLabelValues("warn")), 0.001)
	assert.Same(t, hook.counter, NewPrometheusHook("other").counter)
}

func TestPrometheusHookZeroValue(t *testing.T) {
	assert.NotPanics(t, func() {
		PrometheusHook{}.Run(nil, zerolog.InfoLevel, "")
	})
}

func TestErrorHandler(t *testing.T) {
	var buf bytes.Buffer

	old := errorOutput
	errorOutput = &buf

	t.Cleanup(func() { errorOutput = old })

	ErrorHandler(errors.New("disk full"))
	assert.Equal(t, "go-wishlist: log event dropped: disk full\n", buf.String())
}
