package debounce

import (
	"errors"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

var (
	// ErrCanceled is the default error superseded calls are rejected with.
	ErrCanceled = errors.New("canceled")

	// ErrNilFunc is returned by New when no function is given.
	ErrNilFunc = errors.New("debounce: nil function")

	// ErrNegativeWait is returned by New when the wait duration is negative.
	ErrNegativeWait = errors.New("debounce: negative wait duration")

	// ErrPanic wraps the value recovered from a panicking function.
	ErrPanic = errors.New("debounce: function panicked")
)

// IsCanceled reports whether err is, or wraps, ErrCanceled.
func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled)
}

type config struct {
	wait           time.Duration
	waitFunc       func() time.Duration
	leading        bool
	cancelErr      error
	logger         zerolog.Logger
	meterProvider  metric.MeterProvider
	tracerProvider trace.TracerProvider
}

func newConfig(wait time.Duration, opts ...Option) (config, error) {
	if wait < 0 {
		return config{}, ErrNegativeWait
	}

	c := config{
		wait:           wait,
		cancelErr:      ErrCanceled,
		logger:         zerolog.Nop(),
		meterProvider:  metricnoop.NewMeterProvider(),
		tracerProvider: tracenoop.NewTracerProvider(),
	}
	for _, opt := range opts {
		opt(&c)
	}

	return c, nil
}

// delay returns the duration to wait before the next deadline. A wait function
// takes precedence over the fixed wait, and negative results are treated as
// zero.
func (c *config) delay() time.Duration {
	d := c.wait
	if c.waitFunc != nil {
		d = c.waitFunc()
	}

	if d < 0 {
		return 0
	}

	return d
}
