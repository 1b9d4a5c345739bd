package debounce

import (
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Option is a function that can be used to configure a Debouncer.
type Option func(*config)

// Leading returns an option that causes the first call of a quiet window to
// invoke the function immediately, instead of waiting for the wait duration
// to pass.
//
// Calls arriving while the window is still open are debounced as usual, so a
// burst of calls invokes the function twice: once for the first call, and once
// for the last call after the wait duration has passed. A single call followed
// by silence invokes the function once, and the window closes after the wait
// duration.
func Leading() Option {
	return func(c *config) {
		c.leading = true
	}
}

// WithCancelError returns an option that sets the error superseded calls are
// rejected with. The default is ErrCanceled. A nil error is ignored.
func WithCancelError(err error) Option {
	return func(c *config) {
		if err != nil {
			c.cancelErr = err
		}
	}
}

// WithWaitFunc returns an option that makes the Debouncer ask f for the wait
// duration every time it schedules a deadline, instead of using the fixed wait
// duration given to New. Negative durations are treated as zero.
func WithWaitFunc(f func() time.Duration) Option {
	return func(c *config) {
		c.waitFunc = f
	}
}

// WithLogger returns an option that sets the logger used for debug output.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithMeterProvider returns an option that sets the provider of the meter used
// to record call, dispatch and cancellation counts.
func WithMeterProvider(provider metric.MeterProvider) Option {
	return func(c *config) {
		if provider != nil {
			c.meterProvider = provider
		}
	}
}

// WithTracerProvider returns an option that sets the provider of the tracer
// used to record a span for every invocation of the debounced function.
func WithTracerProvider(provider trace.TracerProvider) Option {
	return func(c *config) {
		if provider != nil {
			c.tracerProvider = provider
		}
	}
}
