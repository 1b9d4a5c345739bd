// Package debounce wraps asynchronous functions so that rapid, repeated calls
// collapse into a single invocation per quiet window, while every call still
// receives its own Future.
//
// Only the last call of a burst reaches the wrapped function, with that call's
// context and argument. Every earlier call in the burst is rejected with a
// cancel error, ErrCanceled by default, no later than the winning call
// settles. Errors returned by the wrapped function are passed through to the
// winning call unchanged.
//
// Debouncing can be useful in scenarios where calls may be triggered rapidly,
// such as in response to user input, but the underlying operation is expensive
// and only the result for the latest input matters.
package debounce

import (
	"context"
	"time"
)

// Func is the asynchronous operation wrapped by a Debouncer. It is always
// invoked on its own goroutine, and its return values settle the Future of the
// call that triggered it.
type Func[A, R any] func(ctx context.Context, arg A) (R, error)

// New returns a Debouncer that delays invoking fn until wait has elapsed since
// the last call, passing it the context and argument of that last call.
//
// New fails with ErrNilFunc if fn is nil, and with ErrNegativeWait if wait is
// negative. A zero wait still defers the invocation to a timer, so calls made
// in a tight loop are usually still debounced.
//
// The Debouncer does not wait for fn to complete before starting a new window,
// so fn needs to be safe for concurrent use, as it may be invoked again before
// the previous invocation returns.
func New[A, R any](
	fn Func[A, R],
	wait time.Duration,
	opts ...Option,
) (*Debouncer[A, R], error) {
	if fn == nil {
		return nil, ErrNilFunc
	}

	conf, err := newConfig(wait, opts...)
	if err != nil {
		return nil, err
	}

	ins, err := newInstruments(conf.meterProvider, conf.tracerProvider)
	if err != nil {
		return nil, err
	}

	return &Debouncer[A, R]{
		fn:   fn,
		conf: conf,
		log:  conf.logger.With().Str("component", "debounce").Logger(),
		ins:  ins,
	}, nil
}

// Do calls d with ctx and arg, and waits for the outcome. It returns early with
// ctx.Err() if ctx is done before the call settles.
func Do[A, R any](ctx context.Context, d *Debouncer[A, R], arg A) (R, error) {
	return d.Call(ctx, arg).Await(ctx)
}
