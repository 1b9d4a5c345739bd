package debounce

import (
	"context"
	"time"
)

// Op is an operation passed to each call of a mutable Debouncer.
type Op[R any] func(ctx context.Context) (R, error)

// NewMutable returns a Debouncer like New, but instead of wrapping a single
// function, every call brings its own operation.
//
// Only the operation passed to the last call of a window is invoked. The
// operations of superseded calls are discarded, and their futures rejected
// with the cancel error.
//
// A call with a nil operation settles with the zero value of R once it wins.
func NewMutable[R any](
	wait time.Duration,
	opts ...Option,
) (*Debouncer[Op[R], R], error) {
	return New[Op[R], R](func(ctx context.Context, op Op[R]) (R, error) {
		if op == nil {
			var zero R
			return zero, nil
		}

		return op(ctx)
	}, wait, opts...)
}
