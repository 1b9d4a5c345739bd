package debounce

import (
	"context"
	"sync"
)

// Future holds the eventual outcome of a single call to a Debouncer. It is
// settled exactly once, either with a value or with an error.
//
// All methods are safe for concurrent use.
type Future[R any] struct {
	once sync.Once
	done chan struct{}
	val  R
	err  error
}

func newFuture[R any]() *Future[R] {
	return &Future[R]{done: make(chan struct{})}
}

// Done returns a channel that is closed once the future has settled.
func (f *Future[R]) Done() <-chan struct{} {
	return f.done
}

// Settled reports whether the future has settled, without blocking.
func (f *Future[R]) Settled() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Result blocks until the future settles and returns its value and error.
func (f *Future[R]) Result() (R, error) {
	<-f.done

	return f.val, f.err
}

// Await blocks until the future settles or ctx is done. If ctx is done first,
// the zero value and ctx.Err() are returned, and the future itself is left
// untouched.
func (f *Future[R]) Await(ctx context.Context) (R, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero R
		return zero, ctx.Err()
	}
}

// settle stores the outcome and closes done. Only the first call has any
// effect, and it reports whether it was that first call.
func (f *Future[R]) settle(val R, err error) bool {
	settled := false
	f.once.Do(func() {
		f.val = val
		f.err = err
		close(f.done)
		settled = true
	})

	return settled
}

func (f *Future[R]) resolve(val R) bool {
	return f.settle(val, nil)
}

func (f *Future[R]) reject(err error) bool {
	var zero R
	return f.settle(zero, err)
}
