package debounce

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// call is a single invocation of a Debouncer, from Call until its future
// settles.
type call[A, R any] struct {
	admission

	ctx    context.Context
	arg    A
	future *Future[R]
}

// Debouncer wraps a Func so that rapid calls collapse into a single invocation
// per quiet window. Every call gets its own Future, which settles with the
// function's result if the call was the last of its window, or with the cancel
// error if a later call superseded it.
//
// A Debouncer is safe for concurrent use. Calls from different goroutines share
// the same window, which is the whole point of debouncing them.
type Debouncer[A, R any] struct {
	// Configuration
	fn   Func[A, R]
	conf config
	log  zerolog.Logger
	ins  *instruments

	// State
	mux     sync.Mutex
	sess    session
	timer   *time.Timer
	pending *call[A, R]
}

// Call admits a call with the given context and argument, and returns a Future
// for its outcome. It never blocks.
//
// If the call is the last one before the wait duration passes, fn is invoked
// with ctx and arg, and the future settles with whatever fn returns. If another
// call arrives first, the future is rejected with the cancel error right away
// and fn is never invoked for it.
//
// With the Leading option, the first call of a window invokes fn immediately.
func (d *Debouncer[A, R]) Call(ctx context.Context, arg A) *Future[R] {
	if ctx == nil {
		ctx = context.Background()
	}

	c := &call[A, R]{ctx: ctx, arg: arg, future: newFuture[R]()}

	d.mux.Lock()
	defer d.mux.Unlock()

	c.admission = d.sess.admit(d.conf.leading)
	d.ins.calls.Add(ctx, 1)

	stopTimer(d.timer)
	if d.pending != nil {
		d.supersede(d.pending)
		d.pending = nil
	}

	wait := d.conf.delay()
	d.log.Debug().
		Uint64("seq", c.seq).
		Bool("leading", c.leading).
		Uint64("superseded", c.superseded).
		Dur("wait", wait).
		Msg("call admitted")

	if c.leading {
		d.dispatch(c)
	} else {
		d.pending = c
	}
	d.timer = time.AfterFunc(wait, func() { d.expire(c) })

	return c.future
}

// Cancel discards the pending call, if any, rejecting its future with the
// cancel error, and closes the current window so that the next call starts a
// new one. An invocation of fn that is already running is not interrupted.
//
// Cancel is safe for concurrent use, and can be called multiple times.
func (d *Debouncer[A, R]) Cancel() {
	d.mux.Lock()
	defer d.mux.Unlock()

	stopTimer(d.timer)
	d.timer = nil
	d.sess.cancel()

	if d.pending != nil {
		d.supersede(d.pending)
		d.pending = nil
	}
}

// Pending reports whether a window is open, i.e. whether the next call will be
// debounced together with earlier ones.
func (d *Debouncer[A, R]) Pending() bool {
	d.mux.Lock()
	defer d.mux.Unlock()

	return d.sess.open
}

// IsCanceled reports whether err is, or wraps, the cancel error this
// Debouncer rejects superseded calls with.
func (d *Debouncer[A, R]) IsCanceled(err error) bool {
	return errors.Is(err, d.conf.cancelErr)
}

// expire runs when the deadline armed for c elapses.
func (d *Debouncer[A, R]) expire(c *call[A, R]) {
	d.mux.Lock()
	defer d.mux.Unlock()

	v := d.sess.expire(c.admission)
	d.log.Debug().Uint64("seq", c.seq).Stringer("verdict", v).Msg("deadline expired")

	switch v {
	case verdictDispatch:
		d.pending = nil
		d.timer = nil
		d.dispatch(c)
	case verdictClose:
		d.timer = nil
	case verdictStale:
		d.supersede(c)
	case verdictIgnore:
	}
}

// supersede rejects the future of c with the cancel error. It should only be
// called while the mutex is already locked.
func (d *Debouncer[A, R]) supersede(c *call[A, R]) {
	if !c.future.reject(d.conf.cancelErr) {
		return
	}

	d.ins.cancellations.Add(c.ctx, 1)
	d.log.Debug().Uint64("seq", c.seq).Msg("call superseded")
}

// dispatch starts fn for c in a new goroutine. It should only be called while
// the mutex is already locked.
func (d *Debouncer[A, R]) dispatch(c *call[A, R]) {
	go d.run(c)
}

// run invokes fn with the context and argument of c, and settles the future of
// c with the outcome. The span ends before the future settles.
func (d *Debouncer[A, R]) run(c *call[A, R]) {
	ctx, span := d.ins.tracer.Start(c.ctx, "debounce.dispatch",
		trace.WithAttributes(
			attribute.Int64("debounce.seq", int64(c.seq)),
			attribute.Bool("debounce.leading", c.leading),
		),
	)

	d.ins.dispatches.Add(ctx, 1)
	record := d.ins.timeDispatch(ctx)
	val, err := d.invoke(ctx, c.arg)
	record()

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		d.ins.failures.Add(ctx, 1)
		d.log.Debug().Err(err).Uint64("seq", c.seq).Msg("invocation failed")
	} else {
		d.log.Debug().Uint64("seq", c.seq).Msg("invocation succeeded")
	}
	span.End()

	if err != nil {
		c.future.reject(err)
		return
	}
	c.future.resolve(val)
}

// invoke calls fn, turning a panic into an error wrapping ErrPanic.
func (d *Debouncer[A, R]) invoke(ctx context.Context, arg A) (val R, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrPanic, r)
		}
	}()

	return d.fn(ctx, arg)
}
