package debounce

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/romdo/go-debounce-async"

type instruments struct {
	// calls is the number of calls admitted.
	calls metric.Int64Counter
	// dispatches is the number of real invocations of the function.
	dispatches metric.Int64Counter
	// cancellations is the number of calls rejected as superseded.
	cancellations metric.Int64Counter
	// failures is the number of invocations that returned an error.
	failures metric.Int64Counter
	// duration is the time taken by each invocation.
	duration metric.Float64Histogram

	tracer trace.Tracer
}

func newInstruments(
	mp metric.MeterProvider,
	tp trace.TracerProvider,
) (*instruments, error) {
	meter := mp.Meter(instrumentationName)
	ins := &instruments{tracer: tp.Tracer(instrumentationName)}

	var err error
	ins.calls, err = meter.Int64Counter(
		"debounce.calls",
		metric.WithDescription("Number of calls to the debounced function"),
	)
	if err != nil {
		return nil, fmt.Errorf("debounce: calls counter: %w", err)
	}
	ins.dispatches, err = meter.Int64Counter(
		"debounce.dispatches",
		metric.WithDescription("Number of invocations of the wrapped function"),
	)
	if err != nil {
		return nil, fmt.Errorf("debounce: dispatches counter: %w", err)
	}
	ins.cancellations, err = meter.Int64Counter(
		"debounce.cancellations",
		metric.WithDescription("Number of calls rejected as superseded"),
	)
	if err != nil {
		return nil, fmt.Errorf("debounce: cancellations counter: %w", err)
	}
	ins.failures, err = meter.Int64Counter(
		"debounce.failures",
		metric.WithDescription("Number of invocations that returned an error"),
	)
	if err != nil {
		return nil, fmt.Errorf("debounce: failures counter: %w", err)
	}
	ins.duration, err = meter.Float64Histogram(
		"debounce.dispatch.duration",
		metric.WithDescription("Time taken by invocations of the wrapped function"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("debounce: duration histogram: %w", err)
	}

	return ins, nil
}

// timeDispatch returns a function recording the time elapsed since it was
// created to the duration histogram.
func (ins *instruments) timeDispatch(ctx context.Context) func() {
	start := time.Now()

	return func() {
		ins.duration.Record(ctx, time.Since(start).Seconds())
	}
}
