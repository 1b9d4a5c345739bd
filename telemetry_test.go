package debounce

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// syncBuffer is a bytes.Buffer safe for concurrent use, as log lines are
// written from timer goroutines.
type syncBuffer struct {
	mux sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mux.Lock()
	defer b.mux.Unlock()

	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mux.Lock()
	defer b.mux.Unlock()

	return b.buf.String()
}

// counters collects the current value of every Int64 sum metric.
func counters(t *testing.T, reader sdkmetric.Reader) map[string]int64 {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			for _, dp := range sum.DataPoints {
				out[m.Name] += dp.Value
			}
		}
	}

	return out
}

func TestDebouncer_metrics(t *testing.T) {
	t.Parallel()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	wantErr := errors.New("boom")
	d := mustNew(t, func(_ context.Context, v string) (string, error) {
		if v == "bad" {
			return "", wantErr
		}

		return v, nil
	}, 20*time.Millisecond, WithMeterProvider(mp))

	outcomes(t,
		d.Call(context.Background(), "foo"),
		d.Call(context.Background(), "bar"),
		d.Call(context.Background(), "baz"),
	)
	outcomes(t, d.Call(context.Background(), "bad"))

	assert.Equal(t, map[string]int64{
		"debounce.calls":         4,
		"debounce.dispatches":    2,
		"debounce.cancellations": 2,
		"debounce.failures":      1,
	}, counters(t, reader))
}

func TestDebouncer_tracing(t *testing.T) {
	t.Parallel()

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	wantErr := errors.New("boom")
	d := mustNew(t, func(_ context.Context, v string) (string, error) {
		if v == "bad" {
			return "", wantErr
		}

		return v, nil
	}, 10*time.Millisecond, Leading(), WithTracerProvider(tp))

	outcomes(t, d.Call(context.Background(), "foo"))
	d.Cancel()
	outcomes(t, d.Call(context.Background(), "bad"))

	spans := recorder.Ended()
	require.Len(t, spans, 2)

	for _, span := range spans {
		assert.Equal(t, "debounce.dispatch", span.Name())
		assert.Contains(t, span.Attributes(), attribute.Bool("debounce.leading", true))
	}

	assert.Equal(t, codes.Unset, spans[0].Status().Code)
	assert.Equal(t, codes.Error, spans[1].Status().Code)
	assert.Equal(t, "boom", spans[1].Status().Description)
}

func TestDebouncer_logging(t *testing.T) {
	t.Parallel()

	var buf syncBuffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	d := mustNew(t, identity[string], 10*time.Millisecond, WithLogger(logger))
	outcomes(t,
		d.Call(context.Background(), "foo"),
		d.Call(context.Background(), "bar"),
	)

	out := buf.String()
	assert.Equal(t, 2, strings.Count(out, `"message":"call admitted"`))
	assert.Contains(t, out, `"message":"call superseded"`)
	assert.Contains(t, out, `"verdict":"dispatch"`)
	assert.Contains(t, out, `"component":"debounce"`)
}
