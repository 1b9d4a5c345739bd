package debounce

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMutable(t *testing.T) {
	t.Parallel()

	d, err := NewMutable[string](50 * time.Millisecond)
	require.NoError(t, err)

	var n int64
	op := func(v string) Op[string] {
		return func(context.Context) (string, error) {
			atomic.AddInt64(&n, 1)
			return v, nil
		}
	}

	foo := d.Call(context.Background(), op("foo"))
	bar := d.Call(context.Background(), op("bar"))
	baz := d.Call(context.Background(), op("baz"))

	assert.Equal(t, []any{"canceled", "canceled", "baz"}, outcomes(t, foo, bar, baz))
	assert.Equal(t, int64(1), atomic.LoadInt64(&n))
}

func TestNewMutable_leading(t *testing.T) {
	t.Parallel()

	d, err := NewMutable[int](50*time.Millisecond, Leading())
	require.NoError(t, err)

	one := d.Call(context.Background(), func(context.Context) (int, error) {
		return 1, nil
	})
	two := d.Call(context.Background(), func(context.Context) (int, error) {
		return 2, nil
	})

	assert.Equal(t, []any{1, 2}, outcomes(t, one, two))
}

func TestNewMutable_nil_op(t *testing.T) {
	t.Parallel()

	d, err := NewMutable[string](10 * time.Millisecond)
	require.NoError(t, err)

	assert.Equal(t, []any{""}, outcomes(t, d.Call(context.Background(), nil)))
}

func TestNewMutable_negative_wait(t *testing.T) {
	t.Parallel()

	d, err := NewMutable[string](-time.Second)
	assert.ErrorIs(t, err, ErrNegativeWait)
	assert.Nil(t, d)
}
