package closer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloseRunsInReverseOrder(t *testing.T) {
	c := NewCloser(0)

	var order []string
	c.AddSimple("first", func() { order = append(order, "first") })
	c.AddSimple("second", func() { order = append(order, "second") })
	c.AddSimple("third", func() { order = append(order, "third") })

	require.NoError(t, c.Close(context.Background()))
	assert.Equal(t, []string{"third", "second", "first"}, order)
}

func TestCloseCollectsErrors(t *testing.T) {
	c := NewCloser(0)
	c.Add("redis", func(context.Context) error { return errors.New("connection reset") })
	c.AddSimple("pool", func() {})

	err := c.Close(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis: connection reset")
}

func TestCloseIsIdempotent(t *testing.T) {
	c := NewCloser(0)
	calls := 0
	c.AddSimple("once", func() { calls++ })

	require.NoError(t, c.Close(context.Background()))
	require.NoError(t, c.Close(context.Background()))
	assert.Equal(t, 1, calls)
}

func TestCloseForcesRemainingOnTimeout(t *testing.T) {
	c := NewCloser(50 * time.Millisecond)

	c.Add("slow", func(ctx context.Context) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Second):
			return nil
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := c.Close(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "shutdown interrupted")
	assert.Contains(t, err.Error(), "[FORCED] slow")
}
