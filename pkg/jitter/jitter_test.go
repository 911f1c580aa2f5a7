package jitter

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDurationStaysInRange(t *testing.T) {
	for i := 0; i < 100; i++ {
		d := Duration(100*time.Millisecond, DefaultJitter)
		assert.GreaterOrEqual(t, d, 100*time.Millisecond)
		assert.LessOrEqual(t, d, 150*time.Millisecond)
	}
}

func TestExponentialBackoffIsCapped(t *testing.T) {
	d := ExponentialBackoff(time.Second, 4*time.Second, 10, 0)
	assert.Equal(t, 4*time.Second, d)

	d = ExponentialBackoff(time.Second, time.Minute, 2, 0)
	assert.Equal(t, 4*time.Second, d)
}

func TestRetryStopsOnSuccess(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), Policy{Attempts: 5, Base: time.Millisecond, Max: time.Millisecond}, func(context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("boom")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetryReturnsLastError(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	err := Retry(context.Background(), Policy{Attempts: 2, Base: time.Millisecond, Max: time.Millisecond}, func(context.Context) error {
		calls++
		return boom
	})

	require.ErrorIs(t, err, boom)
	assert.Equal(t, 2, calls)
}

func TestRetryHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Retry(ctx, Policy{Attempts: 3, Base: time.Hour, Max: time.Hour}, func(context.Context) error {
		return errors.New("boom")
	})

	require.ErrorIs(t, err, context.Canceled)
}

func TestRetryStopsOnPermanent(t *testing.T) {
	notFound := errors.New("not found")
	calls := 0
	err := Retry(context.Background(), Policy{Attempts: 5, Base: time.Millisecond, Max: time.Millisecond}, func(context.Context) error {
		calls++
		return Permanent(notFound)
	})

	assert.Same(t, notFound, err)
	assert.Equal(t, 1, calls)
	assert.NoError(t, Permanent(nil))
}
