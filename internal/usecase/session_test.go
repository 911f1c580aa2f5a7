package usecase

import (
	"testing"
	"time"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRegistry_CreateAndGet(t *testing.T) {
	sink := &recordingNotifier{}
	r := NewSessionRegistry(time.Hour, 4, sink, logger.NewNop())

	s := r.Create()
	require.NotEmpty(t, s.ID)
	assert.Equal(t, 1, r.Len())

	got, err := r.Get(s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)

	got.Cart.Add(domain.NewCartItem(product(1, "Lamp", "10"), 1))
	assert.Len(t, s.Notifications.Drain(), 1)
	assert.Len(t, sink.all(), 1, "sink receives a copy")
	assert.Empty(t, s.Notifications.Drain())
}

func TestSessionRegistry_UnknownSession(t *testing.T) {
	r := NewSessionRegistry(time.Hour, 4, nil, logger.NewNop())

	_, err := r.Get("nope")
	assert.ErrorIs(t, err, e.ErrSessionNotFound)
}

func TestSessionRegistry_SessionsAreIsolated(t *testing.T) {
	r := NewSessionRegistry(time.Hour, 4, nil, logger.NewNop())
	a, b := r.Create(), r.Create()

	a.Cart.Add(domain.NewCartItem(product(1, "Lamp", "10"), 1))
	a.Filter.SetCategory("electronics")

	assert.Empty(t, b.Cart.Items())
	assert.Equal(t, domain.AllCategories, b.Filter.Snapshot().Category)
}

func TestSessionRegistry_Sweep(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	r := NewSessionRegistry(time.Hour, 4, nil, logger.NewNop())
	r.now = func() time.Time { return now }

	idle := r.Create()
	now = now.Add(50 * time.Minute)
	active := r.Create()

	now = now.Add(20 * time.Minute)
	_, err := r.Get(active.ID)
	require.NoError(t, err)

	assert.Equal(t, 1, r.Sweep())
	_, err = r.Get(idle.ID)
	assert.ErrorIs(t, err, e.ErrSessionNotFound)
	_, err = r.Get(active.ID)
	assert.NoError(t, err)
}

func TestSessionRegistry_Delete(t *testing.T) {
	r := NewSessionRegistry(time.Hour, 4, nil, logger.NewNop())
	s := r.Create()

	r.Delete(s.ID)
	assert.Zero(t, r.Len())
}
