package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWishlist_AddIsIdempotent(t *testing.T) {
	n := &recordingNotifier{}
	w := NewWishlist(n)

	w.Add(product(1, "Lamp", "10.00"))
	w.Add(product(1, "Lamp", "10.00"))

	require.Len(t, w.Items(), 1)
	assert.True(t, w.Contains(1))
	assert.Equal(t, []Notification{{Level: NotifySuccess, Message: "Added Lamp to wishlist"}}, n.all())
}

func TestWishlist_RemoveAlwaysNotifies(t *testing.T) {
	n := &recordingNotifier{}
	w := NewWishlist(n)

	w.Remove(5)
	w.Add(product(5, "Chair", "80.00"))
	w.Remove(5)

	assert.False(t, w.Contains(5))
	assert.Empty(t, w.Items())

	got := n.all()
	require.Len(t, got, 3)
	assert.Equal(t, NotifyInfo, got[0].Level)
	assert.Equal(t, "Item removed from wishlist", got[2].Message)
}

func TestWishlist_ItemsNeverNil(t *testing.T) {
	w := NewWishlist(&recordingNotifier{})
	assert.NotNil(t, w.Items())
}
