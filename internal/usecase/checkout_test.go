package usecase

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var contact = domain.ContactInfo{Name: "Ann Lee", Phone: "+1 555 0100", Address: "12 Elm St & 3rd Ave"}

func newTestCheckout(h OrderHandoff) *Checkout {
	c := NewCheckout(h, "https://wa.me/15550100", "$", logger.NewNop())
	c.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	return c
}

func TestCheckout_PlaceOrder(t *testing.T) {
	n := &recordingNotifier{}
	cart := NewCartLedger(n)
	cart.Add(domain.NewCartItem(product(1, "Lamp", "10"), 2))
	cart.Add(domain.NewCartItem(product(2, "Bulb", "5"), 1))

	h := &fakeHandoff{}
	order, err := newTestCheckout(h).PlaceOrder(context.Background(), cart, contact)
	require.NoError(t, err)

	require.Len(t, h.orders, 1)
	assert.Same(t, order, h.orders[0])
	assert.Len(t, order.Items, 2)
	assert.Equal(t, "30.99", order.Totals.Total.StringFixed(2))
	assert.Equal(t, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), order.CreatedAt)

	assert.Contains(t, order.Message, "- Lamp x2: $20.00")
	assert.Contains(t, order.Message, "- Bulb x1: $5.00")
	assert.Contains(t, order.Message, "Subtotal: $25.00")
	assert.Contains(t, order.Message, "Shipping: $5.99")
	assert.Contains(t, order.Message, "Total: $30.99")
	assert.Contains(t, order.Message, "Address: 12 Elm St & 3rd Ave")

	assert.Empty(t, cart.Items(), "cart is cleared after hand-off")
	got := n.all()
	assert.Equal(t, "Order placed successfully!", got[len(got)-1].Message)
}

func TestCheckout_LinkCarriesEncodedMessage(t *testing.T) {
	cart := NewCartLedger(&recordingNotifier{})
	cart.Add(domain.NewCartItem(product(1, "Lamp", "10"), 1))

	order, err := newTestCheckout(&fakeHandoff{}).PlaceOrder(context.Background(), cart, contact)
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(order.Link, "https://wa.me/15550100?text="))
	assert.NotContains(t, order.Link, " ")
	assert.NotContains(t, order.Link, "+")

	u, err := url.Parse(order.Link)
	require.NoError(t, err)
	assert.Equal(t, order.Message, u.Query().Get("text"))
}

func TestCheckout_RequiresContactFields(t *testing.T) {
	cart := NewCartLedger(&recordingNotifier{})
	cart.Add(domain.NewCartItem(product(1, "Lamp", "10"), 1))
	h := &fakeHandoff{}

	_, err := newTestCheckout(h).PlaceOrder(context.Background(), cart, domain.ContactInfo{Name: "Ann", Phone: "  "})
	assert.ErrorIs(t, err, e.ErrMissingFields)
	assert.Empty(t, h.orders)
	assert.Len(t, cart.Items(), 1)
}

func TestCheckout_EmptyCart(t *testing.T) {
	_, err := newTestCheckout(&fakeHandoff{}).PlaceOrder(context.Background(), NewCartLedger(&recordingNotifier{}), contact)
	assert.ErrorIs(t, err, e.ErrCartEmpty)
}

func TestCheckout_HandoffFailureKeepsCart(t *testing.T) {
	cart := NewCartLedger(&recordingNotifier{})
	cart.Add(domain.NewCartItem(product(1, "Lamp", "10"), 1))
	cause := errors.New("broker unavailable")

	_, err := newTestCheckout(&fakeHandoff{err: cause}).PlaceOrder(context.Background(), cart, contact)
	assert.ErrorIs(t, err, e.ErrHandoffFailed)
	assert.ErrorIs(t, err, cause)
	assert.Len(t, cart.Items(), 1)
}

func TestBuildOrderLink(t *testing.T) {
	assert.Equal(t, "https://wa.me/?text=a%20b%2Bc", BuildOrderLink("https://wa.me/", "a b+c"))
	assert.Equal(t, "https://x.test/send?phone=1&text=hi", BuildOrderLink("https://x.test/send?phone=1", "hi"))
}

// addingHandoff кладёт товар в корзину во время передачи заказа.
type addingHandoff struct {
	cart *CartLedger
	late domain.CartItem
}

func (h *addingHandoff) Handoff(context.Context, *domain.Order) error {
	h.cart.Add(h.late)
	return nil
}

func TestCheckout_KeepsItemsAddedDuringHandoff(t *testing.T) {
	cart := NewCartLedger(&recordingNotifier{})
	cart.Add(domain.NewCartItem(product(1, "Lamp", "10"), 2))

	h := &addingHandoff{cart: cart, late: domain.NewCartItem(product(2, "Bulb", "5"), 1)}
	order, err := newTestCheckout(h).PlaceOrder(context.Background(), cart, contact)
	require.NoError(t, err)

	require.Len(t, order.Items, 1)
	assert.Equal(t, int64(1), order.Items[0].ID)

	items := cart.Items()
	require.Len(t, items, 1, "late item stays in the cart")
	assert.Equal(t, int64(2), items[0].ID)
}

func TestCheckout_KeepsQuantityMergedDuringHandoff(t *testing.T) {
	cart := NewCartLedger(&recordingNotifier{})
	cart.Add(domain.NewCartItem(product(1, "Lamp", "10"), 2))

	h := &addingHandoff{cart: cart, late: domain.NewCartItem(product(1, "Lamp", "10"), 3)}
	order, err := newTestCheckout(h).PlaceOrder(context.Background(), cart, contact)
	require.NoError(t, err)

	assert.Equal(t, 2, order.Items[0].Quantity)
	items := cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
}
