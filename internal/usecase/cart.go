package usecase

import (
	"fmt"
	"slices"
	"sync"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/shopspring/decimal"
)

// ShippingFee — фиксированная стоимость доставки для непустой корзины.
var ShippingFee = decimal.RequireFromString("5.99")

// Тексты уведомлений корзины и списка желаний.
const (
	msgItemRemovedFromCart     = "Item removed from cart"
	msgItemRemovedFromWishlist = "Item removed from wishlist"
	msgOrderPlaced             = "Order placed successfully!"
)

// CartLedger — упорядоченная корзина: не больше одной позиции на продукт, количество не меньше 1.
type CartLedger struct {
	mu       sync.Mutex
	items    []domain.CartItem
	notifier Notifier
}

func NewCartLedger(notifier Notifier) *CartLedger {
	if notifier == nil {
		panic("usecase.NewCartLedger: nil notifier")
	}

	return &CartLedger{notifier: notifier}
}

// Add добавляет позицию или увеличивает количество существующей.
// Уведомление отправляется только при появлении новой позиции.
func (c *CartLedger) Add(item domain.CartItem) {
	item = domain.NewCartItem(item.Product, item.Quantity)

	c.mu.Lock()
	if idx := c.index(item.ID); idx >= 0 {
		c.items[idx].Quantity += item.Quantity
		c.mu.Unlock()
		return
	}
	c.items = append(c.items, item)
	c.mu.Unlock()

	c.notifier.Notify(NotifySuccess, fmt.Sprintf("Added %s to cart", item.Name))
}

// Remove удаляет позицию, если она есть. Уведомление отправляется всегда.
func (c *CartLedger) Remove(productID int64) {
	c.mu.Lock()
	if idx := c.index(productID); idx >= 0 {
		c.items = slices.Delete(c.items, idx, idx+1)
	}
	c.mu.Unlock()

	c.notifier.Notify(NotifyInfo, msgItemRemovedFromCart)
}

// Increase увеличивает количество на amount (меньше 1 считается как 1).
func (c *CartLedger) Increase(productID int64, amount int) {
	if amount < 1 {
		amount = 1
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if idx := c.index(productID); idx >= 0 {
		c.items[idx].Quantity += amount
	}
}

// Decrease уменьшает количество на 1; позиция с количеством 1 удаляется.
func (c *CartLedger) Decrease(productID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.index(productID)
	switch {
	case idx < 0:
	case c.items[idx].Quantity > 1:
		c.items[idx].Quantity--
	default:
		c.items = slices.Delete(c.items, idx, idx+1)
	}
}

// Clear очищает корзину после оформления заказа.
func (c *CartLedger) Clear() {
	c.mu.Lock()
	c.items = nil
	c.mu.Unlock()

	c.notifier.Notify(NotifySuccess, msgOrderPlaced)
}

// Settle списывает оформленные позиции одним действием: из каждой строки
// вычитается заказанное количество, строки с остатком 0 удаляются.
// Позиции, добавленные после снимка заказа, остаются в корзине.
func (c *CartLedger) Settle(ordered []domain.CartItem) {
	c.mu.Lock()
	for _, item := range ordered {
		idx := c.index(item.ID)
		if idx < 0 {
			continue
		}
		if c.items[idx].Quantity > item.Quantity {
			c.items[idx].Quantity -= item.Quantity
			continue
		}
		c.items = slices.Delete(c.items, idx, idx+1)
	}
	c.mu.Unlock()

	c.notifier.Notify(NotifySuccess, msgOrderPlaced)
}

func (c *CartLedger) Contains(productID int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.index(productID) >= 0
}

// Items возвращает копию позиций в порядке добавления.
func (c *CartLedger) Items() []domain.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]domain.CartItem, len(c.items))
	for i, item := range c.items {
		out[i] = item.Clone()
	}
	return out
}

// Totals считает суммы по текущему содержимому.
func (c *CartLedger) Totals() domain.Totals {
	return ComputeTotals(c.Items())
}

func (c *CartLedger) index(productID int64) int {
	return slices.IndexFunc(c.items, func(item domain.CartItem) bool { return item.ID == productID })
}

// ComputeTotals: subtotal = Σ price×qty, доставка 5.99 при subtotal > 0.
func ComputeTotals(items []domain.CartItem) domain.Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	shipping := decimal.Zero
	if subtotal.IsPositive() {
		shipping = ShippingFee
	}

	return domain.Totals{
		Subtotal: subtotal,
		Shipping: shipping,
		Total:    subtotal.Add(shipping),
	}
}
