package usecase

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Checkout формирует заказ из корзины сессии и передаёт его во внешний мессенджер.
type Checkout struct {
	handoff  OrderHandoff
	linkBase string
	currency string
	logger   logger.Logger
	now      func() time.Time
}

func NewCheckout(handoff OrderHandoff, linkBase string, currency string, logger logger.Logger) *Checkout {
	if handoff == nil || logger == nil {
		panic("usecase.NewCheckout: nil dependency")
	}

	return &Checkout{
		handoff:  handoff,
		linkBase: linkBase,
		currency: currency,
		logger:   logger,
		now:      time.Now,
	}
}

// PlaceOrder собирает сообщение заказа, строит ссылку и отдаёт заказ во внешний канал.
// После успешной передачи из корзины списываются ровно оформленные позиции.
func (c *Checkout) PlaceOrder(ctx context.Context, cart *CartLedger, contact domain.ContactInfo) (*domain.Order, error) {
	const op = "Checkout.PlaceOrder"

	contact = domain.ContactInfo{
		Name:    strings.TrimSpace(contact.Name),
		Phone:   strings.TrimSpace(contact.Phone),
		Address: strings.TrimSpace(contact.Address),
	}
	if contact.Name == "" || contact.Phone == "" || contact.Address == "" {
		return nil, e.Wrap(op, e.ErrMissingFields)
	}

	items := cart.Items()
	if len(items) == 0 {
		return nil, e.Wrap(op, e.ErrCartEmpty)
	}

	order := &domain.Order{
		ID:        uuid.NewString(),
		Contact:   contact,
		Items:     items,
		Totals:    ComputeTotals(items),
		CreatedAt: c.now().UTC(),
	}
	order.Message = FormatOrderMessage(order, c.currency)
	order.Link = BuildOrderLink(c.linkBase, order.Message)

	if err := c.handoff.Handoff(ctx, order); err != nil {
		return nil, e.Wrap(op, fmt.Errorf("%w: %w", e.ErrHandoffFailed, err))
	}

	cart.Settle(items)
	c.logger.Infof("Order handed off: id=%s items=%d total=%s", order.ID, len(items), order.Totals.Total.StringFixed(2))
	return order, nil
}

// FormatOrderMessage сериализует позиции, суммы и контакты в текст сообщения.
func FormatOrderMessage(order *domain.Order, currency string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "New order %s\n\n", order.ID)
	for _, item := range order.Items {
		line := item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		fmt.Fprintf(&b, "- %s x%d: %s%s\n", item.Name, item.Quantity, currency, line.StringFixed(2))
	}

	fmt.Fprintf(&b, "\nSubtotal: %s%s\n", currency, order.Totals.Subtotal.StringFixed(2))
	fmt.Fprintf(&b, "Shipping: %s%s\n", currency, order.Totals.Shipping.StringFixed(2))
	fmt.Fprintf(&b, "Total: %s%s\n\n", currency, order.Totals.Total.StringFixed(2))

	fmt.Fprintf(&b, "Name: %s\n", order.Contact.Name)
	fmt.Fprintf(&b, "Phone: %s\n", order.Contact.Phone)
	fmt.Fprintf(&b, "Address: %s", order.Contact.Address)

	return b.String()
}

// BuildOrderLink добавляет к базовой ссылке параметр text с закодированным сообщением.
// Пробелы кодируются как %20, а не как "+".
func BuildOrderLink(base string, message string) string {
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}

	text := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return base + sep + "text=" + text
}
