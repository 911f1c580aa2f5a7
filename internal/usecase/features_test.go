package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/cucumber/godog"
	"github.com/davecgh/go-spew/spew"
	"github.com/shopspring/decimal"
)

type ledgerTestContext struct {
	notifier *recordingNotifier
	cart     *CartLedger
	wishlist *Wishlist
}

func (c *ledgerTestContext) reset() {
	c.notifier = &recordingNotifier{}
	c.cart = NewCartLedger(c.notifier)
	c.wishlist = NewWishlist(c.notifier)
}

func (c *ledgerTestContext) anEmptyCart() error {
	if len(c.cart.Items()) != 0 {
		return fmt.Errorf("expected empty cart, got %s", spew.Sdump(c.cart.Items()))
	}
	return nil
}

func (c *ledgerTestContext) anEmptyWishlist() error {
	if len(c.wishlist.Items()) != 0 {
		return fmt.Errorf("expected empty wishlist, got %s", spew.Sdump(c.wishlist.Items()))
	}
	return nil
}

func (c *ledgerTestContext) iAddOfProductPriced(qty int, id int64, price string) error {
	p, err := decimal.NewFromString(price)
	if err != nil {
		return err
	}
	c.cart.Add(domain.NewCartItem(domain.Product{ID: id, Name: fmt.Sprintf("product %d", id), Price: p}, qty))
	return nil
}

func (c *ledgerTestContext) iDecreaseProduct(id int64) error {
	c.cart.Decrease(id)
	return nil
}

func (c *ledgerTestContext) iIncreaseProductBy(id int64, amount int) error {
	c.cart.Increase(id, amount)
	return nil
}

func (c *ledgerTestContext) theCartHasLines(n int) error {
	if got := len(c.cart.Items()); got != n {
		return fmt.Errorf("expected %d lines, got %d: %s", n, got, spew.Sdump(c.cart.Items()))
	}
	return nil
}

func (c *ledgerTestContext) productHasQuantity(id int64, qty int) error {
	for _, item := range c.cart.Items() {
		if item.ID == id {
			if item.Quantity != qty {
				return fmt.Errorf("expected quantity %d, got %d", qty, item.Quantity)
			}
			return nil
		}
	}
	return fmt.Errorf("product %d is not in the cart: %s", id, spew.Sdump(c.cart.Items()))
}

func (c *ledgerTestContext) productIsNotInTheCart(id int64) error {
	if c.cart.Contains(id) {
		return fmt.Errorf("product %d is still in the cart", id)
	}
	return nil
}

func (c *ledgerTestContext) totalsField(field string) func(string) error {
	return func(want string) error {
		expected, err := decimal.NewFromString(want)
		if err != nil {
			return err
		}

		totals := c.cart.Totals()
		got := map[string]decimal.Decimal{
			"subtotal": totals.Subtotal,
			"shipping": totals.Shipping,
			"total":    totals.Total,
		}[field]
		if !got.Equal(expected) {
			return fmt.Errorf("expected %s %s, got %s", field, expected, got)
		}
		return nil
	}
}

func (c *ledgerTestContext) iWishForProduct(id int64) error {
	c.wishlist.Add(domain.Product{ID: id, Name: fmt.Sprintf("product %d", id)})
	return nil
}

func (c *ledgerTestContext) iUnwishProduct(id int64) error {
	c.wishlist.Remove(id)
	return nil
}

func (c *ledgerTestContext) theWishlistHasEntries(n int) error {
	if got := len(c.wishlist.Items()); got != n {
		return fmt.Errorf("expected %d entries, got %d: %s", n, got, spew.Sdump(c.wishlist.Items()))
	}
	return nil
}

func (c *ledgerTestContext) notificationsWereSent(n int) error {
	if got := len(c.notifier.all()); got != n {
		return fmt.Errorf("expected %d notifications, got %d: %s", n, got, spew.Sdump(c.notifier.all()))
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &ledgerTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	ctx.Step(`^an empty cart$`, tc.anEmptyCart)
	ctx.Step(`^an empty wishlist$`, tc.anEmptyWishlist)
	ctx.Step(`^I add (\d+) of product (\d+) priced ([\d.]+)$`, tc.iAddOfProductPriced)
	ctx.Step(`^I decrease product (\d+)$`, tc.iDecreaseProduct)
	ctx.Step(`^I increase product (\d+) by (\d+)$`, tc.iIncreaseProductBy)
	ctx.Step(`^the cart has (\d+) lines?$`, tc.theCartHasLines)
	ctx.Step(`^product (\d+) has quantity (\d+)$`, tc.productHasQuantity)
	ctx.Step(`^product (\d+) is not in the cart$`, tc.productIsNotInTheCart)
	ctx.Step(`^the subtotal is ([\d.]+)$`, tc.totalsField("subtotal"))
	ctx.Step(`^the shipping is ([\d.]+)$`, tc.totalsField("shipping"))
	ctx.Step(`^the total is ([\d.]+)$`, tc.totalsField("total"))
	ctx.Step(`^I wish for product (\d+)$`, tc.iWishForProduct)
	ctx.Step(`^I unwish product (\d+)$`, tc.iUnwishProduct)
	ctx.Step(`^the wishlist has (\d+) entr(?:y|ies)$`, tc.theWishlistHasEntries)
	ctx.Step(`^(\d+) notifications? (?:was|were) sent$`, tc.notificationsWereSent)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
