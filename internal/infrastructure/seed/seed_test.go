package seed

import (
	"testing"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultCatalog(t *testing.T) {
	catalog, err := Load()
	require.NoError(t, err)

	products := catalog.Products()
	require.Len(t, products, 8)
	categories := catalog.Categories()
	require.Len(t, categories, 6)

	first := products[0]
	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, "Modern Slim-Fit T-Shirt", first.Name)
	assert.True(t, first.Price.Equal(decimal.RequireFromString("29.99")))
	require.NotNil(t, first.OriginalPrice)
	assert.True(t, first.OriginalPrice.Equal(decimal.RequireFromString("39.99")))
	assert.True(t, first.IsOnSale())
	assert.Len(t, first.ReviewList, 2)
	assert.Equal(t, "Cotton", first.Specifications["Material"])

	assert.Nil(t, products[2].OriginalPrice)
	assert.False(t, products[2].IsOnSale())
}

func TestLoad_EveryProductHasKnownCategory(t *testing.T) {
	catalog, err := Load()
	require.NoError(t, err)

	known := make(map[string]bool)
	for _, c := range catalog.Categories() {
		known[c.ID] = true
	}

	onSale := 0
	for _, p := range catalog.Products() {
		assert.True(t, known[p.Category], "product %d references unknown category %q", p.ID, p.Category)
		if p.IsOnSale() {
			onSale++
		}
	}
	assert.Equal(t, 4, onSale)
}

func TestCatalog_ReturnsCopies(t *testing.T) {
	catalog, err := Load()
	require.NoError(t, err)

	products := catalog.Products()
	products[0].Details[0] = "changed"
	assert.NotEqual(t, "changed", catalog.Products()[0].Details[0])
}

func TestParse(t *testing.T) {
	catalog, err := Parse([]byte(`
categories:
  - id: " Toys "
    name: Toys
products:
  - id: 5
    name: Robot
    price: 12.5
    category: toys
`))
	require.NoError(t, err)

	assert.Equal(t, []domain.Category{{ID: "toys", Name: "Toys"}}, catalog.Categories())
	p := catalog.Products()[0]
	assert.True(t, p.Price.Equal(decimal.RequireFromString("12.5")))
	assert.NotNil(t, p.Details)

	_, err = Parse([]byte("products: {"))
	assert.Error(t, err)
}
