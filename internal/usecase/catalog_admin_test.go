package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdmin(storage KVStorage) (*CatalogAdmin, *CatalogStore) {
	store := newTestStore(storage, nil)
	return NewCatalogAdmin(store, testSeed(), logger.NewNop()), store
}

func TestCatalogAdmin_AddProductAssignsNextID(t *testing.T) {
	ctx := context.Background()
	admin, store := newTestAdmin(newMemStorage())

	p := product(0, "Smart Watch", "199.00")
	p.Rating = 4.9
	p.Reviews = 12
	p.Details = []string{"ignored"}

	added, err := admin.AddProduct(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, int64(4), added.ID)
	assert.Zero(t, added.Rating)
	assert.Zero(t, added.Reviews)
	assert.Empty(t, added.Details)

	products := store.GetProducts(ctx)
	require.Len(t, products, 4)
	assert.Equal(t, "Smart Watch", products[3].Name)
}

func TestCatalogAdmin_AddProductToEmptyCatalog(t *testing.T) {
	ctx := context.Background()
	admin, store := newTestAdmin(newMemStorage())
	store.SaveProducts(ctx, nil)

	added, err := admin.AddProduct(ctx, product(0, "First", "1.00"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), added.ID)
}

func TestCatalogAdmin_AddProductUnknownCategory(t *testing.T) {
	admin, _ := newTestAdmin(newMemStorage())

	p := product(0, "Sofa", "499.00")
	p.Category = "furniture"
	_, err := admin.AddProduct(context.Background(), p)
	assert.ErrorIs(t, err, e.ErrCategoryNotFound)
}

func TestCatalogAdmin_UpdateAndDeleteProduct(t *testing.T) {
	ctx := context.Background()
	admin, store := newTestAdmin(newMemStorage())

	p := product(2, "Wireless Headphones Pro", "99.99")
	_, err := admin.UpdateProduct(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, "Wireless Headphones Pro", store.GetProducts(ctx)[1].Name)

	_, err = admin.UpdateProduct(ctx, product(42, "Ghost", "1.00"))
	assert.ErrorIs(t, err, e.ErrProductNotFound)

	require.NoError(t, admin.DeleteProduct(ctx, 2))
	assert.Len(t, store.GetProducts(ctx), 2)
	assert.ErrorIs(t, admin.DeleteProduct(ctx, 2), e.ErrProductNotFound)
}

func TestCatalogAdmin_AddCategory(t *testing.T) {
	ctx := context.Background()
	admin, store := newTestAdmin(newMemStorage())

	c, err := admin.AddCategory(ctx, domain.Category{ID: "  Kitchenware ", Name: "Kitchenware"})
	require.NoError(t, err)
	assert.Equal(t, "kitchenware", c.ID)
	assert.Len(t, store.GetCategories(ctx), 4)

	_, err = admin.AddCategory(ctx, domain.Category{ID: "KITCHENWARE", Name: "Again"})
	assert.ErrorIs(t, err, e.ErrCategoryExists)

	_, err = admin.AddCategory(ctx, domain.Category{ID: "", Name: "Nameless"})
	assert.ErrorIs(t, err, e.ErrMissingFields)
}

func TestCatalogAdmin_DeleteCategoryInUse(t *testing.T) {
	ctx := context.Background()
	admin, store := newTestAdmin(newMemStorage())

	err := admin.DeleteCategory(ctx, "electronics")
	require.ErrorIs(t, err, e.ErrCategoryInUse)

	var inUse *CategoryInUseError
	require.True(t, errors.As(err, &inUse))
	assert.Equal(t, "electronics", inUse.CategoryID)
	assert.Equal(t, 1, inUse.Products)
	assert.Len(t, store.GetCategories(ctx), 3, "category must survive")

	require.NoError(t, admin.DeleteProduct(ctx, 2))
	require.NoError(t, admin.DeleteCategory(ctx, "electronics"))
	assert.Len(t, store.GetCategories(ctx), 2)

	assert.ErrorIs(t, admin.DeleteCategory(ctx, "electronics"), e.ErrCategoryNotFound)
}

func TestCatalogAdmin_RenameCategoryMovesProducts(t *testing.T) {
	ctx := context.Background()
	admin, store := newTestAdmin(newMemStorage())

	c, err := admin.UpdateCategory(ctx, "homegoods", domain.Category{ID: "Home", Name: "Home"})
	require.NoError(t, err)
	assert.Equal(t, "home", c.ID)

	products := store.GetProducts(ctx)
	assert.Equal(t, "home", products[2].Category)
	categories := store.GetCategories(ctx)
	assert.Equal(t, domain.Category{ID: "home", Name: "Home"}, categories[2])

	_, err = admin.UpdateCategory(ctx, "home", domain.Category{ID: "clothing", Name: "Clash"})
	assert.ErrorIs(t, err, e.ErrCategoryExists)

	_, err = admin.UpdateCategory(ctx, "missing", domain.Category{Name: "X"})
	assert.ErrorIs(t, err, e.ErrCategoryNotFound)
}

func TestCatalogAdmin_RenameKeepsIDWhenEmpty(t *testing.T) {
	ctx := context.Background()
	admin, _ := newTestAdmin(newMemStorage())

	c, err := admin.UpdateCategory(ctx, "clothing", domain.Category{Name: "Apparel"})
	require.NoError(t, err)
	assert.Equal(t, domain.Category{ID: "clothing", Name: "Apparel"}, c)
}

func TestCatalogAdmin_Stats(t *testing.T) {
	admin, _ := newTestAdmin(newMemStorage())

	stats := admin.Stats(context.Background())
	assert.Equal(t, CatalogStats{TotalProducts: 3, TotalCategories: 3, ProductsOnSale: 1}, stats)
}

func TestCatalogAdmin_ResetCatalog(t *testing.T) {
	ctx := context.Background()
	storage := newMemStorage()
	admin, store := newTestAdmin(storage)

	require.NoError(t, admin.DeleteProduct(ctx, 1))
	_, err := admin.AddCategory(ctx, domain.Category{ID: "toys", Name: "Toys"})
	require.NoError(t, err)

	require.NoError(t, admin.ResetCatalog(ctx))
	assert.Len(t, store.GetProducts(ctx), 3)
	assert.Len(t, store.GetCategories(ctx), 3)

	other := newTestStore(storage, nil)
	assert.Len(t, other.GetCategories(ctx), 3)
}

func TestCatalogAdmin_ReloadsFromStorage(t *testing.T) {
	ctx := context.Background()
	storage := newMemStorage()
	admin, store := newTestAdmin(storage)
	store.GetProducts(ctx)

	// Другой экземпляр перезаписывает хранилище.
	other := newTestStore(storage, nil)
	other.SaveProducts(ctx, []domain.Product{product(9, "Only", "1.00")})

	assert.Len(t, store.GetProducts(ctx), 3, "stale cache")
	assert.Len(t, admin.Products(ctx), 1, "admin view reloads")
}

func TestCatalogAdmin_RenameCategoryWriteFailureKeepsStorageConsistent(t *testing.T) {
	ctx := context.Background()
	storage := newMemStorage()
	admin, store := newTestAdmin(storage)
	store.GetProducts(ctx)
	store.GetCategories(ctx)

	storage.failKey = CategoriesKey
	_, err := admin.UpdateCategory(ctx, "homegoods", domain.Category{ID: "home", Name: "Home"})
	require.Error(t, err)

	fresh := newTestStore(storage, nil)
	categories := fresh.GetCategories(ctx)
	for _, p := range fresh.GetProducts(ctx) {
		assert.GreaterOrEqual(t, indexCategory(categories, p.Category), 0, "product %d points at %q", p.ID, p.Category)
	}
	assert.Equal(t, "homegoods", fresh.GetProducts(ctx)[2].Category)

	storage.failKey = ""
	assert.ErrorIs(t, admin.DeleteCategory(ctx, "homegoods"), e.ErrCategoryInUse)
}
