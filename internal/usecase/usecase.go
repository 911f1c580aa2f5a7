package usecase

import (
	"context"

	"github.com/DRSN-tech/storefront/internal/domain"
)

// CatalogUC — чтение каталога витриной.
type CatalogUC interface {
	GetProducts(ctx context.Context) []domain.Product
	GetCategories(ctx context.Context) []domain.Category
}

// CatalogAdminUC — операции административной панели.
type CatalogAdminUC interface {
	Products(ctx context.Context) []domain.Product
	Categories(ctx context.Context) []domain.Category
	AddProduct(ctx context.Context, p domain.Product) (domain.Product, error)
	UpdateProduct(ctx context.Context, p domain.Product) (domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
	AddCategory(ctx context.Context, c domain.Category) (domain.Category, error)
	UpdateCategory(ctx context.Context, oldID string, c domain.Category) (domain.Category, error)
	DeleteCategory(ctx context.Context, id string) error
	Stats(ctx context.Context) CatalogStats
	ResetCatalog(ctx context.Context) error
	StorageAvailable(ctx context.Context) bool
	ClearCache()
}

// SessionUC — доступ к сессиям покупателей.
type SessionUC interface {
	Create() *Session
	Get(id string) (*Session, error)
}

// CheckoutUC — оформление заказа.
type CheckoutUC interface {
	PlaceOrder(ctx context.Context, cart *CartLedger, contact domain.ContactInfo) (*domain.Order, error)
}
