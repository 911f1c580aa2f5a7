package usecase

import (
	"fmt"
	"time"

	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/google/uuid"
)

// Ключи долговременного хранилища.
const (
	ProductsKey   = "lovable_admin_products"
	CategoriesKey = "lovable_admin_categories"
	checkKey      = "__storage_check__"
)

// Сущности каталога в событиях изменения.
const (
	EntityProducts   = "products"
	EntityCategories = "categories"
)

// CatalogChangeEvent — событие об успешной записи сущностей каталога.
type CatalogChangeEvent struct {
	EventID    string
	Entity     string
	Count      int
	OccurredAt time.Time
}

// CatalogStats — сводка для административной панели.
type CatalogStats struct {
	TotalProducts   int `json:"totalProducts"`
	TotalCategories int `json:"totalCategories"`
	ProductsOnSale  int `json:"productsOnSale"`
}

// CategoryInUseError — отказ в удалении категории, на которую ссылаются продукты.
type CategoryInUseError struct {
	CategoryID string
	Products   int
}

func (err *CategoryInUseError) Error() string {
	return fmt.Sprintf("category %q is used by %d product(s)", err.CategoryID, err.Products)
}

func (err *CategoryInUseError) Unwrap() error {
	return e.ErrCategoryInUse
}

// MAPPERS

func NewCatalogChangeEvent(entity string, count int, at time.Time) *CatalogChangeEvent {
	return &CatalogChangeEvent{
		EventID:    uuid.NewString(),
		Entity:     entity,
		Count:      count,
		OccurredAt: at,
	}
}

func NewCategoryInUseError(categoryID string, products int) *CategoryInUseError {
	return &CategoryInUseError{
		CategoryID: categoryID,
		Products:   products,
	}
}
