package http

import (
	"strings"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/shopspring/decimal"
)

// ProductReq — тело запроса на создание или изменение продукта.
type ProductReq struct {
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	Price          *decimal.Decimal  `json:"price" swaggertype:"string" example:"29.99"`
	OriginalPrice  *decimal.Decimal  `json:"originalPrice,omitempty" swaggertype:"string" example:"39.99"`
	OnSale         *bool             `json:"onSale,omitempty"`
	Image          string            `json:"image"`
	Category       string            `json:"category"`
	Rating         float64           `json:"rating,omitempty"`
	Reviews        int               `json:"reviews,omitempty"`
	ReviewList     []domain.Review   `json:"reviewList,omitempty"`
	Details        []string          `json:"details,omitempty"`
	Specifications map[string]string `json:"specifications,omitempty"`
	Quantity       *int              `json:"quantity,omitempty"`
}

// toDomain проверяет обязательные поля и цены.
func (req *ProductReq) toDomain(id int64) (domain.Product, error) {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Category) == "" || req.Price == nil {
		return domain.Product{}, e.ErrMissingFields
	}
	if err := validatePrice(*req.Price); err != nil {
		return domain.Product{}, err
	}
	if req.OriginalPrice != nil {
		if err := validatePrice(*req.OriginalPrice); err != nil {
			return domain.Product{}, err
		}
	}
	if req.Quantity != nil && *req.Quantity < 0 {
		return domain.Product{}, e.ErrInvalidQuantity
	}

	return domain.Product{
		ID:             id,
		Name:           strings.TrimSpace(req.Name),
		Description:    req.Description,
		Price:          *req.Price,
		OriginalPrice:  req.OriginalPrice,
		OnSale:         req.OnSale,
		Image:          req.Image,
		Category:       domain.NormalizeCategoryID(req.Category),
		Rating:         req.Rating,
		Reviews:        req.Reviews,
		ReviewList:     req.ReviewList,
		Details:        req.Details,
		Specifications: req.Specifications,
		Quantity:       req.Quantity,
	}, nil
}

// CategoryReq — тело запроса категории.
type CategoryReq struct {
	ID   string `json:"id" example:"kitchenware"`
	Name string `json:"name" example:"Kitchenware"`
}

// CartItemReq — добавление продукта в корзину. Нулевое количество считается как 1.
type CartItemReq struct {
	ProductID int64 `json:"productId" example:"1"`
	Quantity  int   `json:"quantity,omitempty" example:"1"`
}

type WishlistReq struct {
	ProductID int64 `json:"productId" example:"1"`
}

// FilterReq — частичное обновление фильтра: отсутствующие поля не меняются.
type FilterReq struct {
	SearchQuery *string          `json:"searchQuery,omitempty"`
	Category    *string          `json:"category,omitempty"`
	MinPrice    *decimal.Decimal `json:"minPrice,omitempty" swaggertype:"string" example:"0"`
	MaxPrice    *decimal.Decimal `json:"maxPrice,omitempty" swaggertype:"string" example:"1000"`
}

type CheckoutReq struct {
	Name    string `json:"name" example:"Ann Lee"`
	Phone   string `json:"phone" example:"+1 555 0100"`
	Address string `json:"address" example:"12 Elm St"`
}

type SessionRes struct {
	SessionID string `json:"sessionId"`
}

type CartRes struct {
	Items         []domain.CartItem      `json:"items"`
	Totals        domain.Totals          `json:"totals"`
	Notifications []usecase.Notification `json:"notifications"`
}

type WishlistRes struct {
	Items         []domain.Product       `json:"items"`
	Notifications []usecase.Notification `json:"notifications"`
}

type FilterRes struct {
	Filter        domain.Filter          `json:"filter"`
	Notifications []usecase.Notification `json:"notifications"`
}

type ProductsRes struct {
	Products []domain.Product `json:"products"`
	Total    int              `json:"total"`
}

type CheckoutRes struct {
	Order         *domain.Order          `json:"order"`
	Notifications []usecase.Notification `json:"notifications"`
}

type StorageRes struct {
	Available bool `json:"available"`
}

// MAPPERS

func NewProductsRes(products []domain.Product) *ProductsRes {
	return &ProductsRes{Products: products, Total: len(products)}
}

func NewCartRes(s *usecase.Session) *CartRes {
	items := s.Cart.Items()
	return &CartRes{
		Items:         items,
		Totals:        usecase.ComputeTotals(items),
		Notifications: s.Notifications.Drain(),
	}
}

func NewWishlistRes(s *usecase.Session) *WishlistRes {
	return &WishlistRes{
		Items:         s.Wishlist.Items(),
		Notifications: s.Notifications.Drain(),
	}
}

func NewFilterRes(s *usecase.Session) *FilterRes {
	return &FilterRes{
		Filter:        s.Filter.Snapshot(),
		Notifications: s.Notifications.Drain(),
	}
}
