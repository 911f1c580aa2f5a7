package domain

import (
	"maps"
	"slices"

	"github.com/shopspring/decimal"
)

// Review описывает отзыв покупателя о продукте
type Review struct {
	UserName string  `json:"userName" yaml:"userName"`
	Rating   float64 `json:"rating" yaml:"rating"`
	Date     string  `json:"date" yaml:"date"`
	Comment  string  `json:"comment" yaml:"comment"`
}

// Product описывает продукт витрины.
// Если OnSale выставлен, OriginalPrice должна быть не меньше Price, но это не проверяется.
type Product struct {
	ID             int64             `json:"id" yaml:"id"`
	Name           string            `json:"name" yaml:"name"`
	Description    string            `json:"description" yaml:"description"`
	Price          decimal.Decimal   `json:"price" yaml:"price"`
	OriginalPrice  *decimal.Decimal  `json:"originalPrice,omitempty" yaml:"originalPrice,omitempty"`
	OnSale         *bool             `json:"onSale,omitempty" yaml:"onSale,omitempty"`
	Image          string            `json:"image" yaml:"image"`
	Category       string            `json:"category" yaml:"category"`
	Rating         float64           `json:"rating" yaml:"rating"`
	Reviews        int               `json:"reviews" yaml:"reviews"`
	ReviewList     []Review          `json:"reviewList,omitempty" yaml:"reviewList,omitempty"`
	Details        []string          `json:"details" yaml:"details"`
	Specifications map[string]string `json:"specifications,omitempty" yaml:"specifications,omitempty"`
	Quantity       *int              `json:"quantity,omitempty" yaml:"quantity,omitempty"`
}

// IsOnSale сообщает, отмечен ли продукт как участвующий в акции.
func (p *Product) IsOnSale() bool {
	return p.OnSale != nil && *p.OnSale
}

// Clone возвращает глубокую копию продукта.
func (p Product) Clone() Product {
	out := p
	if p.OriginalPrice != nil {
		price := *p.OriginalPrice
		out.OriginalPrice = &price
	}
	if p.OnSale != nil {
		onSale := *p.OnSale
		out.OnSale = &onSale
	}
	if p.Quantity != nil {
		qty := *p.Quantity
		out.Quantity = &qty
	}
	out.ReviewList = slices.Clone(p.ReviewList)
	out.Details = slices.Clone(p.Details)
	out.Specifications = maps.Clone(p.Specifications)
	return out
}

// CloneProducts возвращает глубокую копию последовательности продуктов.
func CloneProducts(products []Product) []Product {
	if products == nil {
		return nil
	}

	out := make([]Product, len(products))
	for i, p := range products {
		out[i] = p.Clone()
	}
	return out
}
