package domain

import "github.com/shopspring/decimal"

// Границы ценового фильтра по умолчанию.
var (
	DefaultMinPrice = decimal.Zero
	DefaultMaxPrice = decimal.NewFromInt(1000)
)

// PriceRange — включающий диапазон цен [Min, Max].
type PriceRange struct {
	Min decimal.Decimal `json:"min"`
	Max decimal.Decimal `json:"max"`
}

// Contains проверяет min <= price <= max.
func (r PriceRange) Contains(price decimal.Decimal) bool {
	return price.GreaterThanOrEqual(r.Min) && price.LessThanOrEqual(r.Max)
}

// Filter — снимок состояния фильтра витрины.
type Filter struct {
	SearchQuery string     `json:"searchQuery"`
	Category    string     `json:"category"`
	PriceRange  PriceRange `json:"priceRange"`
}

// DefaultFilter возвращает фильтр без ограничений: пустой поиск, все категории, [0, 1000].
func DefaultFilter() Filter {
	return Filter{
		SearchQuery: "",
		Category:    AllCategories,
		PriceRange:  PriceRange{Min: DefaultMinPrice, Max: DefaultMaxPrice},
	}
}
