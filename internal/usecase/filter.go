package usecase

import (
	"strings"
	"sync"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/shopspring/decimal"
)

// FilterState хранит последние выставленные значения фильтра витрины.
type FilterState struct {
	mu     sync.RWMutex
	filter domain.Filter
}

func NewFilterState() *FilterState {
	return &FilterState{filter: domain.DefaultFilter()}
}

func (f *FilterState) SetSearchQuery(query string) {
	f.mu.Lock()
	f.filter.SearchQuery = query
	f.mu.Unlock()
}

func (f *FilterState) SetCategory(category string) {
	f.mu.Lock()
	f.filter.Category = category
	f.mu.Unlock()
}

func (f *FilterState) SetPriceRange(minPrice, maxPrice decimal.Decimal) {
	f.mu.Lock()
	f.filter.PriceRange = domain.PriceRange{Min: minPrice, Max: maxPrice}
	f.mu.Unlock()
}

// Set заменяет фильтр целиком.
func (f *FilterState) Set(filter domain.Filter) {
	f.mu.Lock()
	f.filter = filter
	f.mu.Unlock()
}

func (f *FilterState) Snapshot() domain.Filter {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return f.filter
}

// Reset возвращает значения по умолчанию.
func (f *FilterState) Reset() {
	f.Set(domain.DefaultFilter())
}

// FilterProducts оставляет продукты, которые проходят все три условия:
// подстрока поиска в имени или описании без учёта регистра,
// совпадение категории (кроме "all" и пустой) и цена в диапазоне включительно.
func FilterProducts(products []domain.Product, filter domain.Filter) []domain.Product {
	query := strings.ToLower(filter.SearchQuery)
	out := make([]domain.Product, 0, len(products))

	for _, p := range products {
		if query != "" &&
			!strings.Contains(strings.ToLower(p.Name), query) &&
			!strings.Contains(strings.ToLower(p.Description), query) {
			continue
		}
		if filter.Category != "" && filter.Category != domain.AllCategories && p.Category != filter.Category {
			continue
		}
		if !filter.PriceRange.Contains(p.Price) {
			continue
		}
		out = append(out, p)
	}

	return out
}
