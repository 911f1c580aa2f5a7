package usecase

import (
	"testing"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func ids(products []domain.Product) []int64 {
	out := make([]int64, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func TestFilterState_Defaults(t *testing.T) {
	f := NewFilterState()
	snap := f.Snapshot()

	assert.Equal(t, "", snap.SearchQuery)
	assert.Equal(t, domain.AllCategories, snap.Category)
	assert.True(t, snap.PriceRange.Min.Equal(decimal.Zero))
	assert.True(t, snap.PriceRange.Max.Equal(decimal.NewFromInt(1000)))
}

func TestFilterState_SettersAndReset(t *testing.T) {
	f := NewFilterState()

	f.SetSearchQuery("lamp")
	f.SetCategory("homegoods")
	f.SetPriceRange(decimal.NewFromInt(5), decimal.NewFromInt(50))

	snap := f.Snapshot()
	assert.Equal(t, "lamp", snap.SearchQuery)
	assert.Equal(t, "homegoods", snap.Category)
	assert.True(t, snap.PriceRange.Max.Equal(decimal.NewFromInt(50)))

	f.Reset()
	assert.Equal(t, domain.AllCategories, f.Snapshot().Category)
}

func TestFilterProducts(t *testing.T) {
	products := testSeed().Products()

	tests := []struct {
		name   string
		filter func(f *domain.Filter)
		want   []int64
	}{
		{
			name:   "defaults keep everything",
			filter: func(*domain.Filter) {},
			want:   []int64{1, 2, 3},
		},
		{
			name:   "search matches description case-insensitively",
			filter: func(f *domain.Filter) { f.SearchQuery = "OFFICE" },
			want:   []int64{3},
		},
		{
			name:   "search matches name",
			filter: func(f *domain.Filter) { f.SearchQuery = "shirt" },
			want:   []int64{1},
		},
		{
			name:   "category restricts",
			filter: func(f *domain.Filter) { f.Category = "electronics" },
			want:   []int64{2},
		},
		{
			name:   "empty category means all",
			filter: func(f *domain.Filter) { f.Category = "" },
			want:   []int64{1, 2, 3},
		},
		{
			name: "price bounds are inclusive",
			filter: func(f *domain.Filter) {
				f.PriceRange = domain.PriceRange{Min: decimal.RequireFromString("29.99"), Max: decimal.RequireFromString("49.50")}
			},
			want: []int64{1, 3},
		},
		{
			name: "all predicates combine",
			filter: func(f *domain.Filter) {
				f.SearchQuery = "o"
				f.Category = "electronics"
				f.PriceRange = domain.PriceRange{Min: decimal.Zero, Max: decimal.NewFromInt(50)}
			},
			want: []int64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := domain.DefaultFilter()
			tt.filter(&f)
			assert.Equal(t, tt.want, ids(FilterProducts(products, f)))
		})
	}
}
