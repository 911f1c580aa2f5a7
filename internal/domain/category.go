package domain

import (
	"slices"
	"strings"
)

// AllCategories — значение фильтра категорий, означающее отсутствие ограничения.
const AllCategories = "all"

// Category описывает категорию продукта
type Category struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

func NewCategory(id string, name string) *Category {
	return &Category{
		ID:   NormalizeCategoryID(id),
		Name: strings.TrimSpace(name),
	}
}

// NormalizeCategoryID приводит идентификатор категории к нижнему регистру.
func NormalizeCategoryID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// CloneCategories возвращает копию последовательности категорий.
func CloneCategories(categories []Category) []Category {
	return slices.Clone(categories)
}
