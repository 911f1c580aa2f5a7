// Package seed содержит встроенный каталог по умолчанию.
package seed

import (
	_ "embed"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/pkg/e"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Catalog — неизменяемый набор продуктов и категорий по умолчанию.
type Catalog struct {
	products   []domain.Product
	categories []domain.Category
}

type catalogFile struct {
	Categories []domain.Category `yaml:"categories"`
	Products   []domain.Product  `yaml:"products"`
}

// Load разбирает встроенный каталог.
func Load() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Parse разбирает каталог в формате YAML.
func Parse(data []byte) (*Catalog, error) {
	const op = "seed.Parse"

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, e.Wrap(op, err)
	}

	for i := range file.Categories {
		file.Categories[i] = *domain.NewCategory(file.Categories[i].ID, file.Categories[i].Name)
	}
	for i := range file.Products {
		if file.Products[i].Details == nil {
			file.Products[i].Details = []string{}
		}
	}

	return &Catalog{
		products:   file.Products,
		categories: file.Categories,
	}, nil
}

// Products возвращает копию продуктов по умолчанию.
func (c *Catalog) Products() []domain.Product {
	return domain.CloneProducts(c.products)
}

// Categories возвращает копию категорий по умолчанию.
func (c *Catalog) Categories() []domain.Category {
	return domain.CloneCategories(c.categories)
}
