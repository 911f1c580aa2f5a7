package usecase

import (
	"context"
	"slices"
	"sync"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
)

// CatalogAdmin реализует операции административной панели над каталогом.
// Изменения сериализуются, каждое перезаписывает последовательность целиком.
type CatalogAdmin struct {
	store  *CatalogStore
	seed   CatalogSeed
	logger logger.Logger

	mu sync.Mutex
}

func NewCatalogAdmin(store *CatalogStore, seed CatalogSeed, logger logger.Logger) *CatalogAdmin {
	if store == nil || seed == nil || logger == nil {
		panic("usecase.NewCatalogAdmin: nil dependency")
	}

	return &CatalogAdmin{
		store:  store,
		seed:   seed,
		logger: logger,
	}
}

// Products сбрасывает кэш и перечитывает продукты из хранилища.
func (a *CatalogAdmin) Products(ctx context.Context) []domain.Product {
	a.store.ClearCache()
	return a.store.GetProducts(ctx)
}

// Categories сбрасывает кэш и перечитывает категории из хранилища.
func (a *CatalogAdmin) Categories(ctx context.Context) []domain.Category {
	a.store.ClearCache()
	return a.store.GetCategories(ctx)
}

// AddProduct добавляет продукт с идентификатором max(id)+1, нулевым рейтингом и без отзывов.
func (a *CatalogAdmin) AddProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	const op = "CatalogAdmin.AddProduct"

	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.checkCategory(ctx, p.Category); err != nil {
		return domain.Product{}, e.Wrap(op, err)
	}

	products := a.store.GetProducts(ctx)

	var maxID int64
	for _, existing := range products {
		maxID = max(maxID, existing.ID)
	}

	p = p.Clone()
	p.ID = maxID + 1
	p.Rating = 0
	p.Reviews = 0
	p.ReviewList = nil
	p.Details = []string{}

	a.store.SaveProducts(ctx, append(products, p))
	a.logger.Infof("Product added: id=%d name=%q", p.ID, p.Name)
	return p, nil
}

// UpdateProduct заменяет продукт с тем же идентификатором.
func (a *CatalogAdmin) UpdateProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	const op = "CatalogAdmin.UpdateProduct"

	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.checkCategory(ctx, p.Category); err != nil {
		return domain.Product{}, e.Wrap(op, err)
	}

	products := a.store.GetProducts(ctx)
	idx := slices.IndexFunc(products, func(existing domain.Product) bool { return existing.ID == p.ID })
	if idx < 0 {
		return domain.Product{}, e.Wrap(op, e.ErrProductNotFound)
	}

	products[idx] = p.Clone()
	a.store.SaveProducts(ctx, products)
	return p, nil
}

// DeleteProduct удаляет продукт по идентификатору.
func (a *CatalogAdmin) DeleteProduct(ctx context.Context, id int64) error {
	const op = "CatalogAdmin.DeleteProduct"

	a.mu.Lock()
	defer a.mu.Unlock()

	products := a.store.GetProducts(ctx)
	idx := slices.IndexFunc(products, func(p domain.Product) bool { return p.ID == id })
	if idx < 0 {
		return e.Wrap(op, e.ErrProductNotFound)
	}

	a.store.SaveProducts(ctx, slices.Delete(products, idx, idx+1))
	a.logger.Infof("Product deleted: id=%d", id)
	return nil
}

// AddCategory добавляет категорию. Идентификатор приводится к нижнему регистру.
func (a *CatalogAdmin) AddCategory(ctx context.Context, c domain.Category) (domain.Category, error) {
	const op = "CatalogAdmin.AddCategory"

	c = *domain.NewCategory(c.ID, c.Name)
	if c.ID == "" || c.Name == "" {
		return domain.Category{}, e.Wrap(op, e.ErrMissingFields)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	categories := a.store.GetCategories(ctx)
	if indexCategory(categories, c.ID) >= 0 {
		return domain.Category{}, e.Wrap(op, e.ErrCategoryExists)
	}

	a.store.SaveCategories(ctx, append(categories, c))
	a.logger.Infof("Category added: id=%s", c.ID)
	return c, nil
}

// UpdateCategory заменяет категорию oldID. При смене идентификатора
// продукты, ссылающиеся на oldID, переводятся на новый.
func (a *CatalogAdmin) UpdateCategory(ctx context.Context, oldID string, c domain.Category) (domain.Category, error) {
	const op = "CatalogAdmin.UpdateCategory"

	oldID = domain.NormalizeCategoryID(oldID)
	c = *domain.NewCategory(c.ID, c.Name)
	if c.ID == "" {
		c.ID = oldID
	}
	if c.Name == "" {
		return domain.Category{}, e.Wrap(op, e.ErrMissingFields)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	categories := a.store.GetCategories(ctx)
	idx := indexCategory(categories, oldID)
	if idx < 0 {
		return domain.Category{}, e.Wrap(op, e.ErrCategoryNotFound)
	}
	if c.ID != oldID && indexCategory(categories, c.ID) >= 0 {
		return domain.Category{}, e.Wrap(op, e.ErrCategoryExists)
	}

	categories[idx] = c
	if c.ID == oldID {
		a.store.SaveCategories(ctx, categories)
		return c, nil
	}

	// Продукты и категории пишутся одной операцией, иначе продукты могут
	// сослаться на категорию, которой нет в хранилище.
	products := a.store.GetProducts(ctx)
	moved := 0
	for i := range products {
		if products[i].Category == oldID {
			products[i].Category = c.ID
			moved++
		}
	}
	if err := a.store.SaveCatalog(ctx, products, categories); err != nil {
		return domain.Category{}, e.Wrap(op, err)
	}

	a.logger.Infof("Category %s renamed to %s, moved %d product(s)", oldID, c.ID, moved)
	return c, nil
}

// DeleteCategory удаляет категорию, если на неё не ссылается ни один продукт.
func (a *CatalogAdmin) DeleteCategory(ctx context.Context, id string) error {
	const op = "CatalogAdmin.DeleteCategory"

	id = domain.NormalizeCategoryID(id)

	a.mu.Lock()
	defer a.mu.Unlock()

	categories := a.store.GetCategories(ctx)
	idx := indexCategory(categories, id)
	if idx < 0 {
		return e.Wrap(op, e.ErrCategoryNotFound)
	}

	inUse := 0
	for _, p := range a.store.GetProducts(ctx) {
		if p.Category == id {
			inUse++
		}
	}
	if inUse > 0 {
		return e.Wrap(op, NewCategoryInUseError(id, inUse))
	}

	a.store.SaveCategories(ctx, slices.Delete(categories, idx, idx+1))
	a.logger.Infof("Category deleted: id=%s", id)
	return nil
}

// Stats возвращает сводку по каталогу.
func (a *CatalogAdmin) Stats(ctx context.Context) CatalogStats {
	products := a.store.GetProducts(ctx)

	stats := CatalogStats{
		TotalProducts:   len(products),
		TotalCategories: len(a.store.GetCategories(ctx)),
	}
	for i := range products {
		if products[i].IsOnSale() {
			stats.ProductsOnSale++
		}
	}

	return stats
}

// ResetCatalog перезаписывает каталог данными по умолчанию.
func (a *CatalogAdmin) ResetCatalog(ctx context.Context) error {
	const op = "CatalogAdmin.ResetCatalog"

	a.mu.Lock()
	defer a.mu.Unlock()

	a.store.ClearCache()
	if err := a.store.SaveCatalog(ctx, a.seed.Products(), a.seed.Categories()); err != nil {
		return e.Wrap(op, err)
	}

	a.logger.Infof("Catalog reset to defaults")
	return nil
}

// StorageAvailable сообщает, доступно ли долговременное хранилище.
func (a *CatalogAdmin) StorageAvailable(ctx context.Context) bool {
	return a.store.IsStorageAvailable(ctx)
}

// ClearCache сбрасывает кэш каталога.
func (a *CatalogAdmin) ClearCache() {
	a.store.ClearCache()
}

func (a *CatalogAdmin) checkCategory(ctx context.Context, id string) error {
	if indexCategory(a.store.GetCategories(ctx), id) < 0 {
		return e.ErrCategoryNotFound
	}
	return nil
}

func indexCategory(categories []domain.Category, id string) int {
	return slices.IndexFunc(categories, func(c domain.Category) bool { return c.ID == id })
}
