package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
)

// CatalogStore отдаёт каталог из кэша процесса, долговременного хранилища или seed-данных.
// Чтения никогда не завершаются ошибкой: при сбое хранилища возвращаются данные по умолчанию.
type CatalogStore struct {
	storage   KVStorage
	seed      CatalogSeed
	publisher CatalogEventPublisher
	logger    logger.Logger
	timeout   time.Duration
	now       func() time.Time

	mu         sync.RWMutex
	products   []domain.Product
	categories []domain.Category
}

func NewCatalogStore(
	storage KVStorage,
	seed CatalogSeed,
	publisher CatalogEventPublisher,
	logger logger.Logger,
	timeout time.Duration,
) *CatalogStore {
	if storage == nil || seed == nil || logger == nil {
		panic("usecase.NewCatalogStore: nil dependency")
	}
	if publisher == nil {
		publisher = NopCatalogEventPublisher
	}

	return &CatalogStore{
		storage:   storage,
		seed:      seed,
		publisher: publisher,
		logger:    logger,
		timeout:   timeout,
		now:       time.Now,
	}
}

// GetProducts возвращает копию последовательности продуктов.
func (s *CatalogStore) GetProducts(ctx context.Context) []domain.Product {
	const op = "CatalogStore.GetProducts"

	s.mu.RLock()
	if s.products != nil {
		out := domain.CloneProducts(s.products)
		s.mu.RUnlock()
		return out
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.products != nil {
		return domain.CloneProducts(s.products)
	}

	products, err := readEntities[domain.Product](ctx, s, ProductsKey)
	switch {
	case err == nil && products != nil:
		s.products = products
	case err == nil || errors.Is(err, e.ErrStorageKeyNotFound):
		s.products = emptyIfNil(domain.CloneProducts(s.seed.Products()))
		s.persist(ctx, op, ProductsKey, s.products)
	default:
		s.logger.Errorf(e.Wrap(op, err), "Failed to read products, falling back to defaults")
		return emptyIfNil(domain.CloneProducts(s.seed.Products()))
	}

	return domain.CloneProducts(s.products)
}

// SaveProducts заменяет продукты в кэше и затем в хранилище.
// Ошибка записи только логируется: кэш при этом уже обновлён.
func (s *CatalogStore) SaveProducts(ctx context.Context, products []domain.Product) {
	const op = "CatalogStore.SaveProducts"

	s.mu.Lock()
	defer s.mu.Unlock()

	s.products = emptyIfNil(domain.CloneProducts(products))
	if s.persist(ctx, op, ProductsKey, s.products) {
		s.publish(ctx, op, EntityProducts, len(s.products))
	}
}

// GetCategories возвращает копию последовательности категорий.
func (s *CatalogStore) GetCategories(ctx context.Context) []domain.Category {
	const op = "CatalogStore.GetCategories"

	s.mu.RLock()
	if s.categories != nil {
		out := domain.CloneCategories(s.categories)
		s.mu.RUnlock()
		return out
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.categories != nil {
		return domain.CloneCategories(s.categories)
	}

	categories, err := readEntities[domain.Category](ctx, s, CategoriesKey)
	switch {
	case err == nil && categories != nil:
		s.categories = categories
	case err == nil || errors.Is(err, e.ErrStorageKeyNotFound):
		s.categories = emptyIfNil(domain.CloneCategories(s.seed.Categories()))
		s.persist(ctx, op, CategoriesKey, s.categories)
	default:
		s.logger.Errorf(e.Wrap(op, err), "Failed to read categories, falling back to defaults")
		return emptyIfNil(domain.CloneCategories(s.seed.Categories()))
	}

	return domain.CloneCategories(s.categories)
}

// SaveCategories заменяет категории в кэше и затем в хранилище.
func (s *CatalogStore) SaveCategories(ctx context.Context, categories []domain.Category) {
	const op = "CatalogStore.SaveCategories"

	s.mu.Lock()
	defer s.mu.Unlock()

	s.categories = emptyIfNil(domain.CloneCategories(categories))
	if s.persist(ctx, op, CategoriesKey, s.categories) {
		s.publish(ctx, op, EntityCategories, len(s.categories))
	}
}

// SaveCatalog записывает продукты и категории одной многоключевой записью.
func (s *CatalogStore) SaveCatalog(ctx context.Context, products []domain.Product, categories []domain.Category) error {
	const op = "CatalogStore.SaveCatalog"

	products = emptyIfNil(domain.CloneProducts(products))
	categories = emptyIfNil(domain.CloneCategories(categories))

	productsData, err := json.Marshal(products)
	if err != nil {
		return e.Wrap(op, err)
	}
	categoriesData, err := json.Marshal(categories)
	if err != nil {
		return e.Wrap(op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tctx, cancel := s.withTimeout(ctx)
	defer cancel()

	err = s.storage.SetMany(tctx, map[string][]byte{
		ProductsKey:   productsData,
		CategoriesKey: categoriesData,
	})
	if err != nil {
		return e.Wrap(op, err)
	}

	s.products = products
	s.categories = categories
	s.publish(ctx, op, EntityProducts, len(products))
	s.publish(ctx, op, EntityCategories, len(categories))
	return nil
}

// ClearCache сбрасывает обе закэшированные последовательности.
func (s *CatalogStore) ClearCache() {
	s.mu.Lock()
	s.products = nil
	s.categories = nil
	s.mu.Unlock()
}

// IsStorageAvailable проверяет хранилище записью и удалением пробного ключа.
func (s *CatalogStore) IsStorageAvailable(ctx context.Context) bool {
	const op = "CatalogStore.IsStorageAvailable"

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.storage.Set(ctx, checkKey, []byte(checkKey)); err != nil {
		s.logger.Warnf("Storage is unavailable: %v", e.Wrap(op, err))
		return false
	}
	if err := s.storage.Delete(ctx, checkKey); err != nil {
		s.logger.Warnf("Storage is unavailable: %v", e.Wrap(op, err))
		return false
	}

	return true
}

// persist вызывается под блокировкой. Возвращает true, если запись прошла успешно.
func (s *CatalogStore) persist(ctx context.Context, op string, key string, value any) bool {
	data, err := json.Marshal(value)
	if err != nil {
		s.logger.Errorf(e.Wrap(op, err), "Failed to encode %s", key)
		return false
	}

	tctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.storage.Set(tctx, key, data); err != nil {
		s.logger.Errorf(e.Wrap(op, err), "Failed to write %s, cache and storage diverged", key)
		return false
	}

	return true
}

func (s *CatalogStore) publish(ctx context.Context, op string, entity string, count int) {
	event := NewCatalogChangeEvent(entity, count, s.now().UTC())
	if err := s.publisher.PublishCatalogChange(ctx, event); err != nil {
		s.logger.Warnf("Failed to publish catalog change: %v", e.Wrap(op, err))
	}
}

// withTimeout ограничивает одну операцию с хранилищем.
func (s *CatalogStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}

func readEntities[T any](ctx context.Context, s *CatalogStore, key string) ([]T, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	data, err := s.storage.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	var out []T
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, e.Wrap("decode "+key, err)
	}

	return out, nil
}

func emptyIfNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
