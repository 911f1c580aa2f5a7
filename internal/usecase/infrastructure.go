package usecase

import (
	"context"

	"github.com/DRSN-tech/storefront/internal/domain"
)

// CatalogSeed — статический каталог по умолчанию, которым заполняется пустое хранилище.
type CatalogSeed interface {
	Products() []domain.Product
	Categories() []domain.Category
}

// CatalogEventPublisher публикует события изменения каталога. Ошибки только логируются.
type CatalogEventPublisher interface {
	PublishCatalogChange(ctx context.Context, event *CatalogChangeEvent) error
}

// OrderHandoff передаёт заказ во внешний канал (ссылка мессенджера, брокер).
// Ответ не ожидается: успешный вызов означает только, что заказ отправлен.
type OrderHandoff interface {
	Handoff(ctx context.Context, order *domain.Order) error
}

type nopPublisher struct{}

func (nopPublisher) PublishCatalogChange(context.Context, *CatalogChangeEvent) error { return nil }

// NopCatalogEventPublisher используется, когда брокер не настроен.
var NopCatalogEventPublisher CatalogEventPublisher = nopPublisher{}
