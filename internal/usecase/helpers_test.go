package usecase

import (
	"context"
	"errors"
	"sync"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/shopspring/decimal"
)

type memStorage struct {
	mu     sync.Mutex
	data   map[string][]byte
	getErr error
	setErr error
	delErr error
	// failKey ломает запись одного ключа; SetMany с ним не пишет ничего.
	failKey string
	gets    int
	sets    int
}

func newMemStorage() *memStorage {
	return &memStorage{data: make(map[string][]byte)}
}

func (m *memStorage) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.gets++
	if m.getErr != nil {
		return nil, m.getErr
	}
	v, ok := m.data[key]
	if !ok {
		return nil, e.ErrStorageKeyNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *memStorage) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sets++
	if m.setErr != nil {
		return m.setErr
	}
	if m.failKey != "" && key == m.failKey {
		return errors.New("write rejected: " + key)
	}
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *memStorage) SetMany(ctx context.Context, entries map[string][]byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.setErr != nil {
		return m.setErr
	}
	if _, ok := entries[m.failKey]; ok && m.failKey != "" {
		return errors.New("write rejected: " + m.failKey)
	}
	for k, v := range entries {
		m.data[k] = append([]byte(nil), v...)
	}
	return nil
}

func (m *memStorage) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.delErr != nil {
		return m.delErr
	}
	delete(m.data, key)
	return nil
}

func (m *memStorage) raw(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.data[key]
	return v, ok
}

type staticSeed struct {
	products   []domain.Product
	categories []domain.Category
}

func (s staticSeed) Products() []domain.Product    { return domain.CloneProducts(s.products) }
func (s staticSeed) Categories() []domain.Category { return domain.CloneCategories(s.categories) }

func testSeed() staticSeed {
	onSale := true
	original := decimal.RequireFromString("39.99")

	return staticSeed{
		products: []domain.Product{
			{ID: 1, Name: "Slim-Fit T-Shirt", Description: "Soft cotton tee", Price: decimal.RequireFromString("29.99"), OriginalPrice: &original, OnSale: &onSale, Category: "clothing", Details: []string{"cotton"}},
			{ID: 2, Name: "Wireless Headphones", Description: "Noise cancelling", Price: decimal.RequireFromString("89.99"), Category: "electronics", Details: []string{}},
			{ID: 3, Name: "Desk Lamp", Description: "LED lamp for the office", Price: decimal.RequireFromString("49.50"), Category: "homegoods", Details: []string{}},
		},
		categories: []domain.Category{
			{ID: "clothing", Name: "Clothing"},
			{ID: "electronics", Name: "Electronics"},
			{ID: "homegoods", Name: "Home Goods"},
		},
	}
}

type recordingNotifier struct {
	mu  sync.Mutex
	got []Notification
}

func (r *recordingNotifier) Notify(level NotificationLevel, message string) {
	r.mu.Lock()
	r.got = append(r.got, Notification{Level: level, Message: message})
	r.mu.Unlock()
}

func (r *recordingNotifier) all() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]Notification(nil), r.got...)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []*CatalogChangeEvent
	err    error
}

func (r *recordingPublisher) PublishCatalogChange(_ context.Context, event *CatalogChangeEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, event)
	return r.err
}

type fakeHandoff struct {
	err    error
	orders []*domain.Order
}

func (f *fakeHandoff) Handoff(_ context.Context, order *domain.Order) error {
	f.orders = append(f.orders, order)
	return f.err
}

func product(id int64, name string, price string) domain.Product {
	return domain.Product{ID: id, Name: name, Price: decimal.RequireFromString(price), Category: "electronics"}
}
