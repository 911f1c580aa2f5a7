package memory

import (
	"context"
	"sync"

	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/jimlawless/whereami"
)

// StorageRepo — хранилище ключ-значение в памяти процесса.
// Данные теряются при перезапуске.
type StorageRepo struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewStorageRepo() *StorageRepo {
	return &StorageRepo{data: make(map[string][]byte)}
}

func (r *StorageRepo) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	value, ok := r.data[key]
	if !ok {
		return nil, e.ErrStorageKeyNotFound
	}
	return clone(value), nil
}

func (r *StorageRepo) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	r.mu.Lock()
	r.data[key] = clone(value)
	r.mu.Unlock()
	return nil
}

// SetMany записывает все ключи под одной блокировкой.
func (r *StorageRepo) SetMany(ctx context.Context, entries map[string][]byte) error {
	if err := ctx.Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	r.mu.Lock()
	for key, value := range entries {
		r.data[key] = clone(value)
	}
	r.mu.Unlock()
	return nil
}

func (r *StorageRepo) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	r.mu.Lock()
	delete(r.data, key)
	r.mu.Unlock()
	return nil
}

func clone(b []byte) []byte {
	return append([]byte(nil), b...)
}
