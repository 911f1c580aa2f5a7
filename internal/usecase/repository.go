package usecase

import (
	"context"
)

// KVStorage — долговременное хранилище: одно неверсионированное пространство ключей.
// Get возвращает e.ErrStorageKeyNotFound, если ключ отсутствует.
type KVStorage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// SetMany записывает несколько ключей; бэкенды, которые это умеют, делают запись атомарной.
	SetMany(ctx context.Context, entries map[string][]byte) error
	Delete(ctx context.Context, key string) error
}
