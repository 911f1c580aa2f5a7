package redis

import (
	"context"
	"errors"

	"github.com/DRSN-tech/storefront/internal/cfg"
	"github.com/DRSN-tech/storefront/pkg/clients"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/jimlawless/whereami"
	goredis "github.com/redis/go-redis/v9"
)

// StorageRepo реализует долговременное хранилище каталога поверх Redis.
// Каждый ключ каталога хранится строкой без TTL.
type StorageRepo struct {
	client *clients.RedisClient
	cfg    *cfg.RedisCfg
}

func NewStorageRepo(client *clients.RedisClient, cfg *cfg.RedisCfg) *StorageRepo {
	return &StorageRepo{
		client: client,
		cfg:    cfg,
	}
}

func (r *StorageRepo) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, e.ErrStorageKeyNotFound
	}
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return data, nil
}

func (r *StorageRepo) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.Client.Set(ctx, r.key(key), value, 0).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// SetMany записывает ключи в одной транзакции MULTI/EXEC.
func (r *StorageRepo) SetMany(ctx context.Context, entries map[string][]byte) error {
	_, err := r.client.Client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		for key, value := range entries {
			pipe.Set(ctx, r.key(key), value, 0)
		}
		return nil
	})
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func (r *StorageRepo) Delete(ctx context.Context, key string) error {
	if err := r.client.Client.Del(ctx, r.key(key)).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// key добавляет к ключу каталога префикс из конфигурации
func (r *StorageRepo) key(key string) string {
	return r.cfg.KeyPrefix + key
}
