package minio

import (
	"bytes"
	"context"
	"errors"
	"io"
	"time"

	"github.com/DRSN-tech/storefront/internal/cfg"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/jitter"
	"github.com/jimlawless/whereami"
	"github.com/minio/minio-go/v7"
)

const contentTypeJSON = "application/json"

// StorageRepo хранит каждый ключ каталога отдельным объектом в бакете MinIO.
type StorageRepo struct {
	mc     *minio.Client
	cfg    *cfg.MinIOCfg
	policy jitter.Policy
}

func NewStorageRepo(mc *minio.Client, cfg *cfg.MinIOCfg) *StorageRepo {
	return &StorageRepo{
		mc:     mc,
		cfg:    cfg,
		policy: jitter.Policy{Attempts: max(cfg.MaxRetries, 1), Base: 100 * time.Millisecond, Max: 2 * time.Second},
	}
}

func (s *StorageRepo) Get(ctx context.Context, key string) ([]byte, error) {
	var data []byte

	err := jitter.Retry(ctx, s.policy, func(ctx context.Context) error {
		obj, err := s.mc.GetObject(ctx, s.cfg.BucketName, key, minio.GetObjectOptions{})
		if err != nil {
			return err
		}
		defer obj.Close()

		data, err = io.ReadAll(obj)
		if isNotFound(err) {
			return jitter.Permanent(e.ErrStorageKeyNotFound)
		}
		return err
	})
	if err != nil {
		if errors.Is(err, e.ErrStorageKeyNotFound) {
			return nil, err
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return data, nil
}

func (s *StorageRepo) Set(ctx context.Context, key string, value []byte) error {
	err := jitter.Retry(ctx, s.policy, func(ctx context.Context) error {
		_, err := s.mc.PutObject(ctx, s.cfg.BucketName, key, bytes.NewReader(value), int64(len(value)), minio.PutObjectOptions{
			ContentType: contentTypeJSON,
		})
		return err
	})
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// SetMany записывает объекты по одному: MinIO не поддерживает атомарную запись нескольких объектов.
func (s *StorageRepo) SetMany(ctx context.Context, entries map[string][]byte) error {
	for key, value := range entries {
		if err := s.Set(ctx, key, value); err != nil {
			return err
		}
	}

	return nil
}

func (s *StorageRepo) Delete(ctx context.Context, key string) error {
	err := jitter.Retry(ctx, s.policy, func(ctx context.Context) error {
		return s.mc.RemoveObject(ctx, s.cfg.BucketName, key, minio.RemoveObjectOptions{})
	})
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// isNotFound отличает отсутствующий ключ от прочих ошибок S3.
func isNotFound(err error) bool {
	if err == nil {
		return false
	}

	// 404 приходит и на отсутствующий бакет, поэтому смотрим только на код ошибки.
	return minio.ToErrorResponse(err).Code == "NoSuchKey"
}
