package pgdb

import (
	"context"
	"errors"

	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/tr"
	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jimlawless/whereami"
)

// DB — пул соединений, умеющий открывать транзакции (*pgxpool.Pool).
type DB interface {
	transaction.Transactional
	querier
}

type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// StorageRepo реализует долговременное хранилище каталога поверх таблицы storage_entries.
type StorageRepo struct {
	db DB
}

func NewStorageRepo(db DB) *StorageRepo {
	return &StorageRepo{db: db}
}

func (r *StorageRepo) Get(ctx context.Context, key string) ([]byte, error) {
	query := `SELECT value FROM storage_entries WHERE key = $1;`

	var value []byte
	err := r.conn(ctx).QueryRow(ctx, query, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, e.ErrStorageKeyNotFound
	}
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return value, nil
}

// Set идемпотентно записывает значение ключа.
func (r *StorageRepo) Set(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO storage_entries(key, value, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now();
	`

	if _, err := r.conn(ctx).Exec(ctx, query, key, value); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// SetMany записывает все ключи в одной транзакции.
func (r *StorageRepo) SetMany(ctx context.Context, entries map[string][]byte) (err error) {
	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, r.db)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	// При ошибке транзакция откатывается
	defer func() {
		if err != nil && tx.IsActive() {
			_ = tx.Rollback(ctx)
		}
	}()

	pgxTx, ok := tx.Transaction().(pgx.Tx)
	if !ok {
		return e.Wrap(whereami.WhereAmI(), e.ErrTransactionNotFound)
	}
	txCtx := tr.WithTx(ctx, pgxTx)

	for key, value := range entries {
		if err = r.Set(txCtx, key, value); err != nil {
			return e.Wrap(whereami.WhereAmI(), err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func (r *StorageRepo) Delete(ctx context.Context, key string) error {
	query := `DELETE FROM storage_entries WHERE key = $1;`

	if _, err := r.conn(ctx).Exec(ctx, query, key); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// conn возвращает транзакцию из контекста, если она есть, иначе пул.
func (r *StorageRepo) conn(ctx context.Context) querier {
	if tx, err := tr.TxFromCtx(ctx); err == nil {
		return tx
	}
	return r.db
}
