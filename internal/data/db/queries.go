package db

import (
	"context"
	"database/sql"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// New returns queries bound to db.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// Queries holds the SQL statements used by the stores.
type Queries struct {
	db DBTX
}

// WithTx returns a copy of q bound to tx.
func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

// KvStore is a row of the kv_store table.
type KvStore struct {
	Key       string
	Value     string
	CreatedAt int64
	UpdatedAt int64
}

const kvGet = `SELECT key, value, created_at, updated_at FROM kv_store WHERE key = ?`

// KVGet returns sql.ErrNoRows when the key is absent.
func (q *Queries) KVGet(ctx context.Context, key string) (KvStore, error) {
	var row KvStore
	err := q.db.QueryRowContext(ctx, kvGet, key).Scan(&row.Key, &row.Value, &row.CreatedAt, &row.UpdatedAt)
	return row, err
}

const kvSet = `INSERT INTO kv_store (key, value, created_at, updated_at)
VALUES (?, ?, ?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

// KVSetParams are the arguments to KVSet.
type KVSetParams struct {
	Key       string
	Value     string
	CreatedAt int64
	UpdatedAt int64
}

// KVSet inserts or replaces a value, keeping the original created_at.
func (q *Queries) KVSet(ctx context.Context, arg KVSetParams) error {
	_, err := q.db.ExecContext(ctx, kvSet, arg.Key, arg.Value, arg.CreatedAt, arg.UpdatedAt)
	return err
}

const kvDelete = `DELETE FROM kv_store WHERE key = ?`

func (q *Queries) KVDelete(ctx context.Context, key string) error {
	_, err := q.db.ExecContext(ctx, kvDelete, key)
	return err
}

const kvHas = `SELECT COUNT(*) FROM kv_store WHERE key = ?`

func (q *Queries) KVHas(ctx context.Context, key string) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, kvHas, key).Scan(&count)
	return count, err
}

const kvListKeys = `SELECT key FROM kv_store ORDER BY key`

func (q *Queries) KVListKeys(ctx context.Context) ([]string, error) {
	rows, err := q.db.QueryContext(ctx, kvListKeys)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}
