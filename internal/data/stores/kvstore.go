// Package stores implements storage contracts on top of the SQLite database.
package stores

import (
	"context"
	"fmt"
	"time"

	"github.com/colonyops/todos/internal/core/kv"
	"github.com/colonyops/todos/internal/data/db"
)

// KVStore implements kv.KV using SQLite.
type KVStore struct {
	db *db.DB
}

var _ kv.KV = (*KVStore)(nil)

// NewKVStore creates a new SQLite-backed KV store.
func NewKVStore(db *db.DB) *KVStore {
	return &KVStore{db: db}
}

// Get retrieves a value by key.
// Returns an error wrapping kv.ErrNotFound if the key does not exist.
func (s *KVStore) Get(ctx context.Context, key string) (string, error) {
	row, err := s.db.Queries().KVGet(ctx, key)
	if IsNotFoundError(err) {
		return "", fmt.Errorf("kv get %q: %w", key, kv.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("kv get %q: %w", key, err)
	}
	return row.Value, nil
}

// Set stores a value, preserving the creation time of an existing key.
func (s *KVStore) Set(ctx context.Context, key string, value string) error {
	now := time.Now().UnixNano()
	if err := s.db.Queries().KVSet(ctx, db.KVSetParams{
		Key:       key,
		Value:     value,
		CreatedAt: now,
		UpdatedAt: now,
	}); err != nil {
		if IsBusyError(err) {
			return fmt.Errorf("kv set %q: database is locked: %w", key, err)
		}
		return fmt.Errorf("kv set %q: %w", key, err)
	}
	return nil
}

// Delete removes a key.
func (s *KVStore) Delete(ctx context.Context, key string) error {
	if err := s.db.Queries().KVDelete(ctx, key); err != nil {
		return fmt.Errorf("kv delete %q: %w", key, err)
	}
	return nil
}

// Has returns whether a key exists.
func (s *KVStore) Has(ctx context.Context, key string) (bool, error) {
	count, err := s.db.Queries().KVHas(ctx, key)
	if err != nil {
		return false, fmt.Errorf("kv has %q: %w", key, err)
	}
	return count > 0, nil
}

// ListKeys returns all keys in sorted order.
func (s *KVStore) ListKeys(ctx context.Context) ([]string, error) {
	keys, err := s.db.Queries().KVListKeys(ctx)
	if err != nil {
		return nil, fmt.Errorf("kv list keys: %w", err)
	}
	if keys == nil {
		keys = []string{}
	}
	return keys, nil
}

// Entry returns the stored row with its timestamps.
func (s *KVStore) Entry(ctx context.Context, key string) (db.KvStore, error) {
	row, err := s.db.Queries().KVGet(ctx, key)
	if IsNotFoundError(err) {
		return db.KvStore{}, fmt.Errorf("kv entry %q: %w", key, kv.ErrNotFound)
	}
	if err != nil {
		return db.KvStore{}, fmt.Errorf("kv entry %q: %w", key, err)
	}
	return row, nil
}
