// Package memory provides an in-process kv.KV implementation.
package memory

import (
	"context"
	"fmt"

	"github.com/colonyops/todos/internal/core/kv"
	"github.com/colonyops/todos/pkg/syncmap"
)

// Store is a thread-safe in-memory kv.KV. Contents are lost when the process exits.
type Store struct {
	data *syncmap.Map[string, string]
}

var _ kv.KV = (*Store)(nil)

// New creates an empty store.
func New() *Store {
	return &Store{data: syncmap.New[string, string]()}
}

// Get retrieves a value by key.
func (s *Store) Get(_ context.Context, key string) (string, error) {
	val, ok := s.data.Get(key)
	if !ok {
		return "", fmt.Errorf("memory get %q: %w", key, kv.ErrNotFound)
	}
	return val, nil
}

// Set stores a value by key.
func (s *Store) Set(_ context.Context, key string, value string) error {
	s.data.Set(key, value)
	return nil
}

// Delete removes a key from the store.
func (s *Store) Delete(_ context.Context, key string) error {
	s.data.Delete(key)
	return nil
}

// Has returns whether a key exists.
func (s *Store) Has(_ context.Context, key string) (bool, error) {
	_, ok := s.data.Get(key)
	return ok, nil
}

// ListKeys returns all keys in sorted order.
func (s *Store) ListKeys(_ context.Context) ([]string, error) {
	return s.data.Keys(), nil
}

// Len returns the number of keys in the store.
func (s *Store) Len() int {
	return s.data.Len()
}
