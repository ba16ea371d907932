package kv

import (
	"context"
	"encoding/json"
	"fmt"
)

// TypedKV provides type-safe JSON access to a KV store for a specific type T.
type TypedKV[T any] struct {
	store  KV
	prefix string
}

// Typed returns a TypedKV[T] that uses keys as given.
func Typed[T any](store KV) *TypedKV[T] {
	return &TypedKV[T]{store: store}
}

// Scoped returns a TypedKV[T] that prefixes all keys with "namespace:".
func Scoped[T any](store KV, namespace string) *TypedKV[T] {
	return &TypedKV[T]{
		store:  store,
		prefix: namespace + ":",
	}
}

// Get retrieves and decodes a value by key. A value that is not valid JSON
// for T yields an error wrapping ErrMalformed.
func (t *TypedKV[T]) Get(ctx context.Context, key string) (T, error) {
	var v T
	raw, err := t.store.Get(ctx, t.prefix+key)
	if err != nil {
		return v, err
	}
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		var zero T
		return zero, fmt.Errorf("%w: key %q: %w", ErrMalformed, t.prefix+key, err)
	}
	return v, nil
}

// Set encodes and stores a value.
func (t *TypedKV[T]) Set(ctx context.Context, key string, value T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("kv set %q marshal: %w", t.prefix+key, err)
	}
	return t.store.Set(ctx, t.prefix+key, string(data))
}

// Delete removes a key.
func (t *TypedKV[T]) Delete(ctx context.Context, key string) error {
	return t.store.Delete(ctx, t.prefix+key)
}

// Has returns whether a key exists.
func (t *TypedKV[T]) Has(ctx context.Context, key string) (bool, error) {
	return t.store.Has(ctx, t.prefix+key)
}
