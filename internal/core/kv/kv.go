// Package kv defines the key-value storage collaborator used for persistence.
package kv

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned by Get when a key does not exist.
	ErrNotFound = errors.New("kv: key not found")
	// ErrMalformed is returned when a stored value cannot be decoded.
	ErrMalformed = errors.New("kv: malformed value")
)

// KV is the interface for a persistent key-value store over string keys and
// string values. Implementations must be safe to call sequentially from a
// single goroutine; backends in this module also tolerate concurrent use.
type KV interface {
	// Get returns the value stored for key. Returns an error wrapping
	// ErrNotFound if the key does not exist.
	Get(ctx context.Context, key string) (string, error)
	// Set stores value under key, replacing any existing value.
	Set(ctx context.Context, key string, value string) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Has returns whether key exists.
	Has(ctx context.Context, key string) (bool, error)
	// ListKeys returns all keys in sorted order.
	ListKeys(ctx context.Context) ([]string, error)
}
