// Package kvtest provides a shared contract test suite for kv.KV backends.
package kvtest

import (
	"context"
	"testing"

	"github.com/colonyops/todos/internal/core/kv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Run exercises the kv.KV contract against stores produced by newStore.
// Each subtest gets a fresh store.
func Run(t *testing.T, newStore func(t *testing.T) kv.KV) {
	t.Helper()
	ctx := context.Background()

	t.Run("set and get", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.Set(ctx, "key", `{"a":1}`))

		got, err := store.Get(ctx, "key")
		require.NoError(t, err)
		assert.Equal(t, `{"a":1}`, got)
	})

	t.Run("get missing", func(t *testing.T) {
		store := newStore(t)
		_, err := store.Get(ctx, "missing")
		assert.ErrorIs(t, err, kv.ErrNotFound)
	})

	t.Run("overwrite", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.Set(ctx, "key", "first"))
		require.NoError(t, store.Set(ctx, "key", "second"))

		got, err := store.Get(ctx, "key")
		require.NoError(t, err)
		assert.Equal(t, "second", got)
	})

	t.Run("empty value is stored", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.Set(ctx, "key", ""))

		has, err := store.Has(ctx, "key")
		require.NoError(t, err)
		assert.True(t, has)
	})

	t.Run("delete", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.Set(ctx, "key", "value"))
		require.NoError(t, store.Delete(ctx, "key"))

		has, err := store.Has(ctx, "key")
		require.NoError(t, err)
		assert.False(t, has)

		// Deleting again is a no-op.
		require.NoError(t, store.Delete(ctx, "key"))
	})

	t.Run("list keys sorted", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.Set(ctx, "beta", "2"))
		require.NoError(t, store.Set(ctx, "alpha", "1"))
		require.NoError(t, store.Set(ctx, "gamma", "3"))

		keys, err := store.ListKeys(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"alpha", "beta", "gamma"}, keys)
	})
}
