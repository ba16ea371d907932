package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/colonyops/todos/internal/core/config"
	"github.com/colonyops/todos/internal/data/db"
	"github.com/colonyops/todos/internal/data/stores"
	"github.com/colonyops/todos/internal/store/jsonfile"
	"github.com/colonyops/todos/internal/store/memory"
	"github.com/colonyops/todos/internal/tasklist"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T, backend config.Backend) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()
	cfg.Storage.Backend = backend
	return &cfg
}

func fixedClock() tasklist.Option {
	return tasklist.WithClock(func() time.Time {
		return time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC)
	})
}

func TestOpen_Backends(t *testing.T) {
	tests := []struct {
		backend config.Backend
		persist bool
	}{
		{config.BackendMemory, false},
		{config.BackendFile, true},
		{config.BackendSQLite, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.backend), func(t *testing.T) {
			ctx := t.Context()
			cfg := testConfig(t, tt.backend)

			a, err := Open(ctx, cfg, zerolog.Nop(), fixedClock())
			require.NoError(t, err)

			added, err := a.Tasks.AddTask(ctx, "Water plants", "2024-06-12")
			require.NoError(t, err)
			require.NoError(t, a.Close())

			reopened, err := Open(ctx, cfg, zerolog.Nop(), fixedClock())
			require.NoError(t, err)
			t.Cleanup(func() { _ = reopened.Close() })

			_, found := reopened.Tasks.Get(added.ID)
			assert.Equal(t, tt.persist, found)
		})
	}
}

func TestOpen_BackendTypes(t *testing.T) {
	ctx := t.Context()

	a, err := Open(ctx, testConfig(t, config.BackendMemory), zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, &memory.Store{}, a.KV)

	a, err = Open(ctx, testConfig(t, config.BackendFile), zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, &jsonfile.Store{}, a.KV)

	a, err = Open(ctx, testConfig(t, config.BackendSQLite), zerolog.Nop())
	require.NoError(t, err)
	defer func() { _ = a.Close() }()
	assert.IsType(t, &stores.KVStore{}, a.KV)
}

func TestOpen_UsesConfiguredKey(t *testing.T) {
	ctx := t.Context()
	cfg := testConfig(t, config.BackendFile)
	cfg.Storage.Key = "work"

	a, err := Open(ctx, cfg, zerolog.Nop(), fixedClock())
	require.NoError(t, err)
	_, err = a.Tasks.AddTask(ctx, "Send invoice", "2024-06-11")
	require.NoError(t, err)

	keys, err := a.KV.ListKeys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"work"}, keys)
}

func TestOpen_SQLiteImportsJSONFile(t *testing.T) {
	ctx := t.Context()
	cfg := testConfig(t, config.BackendFile)

	fileApp, err := Open(ctx, cfg, zerolog.Nop(), fixedClock())
	require.NoError(t, err)
	added, err := fileApp.Tasks.AddTask(ctx, "Carry over", "2024-06-11")
	require.NoError(t, err)

	cfg.Storage.Backend = config.BackendSQLite
	sqlApp, err := Open(ctx, cfg, zerolog.Nop(), fixedClock())
	require.NoError(t, err)
	defer func() { _ = sqlApp.Close() }()

	got, ok := sqlApp.Tasks.Get(added.ID)
	require.True(t, ok)
	assert.Equal(t, "Carry over", got.Text)
}

func TestOpen_RecoversCorruptDatabase(t *testing.T) {
	cfg := testConfig(t, config.BackendSQLite)
	dbPath := filepath.Join(cfg.DataDir, db.FileName)
	require.NoError(t, os.WriteFile(dbPath, []byte("this is not a sqlite database, just junk bytes padded out"), 0o644))

	a, err := Open(t.Context(), cfg, zerolog.Nop())
	require.NoError(t, err)
	defer func() { _ = a.Close() }()

	assert.Empty(t, a.Tasks.Tasks())
	backups, err := filepath.Glob(dbPath + ".corrupt.*")
	require.NoError(t, err)
	assert.Len(t, backups, 1)
}
