package doctor

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/todos/internal/core/config"
	"github.com/colonyops/todos/internal/store/memory"
)

type staticCheck struct {
	name  string
	items []CheckItem
}

func (s staticCheck) Name() string { return s.name }

func (s staticCheck) Run(context.Context, bool) Result {
	return Result{Items: s.items}
}

func TestRunAll_FillsNamesAndKeepsOrder(t *testing.T) {
	results := RunAll(context.Background(), []Check{
		staticCheck{name: "first", items: []CheckItem{{Label: "a", Status: StatusPass}}},
		staticCheck{name: "second", items: []CheckItem{{Label: "b", Status: StatusFail, Fixable: true}}},
	}, false)

	require.Len(t, results, 2)
	assert.Equal(t, "first", results[0].Name)
	assert.Equal(t, "second", results[1].Name)
}

func TestSummaryAndCountFixable(t *testing.T) {
	results := []Result{
		{Items: []CheckItem{
			{Status: StatusPass, Fixable: true},
			{Status: StatusWarn, Fixable: true},
			{Status: StatusWarn},
		}},
		{Items: []CheckItem{{Status: StatusFail, Fixable: true}}},
	}

	passed, warned, failed := Summary(results)
	assert.Equal(t, 1, passed)
	assert.Equal(t, 2, warned)
	assert.Equal(t, 1, failed)
	assert.Equal(t, 2, CountFixable(results))
}

func TestConfigCheck(t *testing.T) {
	t.Run("missing file uses defaults", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.DataDir = t.TempDir()

		result := ConfigCheck{Config: &cfg, ConfigPath: filepath.Join(t.TempDir(), "config.yaml")}.Run(context.Background(), false)

		require.NotEmpty(t, result.Items)
		for _, item := range result.Items {
			assert.Equal(t, StatusPass, item.Status, item.Label)
		}
	})

	t.Run("invalid value fails", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.DataDir = t.TempDir()
		cfg.Display.DateLayout = "static text"

		result := ConfigCheck{Config: &cfg}.Run(context.Background(), false)

		_, _, failed := Summary([]Result{result})
		assert.Equal(t, 1, failed)
	})

	t.Run("memory backend warns", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.DataDir = t.TempDir()
		cfg.Storage.Backend = config.BackendMemory

		result := ConfigCheck{Config: &cfg}.Run(context.Background(), false)

		_, warned, _ := Summary([]Result{result})
		assert.Equal(t, 1, warned)
	})
}

func TestDataDirCheck(t *testing.T) {
	t.Run("writable", func(t *testing.T) {
		result := DataDirCheck{Dir: t.TempDir()}.Run(context.Background(), false)
		require.Len(t, result.Items, 1)
		assert.Equal(t, StatusPass, result.Items[0].Status)
	})

	t.Run("missing is fixable", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "data")

		result := DataDirCheck{Dir: dir}.Run(context.Background(), false)
		require.Len(t, result.Items, 1)
		assert.Equal(t, StatusWarn, result.Items[0].Status)
		assert.True(t, result.Items[0].Fixable)

		result = DataDirCheck{Dir: dir}.Run(context.Background(), true)
		assert.Equal(t, StatusPass, result.Items[0].Status)
		assert.DirExists(t, dir)
	})

	t.Run("file is not a directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "file")
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

		result := DataDirCheck{Dir: path}.Run(context.Background(), true)
		assert.Equal(t, StatusFail, result.Items[0].Status)
	})
}

func TestStorageCheck(t *testing.T) {
	ctx := context.Background()
	now := func() time.Time { return time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC) }

	t.Run("nothing saved", func(t *testing.T) {
		result := StorageCheck{Backend: config.BackendMemory, KV: memory.New(), Key: "todos"}.Run(ctx, false)

		_, warned, failed := Summary([]Result{result})
		assert.Zero(t, warned)
		assert.Zero(t, failed)
	})

	t.Run("counts tasks and unloadable records", func(t *testing.T) {
		store := memory.New()
		require.NoError(t, store.Set(ctx, "todos",
			`[{"id":"a","text":"one"},{"id":"a","text":"dup"},{"id":"","text":"blank"}]`))

		result := StorageCheck{Backend: config.BackendMemory, KV: store, Key: "todos"}.Run(ctx, false)

		require.Len(t, result.Items, 3)
		assert.Equal(t, "3 task(s)", result.Items[1].Detail)
		assert.Equal(t, StatusWarn, result.Items[2].Status)
		assert.Contains(t, result.Items[2].Detail, "2 record(s)")
	})

	t.Run("malformed payload", func(t *testing.T) {
		store := memory.New()
		require.NoError(t, store.Set(ctx, "todos", "{not json"))

		check := StorageCheck{Backend: config.BackendMemory, KV: store, Key: "todos", Now: now}
		result := check.Run(ctx, false)
		assert.Equal(t, 1, CountFixable([]Result{result}))

		result = check.Run(ctx, true)
		_, _, failed := Summary([]Result{result})
		assert.Zero(t, failed)

		has, err := store.Has(ctx, "todos")
		require.NoError(t, err)
		assert.False(t, has)

		backup, err := store.Get(ctx, "todos.malformed-20240610T090000")
		require.NoError(t, err)
		assert.Equal(t, "{not json", backup)
	})
}

func TestLogFileCheck(t *testing.T) {
	dir := t.TempDir()

	result := LogFileCheck{Path: filepath.Join(dir, "todos.log")}.Run(context.Background(), false)
	assert.Equal(t, StatusPass, result.Items[0].Status)

	result = LogFileCheck{Path: filepath.Join(dir, "missing", "todos.log")}.Run(context.Background(), false)
	assert.Equal(t, StatusWarn, result.Items[0].Status)
}
