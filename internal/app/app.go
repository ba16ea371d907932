// Package app wires configuration, storage and the task list together.
// Commands and the TUI consume App instead of cherry-picking dependencies.
package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/colonyops/todos/internal/core/config"
	"github.com/colonyops/todos/internal/core/kv"
	"github.com/colonyops/todos/internal/data/db"
	"github.com/colonyops/todos/internal/data/stores"
	"github.com/colonyops/todos/internal/store/jsonfile"
	"github.com/colonyops/todos/internal/store/memory"
	"github.com/colonyops/todos/internal/tasklist"
	"github.com/rs/zerolog"
)

// App is the central entry point for task operations.
type App struct {
	Tasks  *tasklist.Store
	Config *config.Config
	KV     kv.KV

	closers []func() error
}

// Open selects the storage backend named by cfg.Storage.Backend, then loads
// the task list from it.
func Open(ctx context.Context, cfg *config.Config, log zerolog.Logger, opts ...tasklist.Option) (*App, error) {
	a := &App{Config: cfg}

	store, err := a.openStore(ctx, log)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	a.KV = store

	opts = append([]tasklist.Option{tasklist.WithKey(cfg.Storage.Key)}, opts...)
	tasks, err := tasklist.New(ctx, store, log, opts...)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	a.Tasks = tasks

	return a, nil
}

func (a *App) openStore(ctx context.Context, log zerolog.Logger) (kv.KV, error) {
	cfg := a.Config
	log = log.With().Str("component", "storage").Str("backend", string(cfg.Storage.Backend)).Logger()

	switch cfg.Storage.Backend {
	case config.BackendMemory:
		log.Debug().Msg("using in-memory storage")
		return memory.New(), nil

	case config.BackendFile:
		log.Debug().Str("path", cfg.StoragePath()).Msg("using JSON file storage")
		return jsonfile.New(cfg.StoragePath()), nil

	case config.BackendSQLite:
		database, err := openDatabase(cfg, log)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, database.Close)

		store := stores.NewKVStore(database)
		if err := stores.MigrateFromJSON(ctx, store, cfg.StoragePath()); err != nil {
			return nil, fmt.Errorf("migrate from JSON: %w", err)
		}
		return store, nil

	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

// openDatabase opens the SQLite database, moving a corrupted file aside and
// retrying once.
func openDatabase(cfg *config.Config, log zerolog.Logger) (*db.DB, error) {
	opts := db.OpenOptions{
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
		BusyTimeout:  cfg.Database.BusyTimeout,
	}

	database, err := db.Open(cfg.DataDir, opts)
	if err == nil {
		log.Debug().Str("path", filepath.Join(cfg.DataDir, db.FileName)).Msg("opened sqlite storage")
		return database, nil
	}
	if !stores.IsCorruptionError(err) {
		return nil, fmt.Errorf("open database: %w", err)
	}

	backup, rerr := stores.RecoverFromCorruption(cfg.DataDir)
	if rerr != nil {
		return nil, errors.Join(fmt.Errorf("open database: %w", err), rerr)
	}
	log.Warn().Err(err).Str("backup", backup).Msg("database was corrupted, starting fresh")

	database, err = db.Open(cfg.DataDir, opts)
	if err != nil {
		return nil, fmt.Errorf("open database after recovery: %w", err)
	}
	return database, nil
}

// Close releases backend resources.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}
