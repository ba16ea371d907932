package stores

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/colonyops/todos/internal/core/kv"
	"github.com/colonyops/todos/internal/store/jsonfile"
	"github.com/rs/zerolog/log"
)

// MigrateFromJSON copies keys from a JSON file store at jsonPath into dst when
// dst does not already hold them, then renames the file to <path>.migrated so
// the import runs once. A missing file is a no-op.
func MigrateFromJSON(ctx context.Context, dst kv.KV, jsonPath string) error {
	if _, err := os.Stat(jsonPath); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	src := jsonfile.New(jsonPath)
	keys, err := src.ListKeys(ctx)
	if err != nil {
		if errors.Is(err, kv.ErrMalformed) {
			log.Warn().Err(err).Str("path", jsonPath).Msg("skipping migration of malformed JSON store")
			return nil
		}
		return fmt.Errorf("list JSON keys: %w", err)
	}

	migrated := 0
	for _, key := range keys {
		exists, err := dst.Has(ctx, key)
		if err != nil {
			return fmt.Errorf("check %q: %w", key, err)
		}
		if exists {
			continue
		}

		value, err := src.Get(ctx, key)
		if err != nil {
			return fmt.Errorf("read %q: %w", key, err)
		}
		if err := dst.Set(ctx, key, value); err != nil {
			return fmt.Errorf("write %q: %w", key, err)
		}
		migrated++
	}

	if err := os.Rename(jsonPath, jsonPath+".migrated"); err != nil {
		return fmt.Errorf("mark JSON store migrated: %w", err)
	}

	log.Info().Int("keys", migrated).Str("path", jsonPath).Msg("migrated JSON store into sqlite")
	return nil
}
