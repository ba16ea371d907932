package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hay-kot/criterio"
)

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// ValidateDeep performs comprehensive validation of the configuration including
// file accessibility and the display date layout. The configPath argument
// specifies the config file location to validate (empty string skips config file check).
// This calls Validate() first for basic structural validation, then adds I/O checks.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("data_dir", c.DataDir, isDirectoryOrNotExist),
		c.validateStorageFile(),
		criterio.Run("display.date_layout", c.Display.DateLayout, validateDateLayout),
	)
}

// Warnings returns non-fatal configuration issues.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	if c.Storage.Backend == BackendMemory {
		warnings = append(warnings, ValidationWarning{
			Category: "Storage",
			Item:     "storage.backend",
			Message:  "memory backend does not persist tasks between runs",
		})
	}
	if c.Storage.Backend != BackendFile && c.Storage.File != DefaultConfig().Storage.File {
		warnings = append(warnings, ValidationWarning{
			Category: "Storage",
			Item:     "storage.file",
			Message:  fmt.Sprintf("ignored by the %s backend", c.Storage.Backend),
		})
	}

	return warnings
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

func (c *Config) validateStorageFile() error {
	if c.Storage.Backend != BackendFile {
		return nil
	}

	path := c.StoragePath()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return criterio.Run("storage.file", filepath.Dir(path), isDirectoryOrNotExist)
	}
	if err != nil {
		return criterio.NewFieldErrors("storage.file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("storage.file", fmt.Errorf("%s is a directory, not a file", path))
	}
	return nil
}

func isDirectoryOrNotExist(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil // will be created
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return errors.New("exists but is not a directory")
	}
	return nil
}

// validateDateLayout rejects layouts that render every date the same way,
// such as a layout with no date verbs at all.
func validateDateLayout(layout string) error {
	a := time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC)
	b := time.Date(2025, time.March, 4, 0, 0, 0, 0, time.UTC)
	if a.Format(layout) == b.Format(layout) {
		return fmt.Errorf("layout %q does not include any date components", layout)
	}
	return nil
}
