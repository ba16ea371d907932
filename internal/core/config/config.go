// Package config handles configuration loading and validation for todos.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/colonyops/todos/internal/core/styles"
	"github.com/hay-kot/criterio"
	"gopkg.in/yaml.v3"
)

// Backend names a storage implementation.
type Backend string

const (
	BackendFile   Backend = "file"
	BackendSQLite Backend = "sqlite"
	BackendMemory Backend = "memory"
)

// Backends lists every supported storage backend.
var Backends = []Backend{BackendFile, BackendSQLite, BackendMemory}

// IsValid reports whether b is a supported backend.
func (b Backend) IsValid() bool {
	return slices.Contains(Backends, b)
}

// Config holds the application configuration.
type Config struct {
	Storage  StorageConfig  `yaml:"storage"`
	Display  DisplayConfig  `yaml:"display"`
	Database DatabaseConfig `yaml:"database"`
	DataDir  string         `yaml:"-"` // set by caller, not from config file
}

// StorageConfig selects where tasks are persisted.
type StorageConfig struct {
	Backend Backend `yaml:"backend"`
	Key     string  `yaml:"key"`  // key the task list is stored under
	File    string  `yaml:"file"` // JSON file name inside DataDir for the file backend
}

// DisplayConfig controls how tasks are rendered.
type DisplayConfig struct {
	DateLayout string `yaml:"date_layout"` // Go time layout for due dates beyond tomorrow
	Emoji      *bool  `yaml:"emoji"`
	Theme      string `yaml:"theme"` // one of styles.ThemeNames()
}

// ShowEmoji reports whether the due-date emoji is rendered. Defaults to true.
func (d DisplayConfig) ShowEmoji() bool {
	return d.Emoji == nil || *d.Emoji
}

// DatabaseConfig tunes the SQLite backend.
type DatabaseConfig struct {
	MaxOpenConns int `yaml:"max_open_conns"`
	MaxIdleConns int `yaml:"max_idle_conns"`
	BusyTimeout  int `yaml:"busy_timeout"` // milliseconds
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Storage: StorageConfig{
			Backend: BackendFile,
			Key:     "todos",
			File:    "todos.json",
		},
		Display: DisplayConfig{
			DateLayout: "Mon, Jan 2",
			Theme:      styles.DefaultTheme,
		},
		Database: DatabaseConfig{
			MaxOpenConns: 4,
			MaxIdleConns: 2,
			BusyTimeout:  5000,
		},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.DataDir = dataDir
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Storage.Backend == "" {
		c.Storage.Backend = defaults.Storage.Backend
	}
	if c.Storage.Key == "" {
		c.Storage.Key = defaults.Storage.Key
	}
	if c.Storage.File == "" {
		c.Storage.File = defaults.Storage.File
	}
	if c.Display.DateLayout == "" {
		c.Display.DateLayout = defaults.Display.DateLayout
	}
	if c.Display.Theme == "" {
		c.Display.Theme = defaults.Display.Theme
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = defaults.Database.MaxOpenConns
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = defaults.Database.MaxIdleConns
	}
	if c.Database.BusyTimeout == 0 {
		c.Database.BusyTimeout = defaults.Database.BusyTimeout
	}
}

// StoragePath returns the absolute path of the JSON file used by the file backend.
func (c *Config) StoragePath() string {
	if filepath.IsAbs(c.Storage.File) {
		return c.Storage.File
	}
	return filepath.Join(c.DataDir, c.Storage.File)
}

// Validate checks that the configuration is structurally valid.
func (c *Config) Validate() error {
	var errs criterio.FieldErrorsBuilder

	if c.DataDir == "" {
		errs = errs.Append("data_dir", errors.New("data directory cannot be empty"))
	}
	if !c.Storage.Backend.IsValid() {
		errs = errs.Append("storage.backend", fmt.Errorf("unknown backend %q (want file, sqlite or memory)", c.Storage.Backend))
	}
	if c.Storage.Key == "" {
		errs = errs.Append("storage.key", errors.New("cannot be empty"))
	}
	if _, ok := styles.GetPalette(c.Display.Theme); !ok {
		errs = errs.Append("display.theme", fmt.Errorf("unknown theme %q, available: %v", c.Display.Theme, styles.ThemeNames()))
	}
	if c.Database.MaxOpenConns < 1 {
		errs = errs.Append("database.max_open_conns", errors.New("must be at least 1"))
	}
	if c.Database.MaxIdleConns < 0 {
		errs = errs.Append("database.max_idle_conns", errors.New("cannot be negative"))
	}
	if c.Database.BusyTimeout < 0 {
		errs = errs.Append("database.busy_timeout", errors.New("cannot be negative"))
	}

	return errs.ToError()
}
