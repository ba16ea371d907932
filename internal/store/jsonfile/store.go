// Package jsonfile provides a kv.KV implementation backed by a single JSON file.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/colonyops/todos/internal/core/kv"
)

// File is the root JSON structure stored on disk.
type File struct {
	Items map[string]string `json:"items"`
}

// Store implements kv.KV using a JSON file for persistence. Every call reads
// the file and every write replaces it atomically.
type Store struct {
	path string
	mu   sync.RWMutex
}

var _ kv.KV = (*Store)(nil)

// New creates a new JSON file store at the given path. The file is created
// on first write.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the file backing the store.
func (s *Store) Path() string {
	return s.path
}

// Get returns the value stored for key.
func (s *Store) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	file, err := s.load()
	if err != nil {
		return "", err
	}

	val, ok := file.Items[key]
	if !ok {
		return "", fmt.Errorf("jsonfile get %q: %w", key, kv.ErrNotFound)
	}
	return val, nil
}

// Set stores value under key. If the existing file is malformed it is moved
// aside (see RecoverFromCorruption) and replaced by a file holding only key.
func (s *Store) Set(_ context.Context, key string, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.loadForWrite()
	if err != nil {
		return err
	}

	file.Items[key] = value
	return s.save(file)
}

// Delete removes key.
func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.loadForWrite()
	if err != nil {
		return err
	}

	if _, ok := file.Items[key]; !ok {
		return nil
	}

	delete(file.Items, key)
	return s.save(file)
}

// Has returns whether key exists.
func (s *Store) Has(_ context.Context, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	file, err := s.load()
	if err != nil {
		return false, err
	}

	_, ok := file.Items[key]
	return ok, nil
}

// ListKeys returns all keys in sorted order.
func (s *Store) ListKeys(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	file, err := s.load()
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(file.Items))
	for k := range file.Items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// load reads the file from disk.
// Returns an empty File if the file doesn't exist or is empty.
func (s *Store) load() (File, error) {
	file := File{Items: map[string]string{}}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return file, nil
		}
		return file, fmt.Errorf("read %s: %w", s.path, err)
	}

	if len(data) == 0 {
		return file, nil
	}

	if err := json.Unmarshal(data, &file); err != nil {
		return File{}, fmt.Errorf("%w: %s: %w", kv.ErrMalformed, s.path, err)
	}
	if file.Items == nil {
		file.Items = map[string]string{}
	}

	return file, nil
}

// loadForWrite is load, except a malformed file is backed up and treated as empty.
func (s *Store) loadForWrite() (File, error) {
	file, err := s.load()
	if errors.Is(err, kv.ErrMalformed) {
		if _, rerr := s.RecoverFromCorruption(); rerr != nil {
			return File{}, rerr
		}
		return File{Items: map[string]string{}}, nil
	}
	return file, err
}

// RecoverFromCorruption moves the backing file to "<path>.corrupt.<timestamp>"
// and returns the backup path. A missing file is not an error.
func (s *Store) RecoverFromCorruption() (string, error) {
	backup := fmt.Sprintf("%s.corrupt.%s", s.path, time.Now().Format("20060102-150405"))
	if err := os.Rename(s.path, backup); err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("backup corrupted file: %w", err)
	}
	return backup, nil
}

// save writes the file to disk atomically.
func (s *Store) save(file File) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("write %s: %w", tmp, err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	return nil
}
