// Package settings persists user answers between launcher runs as a flat
// YAML document under the data directory.
package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

// FileName is the settings file created inside the data directory.
const FileName = "config.yml"

// Store is a lazily loaded key/value document. The file is read on first
// access and created empty if it does not exist yet. Every Set rewrites it.
type Store struct {
	path   string
	mu     sync.Mutex
	values map[string]string
}

// Open returns a Store backed by the file at path. Nothing is read until
// the first Get, Set or Keys call.
func Open(path string) *Store {
	return &Store{path: path}
}

// OpenDir returns a Store backed by FileName inside dir.
func OpenDir(dir string) *Store {
	return Open(filepath.Join(dir, FileName))
}

// Path returns the backing file.
func (s *Store) Path() string {
	return s.path
}

// Get returns the value stored under key.
func (s *Store) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(); err != nil {
		return "", false, err
	}
	v, ok := s.values[key]
	return v, ok, nil
}

// Set stores value under key and writes the document back to disk.
func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(); err != nil {
		return err
	}
	s.values[key] = value
	return s.save()
}

// Keys returns the stored keys in sorted order.
func (s *Store) Keys() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(); err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *Store) load() error {
	if s.values != nil {
		return nil
	}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.values = make(map[string]string)
		return s.save()
	}
	if err != nil {
		return fmt.Errorf("failed to read settings '%s': %w", s.path, err)
	}

	values := make(map[string]string)
	if err := yaml.Unmarshal(data, &values); err != nil {
		return fmt.Errorf("failed to parse settings '%s': %w", s.path, err)
	}
	s.values = values
	return nil
}

func (s *Store) save() error {
	data, err := yaml.Marshal(s.values)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write settings '%s': %w", s.path, err)
	}
	return nil
}
