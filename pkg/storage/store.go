// Package storage provides the persistent key-value slot store backing the
// roster and theme preference. Values are raw JSON; the whole store is one
// snapshot file rewritten in full on every write, mirroring the single-writer
// usage model of the application.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Well-known entry keys.
const (
	KeyMembers = "familyMembers"
	KeyTheme   = "themeMode"
)

// Store provides persistence for string-keyed JSON values.
type Store interface {
	// Get retrieves the raw value for a key, reporting whether it exists
	Get(key string) ([]byte, bool)

	// Set stores the raw value for a key and persists the snapshot
	Set(key string, value []byte) error

	// Delete removes a key and persists the snapshot
	Delete(key string) error
}

// FileStore implements Store using a single JSON file.
type FileStore struct {
	path    string
	entries map[string]json.RawMessage
	mu      sync.RWMutex
	version string
}

// NewFileStore creates a new file-based store.
// If path is empty, defaults to ~/.kintrack/roster.json
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		path = filepath.Join(homeDir, ".kintrack", "roster.json")
	}

	store := &FileStore{
		path:    path,
		entries: make(map[string]json.RawMessage),
		version: "1.0",
	}

	store.load()
	return store, nil
}

// load reads the snapshot from disk. A missing file and an unparseable file
// are both treated as "no data": the application starts with an empty store
// and the next write replaces whatever was there.
func (s *FileStore) load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.Open(s.path)
	if err != nil {
		return
	}
	defer file.Close()

	var snapshot struct {
		Version string                     `json:"version"`
		Entries map[string]json.RawMessage `json:"entries"`
	}

	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&snapshot); err != nil {
		return
	}

	if snapshot.Version != "" {
		s.version = snapshot.Version
	}
	if snapshot.Entries != nil {
		s.entries = snapshot.Entries
	}
}

// save writes the full snapshot to disk. Callers must hold s.mu.
func (s *FileStore) save() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create storage directory: %w", err)
	}

	// Write to a temp file then rename so a crash mid-write never leaves a
	// truncated snapshot behind.
	tempPath := s.path + ".tmp"
	file, err := os.Create(tempPath)
	if err != nil {
		return fmt.Errorf("failed to create temp storage file: %w", err)
	}

	snapshot := struct {
		Version string                     `json:"version"`
		Entries map[string]json.RawMessage `json:"entries"`
	}{
		Version: s.version,
		Entries: s.entries,
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(snapshot); err != nil {
		file.Close()
		os.Remove(tempPath)
		return fmt.Errorf("failed to encode storage snapshot: %w", err)
	}

	if err := file.Close(); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tempPath, s.path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	return nil
}

// Get retrieves the raw value for a key.
func (s *FileStore) Get(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, exists := s.entries[key]
	if !exists {
		return nil, false
	}

	// Return a copy to prevent external modification
	valueCopy := make([]byte, len(value))
	copy(valueCopy, value)
	return valueCopy, true
}

// Set stores the raw value for a key and immediately persists the snapshot.
func (s *FileStore) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	valueCopy := make([]byte, len(value))
	copy(valueCopy, value)

	s.entries[key] = valueCopy
	return s.save()
}

// Delete removes a key and persists the snapshot.
func (s *FileStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)
	return s.save()
}

// Path returns the file path of the store.
func (s *FileStore) Path() string {
	return s.path
}

// MemStore is an in-memory Store for tests and for running without a
// persistence path.
type MemStore struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{entries: make(map[string][]byte)}
}

// Get retrieves the raw value for a key.
func (s *MemStore) Get(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, exists := s.entries[key]
	if !exists {
		return nil, false
	}
	valueCopy := make([]byte, len(value))
	copy(valueCopy, value)
	return valueCopy, true
}

// Set stores the raw value for a key.
func (s *MemStore) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	valueCopy := make([]byte, len(value))
	copy(valueCopy, value)
	s.entries[key] = valueCopy
	return nil
}

// Delete removes a key.
func (s *MemStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}
