// Package storage persists small pieces of client state (bearer tokens)
// between runs. It is the durable-storage analogue of the browser's
// localStorage: a flat string-to-string map stored as one JSON file
// under the configured state directory.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Well-known keys. The names are part of the persisted format.
const (
	KeyPatientToken = "token"
	KeyDoctorToken  = "dToken"
)

const stateFile = "state.json"

// Store is a file-backed string keystore. Reads and writes are
// synchronous; every mutation rewrites the whole file.
type Store struct {
	mu   sync.Mutex
	path string
	data map[string]string
}

// Open loads (or initializes) the state file under dir. A missing file
// yields an empty store; a corrupt file is an error so that tokens are
// never silently discarded.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}

	s := &Store{
		path: filepath.Join(dir, stateFile),
		data: make(map[string]string),
	}

	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read state file: %w", err)
	}
	if err := json.Unmarshal(raw, &s.data); err != nil {
		return nil, fmt.Errorf("decode state file %s: %w", s.path, err)
	}
	return s, nil
}

// Get returns the stored value for key, or "" if absent.
func (s *Store) Get(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data[key]
}

// Set stores value under key and flushes to disk. Setting "" removes
// the key, matching localStorage.removeItem semantics for logout.
func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if value == "" {
		delete(s.data, key)
	} else {
		s.data[key] = value
	}
	return s.flushLocked()
}

// Remove deletes key and flushes to disk.
func (s *Store) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return s.flushLocked()
}

func (s *Store) flushLocked() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	// Tokens are credentials; keep the file owner-only.
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	return nil
}
