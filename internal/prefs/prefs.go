package prefs

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// Store persists client-side preferences (currency selection and similar
// flags) to a JSON file, with explicit load and save boundaries. It is
// passed by reference to the services that need it.
type Store struct {
	path   string
	values map[string]string
	mu     sync.RWMutex
}

// NewStore creates a Store backed by the file at path. The file is not
// touched until Load or Set is called.
func NewStore(path string) *Store {
	return &Store{
		path:   path,
		values: make(map[string]string),
	}
}

// Load reads the preference file. A missing file is not an error; the store
// simply starts empty.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read preferences file %s: %w", s.path, err)
	}
	if err := json.Unmarshal(data, &s.values); err != nil {
		return fmt.Errorf("failed to parse preferences file %s: %w", s.path, err)
	}
	return nil
}

// Get returns the stored value for key, if any.
func (s *Store) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[key]
	return value, ok
}

// Set stores the value for key and saves the file immediately.
func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
	return s.save()
}

// Delete removes the value for key and saves the file.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, key)
	return s.save()
}

// save writes the current values to disk. Callers must hold the lock.
func (s *Store) save() error {
	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write preferences file %s: %w", s.path, err)
	}
	return nil
}
