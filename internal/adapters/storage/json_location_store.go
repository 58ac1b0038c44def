package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"travel-time-service/internal/domain"
)

// JSONLocationStore keeps the last saved locations in a single JSON file.
// Writes go to a temp file in the same directory and are renamed into place.
type JSONLocationStore struct {
	path string
	mu   sync.Mutex
}

func NewJSONLocationStore(path string) *JSONLocationStore {
	return &JSONLocationStore{path: path}
}

// Load returns nil, nil when no document has been saved.
func (s *JSONLocationStore) Load(ctx context.Context) (*domain.Locations, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load locations: read %q: %w", s.path, err)
	}

	var locs domain.Locations
	if err := json.Unmarshal(b, &locs); err != nil {
		return nil, fmt.Errorf("load locations: parse json: %w", err)
	}

	return &locs, nil
}

// Save overwrites the document.
func (s *JSONLocationStore) Save(ctx context.Context, locs domain.Locations) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("save locations: create dir %q: %w", dir, err)
	}

	b, err := json.MarshalIndent(locs, "", "  ")
	if err != nil {
		return fmt.Errorf("save locations: encode: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".locations-*.json")
	if err != nil {
		return fmt.Errorf("save locations: create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("save locations: write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save locations: close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("save locations: rename into %q: %w", s.path, err)
	}

	return nil
}
