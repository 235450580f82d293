package storage

import (
	"errors"
	"fmt"
	"os"

	"github.com/northpower/dailysched/internal/codec"
)

// JSONStore is a MemoryStore backed by a schedules envelope on disk. The CLI
// loads it at the start of a command and saves it after a mutation; the TUI
// only touches disk on explicit import and export.
type JSONStore struct {
	*MemoryStore
	path string
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{
		MemoryStore: NewMemoryStore(),
		path:        path,
	}
}

func (s *JSONStore) Path() string {
	return s.path
}

// Load merges the envelope at the store's path into memory. A missing file
// leaves the store empty.
func (s *JSONStore) Load() error {
	if _, err := os.Stat(s.path); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	records, err := codec.ImportFile(s.path)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", s.path, err)
	}
	s.ReplaceAll(records)
	return nil
}

// Save writes every record back to the store's path and returns the size of
// the written file.
func (s *JSONStore) Save() (int, error) {
	n, err := codec.ExportFile(s.path, s)
	if err != nil {
		return 0, fmt.Errorf("failed to save %s: %w", s.path, err)
	}
	return n, nil
}
