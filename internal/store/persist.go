package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/conorfennell/wrongbook/internal/domain"
)

// readFile decodes the data file. A missing file is an empty collection.
func (s *Store) readFile() ([]domain.Entry, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read data file %s: %w", s.path, err)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, &CorruptStateError{Path: s.path, Err: errors.New("expected a JSON array of entries")}
	}

	var entries []domain.Entry
	if err := json.Unmarshal(trimmed, &entries); err != nil {
		return nil, &CorruptStateError{Path: s.path, Err: err}
	}
	for i, e := range entries {
		if err := s.validate.Struct(e); err != nil {
			return nil, &CorruptStateError{Path: s.path, Err: fmt.Errorf("entry %d: %w", i, err)}
		}
	}
	return entries, nil
}

// save rewrites the whole collection through a temporary file and an
// atomic rename, so a crash never leaves a truncated data file behind.
func (s *Store) save() error {
	entries := s.entries
	if entries == nil {
		entries = []domain.Entry{}
	}
	payload, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode entries: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	tmpPath := s.path + ".tmp"
	file, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("failed to write data file %s: %w", s.path, err)
	}
	_, writeErr := file.Write(payload)
	syncErr := file.Sync()
	closeErr := file.Close()
	if err := errors.Join(writeErr, syncErr, closeErr); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write data file %s: %w", s.path, err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to replace data file %s: %w", s.path, err)
	}
	return nil
}
