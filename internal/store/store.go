// Package store persists the full event collection as a single JSON file.
//
// There is no locking and writes are not atomic: the store is meant for a
// single-user, single-process tool, and concurrent load-modify-save cycles
// can lose updates (last writer wins).
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"calkeep/internal/domain"
)

type Store struct {
	Path string
}

func New(path string) *Store {
	return &Store{Path: path}
}

// document is the on-disk shape: one object with an "events" sequence.
type document struct {
	Events []domain.Event `json:"events"`
}

// Load reads the full collection, creating the backing file (and its parent
// directories) with an empty collection if it does not exist yet.
func (s *Store) Load() ([]domain.Event, error) {
	if s.Path == "" {
		return nil, fmt.Errorf("store path is required")
	}
	if err := s.ensure(); err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read events file: %w", err)
	}
	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse events file %s: %w", s.Path, err)
	}
	return doc.Events, nil
}

// Save serializes the full collection, overwriting the file in place.
func (s *Store) Save(events []domain.Event) error {
	if s.Path == "" {
		return fmt.Errorf("store path is required")
	}
	if dir := filepath.Dir(s.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create events dir: %w", err)
		}
	}
	if events == nil {
		events = []domain.Event{}
	}
	raw, err := json.MarshalIndent(document{Events: events}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal events: %w", err)
	}
	if err := os.WriteFile(s.Path, append(raw, '\n'), 0o600); err != nil {
		return fmt.Errorf("write events file: %w", err)
	}
	return nil
}

func (s *Store) ensure() error {
	if _, err := os.Stat(s.Path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat events file: %w", err)
	}
	return s.Save(nil)
}
