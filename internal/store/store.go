// Package store provides JSON document persistence for the governance core.
//
// Each component owns exactly one logical store (partner registry, API keys,
// credentials, seed metadata). Persistence is an injected interface so tests
// substitute an in-memory fake, and writes are atomic so a crashed writer
// never truncates a document.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNotExist is returned by Load when the document has never been saved.
// Callers treat this as "start from the default structure".
var ErrNotExist = errors.New("store: document does not exist")

// Store persists a single JSON document.
type Store interface {
	// Load unmarshals the document into v. Returns ErrNotExist if nothing
	// has been saved yet.
	Load(v any) error

	// Save marshals v and persists it, replacing any previous document.
	Save(v any) error
}

// FileStore persists the document to a single file on local disk.
type FileStore struct {
	path string
	mode os.FileMode
}

// NewFileStore creates a store backed by path. The parent directory is
// created on first save. Mode applies to the document file itself; secret
// documents pass 0600.
func NewFileStore(path string, mode os.FileMode) *FileStore {
	return &FileStore{path: path, mode: mode}
}

func (s *FileStore) Load(v any) error {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return ErrNotExist
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", s.path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", s.path, err)
	}
	return nil
}

func (s *FileStore) Save(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	// Write-then-rename so a crash mid-write leaves the old document intact.
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write %s: %w", tmpPath, err)
	}
	if err := tmp.Chmod(s.mode); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to set permissions on %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close %s: %w", tmpPath, err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace %s: %w", s.path, err)
	}
	return nil
}

// Path returns the location of the backing file.
func (s *FileStore) Path() string {
	return s.path
}
