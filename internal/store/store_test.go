package store

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

type testDoc struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestFileStore_LoadMissing(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "missing.json"), 0644)

	var doc testDoc
	if err := s.Load(&doc); err != ErrNotExist {
		t.Fatalf("Expected ErrNotExist, got: %v", err)
	}
}

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	s := NewFileStore(path, 0644)

	if err := s.Save(testDoc{Name: "registry", Count: 3}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	var doc testDoc
	if err := s.Load(&doc); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if doc.Name != "registry" || doc.Count != 3 {
		t.Errorf("Unexpected document: %+v", doc)
	}
}

func TestFileStore_SaveReplacesAtomically(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.json")
	s := NewFileStore(path, 0644)

	if err := s.Save(testDoc{Name: "first"}); err != nil {
		t.Fatalf("First save failed: %v", err)
	}
	if err := s.Save(testDoc{Name: "second"}); err != nil {
		t.Fatalf("Second save failed: %v", err)
	}

	var doc testDoc
	if err := s.Load(&doc); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if doc.Name != "second" {
		t.Errorf("Expected second document, got: %+v", doc)
	}

	// No temp files left behind.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("Expected only the document file, found %d entries", len(entries))
	}
}

func TestFileStore_SecretMode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file modes are not meaningful on Windows")
	}

	path := filepath.Join(t.TempDir(), "secret.json")
	s := NewFileStore(path, 0600)

	if err := s.Save(testDoc{Name: "secret"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("Expected 0600 permissions, got: %v", info.Mode().Perm())
	}
}

func TestMemStore_RoundTrip(t *testing.T) {
	s := NewMemStore()

	var doc testDoc
	if err := s.Load(&doc); err != ErrNotExist {
		t.Fatalf("Expected ErrNotExist on empty store, got: %v", err)
	}

	if err := s.Save(testDoc{Name: "mem", Count: 1}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := s.Load(&doc); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if doc.Name != "mem" || doc.Count != 1 {
		t.Errorf("Unexpected document: %+v", doc)
	}
}
