package store

import (
	"encoding/json"
	"sync"
)

// MemStore is an in-memory Store for tests.
type MemStore struct {
	mu   sync.Mutex
	data []byte
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{}
}

func (s *MemStore) Load(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		return ErrNotExist
	}
	return json.Unmarshal(s.data, v)
}

func (s *MemStore) Save(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
	return nil
}

// Bytes returns the raw persisted document, or nil if nothing was saved.
// Tests use this to assert what actually hit "disk".
func (s *MemStore) Bytes() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data
}
