package storage

import (
	"errors"
	"sync"
)

var errWriteFailed = errors.New("storage: write failed")

// MemoryStore is an in-memory KeyValueStore. It backs tests and serves as
// the degraded mode when durable storage cannot be opened; identity and
// usage tracked through it do not survive the process.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string][]byte

	// FailWrites makes Set return an error, for storage-failure tests.
	FailWrites bool
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string][]byte)}
}

func (s *MemoryStore) Get(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.entries[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	cp := make([]byte, len(value))
	copy(cp, value)
	return cp, nil
}

func (s *MemoryStore) Set(key string, value []byte) error {
	if s.FailWrites {
		return errWriteFailed
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]byte, len(value))
	copy(cp, value)
	s.entries[key] = cp
	return nil
}

func (s *MemoryStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}
