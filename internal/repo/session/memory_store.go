package session

import (
	"context"
	"sync"
)

// MemoryStore implements Store in process memory. Values do not survive restarts.
type MemoryStore struct {
	values map[string]string
	m      sync.RWMutex
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

// Get implements Store.Get.
func (s *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	s.m.RLock()
	defer s.m.RUnlock()

	value, ok := s.values[key]

	return value, ok, nil
}

// Set implements Store.Set.
func (s *MemoryStore) Set(_ context.Context, key, value string) error {
	s.m.Lock()
	defer s.m.Unlock()

	s.values[key] = value

	return nil
}

// Remove implements Store.Remove.
func (s *MemoryStore) Remove(_ context.Context, key string) error {
	s.m.Lock()
	defer s.m.Unlock()

	delete(s.values, key)

	return nil
}

// Close implements Store.Close.
func (s *MemoryStore) Close() error {
	return nil
}
