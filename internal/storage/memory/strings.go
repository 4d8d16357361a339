package memory

import (
	"sync"

	"github.com/yndnr/rudis-go/internal/core/domain"
)

// StringStore maps keys to single text values.
type StringStore struct {
	mu    sync.Mutex
	items map[string]string
}

// NewStringStore creates an empty string store.
func NewStringStore() *StringStore {
	return &StringStore{items: make(map[string]string)}
}

// Set stores value under key, replacing any previous value.
func (s *StringStore) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = value
}

// Get returns the value stored under key.
func (s *StringStore) Get(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.items[key]
	if !ok {
		return "", domain.ErrKeyNotFound
	}
	return v, nil
}

// Delete removes key and returns the value it held.
func (s *StringStore) Delete(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.items[key]
	if !ok {
		return "", domain.ErrKeyNotFound
	}
	delete(s.items, key)
	return v, nil
}

// Len returns the number of keys.
func (s *StringStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
