package memory

import (
	"sync"

	"github.com/yndnr/rudis-go/internal/core/domain"
)

// FieldValue is one hash field assignment.
type FieldValue struct {
	Field string
	Value string
}

// HashStore maps keys to field→value maps.
type HashStore struct {
	mu    sync.Mutex
	items map[string]map[string]string
}

// NewHashStore creates an empty hash store.
func NewHashStore() *HashStore {
	return &HashStore{items: make(map[string]map[string]string)}
}

// Set writes every pair into the hash at key, creating it if needed.
// Pairs are applied in order, so a later pair wins over an earlier one for
// the same field.
func (s *HashStore) Set(key string, pairs ...FieldValue) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.items[key]
	if !ok {
		h = make(map[string]string, len(pairs))
		s.items[key] = h
	}
	for _, p := range pairs {
		h[p.Field] = p.Value
	}
}

// Get returns one field of the hash at key.
func (s *HashStore) Get(key, field string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.items[key]
	if !ok {
		return "", domain.ErrKeyNotFound
	}
	v, ok := h[field]
	if !ok {
		return "", domain.ErrFieldNotFound
	}
	return v, nil
}

// Delete removes one field and returns its value. The hash itself stays
// present even when its last field is removed.
func (s *HashStore) Delete(key, field string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.items[key]
	if !ok {
		return "", domain.ErrKeyNotFound
	}
	v, ok := h[field]
	if !ok {
		return "", domain.ErrFieldNotFound
	}
	delete(h, field)
	return v, nil
}

// GetAll returns a copy of every field of the hash at key, in no
// particular order. A missing key yields an empty result.
func (s *HashStore) GetAll(key string) []FieldValue {
	s.mu.Lock()
	defer s.mu.Unlock()

	h := s.items[key]
	out := make([]FieldValue, 0, len(h))
	for f, v := range h {
		out = append(out, FieldValue{Field: f, Value: v})
	}
	return out
}

// Exists reports whether the hash key is present (possibly empty).
func (s *HashStore) Exists(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.items[key]
	return ok
}

// Len returns the number of hash keys.
func (s *HashStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
