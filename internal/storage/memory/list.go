package memory

import (
	"sync"

	"github.com/yndnr/rudis-go/internal/core/domain"
)

// ListStore maps keys to ordered sequences of text values.
type ListStore struct {
	mu    sync.Mutex
	items map[string][]string
}

// NewListStore creates an empty list store.
func NewListStore() *ListStore {
	return &ListStore{items: make(map[string][]string)}
}

// PushFront inserts values at the front of the list, one at a time in
// argument order, so the last value ends up first. Returns the new length.
func (s *ListStore) PushFront(key string, values ...string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	old := s.items[key]
	l := make([]string, len(values), len(values)+len(old))
	for i, v := range values {
		l[len(values)-1-i] = v
	}
	l = append(l, old...)
	s.items[key] = l
	return len(l)
}

// PushBack appends values to the end of the list in argument order.
// Returns the new length.
func (s *ListStore) PushBack(key string, values ...string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.items[key]
	if !ok {
		l = make([]string, 0, len(values))
	}
	l = append(l, values...)
	s.items[key] = l
	return len(l)
}

// PopFront removes and returns the first element.
func (s *ListStore) PopFront(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.items[key]
	if !ok {
		return "", domain.ErrKeyNotFound
	}
	if len(l) == 0 {
		return "", domain.ErrListEmpty
	}
	v := l[0]
	l[0] = ""
	s.items[key] = l[1:]
	return v, nil
}

// PopBack removes and returns the last element.
func (s *ListStore) PopBack(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.items[key]
	if !ok {
		return "", domain.ErrKeyNotFound
	}
	if len(l) == 0 {
		return "", domain.ErrListEmpty
	}
	n := len(l) - 1
	v := l[n]
	l[n] = ""
	s.items[key] = l[:n]
	return v, nil
}

// Range returns a copy of the elements at inclusive positions
// [start, stop]. The pair (0, -1) selects the whole list; any other
// negative position is not resolved from the end and never matches.
// A missing key yields nil.
func (s *ListStore) Range(key string, start, stop int) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	l := s.items[key]
	if wholeRange(start, stop) {
		stop = len(l) - 1
	}

	lo := max(start, 0)
	hi := min(stop, len(l)-1)
	if lo > hi {
		return nil
	}

	out := make([]string, hi-lo+1)
	copy(out, l[lo:hi+1])
	return out
}

// Len returns the number of list keys.
func (s *ListStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
