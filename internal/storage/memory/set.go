package memory

import (
	"slices"
	"sync"

	"github.com/yndnr/rudis-go/internal/core/domain"
)

// SetStore maps keys to unordered collections of unique members.
type SetStore struct {
	mu    sync.Mutex
	items map[string]map[string]struct{}
}

// NewSetStore creates an empty set store.
func NewSetStore() *SetStore {
	return &SetStore{items: make(map[string]map[string]struct{})}
}

// Add inserts members into the set at key, creating it if needed.
// Returns how many members were not already present.
func (s *SetStore) Add(key string, members ...string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, ok := s.items[key]
	if !ok {
		set = make(map[string]struct{}, len(members))
		s.items[key] = set
	}

	added := 0
	for _, m := range members {
		if _, dup := set[m]; !dup {
			set[m] = struct{}{}
			added++
		}
	}
	return added
}

// Remove deletes members from the set at key and returns how many were
// actually present. The set stays present even when emptied.
func (s *SetStore) Remove(key string, members ...string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, ok := s.items[key]
	if !ok {
		return 0, domain.ErrKeyNotFound
	}

	removed := 0
	for _, m := range members {
		if _, present := set[m]; present {
			delete(set, m)
			removed++
		}
	}
	return removed, nil
}

// IsMember reports whether member is in the set at key.
func (s *SetStore) IsMember(key, member string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.items[key][member]
	return ok
}

// Members returns the members of the set at key in lexicographic order.
// A missing key yields nil.
func (s *SetStore) Members(key string) []string {
	s.mu.Lock()
	set := s.items[key]
	out := make([]string, 0, len(set))
	for m := range set {
		out = append(out, m)
	}
	s.mu.Unlock()

	slices.Sort(out)
	return out
}

// Len returns the number of set keys.
func (s *SetStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
