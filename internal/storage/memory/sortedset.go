package memory

import (
	"sync"

	"github.com/yndnr/rudis-go/internal/core/domain"
)

// SortedSetStore maps keys to RankedIndex values.
//
// One mutex covers the rank index and the score map of every key, so no
// caller can observe one of them updated without the other.
type SortedSetStore struct {
	mu    sync.Mutex
	items map[string]*RankedIndex
}

// NewSortedSetStore creates an empty sorted-set store.
func NewSortedSetStore() *SortedSetStore {
	return &SortedSetStore{items: make(map[string]*RankedIndex)}
}

// Add upserts every pair into the sorted set at key, creating it if
// needed. Pairs are applied in order. Returns how many members were new.
func (s *SortedSetStore) Add(key string, pairs ...ScoredMember) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.items[key]
	if !ok {
		idx = NewRankedIndex()
		s.items[key] = idx
	}

	added := 0
	for _, p := range pairs {
		if idx.Upsert(p.Member, p.Score) {
			added++
		}
	}
	return added
}

// Range returns the pairs at inclusive rank positions [start, stop] in
// ascending (score, member) order. The pair (0, -1) selects every member.
// A missing key yields nil.
func (s *SortedSetStore) Range(key string, start, stop int) []ScoredMember {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.items[key]
	if !ok {
		return nil
	}
	if wholeRange(start, stop) {
		return idx.All()
	}
	return idx.Range(start, stop)
}

// Remove deletes member from the sorted set at key and returns its score.
func (s *SortedSetStore) Remove(key, member string) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.items[key]
	if !ok {
		return 0, domain.ErrKeyNotFound
	}
	score, ok := idx.Remove(member)
	if !ok {
		return 0, domain.ErrMemberNotFound
	}
	return score, nil
}

// Score returns member's score in the sorted set at key.
func (s *SortedSetStore) Score(key, member string) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.items[key]
	if !ok {
		return 0, domain.ErrKeyNotFound
	}
	score, ok := idx.Score(member)
	if !ok {
		return 0, domain.ErrMemberNotFound
	}
	return score, nil
}

// Len returns the number of sorted-set keys.
func (s *SortedSetStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
