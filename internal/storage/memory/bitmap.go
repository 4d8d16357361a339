package memory

import (
	"sync"

	"github.com/bits-and-blooms/bitset"

	"github.com/yndnr/rudis-go/internal/core/domain"
)

// BitmapStore maps keys to fixed-capacity bit arrays.
//
// Every bitmap is allocated with the store's capacity on first write and
// never grows.
type BitmapStore struct {
	mu       sync.Mutex
	capacity uint
	items    map[string]*bitset.BitSet
}

// NewBitmapStore creates an empty bitmap store whose bitmaps hold
// capacity bits.
func NewBitmapStore(capacity uint) *BitmapStore {
	if capacity == 0 {
		capacity = DefaultBitmapCapacity
	}
	return &BitmapStore{
		capacity: capacity,
		items:    make(map[string]*bitset.BitSet),
	}
}

// Capacity returns the number of bits in every bitmap.
func (s *BitmapStore) Capacity() uint {
	return s.capacity
}

func (s *BitmapStore) inRange(offset int) bool {
	return offset >= 0 && uint(offset) < s.capacity
}

// SetBit writes one bit. An out-of-range offset fails without allocating
// the key.
func (s *BitmapStore) SetBit(key string, offset int, on bool) error {
	if !s.inRange(offset) {
		return domain.ErrOffsetOutOfRange
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.items[key]
	if !ok {
		b = bitset.New(s.capacity)
		s.items[key] = b
	}
	b.SetTo(uint(offset), on)
	return nil
}

// GetBit reads one bit. Absent keys and out-of-range offsets read as
// false.
func (s *BitmapStore) GetBit(key string, offset int) bool {
	if !s.inRange(offset) {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.items[key]
	if !ok {
		return false
	}
	return b.Test(uint(offset))
}

// Count returns the number of set bits, zero for an absent key.
func (s *BitmapStore) Count(key string) uint {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.items[key]
	if !ok {
		return 0
	}
	return b.Count()
}

// Len returns the number of bitmap keys.
func (s *BitmapStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
