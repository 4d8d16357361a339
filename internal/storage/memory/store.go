package memory

// DefaultBitmapCapacity is the number of bits preallocated for every bitmap.
const DefaultBitmapCapacity = 1024

// KeyType names the store a key lives in.
type KeyType string

// Key types, one per store.
const (
	TypeString    KeyType = "string"
	TypeHash      KeyType = "hash"
	TypeList      KeyType = "list"
	TypeSet       KeyType = "set"
	TypeSortedSet KeyType = "zset"
	TypeBitmap    KeyType = "bitmap"
)

// KeyTypes lists every KeyType in a stable order.
var KeyTypes = []KeyType{TypeString, TypeHash, TypeList, TypeSet, TypeSortedSet, TypeBitmap}

// Store is the container of all type stores.
//
// Each store has its own lock and its own key space: the same key text may
// exist in several stores at once and they never consult each other.
type Store struct {
	Strings    *StringStore
	Hashes     *HashStore
	Lists      *ListStore
	Sets       *SetStore
	SortedSets *SortedSetStore
	Bitmaps    *BitmapStore

	bitmapCapacity uint
}

// Option configures the Store.
type Option func(*Store)

// WithBitmapCapacity sets the fixed capacity, in bits, of every bitmap.
// Zero keeps the default.
func WithBitmapCapacity(bits uint) Option {
	return func(s *Store) {
		if bits > 0 {
			s.bitmapCapacity = bits
		}
	}
}

// New creates an empty store container.
func New(opts ...Option) *Store {
	s := &Store{
		bitmapCapacity: DefaultBitmapCapacity,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.Strings = NewStringStore()
	s.Hashes = NewHashStore()
	s.Lists = NewListStore()
	s.Sets = NewSetStore()
	s.SortedSets = NewSortedSetStore()
	s.Bitmaps = NewBitmapStore(s.bitmapCapacity)

	return s
}

// KeyCounts returns the number of keys held by each store.
// Each store is counted under its own lock, so the result is not a
// point-in-time snapshot across stores.
func (s *Store) KeyCounts() map[KeyType]int {
	return map[KeyType]int{
		TypeString:    s.Strings.Len(),
		TypeHash:      s.Hashes.Len(),
		TypeList:      s.Lists.Len(),
		TypeSet:       s.Sets.Len(),
		TypeSortedSet: s.SortedSets.Len(),
		TypeBitmap:    s.Bitmaps.Len(),
	}
}

// wholeRange reports whether (start, stop) is the literal (0, -1) pair that
// selects an entire list or sorted set.
func wholeRange(start, stop int) bool {
	return start == 0 && stop == -1
}
