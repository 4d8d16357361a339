package command

// Kind identifies a supported command.
type Kind uint8

// Supported command kinds.
const (
	// Unknown is the zero Kind; it never matches a handler.
	Unknown Kind = iota

	// String store
	Set
	Get
	Del

	// Hash store
	HSet
	HGet
	HDel
	HGetAll

	// List store
	LPush
	RPush
	LPop
	RPop
	LRange

	// Set store
	SAdd
	SRem
	SIsMember
	SMembers

	// Sorted-set store
	ZAdd
	ZRange
	ZRem
	ZScore

	// Bitmap store
	SetBit
	GetBit
	BitCount

	Help

	numKinds
)

// verbs holds the wire verb of every Kind, indexed by Kind.
var verbs = [numKinds]string{
	Unknown:   "",
	Set:       "set",
	Get:       "get",
	Del:       "del",
	HSet:      "hset",
	HGet:      "hget",
	HDel:      "hdel",
	HGetAll:   "hgetall",
	LPush:     "lpush",
	RPush:     "rpush",
	LPop:      "lpop",
	RPop:      "rpop",
	LRange:    "lrange",
	SAdd:      "sadd",
	SRem:      "srem",
	SIsMember: "sismember",
	SMembers:  "smembers",
	ZAdd:      "zadd",
	ZRange:    "zrange",
	ZRem:      "zrem",
	ZScore:    "zscore",
	SetBit:    "setbit",
	GetBit:    "getbit",
	BitCount:  "bitcount",
	Help:      "help",
}

var byVerb = func() map[string]Kind {
	m := make(map[string]Kind, numKinds)
	for k := Kind(1); k < numKinds; k++ {
		m[verbs[k]] = k
	}
	return m
}()

// Lookup returns the Kind for an already-normalized verb.
// Matching is exact; there is no prefix or abbreviation matching.
func Lookup(verb string) Kind {
	return byVerb[verb]
}

// String returns the lowercase wire verb, or "unknown".
func (k Kind) String() string {
	if k == Unknown || k >= numKinds {
		return "unknown"
	}
	return verbs[k]
}

// All returns every supported Kind in declaration order.
func All() []Kind {
	out := make([]Kind, 0, numKinds-1)
	for k := Kind(1); k < numKinds; k++ {
		out = append(out, k)
	}
	return out
}
