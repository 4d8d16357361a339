package textserver

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yndnr/rudis-go/internal/storage/memory"
	"github.com/yndnr/rudis-go/internal/telemetry/metric"
)

func newTestHandler() *CommandHandler {
	return NewCommandHandler(memory.New(), nil, 0)
}

// run sends one raw line through the full parse → dispatch → render path.
func run(h *CommandHandler, line string) string {
	return string(h.Handle(context.Background(), "127.0.0.1", []byte(line)))
}

// ============================================================================
// Dispatch
// ============================================================================

func TestHandle_UnknownAndMalformed(t *testing.T) {
	h := newTestHandler()

	tests := []struct {
		name string
		line string
		want string
	}{
		{"unknown verb", "FLUSHALL", "unrecognized command"},
		{"prefix is not a match", "hgeta user", "unrecognized command"},
		{"whitespace only", "   \r\n", "unrecognized command"},
		{"set missing value", "SET k", "malformed command"},
		{"set extra arg", "SET k v x", "malformed command"},
		{"get no key", "GET", "malformed command"},
		{"hset odd pairs", "HSET h f", "malformed command"},
		{"hset dangling field", "HSET h f v g", "malformed command"},
		{"lrange bad index", "LRANGE l 0 x", "malformed command"},
		{"zadd bad score", "ZADD z abc m", "malformed command"},
		{"zadd nan", "ZADD z nan m", "malformed command"},
		{"setbit bad bit", "SETBIT b 1 2", "malformed command"},
		{"setbit bad offset", "SETBIT b x 1", "malformed command"},
		{"sadd no members", "SADD s", "malformed command"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, run(h, tt.line))
		})
	}

	// None of the rejected commands may have created anything.
	for typ, n := range h.store.KeyCounts() {
		assert.Zero(t, n, "store %s", typ)
	}
}

func TestHandle_Help(t *testing.T) {
	h := newTestHandler()

	got := run(h, "help")
	assert.True(t, strings.HasPrefix(got, "supported commands:"))
	for _, verb := range []string{"SET", "HGETALL", "LRANGE", "SISMEMBER", "ZSCORE", "BITCOUNT", "HELP"} {
		assert.Contains(t, got, verb)
	}
}

// ============================================================================
// Strings
// ============================================================================

func TestStrings(t *testing.T) {
	h := newTestHandler()

	assert.Equal(t, "key not found", run(h, "GET k"))
	assert.Equal(t, "ok", run(h, "SET k v1"))
	assert.Equal(t, "ok", run(h, "SET k v2"))
	assert.Equal(t, "v2", run(h, "GET k"))
	assert.Equal(t, "v2", run(h, "DEL k"))
	assert.Equal(t, "key not found", run(h, "DEL k"))
	assert.Equal(t, "key not found", run(h, "GET k"))
}

func TestStrings_ValuesAreLowercased(t *testing.T) {
	h := newTestHandler()

	require.Equal(t, "ok", run(h, "SET Greeting Hello"))
	assert.Equal(t, "hello", run(h, "get greeting"))
}

// ============================================================================
// Hashes
// ============================================================================

func TestHashes(t *testing.T) {
	h := newTestHandler()

	assert.Equal(t, "ok", run(h, "HSET user name Alice"))
	assert.Equal(t, "ok", run(h, "HSET user age 30"))

	lines := strings.Split(strings.TrimSuffix(run(h, "HGETALL user"), "\n"), "\n")
	sort.Strings(lines)
	assert.Equal(t, []string{"age:30", "name:alice"}, lines)

	assert.Equal(t, "alice", run(h, "HGET user name"))
	assert.Equal(t, "field not found", run(h, "HGET user email"))
	assert.Equal(t, "key not found", run(h, "HGET nobody name"))

	assert.Equal(t, "ok", run(h, "HSET user name bob name carol"))
	assert.Equal(t, "carol", run(h, "HGET user name"))

	assert.Equal(t, "30", run(h, "HDEL user age"))
	assert.Equal(t, "carol", run(h, "HDEL user name"))
	assert.Equal(t, "", run(h, "HGETALL user"), "emptied hash reads as empty")
	assert.Equal(t, "field not found", run(h, "HDEL user name"), "outer key survives")
	assert.Equal(t, "", run(h, "HGETALL nobody"))
}

// ============================================================================
// Lists
// ============================================================================

func TestLists(t *testing.T) {
	h := newTestHandler()

	assert.Equal(t, "key not found", run(h, "LPOP l"))
	assert.Equal(t, "ok", run(h, "RPUSH l a b"))
	assert.Equal(t, "ok", run(h, "LPUSH l x y"))

	assert.Equal(t, "y\nx\na\nb\n", run(h, "LRANGE l 0 -1"))
	assert.Equal(t, "x\na\n", run(h, "LRANGE l 1 2"))
	assert.Equal(t, "", run(h, "LRANGE l 0 -2"), "only (0,-1) is special")
	assert.Equal(t, "", run(h, "LRANGE missing 0 -1"))

	assert.Equal(t, "y", run(h, "LPOP l"))
	assert.Equal(t, "b", run(h, "RPOP l"))
	assert.Equal(t, "x", run(h, "LPOP l"))
	assert.Equal(t, "a", run(h, "RPOP l"))
	assert.Equal(t, "list is empty", run(h, "RPOP l"))
}

// ============================================================================
// Sets
// ============================================================================

func TestSets(t *testing.T) {
	h := newTestHandler()

	assert.Equal(t, "key not found", run(h, "SREM s a"))
	assert.Equal(t, "ok", run(h, "SADD s c a b a"))
	assert.Equal(t, "a b c", run(h, "SMEMBERS s"))
	assert.Equal(t, "1", run(h, "SISMEMBER s a"))
	assert.Equal(t, "0", run(h, "SISMEMBER s z"))
	assert.Equal(t, "0", run(h, "SISMEMBER nope a"))
	assert.Equal(t, "removed 2 member(s)", run(h, "SREM s a b z"))
	assert.Equal(t, "c", run(h, "SMEMBERS s"))
	assert.Equal(t, "", run(h, "SMEMBERS nope"))
}

// ============================================================================
// Sorted sets
// ============================================================================

func TestSortedSets(t *testing.T) {
	h := newTestHandler()

	assert.Equal(t, "ok", run(h, "ZADD board 10 alice 20 bob"))
	assert.Equal(t, "20", run(h, "ZSCORE board bob"))
	assert.Equal(t, "alice, 10\nbob, 20\n", run(h, "ZRANGE board 0 -1"))

	assert.Equal(t, "ok", run(h, "ZREM board alice"))
	assert.Equal(t, "bob, 20\n", run(h, "ZRANGE board 0 -1"))

	assert.Equal(t, "member not found", run(h, "ZREM board alice"))
	assert.Equal(t, "member not found", run(h, "ZSCORE board alice"))
	assert.Equal(t, "key not found", run(h, "ZSCORE nope alice"))
	assert.Equal(t, "key not found", run(h, "ZREM nope alice"))
	assert.Equal(t, "", run(h, "ZRANGE nope 0 -1"))
}

func TestSortedSets_ScoreUpdateAndFormatting(t *testing.T) {
	h := newTestHandler()

	require.Equal(t, "ok", run(h, "ZADD z 1.5 a 2 b 3 c"))
	require.Equal(t, "ok", run(h, "ZADD z 10 a"))

	assert.Equal(t, "b, 2\nc, 3\na, 10\n", run(h, "ZRANGE z 0 -1"))
	assert.Equal(t, "c, 3\n", run(h, "ZRANGE z 1 1"))

	require.Equal(t, "ok", run(h, "ZADD z -0.25 d"))
	assert.Equal(t, "-0.25", run(h, "ZSCORE z d"))
	assert.Equal(t, "d, -0.25\n", run(h, "ZRANGE z 0 0"))
}

func TestSortedSets_ZAddIsAllOrNothing(t *testing.T) {
	h := newTestHandler()

	assert.Equal(t, "malformed command", run(h, "ZADD z 1 a x b"))
	assert.Equal(t, "key not found", run(h, "ZSCORE z a"))
}

// ============================================================================
// Bitmaps
// ============================================================================

func TestBitmaps(t *testing.T) {
	h := newTestHandler()

	assert.Equal(t, "offset out of range", run(h, "SETBIT b 1024 1"))
	assert.Equal(t, "offset out of range", run(h, "SETBIT b -1 1"))
	assert.Zero(t, h.store.Bitmaps.Len(), "rejected write must not allocate")

	assert.Equal(t, "ok", run(h, "SETBIT b 1023 1"))
	assert.Equal(t, "ok", run(h, "SETBIT b 0 1"))
	assert.Equal(t, "ok", run(h, "SETBIT b 5 1"))
	assert.Equal(t, "ok", run(h, "SETBIT b 5 0"))

	assert.Equal(t, "1", run(h, "GETBIT b 1023"))
	assert.Equal(t, "0", run(h, "GETBIT b 5"))
	assert.Equal(t, "0", run(h, "GETBIT b 5000"))
	assert.Equal(t, "0", run(h, "GETBIT nope 0"))
	assert.Equal(t, "2", run(h, "BITCOUNT b"))
	assert.Equal(t, "0", run(h, "BITCOUNT nope"))
}

// ============================================================================
// Type independence
// ============================================================================

func TestStoresAreIndependent(t *testing.T) {
	h := newTestHandler()

	require.Equal(t, "ok", run(h, "SET k v"))
	require.Equal(t, "ok", run(h, "RPUSH k a"))
	require.Equal(t, "ok", run(h, "SADD k m"))
	require.Equal(t, "ok", run(h, "ZADD k 1 m"))

	assert.Equal(t, "v", run(h, "GET k"))
	assert.Equal(t, "a\n", run(h, "LRANGE k 0 -1"))
	assert.Equal(t, "m", run(h, "SMEMBERS k"))
	assert.Equal(t, "key not found", run(h, "HGET k f"))
}

// ============================================================================
// Rate limiting and metrics
// ============================================================================

func TestHandle_RateLimit(t *testing.T) {
	h := NewCommandHandler(memory.New(), nil, 2)
	ctx := context.Background()

	assert.Equal(t, "ok", string(h.Handle(ctx, "10.0.0.1", []byte("SET a 1"))))
	assert.Equal(t, "ok", string(h.Handle(ctx, "10.0.0.1", []byte("SET a 2"))))
	assert.Equal(t, "rate limit exceeded", string(h.Handle(ctx, "10.0.0.1", []byte("SET a 3"))))

	// Other peers have their own bucket.
	assert.Equal(t, "ok", string(h.Handle(ctx, "10.0.0.2", []byte("SET a 4"))))
	assert.Equal(t, "4", string(h.Handle(ctx, "10.0.0.2", []byte("GET a"))))
}

func TestPeerLimiter_Disabled(t *testing.T) {
	assert.Nil(t, newPeerLimiter(0))

	var l *peerLimiter
	for i := 0; i < 100; i++ {
		require.True(t, l.allow("1.2.3.4"))
	}
}

func TestPeerLimiter_SweepDropsIdleBuckets(t *testing.T) {
	l := newPeerLimiter(2)
	clock := time.Unix(1_700_000_000, 0)
	l.now = func() time.Time { return clock }
	l.lastSweep.Store(clock.UnixNano())

	for _, ip := range []string{"10.0.0.1", "10.0.0.2", "10.0.0.3"} {
		require.True(t, l.allow(ip))
	}
	require.Equal(t, 3, l.size())

	// Before the interval elapses nothing is dropped.
	clock = clock.Add(limiterSweepInterval / 2)
	require.True(t, l.allow("10.0.0.1"))
	assert.Equal(t, 3, l.size())

	// One peer drains its bucket right as the sweep runs.
	clock = clock.Add(limiterSweepInterval)
	l.lastSweep.Store(clock.Add(-limiterSweepInterval).UnixNano() + 1)
	require.True(t, l.allow("10.0.0.9"))
	require.True(t, l.allow("10.0.0.9"))
	require.False(t, l.allow("10.0.0.9"))

	clock = clock.Add(time.Nanosecond)
	l.maybeSweep(clock)
	assert.Equal(t, 1, l.size(), "only the drained bucket survives")
	assert.False(t, l.allow("10.0.0.9"), "surviving bucket keeps its state")
}

func TestHandle_RecordsMetrics(t *testing.T) {
	reg := metric.NewRegistry()
	h := NewCommandHandler(memory.New(), reg, 0)

	run(h, "SET k v")
	run(h, "GET missing")
	run(h, "BOGUS")

	assert.Equal(t, 1.0, counterValue(t, reg, "set", metric.ResultOK))
	assert.Equal(t, 1.0, counterValue(t, reg, "get", metric.ResultError))
	assert.Equal(t, 1.0, counterValue(t, reg, "unknown", metric.ResultError))
}

func counterValue(t *testing.T, reg *metric.Registry, cmd, result string) float64 {
	t.Helper()
	c, err := reg.CommandsTotal.GetMetricWithLabelValues(cmd, result)
	require.NoError(t, err)
	return testutil.ToFloat64(c)
}

func BenchmarkHandle_Set(b *testing.B) {
	h := newTestHandler()
	ctx := context.Background()
	for i := 0; i < b.N; i++ {
		h.Handle(ctx, "127.0.0.1", []byte(fmt.Sprintf("SET k%d v", i%1024)))
	}
}
