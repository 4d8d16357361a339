package textserver

import (
	"math"
	"strconv"
	"strings"

	"github.com/yndnr/rudis-go/internal/core/command"
	"github.com/yndnr/rudis-go/internal/core/domain"
	"github.com/yndnr/rudis-go/internal/storage/memory"
)

const replyOK = "ok"

var helpText = buildHelp()

func buildHelp() string {
	kinds := command.All()
	verbs := make([]string, 0, len(kinds))
	for _, k := range kinds {
		verbs = append(verbs, strings.ToUpper(k.String()))
	}
	return "supported commands: " + strings.Join(verbs, " ")
}

func malformed(why string) error {
	return domain.ErrMalformedCommand.WithDetails(why)
}

// parseIndex parses a signed range position.
func parseIndex(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, malformed("index " + strconv.Quote(s) + " is not an integer")
	}
	return n, nil
}

// parseScore parses a sorted-set score. NaN is rejected because it has no
// place in a total order.
func parseScore(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) {
		return 0, malformed("score " + strconv.Quote(s) + " is not a number")
	}
	return f, nil
}

func formatScore(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ============================================================================
// Strings
// ============================================================================

func (h *CommandHandler) handleSet(args []string) (string, error) {
	if len(args) != 2 {
		return "", malformed("set expects key value")
	}
	h.store.Strings.Set(args[0], args[1])
	return replyOK, nil
}

func (h *CommandHandler) handleGet(args []string) (string, error) {
	if len(args) != 1 {
		return "", malformed("get expects key")
	}
	return h.store.Strings.Get(args[0])
}

func (h *CommandHandler) handleDel(args []string) (string, error) {
	if len(args) != 1 {
		return "", malformed("del expects key")
	}
	return h.store.Strings.Delete(args[0])
}

// ============================================================================
// Hashes
// ============================================================================

func (h *CommandHandler) handleHSet(args []string) (string, error) {
	if len(args) < 3 || len(args)%2 != 1 {
		return "", malformed("hset expects key field value [field value ...]")
	}

	pairs := make([]memory.FieldValue, 0, (len(args)-1)/2)
	for i := 1; i < len(args); i += 2 {
		pairs = append(pairs, memory.FieldValue{Field: args[i], Value: args[i+1]})
	}
	h.store.Hashes.Set(args[0], pairs...)
	return replyOK, nil
}

func (h *CommandHandler) handleHGet(args []string) (string, error) {
	if len(args) != 2 {
		return "", malformed("hget expects key field")
	}
	return h.store.Hashes.Get(args[0], args[1])
}

func (h *CommandHandler) handleHDel(args []string) (string, error) {
	if len(args) != 2 {
		return "", malformed("hdel expects key field")
	}
	return h.store.Hashes.Delete(args[0], args[1])
}

func (h *CommandHandler) handleHGetAll(args []string) (string, error) {
	if len(args) != 1 {
		return "", malformed("hgetall expects key")
	}

	var b strings.Builder
	for _, fv := range h.store.Hashes.GetAll(args[0]) {
		b.WriteString(fv.Field)
		b.WriteByte(':')
		b.WriteString(fv.Value)
		b.WriteByte('\n')
	}
	return b.String(), nil
}

// ============================================================================
// Lists
// ============================================================================

func (h *CommandHandler) handleLPush(args []string) (string, error) {
	if len(args) < 2 {
		return "", malformed("lpush expects key value [value ...]")
	}
	h.store.Lists.PushFront(args[0], args[1:]...)
	return replyOK, nil
}

func (h *CommandHandler) handleRPush(args []string) (string, error) {
	if len(args) < 2 {
		return "", malformed("rpush expects key value [value ...]")
	}
	h.store.Lists.PushBack(args[0], args[1:]...)
	return replyOK, nil
}

func (h *CommandHandler) handleLPop(args []string) (string, error) {
	if len(args) != 1 {
		return "", malformed("lpop expects key")
	}
	return h.store.Lists.PopFront(args[0])
}

func (h *CommandHandler) handleRPop(args []string) (string, error) {
	if len(args) != 1 {
		return "", malformed("rpop expects key")
	}
	return h.store.Lists.PopBack(args[0])
}

func (h *CommandHandler) handleLRange(args []string) (string, error) {
	if len(args) != 3 {
		return "", malformed("lrange expects key start end")
	}
	start, err := parseIndex(args[1])
	if err != nil {
		return "", err
	}
	stop, err := parseIndex(args[2])
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, v := range h.store.Lists.Range(args[0], start, stop) {
		b.WriteString(v)
		b.WriteByte('\n')
	}
	return b.String(), nil
}

// ============================================================================
// Sets
// ============================================================================

func (h *CommandHandler) handleSAdd(args []string) (string, error) {
	if len(args) < 2 {
		return "", malformed("sadd expects key member [member ...]")
	}
	h.store.Sets.Add(args[0], args[1:]...)
	return replyOK, nil
}

func (h *CommandHandler) handleSRem(args []string) (string, error) {
	if len(args) < 2 {
		return "", malformed("srem expects key member [member ...]")
	}
	n, err := h.store.Sets.Remove(args[0], args[1:]...)
	if err != nil {
		return "", err
	}
	return "removed " + strconv.Itoa(n) + " member(s)", nil
}

func (h *CommandHandler) handleSIsMember(args []string) (string, error) {
	if len(args) != 2 {
		return "", malformed("sismember expects key member")
	}
	if h.store.Sets.IsMember(args[0], args[1]) {
		return "1", nil
	}
	return "0", nil
}

func (h *CommandHandler) handleSMembers(args []string) (string, error) {
	if len(args) != 1 {
		return "", malformed("smembers expects key")
	}
	return strings.Join(h.store.Sets.Members(args[0]), " "), nil
}

// ============================================================================
// Sorted sets
// ============================================================================

func (h *CommandHandler) handleZAdd(args []string) (string, error) {
	if len(args) < 3 || len(args)%2 != 1 {
		return "", malformed("zadd expects key score member [score member ...]")
	}

	// Every score must parse before anything is written.
	pairs := make([]memory.ScoredMember, 0, (len(args)-1)/2)
	for i := 1; i < len(args); i += 2 {
		score, err := parseScore(args[i])
		if err != nil {
			return "", err
		}
		pairs = append(pairs, memory.ScoredMember{Score: score, Member: args[i+1]})
	}

	h.store.SortedSets.Add(args[0], pairs...)
	return replyOK, nil
}

func (h *CommandHandler) handleZRange(args []string) (string, error) {
	if len(args) != 3 {
		return "", malformed("zrange expects key start end")
	}
	start, err := parseIndex(args[1])
	if err != nil {
		return "", err
	}
	stop, err := parseIndex(args[2])
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, p := range h.store.SortedSets.Range(args[0], start, stop) {
		b.WriteString(p.Member)
		b.WriteString(", ")
		b.WriteString(formatScore(p.Score))
		b.WriteByte('\n')
	}
	return b.String(), nil
}

func (h *CommandHandler) handleZRem(args []string) (string, error) {
	if len(args) != 2 {
		return "", malformed("zrem expects key member")
	}
	if _, err := h.store.SortedSets.Remove(args[0], args[1]); err != nil {
		return "", err
	}
	return replyOK, nil
}

func (h *CommandHandler) handleZScore(args []string) (string, error) {
	if len(args) != 2 {
		return "", malformed("zscore expects key member")
	}
	score, err := h.store.SortedSets.Score(args[0], args[1])
	if err != nil {
		return "", err
	}
	return formatScore(score), nil
}

// ============================================================================
// Bitmaps
// ============================================================================

func (h *CommandHandler) handleSetBit(args []string) (string, error) {
	if len(args) != 3 {
		return "", malformed("setbit expects key offset bit")
	}
	offset, err := strconv.Atoi(args[1])
	if err != nil {
		return "", malformed("offset is not an integer")
	}

	var on bool
	switch args[2] {
	case "0":
	case "1":
		on = true
	default:
		return "", malformed("bit must be 0 or 1")
	}

	if err := h.store.Bitmaps.SetBit(args[0], offset, on); err != nil {
		return "", err
	}
	return replyOK, nil
}

func (h *CommandHandler) handleGetBit(args []string) (string, error) {
	if len(args) != 2 {
		return "", malformed("getbit expects key offset")
	}
	offset, err := strconv.Atoi(args[1])
	if err != nil {
		return "", malformed("offset is not an integer")
	}
	if h.store.Bitmaps.GetBit(args[0], offset) {
		return "1", nil
	}
	return "0", nil
}

func (h *CommandHandler) handleBitCount(args []string) (string, error) {
	if len(args) != 1 {
		return "", malformed("bitcount expects key")
	}
	return strconv.FormatUint(uint64(h.store.Bitmaps.Count(args[0])), 10), nil
}
