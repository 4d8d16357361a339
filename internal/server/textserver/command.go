package textserver

import (
	"context"
	"time"

	"github.com/yndnr/rudis-go/internal/core/command"
	"github.com/yndnr/rudis-go/internal/core/domain"
	"github.com/yndnr/rudis-go/internal/storage/memory"
	"github.com/yndnr/rudis-go/internal/telemetry/logger"
	"github.com/yndnr/rudis-go/internal/telemetry/metric"
)

// CommandHandler turns one raw read into one reply.
type CommandHandler struct {
	store   *memory.Store
	metrics *metric.Registry
	limiter *peerLimiter
}

// NewCommandHandler creates a handler over store. metrics may be nil.
func NewCommandHandler(store *memory.Store, metrics *metric.Registry, rateLimit int) *CommandHandler {
	return &CommandHandler{
		store:   store,
		metrics: metrics,
		limiter: newPeerLimiter(rateLimit),
	}
}

// Handle parses buf, runs the command for peer and returns the reply bytes.
// The reply may be empty.
func (h *CommandHandler) Handle(ctx context.Context, peer string, buf []byte) []byte {
	log := logger.L(ctx)

	cmd, ok := command.Parse(buf)
	if !ok {
		// Whitespace or padding only: an empty verb matches nothing.
		return []byte(domain.ErrUnknownCommand.Message)
	}

	if !h.limiter.allow(peer) {
		if h.metrics != nil {
			h.metrics.IncRateLimited()
		}
		log.Warn("command rate limited", "peer", peer, "command", cmd.Verb)
		return []byte(domain.ErrRateLimited.Message)
	}

	start := time.Now()
	reply, err := h.Execute(cmd)
	elapsed := time.Since(start)

	if h.metrics != nil {
		// Kind.String folds every unrecognized verb into "unknown".
		h.metrics.RecordCommand(cmd.Kind.String(), err == nil, elapsed)
	}

	if err != nil {
		log.Debug("command failed",
			"command", cmd.Verb,
			"code", domain.GetErrorCode(err),
			"error", err,
		)
		return []byte(domain.ReplyText(err))
	}

	log.Debug("command done", "command", cmd.Verb, "args", len(cmd.Args), "elapsed", elapsed)
	return []byte(reply)
}

// Execute runs a parsed command against the store. Each handler checks its
// own arity before touching any state.
func (h *CommandHandler) Execute(cmd command.Command) (string, error) {
	args := cmd.Args

	switch cmd.Kind {
	case command.Set:
		return h.handleSet(args)
	case command.Get:
		return h.handleGet(args)
	case command.Del:
		return h.handleDel(args)

	case command.HSet:
		return h.handleHSet(args)
	case command.HGet:
		return h.handleHGet(args)
	case command.HDel:
		return h.handleHDel(args)
	case command.HGetAll:
		return h.handleHGetAll(args)

	case command.LPush:
		return h.handleLPush(args)
	case command.RPush:
		return h.handleRPush(args)
	case command.LPop:
		return h.handleLPop(args)
	case command.RPop:
		return h.handleRPop(args)
	case command.LRange:
		return h.handleLRange(args)

	case command.SAdd:
		return h.handleSAdd(args)
	case command.SRem:
		return h.handleSRem(args)
	case command.SIsMember:
		return h.handleSIsMember(args)
	case command.SMembers:
		return h.handleSMembers(args)

	case command.ZAdd:
		return h.handleZAdd(args)
	case command.ZRange:
		return h.handleZRange(args)
	case command.ZRem:
		return h.handleZRem(args)
	case command.ZScore:
		return h.handleZScore(args)

	case command.SetBit:
		return h.handleSetBit(args)
	case command.GetBit:
		return h.handleGetBit(args)
	case command.BitCount:
		return h.handleBitCount(args)

	case command.Help:
		return helpText, nil

	case command.Unknown:
		return "", domain.ErrUnknownCommand.WithDetails(cmd.Verb)
	}

	return "", domain.ErrUnknownCommand.WithDetails(cmd.Verb)
}
