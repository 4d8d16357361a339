package textserver

import (
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/yndnr/rudis-go/pkg/cmap"
)

// limiterSweepInterval is how often idle peer buckets are dropped.
const limiterSweepInterval = time.Minute

// peerLimiter applies a token bucket per peer IP. The burst equals the
// per-second rate.
//
// A bucket that has refilled completely behaves exactly like a new one, so
// the periodic sweep drops those. The map then holds only peers seen
// within roughly the last sweep interval.
type peerLimiter struct {
	limit   rate.Limit
	burst   int
	buckets *cmap.Map[*rate.Limiter]

	now       func() time.Time
	lastSweep atomic.Int64
}

// newPeerLimiter returns nil when perSecond is not positive.
func newPeerLimiter(perSecond int) *peerLimiter {
	if perSecond <= 0 {
		return nil
	}
	l := &peerLimiter{
		limit:   rate.Limit(perSecond),
		burst:   perSecond,
		buckets: cmap.New[*rate.Limiter](),
		now:     time.Now,
	}
	l.lastSweep.Store(l.now().UnixNano())
	return l
}

// allow reports whether ip may run one more command now. A nil limiter
// allows everything.
func (l *peerLimiter) allow(ip string) bool {
	if l == nil {
		return true
	}
	now := l.now()
	l.maybeSweep(now)

	lim, ok := l.buckets.Get(ip)
	if !ok {
		l.buckets.SetIfAbsent(ip, rate.NewLimiter(l.limit, l.burst))
		lim, _ = l.buckets.Get(ip)
	}
	return lim.AllowN(now, 1)
}

func (l *peerLimiter) maybeSweep(now time.Time) {
	last := l.lastSweep.Load()
	if now.UnixNano()-last < int64(limiterSweepInterval) {
		return
	}
	if !l.lastSweep.CompareAndSwap(last, now.UnixNano()) {
		return
	}
	l.sweep(now)
}

// sweep removes every bucket that is full at now.
func (l *peerLimiter) sweep(now time.Time) {
	var idle []string
	l.buckets.Range(func(ip string, lim *rate.Limiter) bool {
		if lim.TokensAt(now) >= float64(l.burst) {
			idle = append(idle, ip)
		}
		return true
	})
	for _, ip := range idle {
		l.buckets.Delete(ip)
	}
}

// size returns the number of tracked peers.
func (l *peerLimiter) size() int {
	return l.buckets.Count()
}
