package memory

import (
	"math/rand/v2"
)

// ScoredMember is one (score, member) pair of a sorted set.
type ScoredMember struct {
	Score  float64
	Member string
}

// before orders pairs by score, then by member.
func (a ScoredMember) before(b ScoredMember) bool {
	if a.Score != b.Score {
		return a.Score < b.Score
	}
	return a.Member < b.Member
}

// rankNode is a treap node carrying its subtree size so that positions can
// be resolved in O(log n).
type rankNode struct {
	item     ScoredMember
	priority int
	size     int
	left     *rankNode
	right    *rankNode
}

func nodeSize(n *rankNode) int {
	if n == nil {
		return 0
	}
	return n.size
}

// pull recalculates subtree size. Call after any child change.
func pull(n *rankNode) {
	n.size = 1 + nodeSize(n.left) + nodeSize(n.right)
}

func rotateRight(n *rankNode) *rankNode {
	l := n.left
	n.left = l.right
	l.right = n
	pull(n)
	pull(l)
	return l
}

func rotateLeft(n *rankNode) *rankNode {
	r := n.right
	n.right = r.left
	r.left = n
	pull(n)
	pull(r)
	return r
}

func insertNode(n *rankNode, item ScoredMember, prio int) *rankNode {
	if n == nil {
		return &rankNode{item: item, priority: prio, size: 1}
	}

	switch {
	case item.before(n.item):
		n.left = insertNode(n.left, item, prio)
		if n.left.priority > n.priority {
			n = rotateRight(n)
		}
	case n.item.before(item):
		n.right = insertNode(n.right, item, prio)
		if n.right.priority > n.priority {
			n = rotateLeft(n)
		}
	default:
		// Already present.
		return n
	}

	pull(n)
	return n
}

func deleteNode(n *rankNode, item ScoredMember) *rankNode {
	if n == nil {
		return nil
	}

	switch {
	case item.before(n.item):
		n.left = deleteNode(n.left, item)
	case n.item.before(item):
		n.right = deleteNode(n.right, item)
	default:
		if n.left == nil {
			return n.right
		}
		if n.right == nil {
			return n.left
		}
		// Rotate the higher-priority child up until the target is a leaf.
		if n.left.priority > n.right.priority {
			n = rotateRight(n)
			n.right = deleteNode(n.right, item)
		} else {
			n = rotateLeft(n)
			n.left = deleteNode(n.left, item)
		}
	}

	pull(n)
	return n
}

// rankOf counts pairs ordered strictly before item.
func rankOf(n *rankNode, item ScoredMember) int {
	if n == nil {
		return 0
	}
	if !n.item.before(item) {
		return rankOf(n.left, item)
	}
	return 1 + nodeSize(n.left) + rankOf(n.right, item)
}

// collect appends the pairs at positions [lo, hi] of subtree n, in order.
// Both bounds must already be clamped to [0, nodeSize(n)-1].
func collect(n *rankNode, lo, hi int, out []ScoredMember) []ScoredMember {
	if n == nil || lo > hi {
		return out
	}

	ls := nodeSize(n.left)
	if lo < ls {
		out = collect(n.left, lo, min(hi, ls-1), out)
	}
	if lo <= ls && ls <= hi {
		out = append(out, n.item)
	}
	if hi > ls {
		out = collect(n.right, max(lo-ls-1, 0), hi-ls-1, out)
	}
	return out
}

// RankedIndex is the value of one sorted-set key.
//
// It owns a rank-ordered treap of (score, member) pairs and a member→score
// map. Every exported method leaves the two in agreement: each member in
// the map with score S appears exactly once in the treap as (S, member),
// and the treap holds nothing else.
//
// RankedIndex is not safe for concurrent use; SortedSetStore serializes
// access to it.
type RankedIndex struct {
	root   *rankNode
	scores map[string]float64
}

// NewRankedIndex creates an empty index.
func NewRankedIndex() *RankedIndex {
	return &RankedIndex{scores: make(map[string]float64)}
}

// Len returns the number of members.
func (r *RankedIndex) Len() int {
	return len(r.scores)
}

// Upsert sets member's score, evicting its previous rank entry first.
// It returns true if the member was not present before.
func (r *RankedIndex) Upsert(member string, score float64) bool {
	old, exists := r.scores[member]
	if exists {
		if old == score {
			return false
		}
		r.root = deleteNode(r.root, ScoredMember{Score: old, Member: member})
	}

	r.root = insertNode(r.root, ScoredMember{Score: score, Member: member}, rand.Int()) //nolint:gosec // treap priority, not security
	r.scores[member] = score
	return !exists
}

// Remove deletes member from both structures.
// It returns the removed score and whether the member existed.
func (r *RankedIndex) Remove(member string) (float64, bool) {
	score, ok := r.scores[member]
	if !ok {
		return 0, false
	}
	delete(r.scores, member)
	r.root = deleteNode(r.root, ScoredMember{Score: score, Member: member})
	return score, true
}

// Score returns member's score without touching the rank index.
func (r *RankedIndex) Score(member string) (float64, bool) {
	score, ok := r.scores[member]
	return score, ok
}

// rank returns member's 0-based position in ascending order.
func (r *RankedIndex) rank(member string) (int, bool) {
	score, ok := r.scores[member]
	if !ok {
		return 0, false
	}
	return rankOf(r.root, ScoredMember{Score: score, Member: member}), true
}

// Range returns the pairs at inclusive positions [start, stop] in
// ascending order. Positions below zero or past the end never match;
// they are not resolved from the end.
func (r *RankedIndex) Range(start, stop int) []ScoredMember {
	lo := max(start, 0)
	hi := min(stop, nodeSize(r.root)-1)
	if lo > hi {
		return nil
	}
	return collect(r.root, lo, hi, make([]ScoredMember, 0, hi-lo+1))
}

// All returns every pair in ascending order.
func (r *RankedIndex) All() []ScoredMember {
	return r.Range(0, nodeSize(r.root)-1)
}
