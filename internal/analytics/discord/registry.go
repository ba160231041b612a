package discord

import (
	"math/rand/v2"
)

// Visited is the read-only view of a registry. The Finder only ever receives
// this view of the global state.
type Visited interface {
	IsVisited(idx int) bool
}

// VisitRegistry tracks which window starts in [0, capacity) have been
// examined and hands out unvisited ones in random order.
//
// Unvisited positions live in a dense array; slots maps a position to its
// index in that array, or -1 once visited. Removal swaps the last element
// into the freed slot, so both marking and random retrieval are O(1).
type VisitRegistry struct {
	unvisited []int
	slots     []int
	rng       *rand.Rand
}

// NewVisitRegistry creates a registry with every position unvisited. A nil
// rng makes NextUnvisited deterministic: it returns the tail of the dense
// array, which is the highest position until marks start swapping entries.
func NewVisitRegistry(capacity int, rng *rand.Rand) *VisitRegistry {
	capacity = max(capacity, 0)
	r := &VisitRegistry{
		unvisited: make([]int, capacity),
		slots:     make([]int, capacity),
		rng:       rng,
	}
	for i := range capacity {
		r.unvisited[i] = i
		r.slots[i] = i
	}
	return r
}

// Capacity returns the number of tracked positions.
func (r *VisitRegistry) Capacity() int {
	return len(r.slots)
}

// Unvisited returns the number of positions not yet visited.
func (r *VisitRegistry) Unvisited() int {
	return len(r.unvisited)
}

// IsVisited reports whether idx was marked. Positions outside the registry
// count as visited.
func (r *VisitRegistry) IsVisited(idx int) bool {
	if idx < 0 || idx >= len(r.slots) {
		return true
	}
	return r.slots[idx] < 0
}

// MarkVisited marks idx as visited. Out-of-range and repeated marks are no-ops.
func (r *VisitRegistry) MarkVisited(idx int) {
	if idx < 0 || idx >= len(r.slots) {
		return
	}
	slot := r.slots[idx]
	if slot < 0 {
		return
	}
	last := len(r.unvisited) - 1
	moved := r.unvisited[last]
	r.unvisited[slot] = moved
	r.slots[moved] = slot
	r.unvisited = r.unvisited[:last]
	r.slots[idx] = -1
}

// MarkRange marks [start, end) as visited, clamped to the registry bounds.
func (r *VisitRegistry) MarkRange(start, end int) {
	start = max(start, 0)
	end = min(end, len(r.slots))
	for i := start; i < end; i++ {
		r.MarkVisited(i)
	}
}

// NextUnvisited returns a random unvisited position without marking it, or
// false when every position has been visited.
func (r *VisitRegistry) NextUnvisited() (int, bool) {
	n := len(r.unvisited)
	if n == 0 {
		return -1, false
	}
	if r.rng == nil {
		return r.unvisited[n-1], true
	}
	return r.unvisited[r.rng.IntN(n)], true
}
