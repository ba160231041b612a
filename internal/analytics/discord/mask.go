package discord

import (
	"github.com/RoaringBitmap/roaring/v2"
)

// VisitMask is the registry used for the global, cross-pass state. It only
// needs membership and range marking, so visited positions are kept in a
// roaring bitmap where each exclusion zone collapses into a run.
type VisitMask struct {
	capacity int
	bits     *roaring.Bitmap
}

// NewVisitMask creates a mask over [0, capacity) with nothing visited.
func NewVisitMask(capacity int) *VisitMask {
	return &VisitMask{
		capacity: max(capacity, 0),
		bits:     roaring.New(),
	}
}

// Capacity returns the number of tracked positions.
func (m *VisitMask) Capacity() int {
	return m.capacity
}

// IsVisited reports whether idx was marked. Positions outside the mask count
// as visited.
func (m *VisitMask) IsVisited(idx int) bool {
	if idx < 0 || idx >= m.capacity {
		return true
	}
	return m.bits.Contains(uint32(idx))
}

// MarkVisited marks a single position.
func (m *VisitMask) MarkVisited(idx int) {
	if idx < 0 || idx >= m.capacity {
		return
	}
	m.bits.Add(uint32(idx))
}

// MarkRange marks [start, end), clamped to the mask bounds.
func (m *VisitMask) MarkRange(start, end int) {
	start = max(start, 0)
	end = min(end, m.capacity)
	if start >= end {
		return
	}
	m.bits.AddRange(uint64(start), uint64(end))
}

// Unvisited returns the number of positions not yet visited.
func (m *VisitMask) Unvisited() int {
	return m.capacity - int(m.bits.GetCardinality())
}
