// Package sax implements Symbolic Aggregate approXimation: a numeric window is
// z-normalized, compressed with piecewise aggregate approximation (PAA) and
// mapped onto letters of an alphabet whose cuts are equiprobable under N(0,1).
package sax

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// MaxAlphabetSize is the largest alphabet representable with letters a..z.
const MaxAlphabetSize = 26

var (
	// ErrAlphabetSize is returned for alphabet sizes outside [1, MaxAlphabetSize].
	ErrAlphabetSize = errors.New("sax: alphabet size out of range")

	// ErrPAASize is returned for non-positive PAA segment counts.
	ErrPAASize = errors.New("sax: paa size must be positive")

	// ErrEmptyWindow is returned when discretizing an empty window.
	ErrEmptyWindow = errors.New("sax: empty window")
)

// Word is the symbolic representation of one window.
type Word string

// ZNormalize returns (x-mean)/sd for every value. When the sample standard
// deviation is below threshold the window is treated as flat and an
// unmodified copy is returned.
func ZNormalize(values []float64, threshold float64) []float64 {
	out := slices.Clone(values)
	if len(values) < 2 {
		return out
	}
	mean, sd := stat.MeanStdDev(values, nil)
	if sd < threshold {
		return out
	}
	for i, v := range values {
		out[i] = (v - mean) / sd
	}
	return out
}

// PAA compresses values into segments equal-width averages. Segment
// boundaries may fall inside a point, in which case the point contributes
// proportionally to both neighbouring segments.
func PAA(values []float64, segments int) ([]float64, error) {
	if segments <= 0 {
		return nil, ErrPAASize
	}
	if len(values) == 0 {
		return nil, ErrEmptyWindow
	}
	if len(values) == segments {
		return slices.Clone(values), nil
	}

	n := len(values)
	width := float64(n) / float64(segments)
	out := make([]float64, segments)
	for k := range segments {
		start := float64(k) * width
		end := start + width
		var sum float64
		for j := int(start); j < n && float64(j) < end; j++ {
			lo := math.Max(start, float64(j))
			hi := math.Min(end, float64(j+1))
			if hi > lo {
				sum += values[j] * (hi - lo)
			}
		}
		out[k] = sum / width
	}
	return out, nil
}

// Breakpoints returns the alphabetSize-1 cuts splitting N(0,1) into
// equiprobable regions, in ascending order.
func Breakpoints(alphabetSize int) ([]float64, error) {
	if alphabetSize < 1 || alphabetSize > MaxAlphabetSize {
		return nil, fmt.Errorf("%w: %d", ErrAlphabetSize, alphabetSize)
	}
	cuts := make([]float64, alphabetSize-1)
	for i := range cuts {
		cuts[i] = distuv.UnitNormal.Quantile(float64(i+1) / float64(alphabetSize))
	}
	return cuts, nil
}

// ToWord maps every value to the letter of the region it falls in. A value
// equal to a cut belongs to the upper region.
func ToWord(values, cuts []float64) Word {
	buf := make([]byte, len(values))
	for i, v := range values {
		idx := sort.Search(len(cuts), func(j int) bool { return cuts[j] > v })
		buf[i] = byte('a' + idx)
	}
	return Word(buf)
}

// Discretizer turns raw windows into words. It holds no mutable state and is
// safe for concurrent use.
type Discretizer struct {
	threshold float64
	segments  int
	cuts      []float64
}

// NewDiscretizer creates a Discretizer for the given normalization threshold,
// PAA size and alphabet size.
func NewDiscretizer(threshold float64, paaSize, alphabetSize int) (*Discretizer, error) {
	if paaSize <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrPAASize, paaSize)
	}
	cuts, err := Breakpoints(alphabetSize)
	if err != nil {
		return nil, err
	}
	return &Discretizer{
		threshold: threshold,
		segments:  paaSize,
		cuts:      cuts,
	}, nil
}

// Discretize runs normalize -> PAA -> alphabet on a single window.
func (d *Discretizer) Discretize(window []float64) (Word, error) {
	if len(window) == 0 {
		return "", ErrEmptyWindow
	}
	compressed, err := PAA(ZNormalize(window, d.threshold), d.segments)
	if err != nil {
		return "", err
	}
	return ToWord(compressed, d.cuts), nil
}

// AlphabetSize returns the number of letters the discretizer emits.
func (d *Discretizer) AlphabetSize() int {
	return len(d.cuts) + 1
}
