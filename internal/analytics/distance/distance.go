// Package distance provides distance functions between equal-length windows.
package distance

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// ErrLengthMismatch is returned when the two windows differ in length.
var ErrLengthMismatch = errors.New("distance: length mismatch")

// Func computes a symmetric, non-negative distance that is zero only for
// identical inputs.
type Func func(a, b []float64) (float64, error)

// Metric represents the distance metric used for window comparison.
type Metric int

const (
	MetricEuclidean Metric = iota
	MetricManhattan
	MetricChebyshev
)

func (m Metric) String() string {
	switch m {
	case MetricEuclidean:
		return "euclidean"
	case MetricManhattan:
		return "manhattan"
	case MetricChebyshev:
		return "chebyshev"
	default:
		return fmt.Sprintf("unknown(%d)", m)
	}
}

// Metrics lists the supported metrics
func Metrics() []Metric {
	return []Metric{MetricEuclidean, MetricManhattan, MetricChebyshev}
}

// ParseMetric resolves a metric by name. An empty name selects Euclidean.
func ParseMetric(name string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "euclidean", "l2":
		return MetricEuclidean, nil
	case "manhattan", "l1":
		return MetricManhattan, nil
	case "chebyshev", "linf":
		return MetricChebyshev, nil
	default:
		return 0, fmt.Errorf("unknown distance metric: %s", name)
	}
}

// Func returns the distance function for the metric.
func (m Metric) Func() Func {
	switch m {
	case MetricManhattan:
		return Manhattan
	case MetricChebyshev:
		return Chebyshev
	default:
		return Euclidean
	}
}

// Euclidean returns the L2 distance between a and b.
func Euclidean(a, b []float64) (float64, error) {
	return minkowski(a, b, 2)
}

// Manhattan returns the L1 distance between a and b.
func Manhattan(a, b []float64) (float64, error) {
	return minkowski(a, b, 1)
}

// Chebyshev returns the L-infinity distance between a and b.
func Chebyshev(a, b []float64) (float64, error) {
	return minkowski(a, b, math.Inf(1))
}

func minkowski(a, b []float64, p float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(a), len(b))
	}
	if len(a) == 0 {
		return 0, nil
	}
	return floats.Distance(a, b, p), nil
}
