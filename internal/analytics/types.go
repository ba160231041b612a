// Package analytics provides common types for time-series analytics
// including discretization, distance and discord discovery.
package analytics

import (
	"fmt"
	"math"
	"time"
)

// TimeSeriesPoint represents a single time-series data point with time and value.
type TimeSeriesPoint struct {
	Time  time.Time `json:"time"`
	Value float64   `json:"value"`
}

// TimeSeriesData represents a collection of time-series data points
type TimeSeriesData []TimeSeriesPoint

// Values extracts just the values from the time series
func (ts TimeSeriesData) Values() []float64 {
	values := make([]float64, len(ts))
	for i, p := range ts {
		values[i] = p.Value
	}
	return values
}

// Times extracts just the times from the time series
func (ts TimeSeriesData) Times() []time.Time {
	times := make([]time.Time, len(ts))
	for i, p := range ts {
		times[i] = p.Time
	}
	return times
}

// Series returns the values as a Series.
func (ts TimeSeriesData) Series() Series {
	return Series(ts.Values())
}

// Series is an ordered, immutable sequence of real values.
type Series []float64

// Len returns the number of values
func (s Series) Len() int {
	return len(s)
}

// Window returns the raw values in [start, start+length).
// The returned slice aliases the series and must not be modified.
// Callers are responsible for staying in bounds.
func (s Series) Window(start, length int) []float64 {
	return s[start : start+length : start+length]
}

// Positions returns the number of valid window starts for the given window size.
func (s Series) Positions(windowSize int) int {
	if windowSize <= 0 || windowSize > len(s) {
		return 0
	}
	return len(s) - windowSize + 1
}

// Validate checks that every value is finite.
func (s Series) Validate() error {
	for i, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("non-finite value %v at index %d", v, i)
		}
	}
	return nil
}
