package distance

import (
	"errors"
	"math"
	"testing"
)

func TestMetrics(t *testing.T) {
	a := []float64{0, 0, 0}
	b := []float64{3, 4, 0}

	tests := []struct {
		metric   Metric
		expected float64
	}{
		{MetricEuclidean, 5},
		{MetricManhattan, 7},
		{MetricChebyshev, 4},
	}

	for _, tt := range tests {
		t.Run(tt.metric.String(), func(t *testing.T) {
			d, err := tt.metric.Func()(a, b)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if math.Abs(d-tt.expected) > 1e-12 {
				t.Errorf("Expected %f, got %f", tt.expected, d)
			}

			back, _ := tt.metric.Func()(b, a)
			if back != d {
				t.Errorf("Distance must be symmetric: %f != %f", d, back)
			}

			self, _ := tt.metric.Func()(b, b)
			if self != 0 {
				t.Errorf("Expected zero self distance, got %f", self)
			}
		})
	}
}

func TestEuclidean_LengthMismatch(t *testing.T) {
	_, err := Euclidean([]float64{1, 2}, []float64{1})
	if !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("Expected ErrLengthMismatch, got %v", err)
	}
}

func TestParseMetric(t *testing.T) {
	tests := []struct {
		name     string
		expected Metric
		wantErr  bool
	}{
		{"", MetricEuclidean, false},
		{"Euclidean", MetricEuclidean, false},
		{"l1", MetricManhattan, false},
		{"chebyshev", MetricChebyshev, false},
		{"cosine", 0, true},
	}

	for _, tt := range tests {
		m, err := ParseMetric(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMetric(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && m != tt.expected {
			t.Errorf("ParseMetric(%q) = %s, want %s", tt.name, m, tt.expected)
		}
	}
}

func TestMetrics_RoundTripNames(t *testing.T) {
	for _, m := range Metrics() {
		parsed, err := ParseMetric(m.String())
		if err != nil || parsed != m {
			t.Errorf("ParseMetric(%q) = %v, %v", m.String(), parsed, err)
		}
	}
}
