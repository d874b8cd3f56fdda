package stats

import (
	"math"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestMean(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected float64
	}{
		{"Empty", []float64{}, 0},
		{"SingleItem", []float64{5.5}, 5.5},
		{"Mixed", []float64{-10, 0, 10}, 0},
		{"Fractional", []float64{1, 2}, 1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Mean(tt.values); got != tt.expected {
				t.Errorf("Mean() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestMedian(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected float64
	}{
		{"Empty", []float64{}, 0},
		{"SingleItem", []float64{5.5}, 5.5},
		{"OddCount", []float64{1.1, 3.3, 2.2, 4.4, 5.5}, 3.3},
		{"EvenCount", []float64{1.1, 2.2, 3.3, 4.4}, 2.75},
		{"Unsorted", []float64{10.5, 2.5, 8.5, 4.5, 6.5}, 6.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Median(tt.values); got != tt.expected {
				t.Errorf("Median() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestMedian_DoesNotMutateInput(t *testing.T) {
	values := []float64{3, 1, 2}
	Median(values)
	if values[0] != 3 || values[1] != 1 || values[2] != 2 {
		t.Errorf("Median mutated its input: %v", values)
	}
}

func TestMode(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected float64
	}{
		{"Empty", []float64{}, 0},
		{"Clear", []float64{1, 2, 2, 3}, 2},
		{"TieResolvesLow", []float64{2, 2, 1, 1}, 1},
		{"AllDistinct", []float64{3, 1, 2}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Mode(tt.values); got != tt.expected {
				t.Errorf("Mode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestVarianceAndStdDev(t *testing.T) {
	values := []float64{2, 4, 4, 4, 5, 5, 7, 9}

	if got := Variance(values); !almostEqual(got, 4, 1e-9) {
		t.Errorf("Variance() = %v, want 4", got)
	}
	if got := StdDev(values); !almostEqual(got, 2, 1e-9) {
		t.Errorf("StdDev() = %v, want 2", got)
	}
}

func TestPercentile(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	tests := []struct {
		name     string
		q        float64
		expected float64
	}{
		{"P0", 0.0, 1},
		{"P50", 0.5, 6},
		{"P95", 0.95, 10},
		{"P100Clamped", 1.0, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Percentile(values, tt.q); got != tt.expected {
				t.Errorf("Percentile(%.2f) = %v, want %v", tt.q, got, tt.expected)
			}
		})
	}
}

func TestSkewness_ZeroSpread(t *testing.T) {
	if got := Skewness([]float64{5, 5, 5}); !math.IsNaN(got) {
		t.Errorf("Skewness of constant sample = %v, want NaN", got)
	}
	if got := Kurtosis([]float64{5, 5, 5}); !math.IsNaN(got) {
		t.Errorf("Kurtosis of constant sample = %v, want NaN", got)
	}
}

func TestSkewness_Direction(t *testing.T) {
	rightTail := []float64{1, 1, 1, 1, 10}
	if got := Skewness(rightTail); got <= 0 {
		t.Errorf("Skewness of right-tailed sample = %v, want > 0", got)
	}

	leftTail := []float64{-10, 1, 1, 1, 1}
	if got := Skewness(leftTail); got >= 0 {
		t.Errorf("Skewness of left-tailed sample = %v, want < 0", got)
	}
}
