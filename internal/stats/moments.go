package stats

import "math"

// Skewness returns the standardized third moment of values. A zero standard
// deviation carries no directional signal and returns NaN; callers must
// guard when the sample has fewer than two distinct values.
func Skewness(values []float64) float64 {
	n := float64(len(values))
	if n == 0 {
		return math.NaN()
	}
	mean := Mean(values)
	sd := StdDev(values)
	if sd == 0 {
		return math.NaN()
	}

	acc := 0.0
	for _, v := range values {
		z := (v - mean) / sd
		acc += z * z * z
	}
	return acc / n
}

// Kurtosis returns the standardized fourth moment of values (not excess
// kurtosis; a normal distribution scores 3). NaN when the standard
// deviation is zero.
func Kurtosis(values []float64) float64 {
	n := float64(len(values))
	if n == 0 {
		return math.NaN()
	}
	mean := Mean(values)
	sd := StdDev(values)
	if sd == 0 {
		return math.NaN()
	}

	acc := 0.0
	for _, v := range values {
		z := (v - mean) / sd
		acc += z * z * z * z
	}
	return acc / n
}
