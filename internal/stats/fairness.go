package stats

import "math"

// GiniCoefficient measures inequality of the value distribution: the mean
// absolute pairwise difference divided by 2·n²·mean. Identical values score
// 0. Quadratic, intended for prize-sized inputs, not trial histories.
func GiniCoefficient(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}

	mean := Mean(values)
	if mean == 0 {
		return 0
	}

	diffSum := 0.0
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			diffSum += math.Abs(values[i] - values[j])
		}
	}
	return diffSum / (2 * float64(n) * float64(n) * mean)
}

// Entropy is the Shannon entropy -Σ p·log2(p) of a probability vector.
// Zero-probability terms are skipped.
func Entropy(probabilities []float64) float64 {
	h := 0.0
	for _, p := range probabilities {
		if p > 0 {
			h -= p * math.Log2(p)
		}
	}
	return h
}

// MaxEntropy is the entropy of a uniform distribution over k outcomes.
func MaxEntropy(k int) float64 {
	if k <= 1 {
		return 0
	}
	return math.Log2(float64(k))
}
