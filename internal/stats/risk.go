package stats

import (
	"math"
	"slices"
)

// SharpeRatio is the mean return over its standard deviation (risk-free
// rate 0). Returns 0 when the sample has no dispersion.
func SharpeRatio(returns []float64) float64 {
	sd := StdDev(returns)
	if sd == 0 {
		return 0
	}
	return Mean(returns) / sd
}

// SortinoRatio is the mean excess return over the downside deviation, where
// only observations below targetReturn count as risk. The second return
// value is false when the sample contains no downside observations; the
// ratio is undefined in that case rather than infinite.
func SortinoRatio(returns []float64, targetReturn float64) (float64, bool) {
	if len(returns) == 0 {
		return 0, false
	}

	downAcc := 0.0
	downCount := 0
	for _, r := range returns {
		if r < targetReturn {
			d := r - targetReturn
			downAcc += d * d
			downCount++
		}
	}
	if downCount == 0 {
		return 0, false
	}

	downsideDev := math.Sqrt(downAcc / float64(len(returns)))
	if downsideDev == 0 {
		return 0, false
	}
	return (Mean(returns) - targetReturn) / downsideDev, true
}

// CalmarRatio is the mean return over the maximum drawdown of the
// cumulative series. Returns 0 when no drawdown occurred.
func CalmarRatio(returns, cumulative []float64) float64 {
	dd := MaxDrawdown(cumulative)
	if dd == 0 {
		return 0
	}
	return Mean(returns) / dd
}

// MaxDrawdown returns the largest peak-to-trough decline of a cumulative
// series, as a non-negative magnitude.
func MaxDrawdown(cumulative []float64) float64 {
	if len(cumulative) == 0 {
		return 0
	}

	peak := cumulative[0]
	maxDD := 0.0
	for _, v := range cumulative {
		if v > peak {
			peak = v
		}
		if dd := peak - v; dd > maxDD {
			maxDD = dd
		}
	}
	return maxDD
}

// ValueAtRisk returns the loss magnitude at the given confidence level,
// e.g. confidence 0.95 reads the 5th percentile of the sample. Gains clamp
// to 0: VaR never reports a negative loss.
func ValueAtRisk(returns []float64, confidence float64) float64 {
	if len(returns) == 0 {
		return 0
	}
	q := Percentile(returns, 1-confidence)
	return math.Max(0, -q)
}

// ConditionalVaR returns the expected loss magnitude given that the loss
// exceeds the VaR threshold (the mean of the worst (1-confidence) tail).
func ConditionalVaR(returns []float64, confidence float64) float64 {
	if len(returns) == 0 {
		return 0
	}

	temp := make([]float64, len(returns))
	copy(temp, returns)
	slices.Sort(temp)

	cut := int(float64(len(temp)) * (1 - confidence))
	if cut < 1 {
		cut = 1
	}
	tail := temp[:cut]
	return math.Max(0, -Mean(tail))
}
