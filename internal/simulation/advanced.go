package simulation

import (
	"math"

	"rafflesim/internal/raffle"
	"rafflesim/internal/stats"
)

// ComputeAdvancedStats derives a full statistical snapshot from a raw
// profit/loss sequence and the static prize configuration. It is the
// synchronous stats-only entry point: callers with an existing history can
// analyze it without running a simulation.
func ComputeAdvancedStats(history []float64, prizes []raffle.Prize, entryFee float64) AdvancedStats {
	mean := stats.Mean(history)
	sd := stats.StdDev(history)
	cumulative := cumulativeSums(history)

	s := AdvancedStats{
		Mean:     mean,
		Median:   stats.Median(history),
		Mode:     stats.Mode(history),
		StdDev:   sd,
		Variance: stats.Variance(history),

		SharpeRatio: stats.SharpeRatio(history),
		CalmarRatio: stats.CalmarRatio(history, cumulative),
		MaxDrawdown: stats.MaxDrawdown(cumulative),

		ValueAtRisk95:     stats.ValueAtRisk(history, 0.95),
		ConditionalVaR95:  stats.ConditionalVaR(history, 0.95),
		TailRisk:          stats.ConditionalVaR(history, 0.99),
		ExpectedShortfall: stats.ConditionalVaR(history, 0.95),

		Bayesian: stats.BayesianUpdate(history, 0, stats.DefaultPriorVariance),

		FairnessIndex:   raffle.FairnessScore(prizes),
		GiniCoefficient: prizeValueGini(prizes),
		EntropyScore:    stats.Entropy(raffle.WinProbabilities(prizes)),

		KellyBetSize:     kellyBetSize(history),
		OptimalEntryFee:  OptimalEntryFee(prizes),
		PrizeAdjustments: RecommendPrizeAdjustments(prizes, entryFee),
		Participation:    PredictParticipation(entryFee),
	}

	// A sample without dispersion carries no shape signal; report the
	// moments as 0 instead of propagating NaN into JSON encoding.
	if skew := stats.Skewness(history); !math.IsNaN(skew) {
		s.Skewness = skew
	}
	if kurt := stats.Kurtosis(history); !math.IsNaN(kurt) {
		s.Kurtosis = kurt
	}

	if sortino, ok := stats.SortinoRatio(history, 0); ok {
		s.SortinoRatio = sortino
		s.SortinoDefined = true
	}

	if denom := math.Abs(mean) + sd; denom > 0 {
		s.RiskParityScore = math.Abs(mean) / denom
	}

	return s
}

// cumulativeSums builds the running-total series of a profit/loss history.
func cumulativeSums(history []float64) []float64 {
	out := make([]float64, len(history))
	running := 0.0
	for i, v := range history {
		running += v
		out[i] = running
	}
	return out
}

// prizeValueGini measures inequality across the configured prize values.
// Quadratic in the number of prizes, which is small and bounded.
func prizeValueGini(prizes []raffle.Prize) float64 {
	values := make([]float64, len(prizes))
	for i, p := range prizes {
		values[i] = p.UserValue
	}
	return stats.GiniCoefficient(values)
}

// kellyBetSize is the classic Kelly fraction over the observed win/loss
// split, clamped to zero for losing games.
func kellyBetSize(history []float64) float64 {
	if len(history) == 0 {
		return 0
	}

	winSum, lossSum := 0.0, 0.0
	wins, losses := 0, 0
	for _, v := range history {
		if v > 0 {
			winSum += v
			wins++
		} else if v < 0 {
			lossSum += -v
			losses++
		}
	}
	if wins == 0 {
		return 0
	}

	p := float64(wins) / float64(len(history))
	avgWin := winSum / float64(wins)
	avgLoss := 0.0
	if losses > 0 {
		avgLoss = lossSum / float64(losses)
	}

	kelly := (p*avgWin - (1-p)*avgLoss) / avgWin
	return math.Max(0, kelly)
}
