package raffle

import (
	"rafflesim/internal/stats"
)

// ExpectedValue is the probability-weighted payout of a single draw.
func ExpectedValue(prizes []Prize) float64 {
	total := TotalTickets(prizes)
	if total == 0 {
		return 0
	}
	ev := 0.0
	for _, p := range prizes {
		ev += float64(p.Quantity) / float64(total) * p.UserValue
	}
	return ev
}

// TheoreticalROI is the closed-form return on investment in percent for a
// single draw at the given entry fee. Returns 0 when the fee is 0.
func TheoreticalROI(prizes []Prize, entryFee float64) float64 {
	if entryFee <= 0 {
		return 0
	}
	return (ExpectedValue(prizes) - entryFee) / entryFee * 100
}

// FairnessScore is the Shannon entropy of the win-probability distribution,
// normalized to [0, 1]. Equal ticket quantities across all prizes score 1.
// Fewer than two prizes holding tickets is a single-outcome distribution and
// scores 1 by convention.
func FairnessScore(prizes []Prize) float64 {
	probs := make([]float64, 0, len(prizes))
	for _, p := range WinProbabilities(prizes) {
		if p > 0 {
			probs = append(probs, p)
		}
	}
	if len(probs) <= 1 {
		return 1
	}
	return stats.Entropy(probs) / stats.MaxEntropy(len(probs))
}
