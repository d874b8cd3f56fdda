package simulation

import (
	"math"
	"sort"

	"rafflesim/internal/raffle"
)

// Product-policy constants for prize quantity recommendations and demand
// prediction. They carry no statistical derivation; changing them changes
// observable recommendations, so they stay verbatim.
const (
	scarcityValueRatio   = 10.0 // prize worth >10x the fee
	scarcityWinProb      = 0.1  // ...and won more than 10% of the time
	abundanceValueRatio  = 2.0  // prize worth <2x the fee
	abundanceWinProb     = 0.3  // ...and won less than 30% of the time
	quantityNudge        = 0.3  // ±30% quantity adjustments
	optimalFeeMultiplier = 0.85
	demandBaseline       = 1000.0 // participants at a fee of 100
	demandElasticity     = -1.2
)

// RecommendPrizeAdjustments compares each prize's value ratio and win
// probability against the fixed policy thresholds. High-value prizes that
// hit too often get scarcer; low-value prizes that hit too rarely get more
// tickets. A zero entry fee gives no value ratio to reason about, so no
// adjustments are produced.
func RecommendPrizeAdjustments(prizes []raffle.Prize, entryFee float64) []PrizeAdjustment {
	if entryFee <= 0 {
		return nil
	}

	probs := raffle.WinProbabilities(prizes)
	adjustments := make([]PrizeAdjustment, 0)

	for i, p := range prizes {
		valueRatio := p.UserValue / entryFee

		switch {
		case valueRatio > scarcityValueRatio && probs[i] > scarcityWinProb:
			reduced := int(float64(p.Quantity) * (1 - quantityNudge))
			if reduced < 1 {
				reduced = 1
			}
			adjustments = append(adjustments, PrizeAdjustment{
				PrizeID:             p.ID,
				CurrentQuantity:     p.Quantity,
				RecommendedQuantity: reduced,
				Reason:              "High-value prize wins too often; reduce quantity to increase scarcity",
			})
		case valueRatio < abundanceValueRatio && probs[i] < abundanceWinProb:
			increased := int(math.Ceil(float64(p.Quantity) * (1 + quantityNudge)))
			adjustments = append(adjustments, PrizeAdjustment{
				PrizeID:             p.ID,
				CurrentQuantity:     p.Quantity,
				RecommendedQuantity: increased,
				Reason:              "Low-value prize wins too rarely; increase quantity to raise the win rate",
			})
		}
	}
	return adjustments
}

// OptimalEntryFee prices a draw slightly below its expected value.
func OptimalEntryFee(prizes []raffle.Prize) float64 {
	return raffle.ExpectedValue(prizes) * optimalFeeMultiplier
}

// PredictParticipation applies the constant-elasticity demand curve to the
// entry fee. The factor influence map is a fixed heuristic, published as-is.
// The curve diverges at a zero price, so a non-positive fee predicts zero
// participants instead.
func PredictParticipation(entryFee float64) ParticipationPrediction {
	expected := 0.0
	if entryFee > 0 {
		expected = math.Max(0, demandBaseline*math.Pow(entryFee/100, demandElasticity))
	}
	return ParticipationPrediction{
		ExpectedParticipants: expected,
		FactorsInfluence: map[string]float64{
			"entryFee":   -0.8,
			"prizeValue": 0.6,
			"fairness":   0.3,
			"winRate":    0.4,
		},
	}
}

// GenerateSuggestions evaluates the rule table against final stats and
// returns suggestions ordered by priority, high first. Ties keep their
// generation order.
func GenerateSuggestions(final AdvancedStats) []OptimizationSuggestion {
	suggestions := make([]OptimizationSuggestion, 0)

	if final.Mean < 0 {
		suggestions = append(suggestions, OptimizationSuggestion{
			Type:        "entry_fee",
			Description: "Average trial loses money; adjust the entry fee toward the optimal fee",
			Priority:    PriorityHigh,
			Impact:      ExpectedImpact{ROIChange: 15, ParticipationChange: 10},
			Confidence:  0.85,
		})
	}
	if final.FairnessIndex < 0.7 {
		suggestions = append(suggestions, OptimizationSuggestion{
			Type:        "prize_balance",
			Description: "Win probabilities are concentrated; rebalance prize quantities",
			Priority:    PriorityMedium,
			Impact:      ExpectedImpact{ROIChange: 5, ParticipationChange: 8},
			Confidence:  0.75,
		})
	}
	if final.SharpeRatio < 0.5 {
		suggestions = append(suggestions, OptimizationSuggestion{
			Type:        "prize_composition",
			Description: "Risk-adjusted return is weak; review the prize value composition",
			Priority:    PriorityMedium,
			Impact:      ExpectedImpact{ROIChange: 8, ParticipationChange: 3},
			Confidence:  0.7,
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Priority.rank() > suggestions[j].Priority.rank()
	})
	return suggestions
}

// RiskLevel buckets a stats snapshot into "low", "medium" or "high" for
// display purposes.
func RiskLevel(s AdvancedStats) string {
	switch {
	case s.SharpeRatio >= 0.5 && s.Mean >= 0:
		return "low"
	case s.SharpeRatio >= 0 || s.Mean >= 0:
		return "medium"
	default:
		return "high"
	}
}

// OptimizationScore condenses a snapshot into a 0-100 number: 40% squashed
// Sharpe ratio, 30% fairness, 30% Kelly fraction.
func OptimizationScore(s AdvancedStats) float64 {
	sharpe := clamp01((s.SharpeRatio + 1) / 2)
	fairness := clamp01(s.FairnessIndex)
	kelly := clamp01(s.KellyBetSize)
	return 100 * (0.4*sharpe + 0.3*fairness + 0.3*kelly)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
