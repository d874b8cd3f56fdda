package simulation

import (
	"math"
	"testing"

	"rafflesim/internal/raffle"
)

func TestRecommendPrizeAdjustments(t *testing.T) {
	t.Run("ScarcityRule", func(t *testing.T) {
		// Value ratio 100 (>10), win probability 0.2 (>0.1): reduce by 30%.
		prizes := []raffle.Prize{
			{ID: "jackpot", Quantity: 20, UserValue: 1000},
			{ID: "filler", Quantity: 80, UserValue: 25},
		}
		adj := RecommendPrizeAdjustments(prizes, 10)

		if len(adj) != 1 {
			t.Fatalf("got %d adjustments, want 1: %+v", len(adj), adj)
		}
		if adj[0].PrizeID != "jackpot" {
			t.Errorf("adjusted %q, want jackpot", adj[0].PrizeID)
		}
		if adj[0].RecommendedQuantity != 14 { // 20 * 0.7
			t.Errorf("RecommendedQuantity = %d, want 14", adj[0].RecommendedQuantity)
		}
	})

	t.Run("ScarcityFloorsAtOne", func(t *testing.T) {
		prizes := []raffle.Prize{
			{ID: "jackpot", Quantity: 1, UserValue: 1000},
			{ID: "filler", Quantity: 4, UserValue: 30},
		}
		// Jackpot: ratio 100, probability 0.2 → reduce, but never below 1.
		adj := RecommendPrizeAdjustments(prizes, 10)
		if len(adj) != 1 || adj[0].RecommendedQuantity != 1 {
			t.Errorf("adjustments = %+v, want jackpot floored at quantity 1", adj)
		}
	})

	t.Run("AbundanceRule", func(t *testing.T) {
		// Value ratio 1.5 (<2), win probability 0.1 (<0.3): increase by 30%.
		prizes := []raffle.Prize{
			{ID: "small", Quantity: 10, UserValue: 15},
			{ID: "rest", Quantity: 90, UserValue: 40},
		}
		adj := RecommendPrizeAdjustments(prizes, 10)

		if len(adj) != 1 {
			t.Fatalf("got %d adjustments, want 1: %+v", len(adj), adj)
		}
		if adj[0].PrizeID != "small" || adj[0].RecommendedQuantity != 13 {
			t.Errorf("adjustment = %+v, want small → 13", adj[0])
		}
	})

	t.Run("InBandNoChange", func(t *testing.T) {
		// Value ratio 5, neither rule fires.
		prizes := []raffle.Prize{{ID: "mid", Quantity: 10, UserValue: 50}}
		if adj := RecommendPrizeAdjustments(prizes, 10); len(adj) != 0 {
			t.Errorf("got %d adjustments, want none: %+v", len(adj), adj)
		}
	})

	t.Run("ZeroFee", func(t *testing.T) {
		prizes := []raffle.Prize{{ID: "a", Quantity: 10, UserValue: 50}}
		if adj := RecommendPrizeAdjustments(prizes, 0); adj != nil {
			t.Errorf("got %+v, want nil for a zero entry fee", adj)
		}
	})
}

func TestOptimalEntryFee(t *testing.T) {
	prizes := []raffle.Prize{
		{ID: "a", Quantity: 1, UserValue: 1000},
		{ID: "b", Quantity: 99, UserValue: 0},
	}
	// EV = 10 → fee 8.5
	if got := OptimalEntryFee(prizes); math.Abs(got-8.5) > 1e-9 {
		t.Errorf("OptimalEntryFee() = %v, want 8.5", got)
	}
}

func TestPredictParticipation(t *testing.T) {
	t.Run("BaselineFee", func(t *testing.T) {
		p := PredictParticipation(100)
		if math.Abs(p.ExpectedParticipants-1000) > 1e-9 {
			t.Errorf("ExpectedParticipants at fee 100 = %v, want 1000", p.ExpectedParticipants)
		}
	})

	t.Run("CheaperMeansMore", func(t *testing.T) {
		cheap := PredictParticipation(10).ExpectedParticipants
		pricey := PredictParticipation(200).ExpectedParticipants
		if cheap <= pricey {
			t.Errorf("demand curve inverted: fee 10 → %v, fee 200 → %v", cheap, pricey)
		}
	})

	t.Run("ZeroFeeClamps", func(t *testing.T) {
		if p := PredictParticipation(0); p.ExpectedParticipants != 0 {
			t.Errorf("ExpectedParticipants at fee 0 = %v, want 0", p.ExpectedParticipants)
		}
	})

	t.Run("FactorWeights", func(t *testing.T) {
		p := PredictParticipation(50)
		want := map[string]float64{"entryFee": -0.8, "prizeValue": 0.6, "fairness": 0.3, "winRate": 0.4}
		for k, v := range want {
			if p.FactorsInfluence[k] != v {
				t.Errorf("FactorsInfluence[%q] = %v, want %v", k, p.FactorsInfluence[k], v)
			}
		}
	})
}

func TestGenerateSuggestions(t *testing.T) {
	t.Run("AllRulesFire", func(t *testing.T) {
		final := AdvancedStats{Mean: -1, FairnessIndex: 0.5, SharpeRatio: 0.1}
		got := GenerateSuggestions(final)

		if len(got) != 3 {
			t.Fatalf("got %d suggestions, want 3", len(got))
		}
		if got[0].Priority != PriorityHigh {
			t.Errorf("first suggestion priority = %q, want high", got[0].Priority)
		}
		// Stable sort: the two medium suggestions keep generation order.
		if got[1].Type != "prize_balance" || got[2].Type != "prize_composition" {
			t.Errorf("medium suggestions reordered: %q, %q", got[1].Type, got[2].Type)
		}
	})

	t.Run("FixedFigures", func(t *testing.T) {
		got := GenerateSuggestions(AdvancedStats{Mean: -1, FairnessIndex: 1, SharpeRatio: 1})
		if len(got) != 1 {
			t.Fatalf("got %d suggestions, want 1", len(got))
		}
		s := got[0]
		if s.Impact.ROIChange != 15 || s.Impact.ParticipationChange != 10 || s.Confidence != 0.85 {
			t.Errorf("entry fee suggestion figures changed: %+v", s)
		}
	})

	t.Run("HealthyConfigNoSuggestions", func(t *testing.T) {
		got := GenerateSuggestions(AdvancedStats{Mean: 2, FairnessIndex: 0.9, SharpeRatio: 1.2})
		if len(got) != 0 {
			t.Errorf("got %d suggestions, want none: %+v", len(got), got)
		}
	})
}

func TestRiskLevel(t *testing.T) {
	tests := []struct {
		name string
		s    AdvancedStats
		want string
	}{
		{"Low", AdvancedStats{SharpeRatio: 0.8, Mean: 1}, "low"},
		{"MediumPositiveMean", AdvancedStats{SharpeRatio: -0.2, Mean: 0.5}, "medium"},
		{"MediumFlat", AdvancedStats{SharpeRatio: 0, Mean: 0}, "medium"},
		{"High", AdvancedStats{SharpeRatio: -1, Mean: -3}, "high"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RiskLevel(tt.s); got != tt.want {
				t.Errorf("RiskLevel() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOptimizationScore_Bounds(t *testing.T) {
	worst := OptimizationScore(AdvancedStats{SharpeRatio: -10, FairnessIndex: 0, KellyBetSize: 0})
	best := OptimizationScore(AdvancedStats{SharpeRatio: 10, FairnessIndex: 1, KellyBetSize: 1})

	if worst != 0 {
		t.Errorf("worst score = %v, want 0", worst)
	}
	if best != 100 {
		t.Errorf("best score = %v, want 100", best)
	}
}
