package simulation

import (
	"errors"
	"fmt"

	"rafflesim/internal/raffle"
	"rafflesim/internal/stats"
)

const (
	// maxBatchSize caps how many trials run between cooperative
	// cancellation points.
	maxBatchSize = 1000

	// snapshotInterval is the fixed cadence (in completed trials) at which
	// intermediate stats snapshots are recorded.
	snapshotInterval = 5000
)

// OptimizationGoals are tuning hints consumed by optimization tooling.
// The engine itself never reads them.
type OptimizationGoals struct {
	TargetROI      float64 `json:"target_roi,omitempty"`
	TargetWinRate  float64 `json:"target_win_rate,omitempty"`
	RiskTolerance  string  `json:"risk_tolerance,omitempty"`
	FairnessWeight float64 `json:"fairness_weight,omitempty"`
}

// Config is the immutable input to one simulation run.
type Config struct {
	TotalRuns int                `json:"total_runs"`
	EntryFee  float64            `json:"entry_fee"`
	Prizes    []raffle.Prize     `json:"prizes"`
	BatchSize int                `json:"batch_size"`
	Goals     *OptimizationGoals `json:"optimization_goals,omitempty"`
}

// Validate checks the run parameters. A zero ticket pool is NOT an error:
// draws degrade to "no prize" and the run still produces statistics.
func (c Config) Validate() error {
	if c.TotalRuns <= 0 {
		return errors.New("total_runs must be positive")
	}
	if c.EntryFee < 0 {
		return errors.New("entry_fee must not be negative")
	}
	if c.BatchSize <= 0 {
		return errors.New("batch_size must be positive")
	}
	for i, p := range c.Prizes {
		if p.Quantity < 0 {
			return fmt.Errorf("prize %q: quantity must not be negative", p.ID)
		}
		if p.UserValue < 0 {
			return fmt.Errorf("prize %q: user_value must not be negative", p.ID)
		}
		if p.ID == "" {
			return fmt.Errorf("prize at index %d: missing id", i)
		}
	}
	return nil
}

// effectiveBatch is the per-batch trial count after the hard cap.
func (c Config) effectiveBatch() int {
	if c.BatchSize > maxBatchSize {
		return maxBatchSize
	}
	return c.BatchSize
}

// PrizeAdjustment recommends a quantity change for one prize.
type PrizeAdjustment struct {
	PrizeID             string `json:"prize_id"`
	CurrentQuantity     int    `json:"current_quantity"`
	RecommendedQuantity int    `json:"recommended_quantity"`
	Reason              string `json:"reason"`
}

// ParticipationPrediction estimates demand at the configured entry fee.
// The elasticity and factor weights are fixed heuristic model parameters,
// not fitted values.
type ParticipationPrediction struct {
	ExpectedParticipants float64            `json:"expected_participants"`
	FactorsInfluence     map[string]float64 `json:"factors_influence"`
}

// AdvancedStats is a full statistical snapshot derived from the profit/loss
// history accumulated so far plus the static prize configuration. Every
// field is recomputed from scratch over the whole history.
type AdvancedStats struct {
	Mean     float64 `json:"mean"`
	Median   float64 `json:"median"`
	Mode     float64 `json:"mode"`
	StdDev   float64 `json:"std_dev"`
	Variance float64 `json:"variance"`
	Skewness float64 `json:"skewness"`
	Kurtosis float64 `json:"kurtosis"`

	SharpeRatio  float64 `json:"sharpe_ratio"`
	SortinoRatio float64 `json:"sortino_ratio"`
	// SortinoDefined is false when the sample has no downside observations;
	// SortinoRatio is reported as 0 in that case instead of an infinity.
	SortinoDefined bool    `json:"sortino_defined"`
	CalmarRatio    float64 `json:"calmar_ratio"`
	MaxDrawdown    float64 `json:"max_drawdown"`

	ValueAtRisk95     float64 `json:"value_at_risk_95"`
	ConditionalVaR95  float64 `json:"conditional_var_95"`
	TailRisk          float64 `json:"tail_risk"`
	ExpectedShortfall float64 `json:"expected_shortfall"`
	RiskParityScore   float64 `json:"risk_parity_score"`

	Bayesian stats.Posterior `json:"bayesian"`

	FairnessIndex   float64 `json:"fairness_index"`
	GiniCoefficient float64 `json:"gini_coefficient"`
	EntropyScore    float64 `json:"entropy_score"`

	KellyBetSize     float64                 `json:"kelly_bet_size"`
	OptimalEntryFee  float64                 `json:"optimal_entry_fee"`
	PrizeAdjustments []PrizeAdjustment       `json:"prize_adjustments"`
	Participation    ParticipationPrediction `json:"participation"`
}

// Priority ranks an optimization suggestion.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

func (p Priority) rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// ExpectedImpact carries the fixed impact figures attached to a suggestion.
type ExpectedImpact struct {
	ROIChange           float64 `json:"roi_change"`
	ParticipationChange float64 `json:"participation_change"`
}

// OptimizationSuggestion is one rule-based recommendation derived from the
// final statistics of a run.
type OptimizationSuggestion struct {
	Type        string         `json:"type"`
	Description string         `json:"description"`
	Priority    Priority       `json:"priority"`
	Impact      ExpectedImpact `json:"expected_impact"`
	Confidence  float64        `json:"confidence"`
}

// Progress is reported to the caller after every completed batch.
type Progress struct {
	Progress       float64       `json:"progress"` // 0..100
	CurrentRun     int           `json:"current_run"`
	CurrentStats   AdvancedStats `json:"current_stats"`
	RunningAverage float64       `json:"running_average"`
}

// ProgressFunc receives batch progress. Callbacks fire in batch order and
// never concurrently with each other.
type ProgressFunc func(Progress)

// Result is the terminal output of a run. A run stopped early still yields
// a valid Result over the trials that completed.
type Result struct {
	TotalRuns         int                      `json:"total_runs"`
	Stopped           bool                     `json:"stopped"`
	WinCounts         map[string]int           `json:"win_counts"`
	TotalValue        float64                  `json:"total_value"`
	TotalCost         float64                  `json:"total_cost"`
	ROI               float64                  `json:"roi"`
	WinRate           float64                  `json:"win_rate"`
	Distribution      map[string]float64       `json:"distribution"`
	ProfitLossHistory []float64                `json:"profit_loss_history"`
	CumulativeReturns []float64                `json:"cumulative_returns"`
	RunningStats      []AdvancedStats          `json:"running_stats"`
	FinalStats        AdvancedStats            `json:"final_stats"`
	Suggestions       []OptimizationSuggestion `json:"suggestions"`
}
