package simulation

import (
	"context"
	"sync/atomic"
	"time"
)

// pausePollInterval is how often a paused engine rechecks its control
// flags.
const pausePollInterval = 50 * time.Millisecond

// controlToken carries the cooperative stop/pause signals into a run. The
// flags are atomic because Pause/Resume/Stop are called from a different
// goroutine than the run loop; there is no parallelism inside the run
// itself.
type controlToken struct {
	stop  atomic.Bool
	pause atomic.Bool
}

// Engine performs one Monte Carlo raffle simulation. An engine is built
// fresh per run and discarded afterwards; Run must only be called once.
type Engine struct {
	cfg     Config
	sampler *Sampler
	src     Source
	ctl     controlToken
}

// NewEngine validates the configuration and prepares a run. A nil source
// selects the non-deterministic default.
func NewEngine(cfg Config, src Source) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if src == nil {
		src = NewCryptoSource()
	}
	return &Engine{
		cfg:     cfg,
		sampler: NewSampler(cfg.Prizes),
		src:     src,
	}, nil
}

// Stop asks the run loop to exit at the next batch boundary. Stopping is
// not an error: the trials completed so far become the (partial) result.
func (e *Engine) Stop() { e.ctl.stop.Store(true) }

// Pause suspends the run loop at the next batch boundary.
func (e *Engine) Pause() { e.ctl.pause.Store(true) }

// Resume releases a paused run loop.
func (e *Engine) Resume() { e.ctl.pause.Store(false) }

// Run executes the configured trials in batches. Trials run strictly
// sequentially; the stop flag is checked once per batch and a pause holds
// the loop in a poll-sleep cycle between batches. After every batch the
// advanced statistics are recomputed over the entire accumulated history
// and reported through onProgress.
//
// Context cancellation aborts the run and returns ctx.Err() alongside the
// partial result; a cooperative Stop returns the partial result with a nil
// error.
func (e *Engine) Run(ctx context.Context, onProgress ProgressFunc) (*Result, error) {
	totalRuns := e.cfg.TotalRuns
	batch := e.cfg.effectiveBatch()

	history := make([]float64, 0, totalRuns)
	cumulative := make([]float64, 0, totalRuns)
	winCounts := make(map[string]int)
	runningStats := make([]AdvancedStats, 0)

	totalValue, totalCost := 0.0, 0.0
	runningTotal := 0.0
	completed := 0
	stopped := false
	var runErr error

loop:
	for completed < totalRuns {
		// 1. Cooperative stop, once per batch.
		if e.ctl.stop.Load() {
			stopped = true
			break
		}

		// 2. Cooperative pause: poll until resumed, stopped or canceled.
		for e.ctl.pause.Load() {
			if e.ctl.stop.Load() {
				stopped = true
				break loop
			}
			select {
			case <-ctx.Done():
				stopped = true
				runErr = ctx.Err()
				break loop
			case <-time.After(pausePollInterval):
			}
		}

		select {
		case <-ctx.Done():
			stopped = true
			runErr = ctx.Err()
			break loop
		default:
		}

		// 3. Run one batch of sequential trials.
		n := batch
		if remaining := totalRuns - completed; remaining < n {
			n = remaining
		}
		for i := 0; i < n; i++ {
			prize := e.sampler.Draw(e.src)

			pl := -e.cfg.EntryFee
			totalCost += e.cfg.EntryFee
			if prize != nil {
				pl += prize.UserValue
				totalValue += prize.UserValue
				winCounts[prize.ID]++
			}

			history = append(history, pl)
			runningTotal += pl
			cumulative = append(cumulative, runningTotal)
			completed++

			if completed%snapshotInterval == 0 {
				runningStats = append(runningStats, ComputeAdvancedStats(history, e.cfg.Prizes, e.cfg.EntryFee))
			}
		}

		// 4. Full recompute over the whole history, then report.
		if onProgress != nil {
			current := ComputeAdvancedStats(history, e.cfg.Prizes, e.cfg.EntryFee)
			onProgress(Progress{
				Progress:       float64(completed) / float64(totalRuns) * 100,
				CurrentRun:     completed,
				CurrentStats:   current,
				RunningAverage: runningTotal / float64(completed),
			})
		}
	}

	final := ComputeAdvancedStats(history, e.cfg.Prizes, e.cfg.EntryFee)

	result := &Result{
		TotalRuns:         completed,
		Stopped:           stopped,
		WinCounts:         winCounts,
		TotalValue:        totalValue,
		TotalCost:         totalCost,
		ProfitLossHistory: history,
		CumulativeReturns: cumulative,
		RunningStats:      runningStats,
		FinalStats:        final,
		Suggestions:       GenerateSuggestions(final),
		Distribution:      make(map[string]float64),
	}

	if totalCost > 0 {
		result.ROI = (totalValue - totalCost) / totalCost * 100
	}
	if completed > 0 {
		wins := 0
		for id, count := range winCounts {
			result.Distribution[id] = float64(count) / float64(completed) * 100
			wins += count
		}
		result.WinRate = float64(wins) / float64(completed) * 100
	}

	return result, runErr
}
