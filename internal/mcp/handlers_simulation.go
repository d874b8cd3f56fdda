package mcp

import (
	"context"
	"fmt"
	"time"

	"rafflesim/internal/raffle"
	"rafflesim/internal/runlog"
	"rafflesim/internal/simulation"
	"rafflesim/internal/visuals"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
)

// RunSimulationArgs is the input of the run_raffle_simulation tool.
type RunSimulationArgs struct {
	TotalRuns int            `json:"total_runs"`
	EntryFee  float64        `json:"entry_fee"`
	Prizes    []raffle.Prize `json:"prizes"`
	BatchSize int            `json:"batch_size,omitempty"`
	Seed      *int64         `json:"seed,omitempty"`
	Scenario  string         `json:"scenario,omitempty"`
}

// RunSummary is the structured output of the run tool. It deliberately
// omits the raw trial histories: at 10^5 trials they dwarf every other
// field and clients only chart them, which the mermaid output covers.
type RunSummary struct {
	Scenario          string                              `json:"scenario"`
	TotalRuns         int                                 `json:"total_runs"`
	Stopped           bool                                `json:"stopped,omitempty"`
	ROI               float64                             `json:"roi"`
	TheoreticalROI    float64                             `json:"theoretical_roi"`
	WinRate           float64                             `json:"win_rate"`
	Distribution      map[string]float64                  `json:"distribution"`
	FinalStats        simulation.AdvancedStats            `json:"final_stats"`
	RiskLevel         string                              `json:"risk_level"`
	OptimizationScore float64                             `json:"optimization_score"`
	Suggestions       []simulation.OptimizationSuggestion `json:"suggestions"`
	Charts            []string                            `json:"charts,omitempty"`
}

func (s *Server) registerSimulationTools(server *mcp.Server) {
	tool := &mcp.Tool{
		Name: "run_raffle_simulation",
		Description: "Run a Monte Carlo simulation of a ticket-weighted raffle: draws prizes for the " +
			"requested number of trials, accumulates the profit/loss series and returns the full " +
			"statistical snapshot (risk ratios, VaR, fairness, Kelly sizing) plus optimization suggestions. " +
			"Supply a seed for reproducible results.",
	}
	if schema, err := jsonschema.For[RunSimulationArgs](nil); err == nil {
		if p, ok := schema.Properties["total_runs"]; ok {
			p.Description = "Number of independent trials to simulate (1 to the configured cap)."
		}
		if p, ok := schema.Properties["seed"]; ok {
			p.Description = "Optional integer seed; identical (config, seed) pairs reproduce results exactly."
		}
		if p, ok := schema.Properties["batch_size"]; ok {
			p.Description = "Trials per batch between progress checkpoints, capped at 1000."
		}
		tool.InputSchema = schema
	}

	mcp.AddTool(server, tool, s.handleRunSimulation)
}

func (s *Server) handleRunSimulation(ctx context.Context, req *mcp.CallToolRequest, args RunSimulationArgs) (*mcp.CallToolResult, RunSummary, error) {
	if args.TotalRuns > s.cfg.MaxRuns {
		return nil, RunSummary{}, fmt.Errorf("total_runs %d exceeds the configured cap of %d", args.TotalRuns, s.cfg.MaxRuns)
	}

	cfg := simulation.Config{
		TotalRuns: args.TotalRuns,
		EntryFee:  args.EntryFee,
		Prizes:    args.Prizes,
		BatchSize: args.BatchSize,
	}
	if cfg.BatchSize == 0 {
		cfg.BatchSize = s.cfg.DefaultBatchSize
	}

	var src simulation.Source
	if args.Seed != nil {
		src = simulation.NewSeededSource(*args.Seed)
	}

	controller := simulation.NewController()
	err := controller.Run(ctx, cfg, src, func(p simulation.Progress) {
		log.Debug().
			Float64("progress", p.Progress).
			Int("run", p.CurrentRun).
			Float64("avg", p.RunningAverage).
			Msg("Simulation progress")
	})
	if err != nil {
		return nil, RunSummary{}, err
	}

	res := controller.Snapshot().Result
	scenario := args.Scenario
	if scenario == "" {
		scenario = "ad-hoc"
	}

	summary := RunSummary{
		Scenario:          scenario,
		TotalRuns:         res.TotalRuns,
		Stopped:           res.Stopped,
		ROI:               res.ROI,
		TheoreticalROI:    raffle.TheoreticalROI(cfg.Prizes, cfg.EntryFee),
		WinRate:           res.WinRate,
		Distribution:      res.Distribution,
		FinalStats:        res.FinalStats,
		RiskLevel:         simulation.RiskLevel(res.FinalStats),
		OptimizationScore: simulation.OptimizationScore(res.FinalStats),
		Suggestions:       res.Suggestions,
	}

	if s.cfg.EnableMermaidCharts {
		if chart := visuals.GenerateProfitLossChart(res.CumulativeReturns); chart != "" {
			summary.Charts = append(summary.Charts, chart)
		}
		if chart := visuals.GenerateDistributionChart(res.Distribution); chart != "" {
			summary.Charts = append(summary.Charts, chart)
		}
	}

	if err := s.store.Append(s.cfg.Profile, runlog.Record{
		Timestamp:   time.Now(),
		Scenario:    scenario,
		Seed:        args.Seed,
		TotalRuns:   res.TotalRuns,
		Stopped:     res.Stopped,
		EntryFee:    cfg.EntryFee,
		ROI:         res.ROI,
		WinRate:     res.WinRate,
		MeanPL:      res.FinalStats.Mean,
		Fairness:    res.FinalStats.FairnessIndex,
		Suggestions: len(res.Suggestions),
	}); err != nil {
		log.Warn().Err(err).Msg("Failed to append run log record")
	}

	text := fmt.Sprintf("Simulated %d trials: ROI %.2f%%, win rate %.2f%%, risk %s, %d suggestion(s).",
		summary.TotalRuns, summary.ROI, summary.WinRate, summary.RiskLevel, len(summary.Suggestions))
	result := &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
	return result, summary, nil
}
