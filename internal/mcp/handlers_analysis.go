package mcp

import (
	"context"
	"errors"
	"fmt"

	"rafflesim/internal/raffle"
	"rafflesim/internal/runlog"
	"rafflesim/internal/simulation"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// AnalyzeArgs is the input of the analyze_profit_loss tool: a raw
// profit/loss series plus the static prize configuration it came from.
type AnalyzeArgs struct {
	ProfitLoss []float64      `json:"profit_loss"`
	Prizes     []raffle.Prize `json:"prizes,omitempty"`
	EntryFee   float64        `json:"entry_fee,omitempty"`
}

// EvaluateArgs is the input of the evaluate_raffle_config tool.
type EvaluateArgs struct {
	Prizes   []raffle.Prize `json:"prizes"`
	EntryFee float64        `json:"entry_fee"`
}

// Evaluation holds the closed-form assessment of a raffle configuration,
// computed without running any trials.
type Evaluation struct {
	TotalTickets     int                                `json:"total_tickets"`
	ExpectedValue    float64                            `json:"expected_value"`
	TheoreticalROI   float64                            `json:"theoretical_roi"`
	FairnessScore    float64                            `json:"fairness_score"`
	OptimalEntryFee  float64                            `json:"optimal_entry_fee"`
	PrizeAdjustments []simulation.PrizeAdjustment       `json:"prize_adjustments"`
	Participation    simulation.ParticipationPrediction `json:"participation"`
}

// HistoryArgs is the input of the list_simulation_history tool.
type HistoryArgs struct {
	Limit int `json:"limit,omitempty"`
}

// HistoryResult wraps the recent run log records.
type HistoryResult struct {
	Profile string          `json:"profile"`
	Records []runlog.Record `json:"records"`
}

func (s *Server) registerAnalysisTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name: "analyze_profit_loss",
		Description: "Compute the full statistical snapshot (moments, Sharpe/Sortino, VaR/CVaR, Bayesian " +
			"posterior, fairness, Kelly sizing) for an existing profit/loss series without running a simulation.",
	}, s.handleAnalyze)

	mcp.AddTool(server, &mcp.Tool{
		Name: "evaluate_raffle_config",
		Description: "Closed-form evaluation of a raffle configuration: expected value, theoretical ROI, " +
			"fairness score, optimal entry fee and prize quantity recommendations. No trials are run.",
	}, s.handleEvaluate)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_simulation_history",
		Description: "List recent simulation runs recorded in the run log, newest last.",
	}, s.handleHistory)
}

func (s *Server) handleAnalyze(ctx context.Context, req *mcp.CallToolRequest, args AnalyzeArgs) (*mcp.CallToolResult, simulation.AdvancedStats, error) {
	if len(args.ProfitLoss) == 0 {
		return nil, simulation.AdvancedStats{}, errors.New("profit_loss must not be empty")
	}

	stats := simulation.ComputeAdvancedStats(args.ProfitLoss, args.Prizes, args.EntryFee)
	text := fmt.Sprintf("Analyzed %d observations: mean %.4f, stddev %.4f, VaR95 %.2f, risk %s.",
		len(args.ProfitLoss), stats.Mean, stats.StdDev, stats.ValueAtRisk95, simulation.RiskLevel(stats))
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}, stats, nil
}

func (s *Server) handleEvaluate(ctx context.Context, req *mcp.CallToolRequest, args EvaluateArgs) (*mcp.CallToolResult, Evaluation, error) {
	if len(args.Prizes) == 0 {
		return nil, Evaluation{}, errors.New("prizes must not be empty")
	}

	eval := Evaluation{
		TotalTickets:     raffle.TotalTickets(args.Prizes),
		ExpectedValue:    raffle.ExpectedValue(args.Prizes),
		TheoreticalROI:   raffle.TheoreticalROI(args.Prizes, args.EntryFee),
		FairnessScore:    raffle.FairnessScore(args.Prizes),
		OptimalEntryFee:  simulation.OptimalEntryFee(args.Prizes),
		PrizeAdjustments: simulation.RecommendPrizeAdjustments(args.Prizes, args.EntryFee),
		Participation:    simulation.PredictParticipation(args.EntryFee),
	}

	text := fmt.Sprintf("Config holds %d tickets: EV %.2f, theoretical ROI %.2f%%, fairness %.3f, optimal fee %.2f.",
		eval.TotalTickets, eval.ExpectedValue, eval.TheoreticalROI, eval.FairnessScore, eval.OptimalEntryFee)
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}, eval, nil
}

func (s *Server) handleHistory(ctx context.Context, req *mcp.CallToolRequest, args HistoryArgs) (*mcp.CallToolResult, HistoryResult, error) {
	limit := args.Limit
	if limit <= 0 {
		limit = 20
	}

	records, err := s.store.Tail(s.cfg.Profile, limit)
	if err != nil {
		return nil, HistoryResult{}, err
	}

	text := fmt.Sprintf("%d recorded run(s) for profile %q.", len(records), s.cfg.Profile)
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}, HistoryResult{Profile: s.cfg.Profile, Records: records}, nil
}
