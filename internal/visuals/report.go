package visuals

import (
	"fmt"
	"strings"

	"rafflesim/internal/raffle"
	"rafflesim/internal/simulation"
)

// BuildReport assembles a markdown report for a completed run: config
// summary, headline numbers, risk table, charts and suggestions.
func BuildReport(scenario string, cfg simulation.Config, res *simulation.Result, withCharts bool) string {
	var sb strings.Builder
	final := res.FinalStats

	sb.WriteString(fmt.Sprintf("# Raffle Simulation Report: %s\n\n", scenario))

	sb.WriteString("## Configuration\n\n")
	sb.WriteString(fmt.Sprintf("- Trials: %d (completed %d)\n", cfg.TotalRuns, res.TotalRuns))
	sb.WriteString(fmt.Sprintf("- Entry fee: %.2f\n", cfg.EntryFee))
	sb.WriteString(fmt.Sprintf("- Ticket pool: %d tickets across %d prizes\n", raffle.TotalTickets(cfg.Prizes), len(cfg.Prizes)))
	if res.Stopped {
		sb.WriteString("- Run stopped early; figures cover completed trials only\n")
	}
	sb.WriteString("\n")

	sb.WriteString("## Outcome\n\n")
	sb.WriteString(fmt.Sprintf("- ROI: %.2f%% (theoretical %.2f%%)\n", res.ROI, raffle.TheoreticalROI(cfg.Prizes, cfg.EntryFee)))
	sb.WriteString(fmt.Sprintf("- Win rate: %.2f%%\n", res.WinRate))
	sb.WriteString(fmt.Sprintf("- Total value awarded: %.2f against cost %.2f\n", res.TotalValue, res.TotalCost))
	sb.WriteString(fmt.Sprintf("- Risk level: %s (optimization score %.0f/100)\n\n", simulation.RiskLevel(final), simulation.OptimizationScore(final)))

	sb.WriteString("## Statistics\n\n")
	sb.WriteString("| Metric | Value |\n|---|---|\n")
	sb.WriteString(fmt.Sprintf("| Mean P/L | %.4f |\n", final.Mean))
	sb.WriteString(fmt.Sprintf("| Median P/L | %.4f |\n", final.Median))
	sb.WriteString(fmt.Sprintf("| Std deviation | %.4f |\n", final.StdDev))
	sb.WriteString(fmt.Sprintf("| Sharpe ratio | %.4f |\n", final.SharpeRatio))
	if final.SortinoDefined {
		sb.WriteString(fmt.Sprintf("| Sortino ratio | %.4f |\n", final.SortinoRatio))
	} else {
		sb.WriteString("| Sortino ratio | n/a (no downside) |\n")
	}
	sb.WriteString(fmt.Sprintf("| Max drawdown | %.2f |\n", final.MaxDrawdown))
	sb.WriteString(fmt.Sprintf("| VaR 95%% | %.2f |\n", final.ValueAtRisk95))
	sb.WriteString(fmt.Sprintf("| CVaR 95%% | %.2f |\n", final.ConditionalVaR95))
	sb.WriteString(fmt.Sprintf("| Fairness index | %.3f |\n", final.FairnessIndex))
	sb.WriteString(fmt.Sprintf("| Gini coefficient | %.3f |\n", final.GiniCoefficient))
	sb.WriteString(fmt.Sprintf("| Kelly bet size | %.3f |\n", final.KellyBetSize))
	sb.WriteString(fmt.Sprintf("| Optimal entry fee | %.2f |\n", final.OptimalEntryFee))
	sb.WriteString(fmt.Sprintf("| Bayesian mean | %.4f [%.4f, %.4f] |\n\n",
		final.Bayesian.Mean, final.Bayesian.CredibleLower, final.Bayesian.CredibleUpper))

	if withCharts {
		if chart := GenerateProfitLossChart(res.CumulativeReturns); chart != "" {
			sb.WriteString("## Cumulative Profit/Loss\n\n")
			sb.WriteString(chart)
			sb.WriteString("\n\n")
		}
		if chart := GenerateDistributionChart(res.Distribution); chart != "" {
			sb.WriteString("## Win Distribution\n\n")
			sb.WriteString(chart)
			sb.WriteString("\n\n")
		}
	}

	if len(res.Suggestions) > 0 {
		sb.WriteString("## Suggestions\n\n")
		for _, s := range res.Suggestions {
			sb.WriteString(fmt.Sprintf("- **%s** (%s, confidence %.0f%%): %s\n",
				s.Type, s.Priority, s.Confidence*100, s.Description))
		}
		sb.WriteString("\n")
	}

	if len(final.PrizeAdjustments) > 0 {
		sb.WriteString("## Prize Adjustments\n\n")
		for _, a := range final.PrizeAdjustments {
			sb.WriteString(fmt.Sprintf("- %s: %d → %d (%s)\n",
				a.PrizeID, a.CurrentQuantity, a.RecommendedQuantity, a.Reason))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
