package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"rafflesim/internal/runlog"
	"rafflesim/internal/simulation"
	"rafflesim/internal/visuals"

	"github.com/pkg/browser"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	runSeed   int64
	runTrials int
	runBatch  int
	runJSON   bool
	runReport bool
	runOpen   bool
)

var runCmd = &cobra.Command{
	Use:   "run <scenario.json>",
	Short: "Run a raffle simulation from a scenario file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, simCfg, err := loadScenario(args[0])
		if err != nil {
			return err
		}
		if runTrials > 0 {
			simCfg.TotalRuns = runTrials
		}
		if runBatch > 0 {
			simCfg.BatchSize = runBatch
		}
		if simCfg.TotalRuns > cfg.MaxRuns {
			return fmt.Errorf("total_runs %d exceeds the configured cap of %d", simCfg.TotalRuns, cfg.MaxRuns)
		}

		var src simulation.Source
		var seed *int64
		if cmd.Flags().Changed("seed") {
			s := runSeed
			seed = &s
			src = simulation.NewSeededSource(s)
		}

		controller := simulation.NewController()
		start := time.Now()
		err = controller.Run(cmd.Context(), simCfg, src, func(p simulation.Progress) {
			log.Debug().
				Float64("progress", p.Progress).
				Int("run", p.CurrentRun).
				Float64("avg", p.RunningAverage).
				Msg("Simulation progress")
		})
		if err != nil {
			return err
		}
		res := controller.Snapshot().Result

		log.Info().
			Str("scenario", name).
			Int("trials", res.TotalRuns).
			Dur("elapsed", time.Since(start)).
			Msg("Simulation completed")

		store := runlog.NewStore(cfg.CacheDir)
		if err := store.Append(cfg.Profile, runlog.Record{
			Timestamp:   time.Now(),
			Scenario:    name,
			Seed:        seed,
			TotalRuns:   res.TotalRuns,
			Stopped:     res.Stopped,
			EntryFee:    simCfg.EntryFee,
			ROI:         res.ROI,
			WinRate:     res.WinRate,
			MeanPL:      res.FinalStats.Mean,
			Fairness:    res.FinalStats.FairnessIndex,
			Suggestions: len(res.Suggestions),
		}); err != nil {
			log.Warn().Err(err).Msg("Failed to append run log record")
		}

		if runJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(res); err != nil {
				return fmt.Errorf("failed to encode result: %w", err)
			}
		} else {
			printSummary(name, res)
		}

		if runReport || runOpen {
			withCharts := cfg.EnableMermaidCharts || runOpen
			report := visuals.BuildReport(name, simCfg, res, withCharts)
			path := filepath.Join(cfg.ReportDir, fmt.Sprintf("%s-%s.md", name, time.Now().Format("20060102-150405")))
			if err := os.WriteFile(path, []byte(report), 0644); err != nil {
				return fmt.Errorf("failed to write report: %w", err)
			}
			log.Info().Str("path", path).Msg("Report written")
			if runOpen {
				if err := browser.OpenFile(path); err != nil {
					log.Warn().Err(err).Msg("Failed to open report in browser")
				}
			}
		}
		return nil
	},
}

func printSummary(name string, res *simulation.Result) {
	final := res.FinalStats
	fmt.Printf("Scenario:  %s\n", name)
	fmt.Printf("Trials:    %d%s\n", res.TotalRuns, stoppedSuffix(res))
	fmt.Printf("ROI:       %.2f%%\n", res.ROI)
	fmt.Printf("Win rate:  %.2f%%\n", res.WinRate)
	fmt.Printf("Mean P/L:  %.4f (stddev %.4f)\n", final.Mean, final.StdDev)
	fmt.Printf("VaR 95%%:   %.2f   CVaR 95%%: %.2f   Max DD: %.2f\n",
		final.ValueAtRisk95, final.ConditionalVaR95, final.MaxDrawdown)
	fmt.Printf("Fairness:  %.3f   Gini: %.3f   Kelly: %.3f\n",
		final.FairnessIndex, final.GiniCoefficient, final.KellyBetSize)
	fmt.Printf("Risk:      %s (score %.0f/100)\n", simulation.RiskLevel(final), simulation.OptimizationScore(final))
	for _, s := range res.Suggestions {
		fmt.Printf("  [%s] %s\n", s.Priority, s.Description)
	}
}

func stoppedSuffix(res *simulation.Result) string {
	if res.Stopped {
		return " (stopped early)"
	}
	return ""
}

func init() {
	runCmd.Flags().Int64Var(&runSeed, "seed", 0, "seed for deterministic results")
	runCmd.Flags().IntVar(&runTrials, "trials", 0, "override the scenario's total_runs")
	runCmd.Flags().IntVar(&runBatch, "batch", 0, "override the scenario's batch_size")
	runCmd.Flags().BoolVar(&runJSON, "json", false, "print the full result as JSON")
	runCmd.Flags().BoolVar(&runReport, "report", false, "write a markdown report to the reports directory")
	runCmd.Flags().BoolVar(&runOpen, "open", false, "write the report and open it in a browser")
	rootCmd.AddCommand(runCmd)
}
