package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"rafflesim/internal/runlog"

	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the most recent simulation runs for the active profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		store := runlog.NewStore(cfg.CacheDir)
		records, err := store.Tail(cfg.Profile, historyLimit)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println("No runs recorded yet.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "WHEN\tSCENARIO\tRUNS\tROI%\tWIN%\tFAIRNESS\tSEED")
		for _, r := range records {
			seed := "-"
			if r.Seed != nil {
				seed = fmt.Sprintf("%d", *r.Seed)
			}
			runs := fmt.Sprintf("%d", r.TotalRuns)
			if r.Stopped {
				runs += "*"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%.2f\t%.3f\t%s\n",
				r.Timestamp.Format("2006-01-02 15:04"), r.Scenario, runs, r.ROI, r.WinRate, r.Fairness, seed)
		}
		return w.Flush()
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum number of runs to show")
	rootCmd.AddCommand(historyCmd)
}
