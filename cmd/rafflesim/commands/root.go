package commands

import (
	"rafflesim/internal/config"
	"rafflesim/internal/logging"
	"rafflesim/internal/mcp"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose bool
	cfg     *config.AppConfig
)

var rootCmd = &cobra.Command{
	Use:   "rafflesim",
	Short: "rafflesim is a Monte Carlo raffle simulation engine and MCP server",
	Long: `A statistical simulation engine for ticket-weighted raffles: draws randomized raffle
outcomes, accumulates profit/loss series and computes risk metrics (Sharpe/Sortino,
Value-at-Risk, Gini, Bayesian credible intervals) plus optimization suggestions.
Without a subcommand it serves the engine as an MCP server over Stdio.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(verbose)

		var err error
		cfg, err = config.Load()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}

		log.Info().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Msg("rafflesim starting")
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		server := mcp.NewServer(cfg)
		return server.Start(cmd.Context())
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}
