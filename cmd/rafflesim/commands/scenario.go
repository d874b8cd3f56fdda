package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"rafflesim/internal/raffle"
	"rafflesim/internal/simulation"
)

// scenarioFile is the on-disk JSON shape of a simulation scenario.
type scenarioFile struct {
	Name      string                        `json:"name,omitempty"`
	TotalRuns int                           `json:"total_runs"`
	EntryFee  float64                       `json:"entry_fee"`
	BatchSize int                           `json:"batch_size,omitempty"`
	Prizes    []raffle.Prize                `json:"prizes"`
	Goals     *simulation.OptimizationGoals `json:"optimization_goals,omitempty"`
}

// loadScenario reads a scenario JSON file into a simulation config. The
// scenario name defaults to the file name without extension.
func loadScenario(path string) (string, simulation.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", simulation.Config{}, fmt.Errorf("failed to read scenario: %w", err)
	}

	var sc scenarioFile
	if err := json.Unmarshal(data, &sc); err != nil {
		return "", simulation.Config{}, fmt.Errorf("failed to parse scenario %q: %w", path, err)
	}

	name := sc.Name
	if name == "" {
		base := filepath.Base(path)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}

	simCfg := simulation.Config{
		TotalRuns: sc.TotalRuns,
		EntryFee:  sc.EntryFee,
		Prizes:    sc.Prizes,
		BatchSize: sc.BatchSize,
		Goals:     sc.Goals,
	}
	if simCfg.BatchSize == 0 && cfg != nil {
		simCfg.BatchSize = cfg.DefaultBatchSize
	}
	return name, simCfg, nil
}
