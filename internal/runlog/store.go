package runlog

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Record is one completed simulation run, reduced to the fields worth
// keeping around for later comparison.
type Record struct {
	Timestamp   time.Time `json:"timestamp"`
	Scenario    string    `json:"scenario"`
	Seed        *int64    `json:"seed,omitempty"`
	TotalRuns   int       `json:"total_runs"`
	Stopped     bool      `json:"stopped,omitempty"`
	EntryFee    float64   `json:"entry_fee"`
	ROI         float64   `json:"roi"`
	WinRate     float64   `json:"win_rate"`
	MeanPL      float64   `json:"mean_pl"`
	Fairness    float64   `json:"fairness"`
	Suggestions int       `json:"suggestions"`
}

// Store is a thread-safe, append-only history of simulation runs, backed by
// one JSONL file per profile under the cache directory.
type Store struct {
	mu       sync.RWMutex
	cacheDir string
}

// NewStore creates a store rooted at cacheDir.
func NewStore(cacheDir string) *Store {
	return &Store{cacheDir: cacheDir}
}

func (s *Store) path(profile string) string {
	return filepath.Join(s.cacheDir, fmt.Sprintf("%s.jsonl", profile))
}

// Append writes one record to the profile's log file.
func (s *Store) Append(profile string, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.cacheDir, 0755); err != nil {
		return fmt.Errorf("failed to create cache dir: %w", err)
	}

	file, err := os.OpenFile(s.path(profile), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open run log: %w", err)
	}
	defer file.Close()

	line, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}
	if _, err := file.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}
	return nil
}

// Load reads all records for a profile. A missing file is an empty history,
// not an error; malformed lines are skipped with a warning.
func (s *Store) Load(profile string) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	file, err := os.Open(s.path(profile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open run log: %w", err)
	}
	defer file.Close()

	var records []Record
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var rec Record
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			log.Warn().Err(err).Str("profile", profile).Msg("Skipping invalid JSON line in run log")
			continue
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return records, fmt.Errorf("failed to read run log: %w", err)
	}
	return records, nil
}

// Tail returns the most recent n records for a profile.
func (s *Store) Tail(profile string, n int) ([]Record, error) {
	records, err := s.Load(profile)
	if err != nil {
		return nil, err
	}
	if n <= 0 || n >= len(records) {
		return records, nil
	}
	return records[len(records)-n:], nil
}
