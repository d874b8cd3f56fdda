package simulation

import (
	"context"
	"errors"
	"testing"
	"time"

	"rafflesim/internal/raffle"
)

func smallConfig() Config {
	return Config{
		TotalRuns: 300,
		EntryFee:  5,
		Prizes: []raffle.Prize{
			{ID: "a", Quantity: 1, UserValue: 50},
			{ID: "b", Quantity: 9, UserValue: 0},
		},
		BatchSize: 100,
	}
}

func TestController_CompletedRun(t *testing.T) {
	c := NewController()

	if err := c.Run(context.Background(), smallConfig(), NewSeededSource(1), nil); err != nil {
		t.Fatalf("Run: %v", err)
	}

	snap := c.Snapshot()
	if snap.Status != StatusCompleted {
		t.Errorf("Status = %q, want %q", snap.Status, StatusCompleted)
	}
	if snap.Progress != 100 {
		t.Errorf("Progress = %v, want 100", snap.Progress)
	}
	if snap.Result == nil || snap.Result.TotalRuns != 300 {
		t.Errorf("Result = %+v, want a full 300-trial result", snap.Result)
	}
	if snap.Error != "" {
		t.Errorf("Error = %q, want empty", snap.Error)
	}
}

func TestController_RejectsReentrantRun(t *testing.T) {
	c := NewController()

	var reentrant error
	err := c.Run(context.Background(), smallConfig(), NewSeededSource(1), func(p Progress) {
		if reentrant == nil {
			reentrant = c.Run(context.Background(), smallConfig(), NewSeededSource(2), nil)
		}
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if !errors.Is(reentrant, ErrAlreadyRunning) {
		t.Errorf("second Run returned %v, want ErrAlreadyRunning", reentrant)
	}
	// The rejected call must not have corrupted the first run's state.
	if snap := c.Snapshot(); snap.Status != StatusCompleted {
		t.Errorf("Status after rejected re-entrant run = %q, want %q", snap.Status, StatusCompleted)
	}
}

func TestController_InvalidConfigBecomesErrorState(t *testing.T) {
	c := NewController()

	err := c.Run(context.Background(), Config{TotalRuns: 0, BatchSize: 1}, nil, nil)
	if err == nil {
		t.Fatal("Run accepted an invalid config")
	}

	snap := c.Snapshot()
	if snap.Status != StatusError {
		t.Errorf("Status = %q, want %q", snap.Status, StatusError)
	}
	if snap.Error == "" {
		t.Error("Error message is empty")
	}
}

func TestController_StopResetsToIdle(t *testing.T) {
	c := NewController()
	cfg := smallConfig()
	cfg.TotalRuns = 100000
	cfg.BatchSize = 1000

	done := make(chan error, 1)
	started := make(chan struct{})
	var once bool
	go func() {
		done <- c.Run(context.Background(), cfg, NewSeededSource(1), func(p Progress) {
			if !once {
				once = true
				close(started)
			}
		})
	}()

	<-started
	c.Stop()

	if err := <-done; err != nil {
		t.Fatalf("stopped Run returned error: %v", err)
	}

	snap := c.Snapshot()
	if snap.Status != StatusIdle {
		t.Errorf("Status after Stop = %q, want %q", snap.Status, StatusIdle)
	}
	if snap.Error != "" {
		t.Errorf("Error after Stop = %q, want empty", snap.Error)
	}
	if snap.Result == nil || snap.Result.TotalRuns >= 100000 {
		t.Errorf("expected a partial result after Stop, got %+v", snap.Result)
	}
	if snap.Result != nil && !snap.Result.Stopped {
		t.Error("partial result not marked as stopped")
	}
}

func TestController_PauseResume(t *testing.T) {
	c := NewController()
	cfg := smallConfig()
	cfg.TotalRuns = 5000
	cfg.BatchSize = 100

	done := make(chan error, 1)
	paused := make(chan struct{})
	var once bool
	go func() {
		done <- c.Run(context.Background(), cfg, NewSeededSource(1), func(p Progress) {
			if !once {
				once = true
				c.Pause()
				close(paused)
			}
		})
	}()

	<-paused
	if snap := c.Snapshot(); snap.Status != StatusPaused {
		t.Errorf("Status = %q, want %q", snap.Status, StatusPaused)
	}

	// The paused engine must hold position rather than finish.
	select {
	case <-done:
		t.Fatal("run finished while paused")
	case <-time.After(150 * time.Millisecond):
	}

	c.Resume()
	if err := <-done; err != nil {
		t.Fatalf("Run after resume: %v", err)
	}
	if snap := c.Snapshot(); snap.Status != StatusCompleted {
		t.Errorf("Status after resume = %q, want %q", snap.Status, StatusCompleted)
	}
}

func TestController_PauseWhenIdleIsNoop(t *testing.T) {
	c := NewController()
	c.Pause()
	c.Resume()
	c.Stop()

	if snap := c.Snapshot(); snap.Status != StatusIdle {
		t.Errorf("Status = %q, want %q after no-op controls", snap.Status, StatusIdle)
	}
}
