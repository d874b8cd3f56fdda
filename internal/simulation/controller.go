package simulation

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Status is the controller lifecycle state.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusRunning   Status = "running"
	StatusPaused    Status = "paused"
	StatusCompleted Status = "completed"
	StatusError     Status = "error"
)

// ErrAlreadyRunning is returned when Run is called while a run is active.
// Starting a second run would orphan the first engine's control flags, so
// concurrent runs are rejected outright.
var ErrAlreadyRunning = errors.New("a simulation is already running")

// Snapshot is an observable copy of the controller state.
type Snapshot struct {
	Status     Status  `json:"status"`
	Progress   float64 `json:"progress"`
	CurrentRun int     `json:"current_run"`
	Error      string  `json:"error,omitempty"`
	Result     *Result `json:"result,omitempty"`
}

// Controller owns the lifecycle of simulation runs: it builds a fresh
// engine per run, tracks progress, and surfaces engine failures as state
// instead of letting them escape to the call site.
type Controller struct {
	mu         sync.Mutex
	status     Status
	engine     *Engine
	progress   float64
	currentRun int
	errMsg     string
	result     *Result
}

// NewController returns an idle controller.
func NewController() *Controller {
	return &Controller{status: StatusIdle}
}

// Run executes one simulation to completion. It blocks for the duration of
// the run (callers wanting async behavior run it on their own goroutine and
// observe Snapshot). A second Run while one is active fails immediately
// with ErrAlreadyRunning.
//
// Engine panics are recovered and recorded as an error state; Run never
// re-panics past this boundary.
func (c *Controller) Run(ctx context.Context, cfg Config, src Source, onProgress ProgressFunc) (err error) {
	c.mu.Lock()
	if c.status == StatusRunning || c.status == StatusPaused {
		c.mu.Unlock()
		return ErrAlreadyRunning
	}

	engine, buildErr := NewEngine(cfg, src)
	if buildErr != nil {
		c.status = StatusError
		c.errMsg = buildErr.Error()
		c.mu.Unlock()
		return buildErr
	}

	c.status = StatusRunning
	c.engine = engine
	c.progress = 0
	c.currentRun = 0
	c.errMsg = ""
	c.result = nil
	c.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("simulation panic: %v", r)
			c.fail(err)
		}
	}()

	result, runErr := engine.Run(ctx, func(p Progress) {
		c.mu.Lock()
		c.progress = p.Progress
		c.currentRun = p.CurrentRun
		c.mu.Unlock()
		if onProgress != nil {
			onProgress(p)
		}
	})

	c.mu.Lock()
	defer c.mu.Unlock()
	c.engine = nil

	if runErr != nil {
		c.status = StatusError
		c.errMsg = runErr.Error()
		c.result = result
		return runErr
	}

	c.result = result
	if c.status == StatusIdle {
		// Stop was called mid-run: stay idle, keep the partial result
		// available for inspection.
		return nil
	}
	c.status = StatusCompleted
	c.progress = 100
	return nil
}

// Pause suspends the active run at its next batch boundary. No-op when no
// run is active.
func (c *Controller) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.status != StatusRunning || c.engine == nil {
		return
	}
	c.engine.Pause()
	c.status = StatusPaused
}

// Resume releases a paused run. No-op unless paused.
func (c *Controller) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.status != StatusPaused || c.engine == nil {
		return
	}
	c.engine.Resume()
	c.status = StatusRunning
}

// Stop signals the active run to exit and resets the controller to idle
// immediately. The signal is best-effort: the engine unwinds asynchronously
// at its next batch boundary, and its partial result lands in the snapshot
// once it does.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.engine == nil {
		return
	}
	c.engine.Stop()
	c.engine.Resume() // release a pause poll so the stop is observed
	c.status = StatusIdle
	c.progress = 0
	c.errMsg = ""
}

// Snapshot returns a copy of the observable state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		Status:     c.status,
		Progress:   c.progress,
		CurrentRun: c.currentRun,
		Error:      c.errMsg,
		Result:     c.result,
	}
}

func (c *Controller) fail(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.engine = nil
	c.status = StatusError
	c.errMsg = err.Error()
}
