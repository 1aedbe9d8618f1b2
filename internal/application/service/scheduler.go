package service

import "time"

// CycleReport captures the outcome of the most recent reminder scan cycle for
// operational tooling.
type CycleReport struct {
	StartedAt  time.Time
	FinishedAt time.Time
	Stats      CycleStats
	Err        string
}

// SchedulerService defines the interface for the recurring reminder scan.
type SchedulerService interface {
	// Start registers the recurring scan job and begins running it.
	Start() error
	// Stop stops the underlying scheduler, waiting for a running cycle to finish.
	Stop()
	// LastCycle returns the most recent cycle report, if any cycle has run.
	LastCycle() (CycleReport, bool)
}
