// Package registry provides the shared run-status registry importers write
// to and the status API reads from.
package registry

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound indicates that no status is recorded for the run.
var ErrNotFound = errors.New("run not found")

// Run states.
const (
	StateRunning   = "running"
	StateCompleted = "completed"
	StateFailed    = "failed"
)

// Status is the progress record of one import run.
type Status struct {
	RunID         string    `json:"run_id"`
	State         string    `json:"state"`
	Files         int       `json:"files"`
	FilesDone     int       `json:"files_done"`
	RowsProcessed int64     `json:"rows_processed"`
	RowsSkipped   int64     `json:"rows_skipped"`
	StartedAt     time.Time `json:"started_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	Error         string    `json:"error,omitempty"`
}

// Registry stores run statuses keyed by run ID. Implementations are safe
// for concurrent use.
type Registry interface {
	Put(ctx context.Context, status Status) error
	Get(ctx context.Context, runID string) (Status, error)
	Close() error
}
