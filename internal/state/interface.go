package state

import (
	"io"
	"time"
)

// Recorder persists finished generation runs.
type Recorder interface {
	RecordRun(r *Run) error
}

// HistoryStore defines the run history operations used by the CLI.
type HistoryStore interface {
	io.Closer
	Recorder
	ListRuns(limit int) ([]Run, error)
	GetRun(id string) (*Run, error)
	PurgeOldRuns(olderThan time.Duration) (int64, error)
}

var (
	_ HistoryStore = (*DB)(nil)
	_ Recorder     = (*DB)(nil)
)
