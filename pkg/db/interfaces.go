package db

import (
	"context"
	"errors"

	"github.com/jakechorley/charge-nurse/pkg/core/model"
)

// ErrNotFound is returned when no board has been saved yet
var ErrNotFound = errors.New("not found")

// BoardStore defines the interface for board operations
type BoardStore interface {
	GetBoard(ctx context.Context) (*model.Snapshot, error)
	SaveBoard(ctx context.Context, board model.Snapshot) error
}

// RunStore defines the interface for assignment history operations
type RunStore interface {
	GetRuns(ctx context.Context) ([]AssignmentRun, error)
	InsertRun(ctx context.Context, run *AssignmentRun) error
}

// Database defines the interface for all database operations.
// The file, postgres and redis backends implement this interface.
type Database interface {
	BoardStore
	RunStore
	Close() error
}
