package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jakechorley/charge-nurse/pkg/core/allocator"
	"github.com/jakechorley/charge-nurse/pkg/core/allocator/criteria"
	"github.com/jakechorley/charge-nurse/pkg/core/model"
	"github.com/jakechorley/charge-nurse/pkg/db"
)

// AutoAssignStore defines the database operations needed for an auto-assign run
type AutoAssignStore interface {
	db.BoardStore
	InsertRun(ctx context.Context, run *db.AssignmentRun) error
}

// AutoAssignResult is the board after an auto-assign run
type AutoAssignResult struct {
	Board      model.Snapshot            `json:"board"`
	Rationale  allocator.Rationale       `json:"rationale"`
	Violations []allocator.RuleViolation `json:"violations"`

	// Run is the history record, nil when the run had nothing to do
	Run *db.AssignmentRun `json:"run,omitempty"`
}

// AutoAssign assigns every unlocked occupied room using the default unit rules,
// saves the board and records the run under shiftLabel
func AutoAssign(ctx context.Context, store AutoAssignStore, layout model.UnitLayout, logger *zap.Logger, shiftLabel string) (*AutoAssignResult, error) {
	current, err := LoadBoard(ctx, store, layout, logger)
	if err != nil {
		return nil, err
	}

	logger.Debug("Running allocation",
		zap.Int("nurses", len(current.Nurses)),
		zap.Int("rooms", len(current.Rooms)),
		zap.String("shift", shiftLabel))

	outcome, err := allocator.Allocate(allocator.AllocationConfig{
		Criteria: criteria.Default(),
		Nurses:   current.Nurses,
		Rooms:    current.Rooms,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to allocate: %w", err)
	}

	result := &AutoAssignResult{
		Board:      model.Snapshot{Nurses: current.Nurses, Rooms: outcome.Rooms},
		Rationale:  outcome.Rationale,
		Violations: outcome.Violations,
	}

	summary := outcome.Rationale.Summary
	if summary == nil {
		logger.Info("Nothing to assign", zap.String("reason", outcome.Rationale.Message))
		return result, nil
	}

	if err := store.SaveBoard(ctx, result.Board); err != nil {
		return nil, fmt.Errorf("failed to save board: %w", err)
	}

	run := &db.AssignmentRun{
		ID:              uuid.New().String(),
		ShiftLabel:      shiftLabel,
		CreatedAt:       time.Now().UTC(),
		Placed:          summary.Placed,
		PreservedLocked: summary.PreservedLocked,
		ChemoPlaced:     summary.ChemoPlaced,
		AdmitsPlaced:    summary.AdmitsPlaced,
		Acuity4Placed:   summary.Acuity4Placed,
		Unplaced:        make([]db.UnplacedRoom, 0, len(outcome.Rationale.Unplaced)),
	}
	for _, u := range outcome.Rationale.Unplaced {
		run.Unplaced = append(run.Unplaced, db.UnplacedRoom{Room: string(u.Room), Reason: u.Reason})
	}

	if err := store.InsertRun(ctx, run); err != nil {
		return nil, fmt.Errorf("failed to record assignment run: %w", err)
	}
	result.Run = run

	logger.Info("Auto-assign complete",
		zap.String("run_id", run.ID),
		zap.Int("placed", summary.Placed),
		zap.Int("preserved_locked", summary.PreservedLocked),
		zap.Int("unplaced", len(run.Unplaced)),
		zap.Int("violations", len(outcome.Violations)))

	for _, u := range outcome.Rationale.Unplaced {
		logger.Warn("Room could not be placed", zap.String("room", string(u.Room)), zap.String("reason", u.Reason))
	}

	return result, nil
}
