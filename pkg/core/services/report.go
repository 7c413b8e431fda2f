package services

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/jakechorley/charge-nurse/pkg/core/allocator"
	"github.com/jakechorley/charge-nurse/pkg/core/allocator/criteria"
	"github.com/jakechorley/charge-nurse/pkg/core/model"
	"github.com/jakechorley/charge-nurse/pkg/db"
)

// BoardReport is a board together with its statistics
type BoardReport struct {
	Board  model.Snapshot       `json:"board"`
	Report allocator.UnitReport `json:"report"`
}

// UnitReport builds the unit summary and per-nurse warnings for the saved board
func UnitReport(ctx context.Context, store db.BoardStore, layout model.UnitLayout, logger *zap.Logger) (*BoardReport, error) {
	current, err := LoadBoard(ctx, store, layout, logger)
	if err != nil {
		return nil, err
	}

	report := allocator.BuildUnitReport(current.Rooms, current.Nurses, criteria.Default())
	logger.Debug("Built unit report",
		zap.Int("census", report.Summary.Census),
		zap.Int("total_acuity", report.Summary.TotalAcuity),
		zap.Int("unassigned", report.Summary.Unassigned))

	return &BoardReport{Board: *current, Report: report}, nil
}

// ListRuns returns the assignment history, most recent first
func ListRuns(ctx context.Context, store db.RunStore, logger *zap.Logger) ([]db.AssignmentRun, error) {
	logger.Debug("Fetching assignment runs")
	runs, err := store.GetRuns(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assignment runs: %w", err)
	}
	logger.Debug("Found assignment runs", zap.Int("count", len(runs)))
	return newestFirst(runs), nil
}

// ImportBoard reads a JSON board and replaces the saved one
func ImportBoard(ctx context.Context, store db.BoardStore, logger *zap.Logger, r io.Reader) (*model.Snapshot, error) {
	snapshot, err := model.DecodeSnapshot(r)
	if err != nil {
		return nil, err
	}

	saved, err := ReplaceBoard(ctx, store, logger, *snapshot)
	if err != nil {
		return nil, err
	}

	logger.Info("Board imported", zap.Int("nurses", len(saved.Nurses)), zap.Int("rooms", len(saved.Rooms)))
	return saved, nil
}

// ExportBoard writes the saved board as JSON
func ExportBoard(ctx context.Context, store db.BoardStore, layout model.UnitLayout, logger *zap.Logger, w io.Writer) error {
	current, err := LoadBoard(ctx, store, layout, logger)
	if err != nil {
		return err
	}
	if err := model.EncodeSnapshot(w, *current); err != nil {
		return fmt.Errorf("failed to write board: %w", err)
	}
	return nil
}
