package services

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/jakechorley/charge-nurse/pkg/core/board"
	"github.com/jakechorley/charge-nurse/pkg/core/model"
	"github.com/jakechorley/charge-nurse/pkg/db"
)

// ShiftLabelLayout is the format of shift labels, e.g. "Mon Mar 02 2026 07:00"
const ShiftLabelLayout = "Mon Jan 02 2006 15:04"

// ShiftLabel names the shift that is running at now according to the schedule rrule.
// The label is the start of the latest shift that began at or before now.
func ShiftLabel(schedule string, now time.Time) (string, error) {
	rule, err := rrule.StrToRRule(schedule)
	if err != nil {
		return "", fmt.Errorf("failed to parse shift schedule: %w", err)
	}

	// Shifts never last more than a day, so two days back always contains the current one
	searchStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -2)
	rule.DTStart(searchStart)

	start := rule.Before(now, true)
	if start.IsZero() {
		return now.Format(ShiftLabelLayout), nil
	}
	return start.Format(ShiftLabelLayout), nil
}

// resolveNurse finds a nurse by id first, then by active name (case-insensitive)
func resolveNurse(s model.Snapshot, ref string) (model.Nurse, error) {
	ref = strings.TrimSpace(ref)
	if nurse, ok := s.NurseByID(model.NurseID(ref)); ok {
		return nurse, nil
	}
	if nurse, ok := s.NurseByName(ref); ok {
		return nurse, nil
	}
	return model.Nurse{}, fmt.Errorf("%w: %s", board.ErrNurseNotFound, ref)
}

// newestFirst sorts runs by creation time, most recent first
func newestFirst(runs []db.AssignmentRun) []db.AssignmentRun {
	sorted := slices.Clone(runs)
	slices.SortStableFunc(sorted, func(a, b db.AssignmentRun) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return sorted
}
