package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jakechorley/charge-nurse/pkg/db"
)

// GetRuns retrieves all assignment runs, oldest first
func (d *DB) GetRuns(ctx context.Context) ([]db.AssignmentRun, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, shift_label, created_at, placed, preserved_locked, chemo_placed, admits_placed, acuity4_placed, unplaced
		FROM assignment_run
		ORDER BY created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	runs := []db.AssignmentRun{}
	for rows.Next() {
		var r db.AssignmentRun
		var unplaced []byte
		if err := rows.Scan(&r.ID, &r.ShiftLabel, &r.CreatedAt, &r.Placed, &r.PreservedLocked,
			&r.ChemoPlaced, &r.AdmitsPlaced, &r.Acuity4Placed, &unplaced); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if err := json.Unmarshal(unplaced, &r.Unplaced); err != nil {
			return nil, fmt.Errorf("failed to parse unplaced rooms of run %s: %w", r.ID, err)
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}

	return runs, nil
}

// InsertRun inserts an assignment run record
func (d *DB) InsertRun(ctx context.Context, run *db.AssignmentRun) error {
	unplaced := run.Unplaced
	if unplaced == nil {
		unplaced = []db.UnplacedRoom{}
	}
	data, err := json.Marshal(unplaced)
	if err != nil {
		return fmt.Errorf("failed to encode unplaced rooms: %w", err)
	}

	_, err = d.pool.Exec(ctx, `
		INSERT INTO assignment_run (id, shift_label, created_at, placed, preserved_locked, chemo_placed, admits_placed, acuity4_placed, unplaced)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, run.ID, run.ShiftLabel, run.CreatedAt.UTC(), run.Placed, run.PreservedLocked,
		run.ChemoPlaced, run.AdmitsPlaced, run.Acuity4Placed, string(data))
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}
	return nil
}

// compile-time check
var _ db.Database = (*DB)(nil)
