package postgres

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jakechorley/charge-nurse/pkg/core/model"
	"github.com/jakechorley/charge-nurse/pkg/db"
)

// GetBoard retrieves the saved board
func (d *DB) GetBoard(ctx context.Context) (*model.Snapshot, error) {
	var data []byte
	err := d.pool.QueryRow(ctx, `SELECT snapshot FROM board WHERE id = 1`).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, db.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query board: %w", err)
	}

	return model.DecodeSnapshot(bytes.NewReader(data))
}

// SaveBoard upserts the single board row
func (d *DB) SaveBoard(ctx context.Context, board model.Snapshot) error {
	var buf bytes.Buffer
	if err := model.EncodeSnapshot(&buf, board); err != nil {
		return err
	}

	_, err := d.pool.Exec(ctx, `
		INSERT INTO board (id, snapshot, updated_at)
		VALUES (1, $1, NOW())
		ON CONFLICT (id) DO UPDATE SET snapshot = EXCLUDED.snapshot, updated_at = EXCLUDED.updated_at
	`, buf.String())
	if err != nil {
		return fmt.Errorf("failed to save board: %w", err)
	}
	return nil
}
