package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/jakechorley/charge-nurse/pkg/core/allocator"
	"github.com/jakechorley/charge-nurse/pkg/core/model"
)

func rns(rooms []model.Room) []model.NurseID {
	out := make([]model.NurseID, len(rooms))
	for i, r := range rooms {
		out[i] = r.RN
	}
	return out
}

func TestAutoAssign_SavesBoardAndRecordsRun(t *testing.T) {
	store := &mockStore{board: smallUnit()}

	result, err := AutoAssign(context.Background(), store, testLayout, zap.NewNop(), "Mon Mar 02 2026 07:00")
	require.NoError(t, err)

	// Chemo goes first and only Alice is certified; Bea then takes the acuity 4 while empty.
	assert.Equal(t, []model.NurseID{"n2", "n1", "n1", "n2"}, rns(result.Board.Rooms))
	assert.Empty(t, result.Violations)

	require.NotNil(t, result.Rationale.Summary)
	assert.Equal(t, allocator.PlacementSummary{Placed: 4, ChemoPlaced: 1, AdmitsPlaced: 1, Acuity4Placed: 1}, *result.Rationale.Summary)

	assert.Equal(t, 1, store.saves)
	assert.Equal(t, result.Board, *store.board)

	require.Len(t, store.runs, 1)
	run := store.runs[0]
	assert.NotEmpty(t, run.ID)
	assert.Equal(t, "Mon Mar 02 2026 07:00", run.ShiftLabel)
	assert.False(t, run.CreatedAt.IsZero())
	assert.Equal(t, 4, run.Placed)
	assert.Empty(t, run.Unplaced)
	assert.Equal(t, run.ID, result.Run.ID)
}

func TestAutoAssign_RecordsUnplacedRooms(t *testing.T) {
	board := smallUnit()
	board.Nurses = board.Nurses[1:] // only Bea, who is not chemo certified
	store := &mockStore{board: board}
	core, logs := observer.New(zapcore.WarnLevel)

	result, err := AutoAssign(context.Background(), store, testLayout, zap.New(core), "shift")
	require.NoError(t, err)

	assert.Equal(t, model.Unassigned, result.Board.Rooms[1].RN)
	require.Len(t, store.runs, 1)
	require.Len(t, store.runs[0].Unplaced, 1)
	assert.Equal(t, "2", store.runs[0].Unplaced[0].Room)
	assert.Equal(t, "Chemo", store.runs[0].Unplaced[0].Reason)

	warnings := logs.FilterMessage("Room could not be placed").All()
	require.Len(t, warnings, 1)
	assert.Equal(t, "2", warnings[0].ContextMap()["room"])
}

func TestAutoAssign_NoActiveNursesIsNotRecorded(t *testing.T) {
	board := smallUnit()
	board.Nurses = []model.Nurse{{ID: "n1", Name: "  "}}
	store := &mockStore{board: board}

	result, err := AutoAssign(context.Background(), store, testLayout, zap.NewNop(), "shift")
	require.NoError(t, err)

	assert.Equal(t, allocator.MessageNoActiveNurses, result.Rationale.Message)
	assert.Nil(t, result.Run)
	assert.Zero(t, store.saves)
	assert.Empty(t, store.runs)
}

func TestAutoAssign_FreshBoard(t *testing.T) {
	store := &mockStore{}

	result, err := AutoAssign(context.Background(), store, model.UnitLayout{RoomCount: 3, DefaultNurses: 2}, zap.NewNop(), "shift")
	require.NoError(t, err)

	// Default rooms are occupied with acuity 2, so a fresh board is assignable
	require.NotNil(t, result.Rationale.Summary)
	assert.Equal(t, 3, result.Rationale.Summary.Placed)
}

func TestAutoAssign_StoreErrors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")

	_, err := AutoAssign(ctx, &mockStore{getErr: boom}, testLayout, zap.NewNop(), "shift")
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "failed to fetch board")

	_, err = AutoAssign(ctx, &mockStore{board: smallUnit(), saveErr: boom}, testLayout, zap.NewNop(), "shift")
	assert.ErrorContains(t, err, "failed to save board")

	_, err = AutoAssign(ctx, &mockStore{board: smallUnit(), runErr: boom}, testLayout, zap.NewNop(), "shift")
	assert.ErrorContains(t, err, "failed to record assignment run")
}
