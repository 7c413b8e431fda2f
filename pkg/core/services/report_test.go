package services

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/charge-nurse/pkg/core/allocator"
	"github.com/jakechorley/charge-nurse/pkg/core/model"
	"github.com/jakechorley/charge-nurse/pkg/db"
)

func assignedUnit() *model.Snapshot {
	b := smallUnit()
	b.Rooms[0].RN = "n2"
	b.Rooms[1].RN = "n2" // chemo on a non-certified nurse
	b.Rooms[2].RN = "n1"
	return b
}

func TestUnitReport(t *testing.T) {
	got, err := UnitReport(context.Background(), &mockStore{board: assignedUnit()}, testLayout, zap.NewNop())
	require.NoError(t, err)

	s := got.Report.Summary
	assert.Equal(t, 4, s.Census)
	assert.Equal(t, 11, s.TotalAcuity)
	assert.Equal(t, 1, s.Unassigned)
	assert.Equal(t, 2, s.ActiveNurses)

	require.Len(t, got.Report.Nurses, 2)
	bea := got.Report.Nurses[1]
	assert.Equal(t, "Bea", bea.Load.Name)
	assert.Equal(t, []model.RoomID{"1", "2"}, bea.Load.Rooms)
	assert.Equal(t, allocator.BandModerate, bea.Band)
	require.Len(t, bea.Warnings(), 1)
	assert.Equal(t, "Non-certified RN assigned to Chemo patient!", bea.Warnings()[0].Description)
}

func TestListRuns_NewestFirst(t *testing.T) {
	store := &mockStore{runs: []db.AssignmentRun{
		{ID: "old", CreatedAt: time.Date(2026, 3, 1, 7, 0, 0, 0, time.UTC)},
		{ID: "new", CreatedAt: time.Date(2026, 3, 2, 7, 0, 0, 0, time.UTC)},
	}}

	runs, err := ListRuns(context.Background(), store, zap.NewNop())
	require.NoError(t, err)

	require.Len(t, runs, 2)
	assert.Equal(t, "new", runs[0].ID)
	assert.Equal(t, "old", store.runs[0].ID, "store slice untouched")
}

func TestImportExportBoard(t *testing.T) {
	ctx := context.Background()
	source := &mockStore{board: assignedUnit()}

	var buf bytes.Buffer
	require.NoError(t, ExportBoard(ctx, source, testLayout, zap.NewNop(), &buf))

	target := &mockStore{}
	imported, err := ImportBoard(ctx, target, zap.NewNop(), &buf)
	require.NoError(t, err)

	assert.Equal(t, *source.board, *imported)
	assert.Equal(t, *source.board, *target.board)
}

func TestImportBoard_LegacyNames(t *testing.T) {
	legacy := `{"nurses":[{"id":1,"name":"Alice","noChemo":false,"locked":false}],
"rooms":[{"room":1,"tx":"Auto","acuity":"3","rn":"Alice"},{"room":"H","tx":"","acuity":0,"rn":"-"}]}`

	store := &mockStore{}
	imported, err := ImportBoard(context.Background(), store, zap.NewNop(), strings.NewReader(legacy))
	require.NoError(t, err)

	assert.Equal(t, model.NurseID("1"), imported.Rooms[0].RN)
	assert.Equal(t, model.Acuity(3), imported.Rooms[0].Acuity)
}

func TestImportBoard_InvalidFormat(t *testing.T) {
	store := &mockStore{}
	_, err := ImportBoard(context.Background(), store, zap.NewNop(), strings.NewReader(`{"nurses":[]}`))

	assert.ErrorContains(t, err, "invalid board format")
	assert.Nil(t, store.board)
}
