package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jakechorley/charge-nurse/pkg/core/allocator"
	"github.com/jakechorley/charge-nurse/pkg/core/allocator/criteria"
	"github.com/jakechorley/charge-nurse/pkg/core/model"
)

func testBoard() model.Snapshot {
	return model.Snapshot{
		Nurses: []model.Nurse{
			{ID: "n1", Name: "Alice"},
			{ID: "n2", Name: "Bea", NoChemo: true},
		},
		Rooms: []model.Room{
			{ID: "1", Diagnosis: "Allo", Acuity: 4, IMC: true, CNA: true, RN: "n2"},
			{ID: "2", Diagnosis: "Chemo", Acuity: 2, Chemo: true, RN: "n2"},
			{ID: "3", Diagnosis: "Auto", Acuity: 3, Admit: true, RN: "n1", Locked: true},
			{ID: model.FlexBed, Diagnosis: "", Acuity: 0, RN: model.Unassigned},
		},
	}
}

func openWorkbook(t *testing.T) *excelize.File {
	t.Helper()
	board := testBoard()
	report := allocator.BuildUnitReport(board.Rooms, board.Nurses, criteria.Default())

	data, err := Workbook(board, report)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func cell(t *testing.T, f *excelize.File, sheet, ref string) string {
	t.Helper()
	v, err := f.GetCellValue(sheet, ref)
	require.NoError(t, err)
	return v
}

func TestWorkbook_Sheets(t *testing.T) {
	f := openWorkbook(t)

	assert.Equal(t, []string{AssignmentsSheet, RoomsSheet}, f.GetSheetList())
	assert.Equal(t, AssignmentsSheet, f.GetSheetName(f.GetActiveSheetIndex()))
}

func TestWorkbook_Assignments(t *testing.T) {
	f := openWorkbook(t)

	assert.Equal(t, "RN", cell(t, f, AssignmentsSheet, "A1"))
	assert.Equal(t, "Warnings", cell(t, f, AssignmentsSheet, "J1"))

	assert.Equal(t, "Alice", cell(t, f, AssignmentsSheet, "A2"))
	assert.Equal(t, "3", cell(t, f, AssignmentsSheet, "B2"))
	assert.Equal(t, "1", cell(t, f, AssignmentsSheet, "F2"))

	assert.Equal(t, "Bea", cell(t, f, AssignmentsSheet, "A3"))
	assert.Equal(t, "1, 2", cell(t, f, AssignmentsSheet, "B3"))
	assert.Equal(t, "2", cell(t, f, AssignmentsSheet, "C3"))
	assert.Equal(t, "6", cell(t, f, AssignmentsSheet, "D3"))
	assert.Equal(t, "moderate", cell(t, f, AssignmentsSheet, "E3"))
	assert.Equal(t, "Non-certified RN assigned to Chemo patient!", cell(t, f, AssignmentsSheet, "J3"))
}

func TestWorkbook_Rooms(t *testing.T) {
	f := openWorkbook(t)

	rows, err := f.GetRows(RoomsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 5)

	assert.Equal(t, "Not Independent", rows[0][6])
	assert.Equal(t, "Allo", cell(t, f, RoomsSheet, "B2"))
	assert.Equal(t, "4", cell(t, f, RoomsSheet, "C2"))
	assert.Equal(t, "", cell(t, f, RoomsSheet, "D2"))
	assert.Equal(t, "Yes", cell(t, f, RoomsSheet, "E2"))
	assert.Equal(t, "Yes", cell(t, f, RoomsSheet, "H2"))
	assert.Equal(t, "Bea", cell(t, f, RoomsSheet, "I2"))
	assert.Equal(t, "Alice", cell(t, f, RoomsSheet, "I4"))
	assert.Equal(t, "Yes", cell(t, f, RoomsSheet, "J4"))
	assert.Equal(t, "H", rows[4][0])
	assert.Equal(t, "", cell(t, f, RoomsSheet, "B5"))
}
