package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"

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
			{ID: "3", Diagnosis: "Auto", Acuity: 3, Admit: true, RN: model.Unassigned},
			{ID: model.FlexBed, RN: model.Unassigned},
		},
	}
}

func TestFormatBoard(t *testing.T) {
	b := testBoard()
	out := formatBoard(b, allocator.BuildUnitReport(b.Rooms, b.Nurses, criteria.Default()))

	assert.Contains(t, out, "Allo")
	assert.Contains(t, out, "IMC")
	assert.Contains(t, out, "(empty)")
	assert.Contains(t, out, "1, 2")
	assert.Contains(t, out, "2 patients, acuity 6")
	assert.Contains(t, out, "! Non-certified RN assigned to Chemo patient!")
	assert.Contains(t, out, "Census 3, total acuity 9")
	assert.Contains(t, out, "1 unassigned, 2 RNs")
}

func TestBandColor(t *testing.T) {
	assert.Equal(t, colorRed, bandColor(allocator.BandHigh))
	assert.Equal(t, colorYellow, bandColor(allocator.BandElevated))
	assert.Equal(t, colorGreen, bandColor(allocator.BandLight))
	assert.Equal(t, colorDim, bandColor(allocator.BandNone))
}

func TestSeverityColor(t *testing.T) {
	assert.Equal(t, colorRed, severityColor(allocator.SeverityCritical))
	assert.Equal(t, colorYellow, severityColor(allocator.SeveritySoft))
	assert.Equal(t, colorReset, severityColor(""))
}

func TestJoinRoomIDs(t *testing.T) {
	assert.Equal(t, "-", joinRoomIDs(nil))
	assert.Equal(t, "1, H", joinRoomIDs([]model.RoomID{"1", model.FlexBed}))
}
