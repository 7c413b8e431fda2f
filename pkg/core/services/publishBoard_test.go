package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/charge-nurse/pkg/core/model"
)

func publishTarget() PublishTarget {
	return PublishTarget{
		UnitName:      "7A",
		ShiftLabel:    "Mon Mar 02 2026 07:00",
		SpreadsheetID: "sheet123",
		Sender:        "unit7a@example.com",
		Recipients:    []string{"charge@example.com"},
	}
}

func TestPublishBoard(t *testing.T) {
	sheets := &mockSheets{}
	mail := &mockMail{}

	result, err := PublishBoard(context.Background(), &mockStore{board: assignedUnit()}, testLayout, sheets, mail, publishTarget(), zap.NewNop())
	require.NoError(t, err)

	assert.True(t, result.Sheet)
	assert.Equal(t, "sheet123", sheets.spreadsheetID)
	assert.Equal(t, "Mon Mar 02 2026 07:00", sheets.tab)
	assert.Equal(t, []string{"Room", "Patient", "Acuity", "Flags", "RN", "CNA"}, sheets.rows[3])

	assert.Equal(t, 1, mail.sent)
	assert.Equal(t, "unit7a@example.com", mail.from)
	assert.Equal(t, []string{"charge@example.com"}, mail.to)
	assert.Equal(t, "7A assignments - Mon Mar 02 2026 07:00", mail.subject)
	assert.Equal(t, []string{"charge@example.com"}, result.EmailedTo)
	assert.Equal(t, 1, result.Unassigned)
}

func TestPublishBoard_SkipsUnconfiguredChannels(t *testing.T) {
	target := publishTarget()
	target.SpreadsheetID = ""
	target.Recipients = nil
	sheets := &mockSheets{}
	mail := &mockMail{}

	result, err := PublishBoard(context.Background(), &mockStore{board: assignedUnit()}, testLayout, sheets, mail, target, zap.NewNop())
	require.NoError(t, err)

	assert.False(t, result.Sheet)
	assert.Empty(t, result.EmailedTo)
	assert.Empty(t, sheets.tab)
	assert.Zero(t, mail.sent)
	assert.NotEmpty(t, result.Body)
}

func TestPublishBoard_SheetError(t *testing.T) {
	_, err := PublishBoard(context.Background(), &mockStore{board: assignedUnit()}, testLayout,
		&mockSheets{err: errors.New("quota")}, nil, publishTarget(), zap.NewNop())

	assert.ErrorContains(t, err, "failed to publish board to sheet: quota")
}

func TestBoardRows(t *testing.T) {
	report, err := UnitReport(context.Background(), &mockStore{board: assignedUnit()}, testLayout, zap.NewNop())
	require.NoError(t, err)

	rows := BoardRows(*report, "7A", "Mon Mar 02 2026 07:00")

	assert.Equal(t, []string{"Unit", "7A"}, rows[0])
	assert.Equal(t, []string{"1", "Allo", "4", "IMC", "Bea", ""}, rows[4])
	assert.Equal(t, []string{"3", "Auto", "3", "Admit", "Alice", ""}, rows[6])
	assert.Equal(t, []string{"4", "CART", "2", "", "-", ""}, rows[7])
	assert.Equal(t, []string{"RN", "Rooms", "Patients", "Acuity", "Warnings"}, rows[9])
	assert.Equal(t, []string{"Alice", "3", "1", "3", ""}, rows[10])
	assert.Equal(t, []string{"Bea", "1, 2", "2", "6", "Non-certified RN assigned to Chemo patient!"}, rows[11])
}

func TestSummaryEmail(t *testing.T) {
	report, err := UnitReport(context.Background(), &mockStore{board: assignedUnit()}, testLayout, zap.NewNop())
	require.NoError(t, err)

	subject, body := SummaryEmail(*report, "7A", "Mon Mar 02 2026 07:00")

	assert.Equal(t, "7A assignments - Mon Mar 02 2026 07:00", subject)
	assert.Contains(t, body, "Census 4, total acuity 11, 2 RNs.")
	assert.Contains(t, body, "Bea: 1, 2 (2 patients, acuity 6)\n  ! Non-certified RN assigned to Chemo patient!\n")
	assert.Contains(t, body, "Unassigned rooms: 4\n")
}

func TestSummaryEmail_OrphanedRoomsListedAsUnassigned(t *testing.T) {
	b := assignedUnit()
	b.Rooms[2].RN = "ghost"
	b.Rooms[3].RN = "n3"
	b.Nurses = append(b.Nurses, model.Nurse{ID: "n3"})

	report, err := UnitReport(context.Background(), &mockStore{board: b}, testLayout, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 2, report.Report.Summary.Unassigned)

	_, body := SummaryEmail(*report, "7A", "Mon Mar 02 2026 07:00")
	assert.Contains(t, body, "Unassigned rooms: 3, 4\n")
}

func TestSummaryEmail_KeepsSoftWarningsBesideCritical(t *testing.T) {
	b := assignedUnit()
	b.Rooms[2].RN = "n2" // admit alongside the acuity 4 room

	report, err := UnitReport(context.Background(), &mockStore{board: b}, testLayout, zap.NewNop())
	require.NoError(t, err)

	_, body := SummaryEmail(*report, "7A", "Mon Mar 02 2026 07:00")
	assert.Contains(t, body, "Bea: 1, 2, 3 (3 patients, acuity 9)\n"+
		"  ! Non-certified RN assigned to Chemo patient!\n"+
		"  ! Soft Limit: Avoid combining Admit with Acuity 4.\n")

	rows := BoardRows(*report, "7A", "Mon Mar 02 2026 07:00")
	last := rows[len(rows)-1]
	assert.Equal(t, "Bea", last[0])
	assert.Equal(t, "Non-certified RN assigned to Chemo patient! Soft Limit: Avoid combining Admit with Acuity 4.", last[4])
}

func TestRoomFlags(t *testing.T) {
	room := model.Room{Admit: true, IMC: true, Chemo: true, NotIndependent: true, Locked: true}
	assert.Equal(t, "Admit, IMC, Chemo, Not independent, Locked", RoomFlags(room))
	assert.Equal(t, "", RoomFlags(model.Room{}))
}
