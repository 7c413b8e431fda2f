package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/jakechorley/charge-nurse/pkg/core/allocator"
	"github.com/jakechorley/charge-nurse/pkg/core/model"
	"github.com/jakechorley/charge-nurse/pkg/db"
)

// SheetPublisher writes rows to a spreadsheet tab, replacing what was there
type SheetPublisher interface {
	PublishBoard(spreadsheetID, tabTitle string, rows [][]string) error
}

// EmailSender sends a plain text email
type EmailSender interface {
	SendEmail(from string, to []string, subject, body string) error
}

// PublishTarget says where a board is published. Empty fields skip that channel.
type PublishTarget struct {
	UnitName      string
	ShiftLabel    string
	SpreadsheetID string
	Sender        string
	Recipients    []string
}

// PublishResult describes what was published
type PublishResult struct {
	TabTitle   string
	Sheet      bool
	EmailedTo  []string
	Subject    string
	Body       string
	Unassigned int
}

// PublishBoard publishes the saved board to a sheet tab named after the shift and emails
// the assignment summary. A nil publisher or sender skips that channel.
func PublishBoard(
	ctx context.Context,
	store db.BoardStore,
	layout model.UnitLayout,
	sheets SheetPublisher,
	mail EmailSender,
	target PublishTarget,
	logger *zap.Logger,
) (*PublishResult, error) {
	logger.Debug("Publishing board", zap.String("shift", target.ShiftLabel), zap.String("unit", target.UnitName))

	current, err := UnitReport(ctx, store, layout, logger)
	if err != nil {
		return nil, err
	}

	subject, body := SummaryEmail(*current, target.UnitName, target.ShiftLabel)
	result := &PublishResult{
		TabTitle:   target.ShiftLabel,
		Subject:    subject,
		Body:       body,
		Unassigned: current.Report.Summary.Unassigned,
	}

	if sheets != nil && target.SpreadsheetID != "" {
		logger.Debug("Writing board to sheet", zap.String("spreadsheet_id", target.SpreadsheetID), zap.String("tab", result.TabTitle))
		if err := sheets.PublishBoard(target.SpreadsheetID, result.TabTitle, BoardRows(*current, target.UnitName, target.ShiftLabel)); err != nil {
			return nil, fmt.Errorf("failed to publish board to sheet: %w", err)
		}
		result.Sheet = true
	}

	if mail != nil && len(target.Recipients) > 0 {
		logger.Debug("Emailing summary", zap.Strings("recipients", target.Recipients))
		if err := mail.SendEmail(target.Sender, target.Recipients, subject, body); err != nil {
			return nil, fmt.Errorf("failed to email summary: %w", err)
		}
		result.EmailedTo = target.Recipients
	}

	logger.Info("Board published",
		zap.String("tab", result.TabTitle),
		zap.Bool("sheet", result.Sheet),
		zap.Int("emails", len(result.EmailedTo)))

	return result, nil
}

// BoardRows lays the board out for a spreadsheet: a header block, one row per room,
// then one row per nurse with their load and warnings
func BoardRows(r BoardReport, unitName, shiftLabel string) [][]string {
	rows := [][]string{
		{"Unit", unitName},
		{"Shift", shiftLabel},
		{},
		{"Room", "Patient", "Acuity", "Flags", "RN", "CNA"},
	}

	for _, room := range r.Board.Rooms {
		if !room.IsOccupied() {
			rows = append(rows, []string{string(room.ID), "", "", "", "", ""})
			continue
		}
		rows = append(rows, []string{
			string(room.ID),
			room.Diagnosis,
			strconv.Itoa(int(room.Acuity)),
			RoomFlags(room),
			r.Board.NurseName(room.RN),
			yesNo(room.CNA),
		})
	}

	rows = append(rows, []string{}, []string{"RN", "Rooms", "Patients", "Acuity", "Warnings"})
	for _, nurse := range r.Report.Nurses {
		rows = append(rows, []string{
			nurse.Load.Name,
			joinRooms(nurse.Load.Rooms),
			strconv.Itoa(nurse.Load.Patients),
			strconv.Itoa(nurse.Load.Acuity),
			joinWarnings(nurse.Warnings()),
		})
	}

	return rows
}

// SummaryEmail renders the subject and plain text body of the assignment email
func SummaryEmail(r BoardReport, unitName, shiftLabel string) (string, string) {
	subject := fmt.Sprintf("%s assignments - %s", unitName, shiftLabel)

	var b strings.Builder
	s := r.Report.Summary
	fmt.Fprintf(&b, "%s, shift starting %s\n", unitName, shiftLabel)
	fmt.Fprintf(&b, "Census %d, total acuity %d, %d RNs.\n", s.Census, s.TotalAcuity, s.ActiveNurses)
	fmt.Fprintf(&b, "Acuity 4: %d, Acuity 3: %d, Chemo: %d, IMC: %d, Admits: %d, CNA: %d\n\n",
		s.Acuity4, s.Acuity3, s.Chemo, s.IMC, s.Admits, s.CNA)

	for _, nurse := range r.Report.Nurses {
		rooms := joinRooms(nurse.Load.Rooms)
		if rooms == "" {
			rooms = "no rooms"
		}
		fmt.Fprintf(&b, "%s: %s (%d patients, acuity %d)\n", nurse.Load.Name, rooms, nurse.Load.Patients, nurse.Load.Acuity)
		for _, w := range nurse.Warnings() {
			fmt.Fprintf(&b, "  ! %s\n", w.Description)
		}
	}

	if unassigned := allocator.UnassignedRooms(r.Board.Rooms, r.Board.Nurses); len(unassigned) > 0 {
		fmt.Fprintf(&b, "\nUnassigned rooms: %s\n", joinRooms(unassigned))
	}

	return subject, b.String()
}

// RoomFlags lists a room's clinical flags, e.g. "Admit, IMC"
func RoomFlags(room model.Room) string {
	var flags []string
	if room.Admit {
		flags = append(flags, "Admit")
	}
	if room.IMC {
		flags = append(flags, "IMC")
	}
	if room.Chemo {
		flags = append(flags, "Chemo")
	}
	if room.NotIndependent {
		flags = append(flags, "Not independent")
	}
	if room.Locked {
		flags = append(flags, "Locked")
	}
	return strings.Join(flags, ", ")
}

func joinRooms(ids []model.RoomID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = string(id)
	}
	return strings.Join(parts, ", ")
}

func joinWarnings(violations []allocator.RuleViolation) string {
	parts := make([]string, len(violations))
	for i, v := range violations {
		parts[i] = v.Description
	}
	return strings.Join(parts, " ")
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return ""
}
