// Package export renders the board as a printable workbook.
package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jakechorley/charge-nurse/pkg/core/allocator"
	"github.com/jakechorley/charge-nurse/pkg/core/model"
)

const (
	AssignmentsSheet = "Assignments"
	RoomsSheet       = "Rooms"
)

var assignmentsHeader = []string{"RN", "Rooms", "Patients", "Acuity", "Load", "Admits", "IMC", "Acuity 4", "Chemo", "Warnings"}
var assignmentsWidths = []float64{18, 16, 10, 10, 12, 10, 8, 10, 8, 60}

var roomsHeader = []string{"Room", "Patient", "Acuity", "Admit", "IMC", "Chemo", "Not Independent", "CNA", "RN", "Locked"}
var roomsWidths = []float64{8, 18, 8, 8, 8, 8, 16, 8, 18, 8}

// Workbook builds an XLSX file with one sheet of nurse assignments and one of rooms
func Workbook(board model.Snapshot, report allocator.UnitReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	assignments := make([][]any, 0, len(report.Nurses))
	for _, n := range report.Nurses {
		assignments = append(assignments, []any{
			n.Load.Name,
			joinRooms(n.Load.Rooms),
			n.Load.Patients,
			n.Load.Acuity,
			string(n.Band),
			n.Load.Admits,
			n.Load.IMCs,
			n.Load.Acuity4Count,
			n.Load.ChemoPatients,
			joinWarnings(n.Warnings()),
		})
	}

	rooms := make([][]any, 0, len(board.Rooms))
	for _, r := range board.Rooms {
		if !r.IsOccupied() {
			rooms = append(rooms, []any{string(r.ID)})
			continue
		}
		rooms = append(rooms, []any{
			string(r.ID),
			r.Diagnosis,
			int(r.Acuity),
			yes(r.Admit),
			yes(r.IMC),
			yes(r.Chemo),
			yes(r.NotIndependent),
			yes(r.CNA),
			board.NurseName(r.RN),
			yes(r.Locked),
		})
	}

	if err := writeSheet(f, AssignmentsSheet, assignmentsHeader, assignmentsWidths, assignments, headerStyle); err != nil {
		return nil, err
	}
	if err := writeSheet(f, RoomsSheet, roomsHeader, roomsWidths, rooms, headerStyle); err != nil {
		return nil, err
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to delete default sheet: %w", err)
	}
	index, err := f.GetSheetIndex(AssignmentsSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to find %s sheet: %w", AssignmentsSheet, err)
	}
	f.SetActiveSheet(index)

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// writeSheet creates a sheet with a styled, frozen header row followed by rows
func writeSheet(f *excelize.File, name string, header []string, widths []float64, rows [][]any, headerStyle int) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", name, err)
	}

	for col, title := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(name, cell, title); err != nil {
			return fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(name, cell, cell, headerStyle); err != nil {
			return fmt.Errorf("failed to set header style: %w", err)
		}

		colName, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return fmt.Errorf("failed to convert column number: %w", err)
		}
		if col < len(widths) {
			if err := f.SetColWidth(name, colName, colName, widths[col]); err != nil {
				return fmt.Errorf("failed to set column width: %w", err)
			}
		}
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetSheetRow(name, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d of %s: %w", i+2, name, err)
		}
	}

	if err := f.SetPanes(name, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("failed to freeze panes: %w", err)
	}
	return nil
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

func yes(b bool) string {
	if b {
		return "Yes"
	}
	return ""
}
