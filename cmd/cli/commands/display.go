package commands

import (
	"fmt"
	"strings"

	"github.com/jakechorley/charge-nurse/pkg/core/allocator"
	"github.com/jakechorley/charge-nurse/pkg/core/model"
	"github.com/jakechorley/charge-nurse/pkg/core/services"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorGreen  = "\033[32m"
	colorDim    = "\033[2m"
)

// formatBoard renders the room table followed by one line per nurse
func formatBoard(s model.Snapshot, report allocator.UnitReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%-5s  %-12s  %-6s  %-32s  %-16s  %s\n", "Room", "Patient", "Acuity", "Flags", "RN", "CNA")
	fmt.Fprintln(&b, strings.Repeat("-", 84))
	for _, room := range s.Rooms {
		if !room.IsOccupied() {
			fmt.Fprintf(&b, "%s%-5s  (empty)%s\n", colorDim, room.ID, colorReset)
			continue
		}
		cna := ""
		if room.CNA {
			cna = "CNA"
		}
		fmt.Fprintf(&b, "%-5s  %-12s  %-6d  %-32s  %-16s  %s\n",
			room.ID, room.Diagnosis, room.Acuity, services.RoomFlags(room), s.NurseName(room.RN), cna)
	}

	fmt.Fprintln(&b)
	for _, n := range report.Nurses {
		fmt.Fprintf(&b, "%s%-16s%s  %-16s  %s%d patients, acuity %d%s\n",
			severityColor(n.Severity()), n.Load.Name, colorReset, joinRoomIDs(n.Load.Rooms),
			bandColor(n.Band), n.Load.Patients, n.Load.Acuity, colorReset)
		for _, v := range n.Warnings() {
			fmt.Fprintf(&b, "    %s\n", formatViolation(v))
		}
	}

	sum := report.Summary
	fmt.Fprintf(&b, "\nCensus %d, total acuity %d, %d acuity 4, %d chemo, %d admits, %d unassigned, %d RNs\n",
		sum.Census, sum.TotalAcuity, sum.Acuity4, sum.Chemo, sum.Admits, sum.Unassigned, sum.ActiveNurses)

	return b.String()
}

func formatViolation(v allocator.RuleViolation) string {
	color := colorYellow
	if v.Severity == allocator.SeverityCritical {
		color = colorRed
	}
	return fmt.Sprintf("%s! %s%s", color, v.Description, colorReset)
}

// severityColor colours a nurse's name by the worst rule they break
func severityColor(severity allocator.Severity) string {
	switch severity {
	case allocator.SeverityCritical:
		return colorRed
	case allocator.SeveritySoft:
		return colorYellow
	}
	return colorReset
}

func bandColor(band allocator.AcuityBand) string {
	switch band {
	case allocator.BandHigh:
		return colorRed
	case allocator.BandElevated:
		return colorYellow
	case allocator.BandModerate, allocator.BandLight:
		return colorGreen
	}
	return colorDim
}

func joinRoomIDs(ids []model.RoomID) string {
	if len(ids) == 0 {
		return "-"
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = string(id)
	}
	return strings.Join(parts, ", ")
}
