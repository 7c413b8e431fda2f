package allocator

import "github.com/jakechorley/charge-nurse/pkg/core/model"

// AcuityBand classifies a nurse's summed acuity for display
type AcuityBand string

const (
	BandNone     AcuityBand = "none"
	BandLight    AcuityBand = "light"
	BandModerate AcuityBand = "moderate"
	BandElevated AcuityBand = "elevated"
	BandHigh     AcuityBand = "high"
)

// BandForAcuity returns the band of a summed acuity
func BandForAcuity(acuity int) AcuityBand {
	switch {
	case acuity >= 10:
		return BandHigh
	case acuity >= 8:
		return BandElevated
	case acuity >= 6:
		return BandModerate
	case acuity > 0:
		return BandLight
	default:
		return BandNone
	}
}

// UnitSummary holds unit-wide census figures. Only occupied rooms are counted.
type UnitSummary struct {
	Census       int `json:"census"`
	TotalAcuity  int `json:"totalAcuity"`
	Acuity4      int `json:"acuity4"`
	Acuity3      int `json:"acuity3"`
	Chemo        int `json:"chemo"`
	IMC          int `json:"imc"`
	Admits       int `json:"admits"`
	CNA          int `json:"cna"`
	Unassigned   int `json:"unassigned"`
	ActiveNurses int `json:"activeNurses"`
}

// SummarizeUnit computes the unit summary of a board
func SummarizeUnit(rooms []model.Room, nurses []model.Nurse) UnitSummary {
	summary := UnitSummary{
		ActiveNurses: NewLoadTable(nurses).Len(),
		Unassigned:   len(UnassignedRooms(rooms, nurses)),
	}

	for _, room := range rooms {
		if !room.IsOccupied() {
			continue
		}
		summary.Census++
		summary.TotalAcuity += int(room.Acuity)
		switch room.Acuity {
		case 4:
			summary.Acuity4++
		case 3:
			summary.Acuity3++
		}
		if room.Chemo {
			summary.Chemo++
		}
		if room.IMC {
			summary.IMC++
		}
		if room.Admit {
			summary.Admits++
		}
		if room.CNA {
			summary.CNA++
		}
	}

	return summary
}

// UnassignedRooms lists the occupied rooms that have no active nurse.
// Rooms pointing at a removed or nameless nurse count as unassigned.
func UnassignedRooms(rooms []model.Room, nurses []model.Nurse) []model.RoomID {
	active := NewLoadTable(nurses)

	var ids []model.RoomID
	for _, room := range rooms {
		if !room.IsOccupied() {
			continue
		}
		if _, ok := active.Get(room.RN); !ok {
			ids = append(ids, room.ID)
		}
	}
	return ids
}

// NurseReport is the census load of one nurse with its warnings
type NurseReport struct {
	Load       NurseLoad       `json:"load"`
	Band       AcuityBand      `json:"band"`
	Violations []RuleViolation `json:"violations"`
}

// Warnings returns every violation of the nurse, critical ones first
func (r NurseReport) Warnings() []RuleViolation {
	warnings := make([]RuleViolation, 0, len(r.Violations))
	for _, v := range r.Violations {
		if v.Severity == SeverityCritical {
			warnings = append(warnings, v)
		}
	}
	for _, v := range r.Violations {
		if v.Severity != SeverityCritical {
			warnings = append(warnings, v)
		}
	}
	return warnings
}

// Severity is the worst severity among the nurse's violations, or empty when there are none
func (r NurseReport) Severity() Severity {
	switch {
	case HasCritical(r.Violations):
		return SeverityCritical
	case len(r.Violations) > 0:
		return SeveritySoft
	}
	return ""
}

// UnitReport is the full statistics view of a board
type UnitReport struct {
	Summary UnitSummary   `json:"summary"`
	Nurses  []NurseReport `json:"nurses"`
}

// BuildUnitReport aggregates the census loads of the board and validates each nurse
func BuildUnitReport(rooms []model.Room, nurses []model.Nurse, criteria []Criterion) UnitReport {
	report := UnitReport{Summary: SummarizeUnit(rooms, nurses)}

	for _, load := range AggregateCensusLoads(rooms, nurses).Loads() {
		report.Nurses = append(report.Nurses, NurseReport{
			Load:       load,
			Band:       BandForAcuity(load.Acuity),
			Violations: ValidateNurseLoad(load, criteria),
		})
	}

	return report
}
