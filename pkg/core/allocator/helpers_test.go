package allocator

import (
	"fmt"

	"github.com/jakechorley/charge-nurse/pkg/core/model"
)

// capCriterion is a minimal criterion for exercising the engine without the criteria package.
// It caps patients and prefers the lightest nurse.
type capCriterion struct {
	max int
}

func (c capCriterion) Name() string { return "Cap" }

func (c capCriterion) IsNurseEligible(load NurseLoad, room model.Room) bool {
	return load.Patients < c.max
}

func (c capCriterion) CalculateCost(load NurseLoad, room model.Room) float64 {
	return float64(load.Patients)
}

func (c capCriterion) CostWeight() float64 { return 1 }

func (c capCriterion) ValidateNurseLoad(load NurseLoad) []RuleViolation {
	if load.Patients > c.max {
		return []RuleViolation{{
			NurseID:       load.NurseID,
			NurseName:     load.Name,
			CriterionName: c.Name(),
			Severity:      SeverityCritical,
			Description:   fmt.Sprintf("more than %d", c.max),
		}}
	}
	return nil
}

// chemoCriterion vetoes chemo rooms for uncertified nurses
type chemoCriterion struct{}

func (chemoCriterion) Name() string { return "Chemo" }

func (chemoCriterion) IsNurseEligible(load NurseLoad, room model.Room) bool {
	return !room.Chemo || load.ChemoCertified
}

func (chemoCriterion) CalculateCost(NurseLoad, model.Room) float64 { return 0 }

func (chemoCriterion) CostWeight() float64 { return 1 }

func (chemoCriterion) ValidateNurseLoad(NurseLoad) []RuleViolation { return nil }

func testNurse(id, name string) model.Nurse {
	return model.Nurse{ID: model.NurseID(id), Name: name}
}

func testRoom(n int, acuity model.Acuity) model.Room {
	return model.Room{
		ID:        model.RoomNumber(n),
		Diagnosis: fmt.Sprintf("Pt %d", n),
		Acuity:    acuity,
		RN:        model.Unassigned,
	}
}
