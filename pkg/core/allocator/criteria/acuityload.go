package criteria

import (
	"github.com/jakechorley/charge-nurse/pkg/core/allocator"
	"github.com/jakechorley/charge-nurse/pkg/core/model"
)

const (
	// HighAcuityThreshold is the summed acuity considered a heavy assignment
	HighAcuityThreshold = 10

	HighAcuityCost         = 100
	FourthPatientHeavyCost = 20
)

// AcuityLoadCriterion keeps summed acuity reasonable. It never vetoes a placement.
//
// Cost:
//   - HighAcuityCost if the room would bring the nurse to HighAcuityThreshold or more
//   - FourthPatientHeavyCost for a fourth patient when the room or the nurse's load is above acuity 2
type AcuityLoadCriterion struct {
	costWeight float64
}

// NewAcuityLoadCriterion creates a new AcuityLoadCriterion with the given weight
func NewAcuityLoadCriterion(costWeight float64) *AcuityLoadCriterion {
	return &AcuityLoadCriterion{costWeight: costWeight}
}

func (c *AcuityLoadCriterion) Name() string {
	return "AcuityLoad"
}

func (c *AcuityLoadCriterion) IsNurseEligible(load allocator.NurseLoad, room model.Room) bool {
	return true
}

func (c *AcuityLoadCriterion) CalculateCost(load allocator.NurseLoad, room model.Room) float64 {
	cost := 0.0
	if load.Acuity+int(room.Acuity) >= HighAcuityThreshold {
		cost += HighAcuityCost
	}
	if load.Patients == 3 && (room.Acuity > 2 || load.HasAcuityAbove2) {
		cost += FourthPatientHeavyCost
	}
	return cost
}

func (c *AcuityLoadCriterion) CostWeight() float64 {
	return c.costWeight
}

func (c *AcuityLoadCriterion) ValidateNurseLoad(load allocator.NurseLoad) []allocator.RuleViolation {
	var violations []allocator.RuleViolation

	if load.Patients == 4 && load.HasAcuityAbove2 {
		violations = append(violations, newViolation(c, load, allocator.SeveritySoft, "Soft Limit: RN has 4 patients, but not all are Acuity 2."))
	}
	if load.Acuity >= HighAcuityThreshold {
		violations = append(violations, newViolation(c, load, allocator.SeveritySoft, "High acuity load (10+)."))
	}

	return violations
}
