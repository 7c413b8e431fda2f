package criteria

import (
	"github.com/jakechorley/charge-nurse/pkg/core/allocator"
	"github.com/jakechorley/charge-nurse/pkg/core/model"
)

// FourthPatientAdmitCost discourages a fourth patient when an admission is involved
const FourthPatientAdmitCost = 25

// AdmissionCriterion limits admissions to one per nurse.
//
// Validity:
//   - Returns false for an admit room if the nurse already has an admission
//
// Cost:
//   - FourthPatientAdmitCost when the nurse has 3 patients and either already has an admit
//     or the room is one
type AdmissionCriterion struct {
	costWeight float64
}

// NewAdmissionCriterion creates a new AdmissionCriterion with the given weight
func NewAdmissionCriterion(costWeight float64) *AdmissionCriterion {
	return &AdmissionCriterion{costWeight: costWeight}
}

func (c *AdmissionCriterion) Name() string {
	return "Admission"
}

func (c *AdmissionCriterion) IsNurseEligible(load allocator.NurseLoad, room model.Room) bool {
	return !room.Admit || load.Admits < 1
}

func (c *AdmissionCriterion) CalculateCost(load allocator.NurseLoad, room model.Room) float64 {
	if load.Patients == 3 && (load.HasAdmit() || room.Admit) {
		return FourthPatientAdmitCost
	}
	return 0
}

func (c *AdmissionCriterion) CostWeight() float64 {
	return c.costWeight
}

func (c *AdmissionCriterion) ValidateNurseLoad(load allocator.NurseLoad) []allocator.RuleViolation {
	var violations []allocator.RuleViolation

	if load.Admits > 1 {
		violations = append(violations, newViolation(c, load, allocator.SeverityCritical, "RN has more than 1 admit!"))
	}
	if load.HasAdmit() && load.Patients > 3 {
		violations = append(violations, newViolation(c, load, allocator.SeveritySoft, "Soft Limit: RN with an admit has 4 patients."))
	}

	return violations
}
