package criteria

import (
	"github.com/jakechorley/charge-nurse/pkg/core/allocator"
	"github.com/jakechorley/charge-nurse/pkg/core/model"
)

const (
	// MaxPatientsWithAcuity4 caps nurses caring for an acuity 4 patient
	MaxPatientsWithAcuity4 = 3

	// Acuity4AdmitMixCost discourages combining an acuity 4 patient with an admission
	Acuity4AdmitMixCost = 50
)

// HighAcuityCriterion protects nurses caring for acuity 4 patients.
//
// Validity:
//   - At most one acuity 4 patient per nurse
//   - A nurse with an acuity 4 patient has at most 3 patients, whichever room comes first
//
// Cost:
//   - Acuity4AdmitMixCost when an admit would join an acuity 4 patient or the reverse
type HighAcuityCriterion struct {
	costWeight float64
}

// NewHighAcuityCriterion creates a new HighAcuityCriterion with the given weight
func NewHighAcuityCriterion(costWeight float64) *HighAcuityCriterion {
	return &HighAcuityCriterion{costWeight: costWeight}
}

func (c *HighAcuityCriterion) Name() string {
	return "HighAcuity"
}

func (c *HighAcuityCriterion) IsNurseEligible(load allocator.NurseLoad, room model.Room) bool {
	if room.Acuity == 4 && (load.HasAcuity4() || load.Patients >= MaxPatientsWithAcuity4) {
		return false
	}
	if load.HasAcuity4() && load.Patients >= MaxPatientsWithAcuity4 {
		return false
	}
	return true
}

func (c *HighAcuityCriterion) CalculateCost(load allocator.NurseLoad, room model.Room) float64 {
	if (load.HasAcuity4() && room.Admit) || (load.HasAdmit() && room.Acuity == 4) {
		return Acuity4AdmitMixCost
	}
	return 0
}

func (c *HighAcuityCriterion) CostWeight() float64 {
	return c.costWeight
}

func (c *HighAcuityCriterion) ValidateNurseLoad(load allocator.NurseLoad) []allocator.RuleViolation {
	var violations []allocator.RuleViolation

	if load.Acuity4Count > 1 {
		violations = append(violations, newViolation(c, load, allocator.SeverityCritical, "RN has more than 1 Acuity 4 patient!"))
	}
	if load.HasAcuity4() && load.Patients > MaxPatientsWithAcuity4 {
		violations = append(violations, newViolation(c, load, allocator.SeverityCritical, "RN with Acuity 4 patient has more than 3 patients!"))
	}
	if load.HasAcuity4() && load.HasAdmit() {
		violations = append(violations, newViolation(c, load, allocator.SeveritySoft, "Soft Limit: Avoid combining Admit with Acuity 4."))
	}

	return violations
}
