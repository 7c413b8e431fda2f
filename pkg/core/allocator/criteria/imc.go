package criteria

import (
	"github.com/jakechorley/charge-nurse/pkg/core/allocator"
	"github.com/jakechorley/charge-nurse/pkg/core/model"
)

// MaxPatientsWithIMC caps nurses caring for an IMC patient
const MaxPatientsWithIMC = 3

// IMCCriterion caps nurses with step-down patients at three patients.
// The cap applies both when the new room is IMC and when the nurse already has an IMC patient.
type IMCCriterion struct {
	costWeight float64
}

// NewIMCCriterion creates a new IMCCriterion with the given weight
func NewIMCCriterion(costWeight float64) *IMCCriterion {
	return &IMCCriterion{costWeight: costWeight}
}

func (c *IMCCriterion) Name() string {
	return "IMC"
}

func (c *IMCCriterion) IsNurseEligible(load allocator.NurseLoad, room model.Room) bool {
	if room.IMC && load.Patients >= MaxPatientsWithIMC {
		return false
	}
	if load.IMCs > 0 && load.Patients >= MaxPatientsWithIMC {
		return false
	}
	return true
}

func (c *IMCCriterion) CalculateCost(load allocator.NurseLoad, room model.Room) float64 {
	return 0
}

func (c *IMCCriterion) CostWeight() float64 {
	return c.costWeight
}

func (c *IMCCriterion) ValidateNurseLoad(load allocator.NurseLoad) []allocator.RuleViolation {
	if load.IMCs > 0 && load.Patients > MaxPatientsWithIMC {
		return []allocator.RuleViolation{
			newViolation(c, load, allocator.SeverityCritical, "RN with IMC has more than 3 patients!"),
		}
	}
	return nil
}
