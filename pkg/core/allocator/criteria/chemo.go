package criteria

import (
	"github.com/jakechorley/charge-nurse/pkg/core/allocator"
	"github.com/jakechorley/charge-nurse/pkg/core/model"
)

// ChemoCertificationCriterion keeps chemotherapy patients with certified nurses.
// It has no cost; a nurse is either certified or not.
type ChemoCertificationCriterion struct {
	costWeight float64
}

// NewChemoCertificationCriterion creates a new ChemoCertificationCriterion with the given weight
func NewChemoCertificationCriterion(costWeight float64) *ChemoCertificationCriterion {
	return &ChemoCertificationCriterion{costWeight: costWeight}
}

func (c *ChemoCertificationCriterion) Name() string {
	return "ChemoCertification"
}

func (c *ChemoCertificationCriterion) IsNurseEligible(load allocator.NurseLoad, room model.Room) bool {
	return !room.Chemo || load.ChemoCertified
}

func (c *ChemoCertificationCriterion) CalculateCost(load allocator.NurseLoad, room model.Room) float64 {
	return 0
}

func (c *ChemoCertificationCriterion) CostWeight() float64 {
	return c.costWeight
}

func (c *ChemoCertificationCriterion) ValidateNurseLoad(load allocator.NurseLoad) []allocator.RuleViolation {
	if !load.ChemoCertified && load.ChemoPatients > 0 {
		return []allocator.RuleViolation{
			newViolation(c, load, allocator.SeverityCritical, "Non-certified RN assigned to Chemo patient!"),
		}
	}
	return nil
}
