package criteria

import (
	"fmt"

	"github.com/jakechorley/charge-nurse/pkg/core/allocator"
	"github.com/jakechorley/charge-nurse/pkg/core/model"
)

// MaxPatients is the hard cap on patients per nurse
const MaxPatients = 4

// PatientCost is the cost of each patient a nurse already carries
const PatientCost = 3.5

// WorkloadCriterion caps patients per nurse and spreads patients evenly.
//
// Validity:
//   - Returns false if the nurse already has MaxPatients patients
//
// Cost:
//   - patients x PatientCost + summed acuity, so lighter nurses are preferred
type WorkloadCriterion struct {
	costWeight float64
}

// NewWorkloadCriterion creates a new WorkloadCriterion with the given weight
func NewWorkloadCriterion(costWeight float64) *WorkloadCriterion {
	return &WorkloadCriterion{costWeight: costWeight}
}

func (c *WorkloadCriterion) Name() string {
	return "Workload"
}

func (c *WorkloadCriterion) IsNurseEligible(load allocator.NurseLoad, room model.Room) bool {
	return load.Patients < MaxPatients
}

func (c *WorkloadCriterion) CalculateCost(load allocator.NurseLoad, room model.Room) float64 {
	return float64(load.Patients)*PatientCost + float64(load.Acuity)
}

func (c *WorkloadCriterion) CostWeight() float64 {
	return c.costWeight
}

func (c *WorkloadCriterion) ValidateNurseLoad(load allocator.NurseLoad) []allocator.RuleViolation {
	if load.Patients > MaxPatients {
		return []allocator.RuleViolation{
			newViolation(c, load, allocator.SeverityCritical, fmt.Sprintf("RN has more than %d patients!", MaxPatients)),
		}
	}
	return nil
}

// newViolation builds a violation for the nurse owning the load
func newViolation(c allocator.Criterion, load allocator.NurseLoad, severity allocator.Severity, description string) allocator.RuleViolation {
	return allocator.RuleViolation{
		NurseID:       load.NurseID,
		NurseName:     load.Name,
		CriterionName: c.Name(),
		Severity:      severity,
		Description:   description,
	}
}
