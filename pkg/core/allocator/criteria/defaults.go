package criteria

import "github.com/jakechorley/charge-nurse/pkg/core/allocator"

// Default returns the unit's standard rule set with unit weights
func Default() []allocator.Criterion {
	return []allocator.Criterion{
		NewWorkloadCriterion(1),
		NewChemoCertificationCriterion(1),
		NewAdmissionCriterion(1),
		NewIMCCriterion(1),
		NewHighAcuityCriterion(1),
		NewAcuityLoadCriterion(1),
	}
}
