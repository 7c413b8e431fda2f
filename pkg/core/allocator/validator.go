package allocator

import "github.com/jakechorley/charge-nurse/pkg/core/model"

// ValidateAssignments checks the census load of every active nurse against all provided criteria.
// Returns a slice of violations in roster order, then criteria order.
// An empty slice indicates the board is within every rule.
func ValidateAssignments(rooms []model.Room, nurses []model.Nurse, criteria []Criterion) []RuleViolation {
	var violations []RuleViolation

	for _, load := range AggregateCensusLoads(rooms, nurses).Loads() {
		violations = append(violations, ValidateNurseLoad(load, criteria)...)
	}

	return violations
}

// ValidateNurseLoad runs every criterion against one nurse's load
func ValidateNurseLoad(load NurseLoad, criteria []Criterion) []RuleViolation {
	var violations []RuleViolation
	for _, criterion := range criteria {
		violations = append(violations, criterion.ValidateNurseLoad(load)...)
	}
	return violations
}

// HasCritical returns true if any violation is critical
func HasCritical(violations []RuleViolation) bool {
	for _, v := range violations {
		if v.Severity == SeverityCritical {
			return true
		}
	}
	return false
}
