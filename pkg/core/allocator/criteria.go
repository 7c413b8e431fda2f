package allocator

import "github.com/jakechorley/charge-nurse/pkg/core/model"

// Severity of a rule violation found after assignment
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeveritySoft     Severity = "soft"
)

// RuleViolation is a warning about a nurse's load
type RuleViolation struct {
	NurseID       model.NurseID `json:"nurseId"`
	NurseName     string        `json:"nurseName"`
	CriterionName string        `json:"criterion"`
	Severity      Severity      `json:"severity"`
	Description   string        `json:"description"`
}

// Criterion defines one safety rule of the assignment.
// Criteria both veto placements and add to the cost used to rank eligible nurses.
type Criterion interface {
	// Name returns a human-readable identifier for this criterion
	Name() string

	// IsNurseEligible determines if the nurse may legally receive the room given their current load.
	// Returns false if the placement would break a hard constraint.
	// This acts as a veto - if ANY criterion returns false, the nurse is not eligible
	IsNurseEligible(load NurseLoad, room model.Room) bool

	// CalculateCost returns the preference penalty of giving the room to the nurse.
	// Lower is better. The result is multiplied by CostWeight.
	// Return 0 if this criterion doesn't affect ranking
	CalculateCost(load NurseLoad, room model.Room) float64

	// CostWeight returns the multiplier applied to CalculateCost
	CostWeight() float64

	// ValidateNurseLoad checks a nurse's final load against this criterion.
	// Returns a slice of violations (empty if the load is acceptable).
	// Loads passed here come from the census of the whole board, so they may exceed the hard caps
	// when assignments were made by hand
	ValidateNurseLoad(load NurseLoad) []RuleViolation
}

// IsNurseEligible reports whether the nurse can take the room under every criterion.
// Locked nurses are never eligible for new rooms.
func IsNurseEligible(load NurseLoad, room model.Room, criteria []Criterion) bool {
	if load.Locked {
		return false
	}
	for _, criterion := range criteria {
		if !criterion.IsNurseEligible(load, room) {
			return false
		}
	}
	return true
}

// CalculateCost sums the weighted cost of giving the room to the nurse
func CalculateCost(load NurseLoad, room model.Room, criteria []Criterion) float64 {
	cost := 0.0
	for _, criterion := range criteria {
		cost += criterion.CalculateCost(load, room) * criterion.CostWeight()
	}
	return cost
}
