package criteria

import (
	"github.com/jakechorley/charge-nurse/pkg/core/allocator"
	"github.com/jakechorley/charge-nurse/pkg/core/model"
)

// Type aliases for test readability - shared across all criterion tests
type (
	NurseLoad     = allocator.NurseLoad
	Room          = model.Room
	RuleViolation = allocator.RuleViolation
)

const (
	critical = allocator.SeverityCritical
	soft     = allocator.SeveritySoft
)

// descriptions returns the violation texts for compact assertions
func descriptions(violations []RuleViolation) []string {
	var out []string
	for _, v := range violations {
		out = append(out, v.Description)
	}
	return out
}
