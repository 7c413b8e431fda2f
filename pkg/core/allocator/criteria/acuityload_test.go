package criteria

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAcuityLoadCriterion_NeverVetoes(t *testing.T) {
	criterion := NewAcuityLoadCriterion(1.0)
	assert.True(t, criterion.IsNurseEligible(NurseLoad{Patients: 4, Acuity: 16}, Room{Acuity: 4}))
}

func TestAcuityLoadCriterion_CalculateCost(t *testing.T) {
	criterion := NewAcuityLoadCriterion(1.0)

	tests := []struct {
		name     string
		load     NurseLoad
		room     Room
		expected float64
	}{
		{"light", NurseLoad{Patients: 1, Acuity: 2}, Room{Acuity: 2}, 0},
		{"reaches ten", NurseLoad{Patients: 2, Acuity: 6}, Room{Acuity: 4}, 100},
		{"just under ten", NurseLoad{Patients: 2, Acuity: 5}, Room{Acuity: 4}, 0},
		{"heavy fourth patient", NurseLoad{Patients: 3, Acuity: 7}, Room{Acuity: 3}, 100 + 20},
		{"fourth patient onto heavy load", NurseLoad{Patients: 3, Acuity: 7, HasAcuityAbove2: true}, Room{Acuity: 2}, 20},
		{"light fourth patient", NurseLoad{Patients: 3, Acuity: 6}, Room{Acuity: 2}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, criterion.CalculateCost(tt.load, tt.room))
		})
	}
}

func TestAcuityLoadCriterion_ValidateNurseLoad(t *testing.T) {
	criterion := NewAcuityLoadCriterion(1.0)

	assert.Empty(t, criterion.ValidateNurseLoad(NurseLoad{Patients: 4, Acuity: 8}))

	violations := criterion.ValidateNurseLoad(NurseLoad{Patients: 4, Acuity: 11, HasAcuityAbove2: true})
	assert.Equal(t, []string{
		"Soft Limit: RN has 4 patients, but not all are Acuity 2.",
		"High acuity load (10+).",
	}, descriptions(violations))
	for _, v := range violations {
		assert.Equal(t, soft, v.Severity)
	}
}
