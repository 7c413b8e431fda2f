package allocator

import (
	"testing"

	"github.com/jakechorley/charge-nurse/pkg/core/model"
	"github.com/stretchr/testify/assert"
)

func TestUnplacedReason(t *testing.T) {
	tests := []struct {
		name     string
		room     model.Room
		expected string
	}{
		{"plain acuity", model.Room{Acuity: 2}, "Acuity 2"},
		{"zero acuity", model.Room{Acuity: 0}, "Acuity 0"},
		{"acuity 4 only", model.Room{Acuity: 4}, "Acuity 4"},
		{"chemo", model.Room{Acuity: 2, Chemo: true}, "Chemo"},
		{"all flags in order", model.Room{Acuity: 4, Admit: true, IMC: true, Chemo: true}, "Acuity 4, Chemo, IMC, Admit"},
		{"imc and admit", model.Room{Acuity: 3, IMC: true, Admit: true}, "IMC, Admit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, UnplacedReason(tt.room))
		})
	}
}

func TestRationale_String(t *testing.T) {
	assert.Equal(t, MessageNoActiveNurses, Rationale{Message: MessageNoActiveNurses}.String())

	r := Rationale{
		Summary:  &PlacementSummary{Placed: 4, PreservedLocked: 1, ChemoPlaced: 2, AdmitsPlaced: 1, Acuity4Placed: 1},
		Unplaced: []UnplacedRoom{{Room: "5", Reason: "Acuity 2"}},
	}
	text := r.String()

	assert.Contains(t, text, "Auto-assigned 4 patients while preserving 1 locked assignments.")
	assert.Contains(t, text, "Placed 2 chemo patients")
	assert.Contains(t, text, "Room 5: Acuity 2")
	assert.True(t, r.HasUnplaced())
}
