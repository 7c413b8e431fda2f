package allocator

import (
	"testing"

	"github.com/jakechorley/charge-nurse/pkg/core/model"
	"github.com/stretchr/testify/assert"
)

func TestAssignCNAs(t *testing.T) {
	high := testRoom(1, 4)
	admit := testRoom(2, 2)
	admit.Admit = true
	notIndep := testRoom(3, 2)
	notIndep.NotIndependent = true
	plain := testRoom(4, 2)
	plain.CNA = true
	lockedHigh := testRoom(5, 4)
	lockedHigh.Locked = true
	lockedHigh.RN = "a"
	emptyHigh := testRoom(6, 4)
	emptyHigh.Diagnosis = ""
	flex := model.Room{ID: model.FlexBed, Diagnosis: "Auto", Acuity: 2, RN: "b"}
	emptyFlex := model.Room{ID: model.FlexBed, RN: model.Unassigned}

	rooms := []model.Room{high, admit, notIndep, plain, lockedHigh, emptyHigh, flex, emptyFlex}
	out := AssignCNAs(rooms)

	var flags []bool
	for _, r := range out {
		flags = append(flags, r.CNA)
	}
	assert.Equal(t, []bool{true, true, true, true, false, false, true, false}, flags)

	// Assignments untouched and input not modified
	assert.Equal(t, model.NurseID("b"), out[6].RN)
	assert.False(t, rooms[0].CNA)

	// Idempotent
	assert.Equal(t, out, AssignCNAs(out))
}
