package board

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/charge-nurse/pkg/core/model"
)

func TestRemix(t *testing.T) {
	board := model.NewBoard(model.DefaultLayout)
	board.Rooms[0].Locked = true
	board.Rooms[0].Diagnosis = "Kept"
	board.Rooms[0].RN = board.Nurses[0].ID

	counts := RemixCounts{Acuity4: 3, Acuity3: 5, Admits: 2, Chemo: 4, NotIndependent: 6}
	out, err := Remix(board, counts, rand.New(rand.NewPCG(7, 7)))
	require.NoError(t, err)

	assert.Equal(t, board.Rooms[0], out.Rooms[0], "locked room untouched")

	var acuity4, acuity3, admits, chemo, notIndep int
	for _, room := range out.Rooms[1:] {
		assert.Equal(t, model.Unassigned, room.RN)
		if !room.IsOccupied() {
			assert.True(t, room.ID.IsFlexBed())
			continue
		}
		assert.Contains(t, Diagnoses, room.Diagnosis)
		switch room.Acuity {
		case 4:
			acuity4++
			assert.True(t, room.IMC)
		case 3:
			acuity3++
		case 2:
			assert.False(t, room.IMC)
		}
		if room.Admit {
			admits++
		}
		if room.Chemo {
			chemo++
		}
		if room.NotIndependent {
			notIndep++
		}
	}

	assert.Equal(t, 3, acuity4)
	assert.Equal(t, 5, acuity3)
	assert.Equal(t, 2, admits)
	assert.Equal(t, 4, chemo)
	assert.Equal(t, 6, notIndep)
}

func TestRemix_SeededIsReproducible(t *testing.T) {
	board := model.NewBoard(model.DefaultLayout)
	counts := RemixCounts{Acuity4: 2, Admits: 3}

	a, err := Remix(board, counts, rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)
	b, err := Remix(board, counts, rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestRemix_CapsCounts(t *testing.T) {
	board := model.NewBoard(model.UnitLayout{RoomCount: 3})
	out, err := Remix(board, RemixCounts{Acuity4: 10, Chemo: 10}, rand.New(rand.NewPCG(3, 3)))
	require.NoError(t, err)

	for _, room := range out.Rooms {
		assert.Equal(t, model.Acuity(4), room.Acuity)
		assert.True(t, room.Chemo)
	}
}

func TestRemix_RejectsNegativeCounts(t *testing.T) {
	_, err := Remix(model.NewBoard(model.DefaultLayout), RemixCounts{Admits: -1}, rand.New(rand.NewPCG(1, 1)))
	assert.ErrorIs(t, err, ErrInvalidInput)
}
