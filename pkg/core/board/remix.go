package board

import (
	"fmt"
	"math/rand/v2"

	"github.com/jakechorley/charge-nurse/pkg/core/model"
)

// Diagnoses used when repopulating the unit
var Diagnoses = []string{"Chemo", "Auto", "Allo", "CART"}

// RemixCounts is how many occupied rooms should get each trait
type RemixCounts struct {
	Acuity4        int `json:"acuity4" validate:"min=0"`
	Acuity3        int `json:"acuity3" validate:"min=0"`
	Admits         int `json:"admits" validate:"min=0"`
	Chemo          int `json:"chemo" validate:"min=0"`
	NotIndependent int `json:"notIndep" validate:"min=0"`
}

// DefaultRemixCounts is a typical day shift mix
var DefaultRemixCounts = RemixCounts{Acuity4: 4, Acuity3: 10, Admits: 3, Chemo: 5, NotIndependent: 5}

// Remix repopulates every unlocked room with a random patient mix.
// The flex bed is occupied half of the time. Counts larger than the number of
// occupied rooms are capped. Acuity 4 rooms are always IMC; acuity 3 rooms are IMC half of the time.
func Remix(s model.Snapshot, counts RemixCounts, rng *rand.Rand) (model.Snapshot, error) {
	if err := validate.Struct(counts); err != nil {
		return s, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	out := s.Clone()
	var filled []int
	for i, room := range out.Rooms {
		if room.Locked {
			continue
		}
		reset := model.Room{ID: room.ID, RN: model.Unassigned}
		if room.ID.IsFlexBed() && rng.IntN(2) == 0 {
			out.Rooms[i] = reset
			continue
		}
		reset.Diagnosis = Diagnoses[rng.IntN(len(Diagnoses))]
		reset.Acuity = 2
		out.Rooms[i] = reset
		filled = append(filled, i)
	}

	shuffled := shuffle(filled, rng)
	for n, i := range shuffled {
		switch {
		case n < counts.Acuity4:
			out.Rooms[i].Acuity = 4
		case n < counts.Acuity4+counts.Acuity3:
			out.Rooms[i].Acuity = 3
		}
	}

	for _, i := range filled {
		switch out.Rooms[i].Acuity {
		case 4:
			out.Rooms[i].IMC = true
		case 3:
			out.Rooms[i].IMC = rng.IntN(2) == 0
		}
	}

	for _, i := range pick(filled, counts.Admits, rng) {
		out.Rooms[i].Admit = true
	}
	for _, i := range pick(filled, counts.Chemo, rng) {
		out.Rooms[i].Chemo = true
	}
	for _, i := range pick(filled, counts.NotIndependent, rng) {
		out.Rooms[i].NotIndependent = true
	}

	return out, nil
}

func shuffle(indices []int, rng *rand.Rand) []int {
	out := make([]int, len(indices))
	copy(out, indices)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// pick returns n random distinct entries, or all of them when n is larger
func pick(indices []int, n int, rng *rand.Rand) []int {
	return shuffle(indices, rng)[:min(n, len(indices))]
}
