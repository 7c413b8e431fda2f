package allocator

import (
	"errors"
	"slices"

	"github.com/jakechorley/charge-nurse/pkg/core/model"
)

const (
	MessageNoActiveNurses  = "No active nurses on the roster. Nothing was assigned."
	MessageNoOccupiedRooms = "No occupied rooms to assign."
)

// AllocationConfig contains the input of one assignment run
type AllocationConfig struct {
	// Criteria to apply during allocation (with their weights)
	Criteria []Criterion

	// Nurses is the roster in display order. Roster order breaks cost ties.
	Nurses []model.Nurse

	// Rooms is the board in display order. Board order breaks priority ties.
	Rooms []model.Room
}

// AllocationOutcome represents the result of an assignment run
type AllocationOutcome struct {
	// Rooms is a new board with updated rn values. The input slice is never modified.
	Rooms []model.Room

	// Rationale explains what was placed and what could not be
	Rationale Rationale

	// Loads is the final load of every active nurse, seeded from locked rooms plus new placements
	Loads LoadTable

	// Violations contains the warnings raised by the criteria for the resulting board
	Violations []RuleViolation
}

// allocator carries the fold state of a single run
type allocator struct {
	criteria []Criterion
	loads    LoadTable
}

// Allocate runs the greedy assignment.
//
// Every occupied room that is not effectively locked is visited once, hardest first. Each room
// goes to the eligible nurse with the lowest cost, or stays unassigned when nobody is eligible.
// A room that could not be placed is not reconsidered later in the same run even if capacity
// would allow it.
func Allocate(config AllocationConfig) (*AllocationOutcome, error) {
	if len(config.Criteria) == 0 {
		return nil, errors.New("at least one criterion is required")
	}

	table := NewLoadTable(config.Nurses)
	if table.Len() == 0 {
		return unchanged(config, table, MessageNoActiveNurses), nil
	}
	if !slices.ContainsFunc(config.Rooms, model.Room.IsOccupied) {
		return unchanged(config, table, MessageNoOccupiedRooms), nil
	}

	locked := ResolveEffectiveLocks(config.Rooms, config.Nurses)
	seeded, preserved := SeedLoads(config.Rooms, config.Nurses, locked)

	a := &allocator{criteria: config.Criteria, loads: seeded}
	summary := &PlacementSummary{PreservedLocked: preserved}
	rationale := Rationale{Summary: summary, Unplaced: []UnplacedRoom{}}

	assignments := make(map[int]model.NurseID)
	for _, i := range OrderRooms(config.Rooms, locked) {
		room := config.Rooms[i]

		best, ok := a.findBestNurse(room)
		if !ok {
			assignments[i] = model.Unassigned
			rationale.Unplaced = append(rationale.Unplaced, UnplacedRoom{
				Room:   room.ID,
				Reason: UnplacedReason(room),
			})
			continue
		}

		a.loads = a.loads.With(best.Add(room))
		assignments[i] = best.NurseID

		summary.Placed++
		if room.Chemo {
			summary.ChemoPlaced++
		}
		if room.Admit {
			summary.AdmitsPlaced++
		}
		if room.Acuity == 4 {
			summary.Acuity4Placed++
		}
	}

	rooms := make([]model.Room, len(config.Rooms))
	for i, room := range config.Rooms {
		rooms[i] = room
		switch {
		case locked[i]:
		case room.IsOccupied():
			rooms[i].RN = assignments[i]
		default:
			rooms[i].RN = model.Unassigned
		}
	}

	return &AllocationOutcome{
		Rooms:      rooms,
		Rationale:  rationale,
		Loads:      a.loads,
		Violations: ValidateAssignments(rooms, config.Nurses, config.Criteria),
	}, nil
}

// findBestNurse returns the eligible nurse with the lowest cost for the room.
// Equal costs go to the nurse that comes first on the roster.
func (a *allocator) findBestNurse(room model.Room) (NurseLoad, bool) {
	var (
		best     NurseLoad
		bestCost float64
		found    bool
	)

	for _, load := range a.loads.Loads() {
		if !IsNurseEligible(load, room, a.criteria) {
			continue
		}
		cost := CalculateCost(load, room, a.criteria)
		if !found || cost < bestCost {
			best, bestCost, found = load, cost, true
		}
	}

	return best, found
}

// unchanged returns the input board as-is with an informational message
func unchanged(config AllocationConfig, table LoadTable, message string) *AllocationOutcome {
	return &AllocationOutcome{
		Rooms:      slices.Clone(config.Rooms),
		Rationale:  Rationale{Message: message, Unplaced: []UnplacedRoom{}},
		Loads:      table,
		Violations: ValidateAssignments(config.Rooms, config.Nurses, config.Criteria),
	}
}
