package allocator

import "github.com/jakechorley/charge-nurse/pkg/core/model"

// ResolveEffectiveLocks returns, for each room position, whether the room must keep its rn.
// A room is effectively locked when its own lock is set or it references a locked nurse.
// Unknown references do not lock a room. The result reflects the inputs only and must be
// recomputed for every run.
func ResolveEffectiveLocks(rooms []model.Room, nurses []model.Nurse) []bool {
	lockedNurses := make(map[model.NurseID]bool, len(nurses))
	for _, nurse := range nurses {
		if nurse.Locked {
			lockedNurses[nurse.ID] = true
		}
	}

	locked := make([]bool, len(rooms))
	for i, room := range rooms {
		locked[i] = room.Locked || (room.IsAssigned() && lockedNurses[room.RN])
	}
	return locked
}

// SeedLoads builds the starting loads of a run from effectively locked rooms.
// Returns the table and the number of locked rooms counted into it.
func SeedLoads(rooms []model.Room, nurses []model.Nurse, locked []bool) (LoadTable, int) {
	preserved := 0
	table := AggregateLoads(rooms, nurses, func(i int, room model.Room) bool {
		return locked[i]
	})
	for _, load := range table.Loads() {
		preserved += load.Patients
	}
	return table, preserved
}
