package allocator

import "github.com/jakechorley/charge-nurse/pkg/core/model"

// NeedsCNA returns true if an occupied room should have CNA assistance
func NeedsCNA(room model.Room) bool {
	if !room.IsOccupied() {
		return false
	}
	return room.Acuity == 4 || room.Admit || room.NotIndependent || room.ID.IsFlexBed()
}

// AssignCNAs returns a new board with the CNA flag set on every unlocked room that needs one.
// Flags are only ever set, never cleared, and rn values are left alone.
func AssignCNAs(rooms []model.Room) []model.Room {
	out := make([]model.Room, len(rooms))
	for i, room := range rooms {
		out[i] = room
		if !room.Locked && NeedsCNA(room) {
			out[i].CNA = true
		}
	}
	return out
}
