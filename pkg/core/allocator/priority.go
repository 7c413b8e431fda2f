package allocator

import (
	"slices"

	"github.com/jakechorley/charge-nurse/pkg/core/model"
)

// OrderRooms returns the positions of occupied, unlocked rooms, hardest first.
// Rooms are sorted by descending priority score. Ties keep board order.
func OrderRooms(rooms []model.Room, locked []bool) []int {
	order := make([]int, 0, len(rooms))
	for i, room := range rooms {
		if locked[i] || !room.IsOccupied() {
			continue
		}
		order = append(order, i)
	}

	slices.SortStableFunc(order, func(a, b int) int {
		return rooms[b].PriorityScore() - rooms[a].PriorityScore()
	})
	return order
}
