package e2e

import (
	"fmt"

	"github.com/jakechorley/charge-nurse/pkg/core/allocator"
	"github.com/jakechorley/charge-nurse/pkg/core/allocator/criteria"
	"github.com/jakechorley/charge-nurse/pkg/core/model"
)

// Type aliases to avoid prefixing everything with allocator.
type (
	Nurse            = model.Nurse
	NurseID          = model.NurseID
	Room             = model.Room
	AllocationConfig = allocator.AllocationConfig
	UnplacedRoom     = allocator.UnplacedRoom
)

// Function aliases
var (
	Allocate             = allocator.Allocate
	AggregateCensusLoads = allocator.AggregateCensusLoads
	DefaultCriteria      = criteria.Default
)

const unassigned = model.Unassigned

func nurse(id, name string) Nurse {
	return Nurse{ID: NurseID(id), Name: name}
}

func room(n int, acuity model.Acuity) Room {
	return Room{
		ID:        model.RoomNumber(n),
		Diagnosis: fmt.Sprintf("Pt %d", n),
		Acuity:    acuity,
		RN:        unassigned,
	}
}

func allocate(nurses []Nurse, rooms []Room) (*allocator.AllocationOutcome, error) {
	return Allocate(AllocationConfig{
		Criteria: DefaultCriteria(),
		Nurses:   nurses,
		Rooms:    rooms,
	})
}
