package allocator

import (
	"slices"

	"github.com/jakechorley/charge-nurse/pkg/core/model"
)

// NurseLoad is the workload carried by one nurse during an assignment run
type NurseLoad struct {
	NurseID model.NurseID `json:"nurseId"`
	Name    string        `json:"name"`

	// Rooms counted into this load, in the order they were added
	Rooms []model.RoomID `json:"rooms"`

	Patients      int `json:"patients"`
	Acuity        int `json:"acuity"`
	Admits        int `json:"admits"`
	IMCs          int `json:"imcs"`
	Acuity4Count  int `json:"acuity4Count"`
	ChemoPatients int `json:"chemoPatients"`

	// HasAcuityAbove2 is set once any room with acuity 3 or 4 is counted
	HasAcuityAbove2 bool `json:"hasAcuityAbove2"`

	ChemoCertified bool `json:"chemoCertified"`
	Locked         bool `json:"locked"`
}

// newNurseLoad returns an empty load for a nurse
func newNurseLoad(nurse model.Nurse) NurseLoad {
	return NurseLoad{
		NurseID:        nurse.ID,
		Name:           nurse.Name,
		ChemoCertified: nurse.IsChemoCertified(),
		Locked:         nurse.Locked,
	}
}

// Add returns a copy of the load with the room counted in. The receiver is not modified.
func (l NurseLoad) Add(room model.Room) NurseLoad {
	acuity := int(room.Acuity)

	next := l
	next.Rooms = append(slices.Clone(l.Rooms), room.ID)
	next.Patients++
	next.Acuity += acuity
	if room.Admit {
		next.Admits++
	}
	if room.IMC {
		next.IMCs++
	}
	if room.Chemo {
		next.ChemoPatients++
	}
	if acuity > 2 {
		next.HasAcuityAbove2 = true
	}
	if acuity == 4 {
		next.Acuity4Count++
	}
	return next
}

// HasAdmit returns true if the nurse carries at least one admission
func (l NurseLoad) HasAdmit() bool {
	return l.Admits > 0
}

// HasAcuity4 returns true if the nurse carries an acuity 4 patient
func (l NurseLoad) HasAcuity4() bool {
	return l.Acuity4Count > 0
}

// LoadTable maps active nurses to their loads.
// Tables are values: With returns a new table and never changes the one it was called on,
// so each step of the greedy pass can be inspected on its own.
type LoadTable struct {
	// order is the roster order of active nurses, used for stable enumeration
	order []model.NurseID
	loads map[model.NurseID]NurseLoad
}

// NewLoadTable creates empty loads for every active nurse in roster order.
// Nurses with a blank name are skipped, as are repeated ids.
func NewLoadTable(nurses []model.Nurse) LoadTable {
	table := LoadTable{
		order: make([]model.NurseID, 0, len(nurses)),
		loads: make(map[model.NurseID]NurseLoad, len(nurses)),
	}
	for _, nurse := range nurses {
		if !nurse.IsActive() {
			continue
		}
		if _, exists := table.loads[nurse.ID]; exists {
			continue
		}
		table.order = append(table.order, nurse.ID)
		table.loads[nurse.ID] = newNurseLoad(nurse)
	}
	return table
}

// Len returns the number of active nurses
func (t LoadTable) Len() int {
	return len(t.order)
}

// Get returns the load for a nurse. Unknown and inactive nurses are not found.
func (t LoadTable) Get(id model.NurseID) (NurseLoad, bool) {
	load, ok := t.loads[id]
	return load, ok
}

// Loads returns every load in roster order
func (t LoadTable) Loads() []NurseLoad {
	loads := make([]NurseLoad, 0, len(t.order))
	for _, id := range t.order {
		loads = append(loads, t.loads[id])
	}
	return loads
}

// With returns a new table where the nurse's load is replaced
func (t LoadTable) With(load NurseLoad) LoadTable {
	if _, ok := t.loads[load.NurseID]; !ok {
		return t
	}

	loads := make(map[model.NurseID]NurseLoad, len(t.loads))
	for id, l := range t.loads {
		loads[id] = l
	}
	loads[load.NurseID] = load

	return LoadTable{order: t.order, loads: loads}
}

// AggregateLoads counts rooms into a fresh table for the roster.
// Only rooms for which include returns true are considered; a nil include counts every room.
// Rooms that reference an unknown or inactive nurse are ignored. No cap is applied.
func AggregateLoads(rooms []model.Room, nurses []model.Nurse, include func(i int, room model.Room) bool) LoadTable {
	table := NewLoadTable(nurses)
	for i, room := range rooms {
		if include != nil && !include(i, room) {
			continue
		}
		if !room.IsAssigned() {
			continue
		}
		load, ok := table.Get(room.RN)
		if !ok {
			continue
		}
		table = table.With(load.Add(room))
	}
	return table
}

// AggregateCensusLoads returns the per-nurse statistics of the unit: occupied rooms only
func AggregateCensusLoads(rooms []model.Room, nurses []model.Nurse) LoadTable {
	return AggregateLoads(rooms, nurses, func(_ int, room model.Room) bool {
		return room.IsOccupied()
	})
}
