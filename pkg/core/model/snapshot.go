package model

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
)

// Snapshot is the full state of the unit: the roster and the rooms
type Snapshot struct {
	Nurses []Nurse `json:"nurses"`
	Rooms  []Room  `json:"rooms"`
}

// UnitLayout describes which rooms a fresh board starts with
type UnitLayout struct {
	RoomCount     int
	FlexBed       bool
	DefaultNurses int
}

// DefaultLayout is a 30 room unit with a flex bed and ten nurses
var DefaultLayout = UnitLayout{RoomCount: 30, FlexBed: true, DefaultNurses: 10}

// NewBoard creates a board with every numbered room occupied at acuity 2 and the flex bed empty
func NewBoard(layout UnitLayout) Snapshot {
	nurses := make([]Nurse, 0, layout.DefaultNurses)
	for i := 1; i <= layout.DefaultNurses; i++ {
		nurses = append(nurses, NewNurse(fmt.Sprintf("RN %d", i)))
	}

	rooms := make([]Room, 0, layout.RoomCount+1)
	for i := 1; i <= layout.RoomCount; i++ {
		rooms = append(rooms, DefaultRoom(RoomNumber(i)))
	}
	if layout.FlexBed {
		rooms = append(rooms, DefaultRoom(FlexBed))
	}

	return Snapshot{Nurses: nurses, Rooms: rooms}
}

// DefaultRoom returns a room in its reset state
func DefaultRoom(id RoomID) Room {
	diagnosis := fmt.Sprintf("Pt %s", id)
	if id.IsFlexBed() {
		diagnosis = ""
	}
	return Room{
		ID:        id,
		Diagnosis: diagnosis,
		Acuity:    2,
		RN:        Unassigned,
	}
}

// Clone returns a deep copy
func (s Snapshot) Clone() Snapshot {
	return Snapshot{
		Nurses: slices.Clone(s.Nurses),
		Rooms:  slices.Clone(s.Rooms),
	}
}

// NurseByID looks up a nurse by id
func (s Snapshot) NurseByID(id NurseID) (Nurse, bool) {
	for _, n := range s.Nurses {
		if n.ID == id {
			return n, true
		}
	}
	return Nurse{}, false
}

// NurseByName looks up an active nurse by name (case-insensitive, trimmed)
func (s Snapshot) NurseByName(name string) (Nurse, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return Nurse{}, false
	}
	for _, n := range s.Nurses {
		if n.IsActive() && strings.ToLower(strings.TrimSpace(n.Name)) == key {
			return n, true
		}
	}
	return Nurse{}, false
}

// RoomIndex returns the position of a room, or -1
func (s Snapshot) RoomIndex(id RoomID) int {
	return slices.IndexFunc(s.Rooms, func(r Room) bool { return r.ID == id })
}

// NurseName returns the display name for a room's nurse, or "-"
func (s Snapshot) NurseName(id NurseID) string {
	if n, ok := s.NurseByID(id); ok && n.IsActive() {
		return n.Name
	}
	return string(Unassigned)
}

// Normalize repairs references after import. Rooms whose rn is a nurse name rather than
// an id are relinked to that nurse's id. Empty rn values become Unassigned. References
// that match neither are left alone and are ignored by every calculation.
func (s *Snapshot) Normalize() {
	ids := make(map[NurseID]bool, len(s.Nurses))
	byName := make(map[string]NurseID, len(s.Nurses))
	for i := range s.Nurses {
		if s.Nurses[i].ID == "" {
			s.Nurses[i].ID = NewNurse("").ID
		}
		ids[s.Nurses[i].ID] = true
		if s.Nurses[i].IsActive() {
			byName[s.Nurses[i].Name] = s.Nurses[i].ID
		}
	}

	for i := range s.Rooms {
		rn := s.Rooms[i].RN
		if rn == "" {
			s.Rooms[i].RN = Unassigned
			continue
		}
		if rn == Unassigned || ids[rn] {
			continue
		}
		if id, ok := byName[string(rn)]; ok {
			s.Rooms[i].RN = id
		}
	}
}

// DecodeSnapshot reads a JSON board and normalizes it
func DecodeSnapshot(r io.Reader) (*Snapshot, error) {
	var raw struct {
		Nurses *[]Nurse `json:"nurses"`
		Rooms  *[]Room  `json:"rooms"`
	}
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to parse board: %w", err)
	}
	if raw.Nurses == nil || raw.Rooms == nil {
		return nil, fmt.Errorf("invalid board format: nurses and rooms are required")
	}

	snapshot := &Snapshot{Nurses: *raw.Nurses, Rooms: *raw.Rooms}
	snapshot.Normalize()
	return snapshot, nil
}

// EncodeSnapshot writes the board as indented JSON
func EncodeSnapshot(w io.Writer, s Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("failed to encode board: %w", err)
	}
	return nil
}
