// Package board holds the editing operations of the charge nurse board.
// Every operation takes a snapshot and returns a new one; inputs are never modified.
package board

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jakechorley/charge-nurse/pkg/core/allocator"
	"github.com/jakechorley/charge-nurse/pkg/core/model"
)

var (
	ErrNurseNotFound = errors.New("nurse not found")
	ErrRoomNotFound  = errors.New("room not found")
	ErrDuplicateName = errors.New("another nurse already has that name")
	ErrInvalidInput  = errors.New("invalid input")
)

var validate = validator.New()

var roomListSeparator = regexp.MustCompile(`[\s,]+`)

// ClearAssignments unassigns every room that is not effectively locked
func ClearAssignments(s model.Snapshot) model.Snapshot {
	out := s.Clone()
	locked := allocator.ResolveEffectiveLocks(s.Rooms, s.Nurses)
	for i := range out.Rooms {
		if !locked[i] {
			out.Rooms[i].RN = model.Unassigned
		}
	}
	return out
}

// ClearRooms resets every unlocked room to its default patient at acuity 2
func ClearRooms(s model.Snapshot) model.Snapshot {
	out := s.Clone()
	for i, room := range out.Rooms {
		if room.Locked {
			continue
		}
		out.Rooms[i] = model.DefaultRoom(room.ID)
	}
	return out
}

// ParseRoomList parses free text such as "1, 2 h" into room ids
func ParseRoomList(text string) ([]model.RoomID, error) {
	var ids []model.RoomID
	for _, token := range roomListSeparator.Split(strings.TrimSpace(text), -1) {
		if token == "" {
			continue
		}
		id, err := model.ParseRoomID(token)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		if !slices.Contains(ids, id) {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// SetNurseRooms gives the nurse exactly the rooms listed in text.
// Rooms the nurse had that are not listed become unassigned.
func SetNurseRooms(s model.Snapshot, nurseID model.NurseID, text string) (model.Snapshot, error) {
	nurse, ok := s.NurseByID(nurseID)
	if !ok || !nurse.IsActive() {
		return s, fmt.Errorf("%w: %s", ErrNurseNotFound, nurseID)
	}

	ids, err := ParseRoomList(text)
	if err != nil {
		return s, err
	}
	for _, id := range ids {
		if s.RoomIndex(id) < 0 {
			return s, fmt.Errorf("%w: %s", ErrRoomNotFound, id)
		}
	}

	out := s.Clone()
	for i, room := range out.Rooms {
		switch {
		case slices.Contains(ids, room.ID):
			out.Rooms[i].RN = nurseID
		case room.RN == nurseID:
			out.Rooms[i].RN = model.Unassigned
		}
	}
	return out, nil
}

// AddNurse appends a nurse. A blank name becomes "RN n".
func AddNurse(s model.Snapshot, name string) (model.Snapshot, model.Nurse, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = fmt.Sprintf("RN %d", len(s.Nurses)+1)
	}
	if err := checkNameFree(s, "", name); err != nil {
		return s, model.Nurse{}, err
	}

	nurse := model.NewNurse(name)
	out := s.Clone()
	out.Nurses = append(out.Nurses, nurse)
	return out, nurse, nil
}

// RenameNurse changes a nurse's name. Rooms reference ids, so assignments follow automatically.
// A blank name deactivates the nurse.
func RenameNurse(s model.Snapshot, nurseID model.NurseID, name string) (model.Snapshot, error) {
	i := slices.IndexFunc(s.Nurses, func(n model.Nurse) bool { return n.ID == nurseID })
	if i < 0 {
		return s, fmt.Errorf("%w: %s", ErrNurseNotFound, nurseID)
	}

	name = strings.TrimSpace(name)
	if err := checkNameFree(s, nurseID, name); err != nil {
		return s, err
	}

	out := s.Clone()
	out.Nurses[i].Name = name
	return out, nil
}

// RemoveNurse deletes a nurse and unassigns every room that referenced them, locked or not
func RemoveNurse(s model.Snapshot, nurseID model.NurseID) (model.Snapshot, error) {
	i := slices.IndexFunc(s.Nurses, func(n model.Nurse) bool { return n.ID == nurseID })
	if i < 0 {
		return s, fmt.Errorf("%w: %s", ErrNurseNotFound, nurseID)
	}

	out := s.Clone()
	out.Nurses = slices.Delete(out.Nurses, i, i+1)
	for j := range out.Rooms {
		if out.Rooms[j].RN == nurseID {
			out.Rooms[j].RN = model.Unassigned
		}
	}
	return out, nil
}

// NurseFlags is a partial update of a nurse. Nil fields are left alone.
type NurseFlags struct {
	Locked  *bool `json:"locked,omitempty"`
	NoChemo *bool `json:"noChemo,omitempty"`
}

// SetNurseFlags applies a partial flag update
func SetNurseFlags(s model.Snapshot, nurseID model.NurseID, flags NurseFlags) (model.Snapshot, error) {
	i := slices.IndexFunc(s.Nurses, func(n model.Nurse) bool { return n.ID == nurseID })
	if i < 0 {
		return s, fmt.Errorf("%w: %s", ErrNurseNotFound, nurseID)
	}

	out := s.Clone()
	if flags.Locked != nil {
		out.Nurses[i].Locked = *flags.Locked
	}
	if flags.NoChemo != nil {
		out.Nurses[i].NoChemo = *flags.NoChemo
	}
	return out, nil
}

// RoomUpdate is a partial update of a room. Nil fields are left alone.
// Setting RN by nurse name is supported for text entry; NurseID takes precedence.
type RoomUpdate struct {
	Diagnosis      *string `json:"tx,omitempty"`
	Acuity         *int    `json:"acuity,omitempty" validate:"omitempty,min=0,max=4"`
	Admit          *bool   `json:"admit,omitempty"`
	IMC            *bool   `json:"imc,omitempty"`
	CNA            *bool   `json:"cna,omitempty"`
	Chemo          *bool   `json:"chemo,omitempty"`
	NotIndependent *bool   `json:"notIndep,omitempty"`
	Locked         *bool   `json:"locked,omitempty"`
	NurseID        *string `json:"rn,omitempty"`
	NurseName      *string `json:"rnName,omitempty"`
}

// UpdateRoom applies a partial room update
func UpdateRoom(s model.Snapshot, roomID model.RoomID, update RoomUpdate) (model.Snapshot, error) {
	if err := validate.Struct(update); err != nil {
		return s, fmt.Errorf("%w: invalid room update: %w", ErrInvalidInput, err)
	}

	i := s.RoomIndex(roomID)
	if i < 0 {
		return s, fmt.Errorf("%w: %s", ErrRoomNotFound, roomID)
	}

	rn, err := resolveNurseRef(s, update)
	if err != nil {
		return s, err
	}

	out := s.Clone()
	room := &out.Rooms[i]
	if update.Diagnosis != nil {
		room.Diagnosis = *update.Diagnosis
	}
	if update.Acuity != nil {
		room.Acuity = model.Acuity(*update.Acuity)
	}
	setBool(&room.Admit, update.Admit)
	setBool(&room.IMC, update.IMC)
	setBool(&room.CNA, update.CNA)
	setBool(&room.Chemo, update.Chemo)
	setBool(&room.NotIndependent, update.NotIndependent)
	setBool(&room.Locked, update.Locked)
	if rn != "" {
		room.RN = rn
	}
	return out, nil
}

// ToggleRoomLock flips a room's lock
func ToggleRoomLock(s model.Snapshot, roomID model.RoomID) (model.Snapshot, error) {
	i := s.RoomIndex(roomID)
	if i < 0 {
		return s, fmt.Errorf("%w: %s", ErrRoomNotFound, roomID)
	}
	out := s.Clone()
	out.Rooms[i].Locked = !out.Rooms[i].Locked
	return out, nil
}

// resolveNurseRef returns the rn a room update asks for, or "" if it does not touch rn
func resolveNurseRef(s model.Snapshot, update RoomUpdate) (model.NurseID, error) {
	switch {
	case update.NurseID != nil:
		id := model.NurseID(strings.TrimSpace(*update.NurseID))
		if id == "" || id == model.Unassigned {
			return model.Unassigned, nil
		}
		if _, ok := s.NurseByID(id); !ok {
			return "", fmt.Errorf("%w: %s", ErrNurseNotFound, id)
		}
		return id, nil
	case update.NurseName != nil:
		name := strings.TrimSpace(*update.NurseName)
		if name == "" || name == string(model.Unassigned) {
			return model.Unassigned, nil
		}
		nurse, ok := s.NurseByName(name)
		if !ok {
			return "", fmt.Errorf("%w: %s", ErrNurseNotFound, name)
		}
		return nurse.ID, nil
	}
	return "", nil
}

func checkNameFree(s model.Snapshot, self model.NurseID, name string) error {
	if name == "" {
		return nil
	}
	if other, ok := s.NurseByName(name); ok && other.ID != self {
		return fmt.Errorf("%w: %s", ErrDuplicateName, name)
	}
	return nil
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}
