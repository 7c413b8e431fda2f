package model

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// NurseID is the stable identifier rooms use to reference a nurse
type NurseID string

// Unassigned is the rn value of a room with no nurse
const Unassigned NurseID = "-"

// UnmarshalJSON accepts both string ids and the numeric ids of older exports
func (id *NurseID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = NurseID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid nurse id %s", string(data))
	}
	*id = NurseID(n.String())
	return nil
}

// Nurse is a member of the roster
type Nurse struct {
	ID      NurseID `json:"id"`
	Name    string  `json:"name"`
	NoChemo bool    `json:"noChemo"`
	Locked  bool    `json:"locked"`
}

// NewNurse creates an unlocked, chemo-certified nurse with a fresh id
func NewNurse(name string) Nurse {
	return Nurse{
		ID:   NurseID(uuid.New().String()),
		Name: name,
	}
}

// IsActive returns true if the nurse has a name. Nameless nurses are ignored everywhere.
func (n Nurse) IsActive() bool {
	return strings.TrimSpace(n.Name) != ""
}

// IsChemoCertified returns true if the nurse may take chemotherapy patients
func (n Nurse) IsChemoCertified() bool {
	return !n.NoChemo
}

// RoomID identifies a room: a room number or the flex bed
type RoomID string

// FlexBed is the flexible/overflow bed
const FlexBed RoomID = "H"

// RoomNumber returns the RoomID for a numbered room
func RoomNumber(n int) RoomID {
	return RoomID(strconv.Itoa(n))
}

// ParseRoomID parses user input such as "12" or "h"
func ParseRoomID(s string) (RoomID, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == string(FlexBed) {
		return FlexBed, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return "", fmt.Errorf("invalid room %q: must be a room number or %s", s, FlexBed)
	}
	return RoomNumber(n), nil
}

// IsFlexBed returns true for the overflow bed
func (id RoomID) IsFlexBed() bool {
	return id == FlexBed
}

// Number returns the room number, or 0 for the flex bed
func (id RoomID) Number() int {
	n, err := strconv.Atoi(string(id))
	if err != nil {
		return 0
	}
	return n
}

// MarshalJSON writes numbered rooms as JSON numbers so exports match the board format
func (id RoomID) MarshalJSON() ([]byte, error) {
	if n := id.Number(); n > 0 {
		return []byte(strconv.Itoa(n)), nil
	}
	return json.Marshal(string(id))
}

// UnmarshalJSON accepts a number or a string
func (id *RoomID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = RoomID(strings.ToUpper(strings.TrimSpace(s)))
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid room id %s", string(data))
	}
	*id = RoomID(n.String())
	return nil
}

// Acuity is the patient severity level, 0 to 4
type Acuity int

const (
	MinAcuity Acuity = 0
	MaxAcuity Acuity = 4
)

// ParseAcuity converts free-form input to an acuity. Anything unparseable or outside 0..4 is 0.
func ParseAcuity(s string) Acuity {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return coerceAcuity(float64(n))
}

func coerceAcuity(n float64) Acuity {
	if n != math.Trunc(n) || n < float64(MinAcuity) || n > float64(MaxAcuity) {
		return 0
	}
	return Acuity(n)
}

// UnmarshalJSON never fails: whole numbers and numeric strings in 0..4 are kept, anything else is 0
func (a *Acuity) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*a = coerceAcuity(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*a = ParseAcuity(s)
		return nil
	}

	*a = 0
	return nil
}

// Room is a bed on the unit and the patient in it
type Room struct {
	ID             RoomID  `json:"room"`
	Diagnosis      string  `json:"tx"`
	Acuity         Acuity  `json:"acuity"`
	Admit          bool    `json:"admit"`
	IMC            bool    `json:"imc"`
	CNA            bool    `json:"cna"`
	Chemo          bool    `json:"chemo"`
	NotIndependent bool    `json:"notIndep"`
	RN             NurseID `json:"rn"`
	Locked         bool    `json:"locked"`
}

// IsOccupied returns true if the room has a patient
func (r Room) IsOccupied() bool {
	return strings.TrimSpace(r.Diagnosis) != ""
}

// IsAssigned returns true if the room references a nurse
func (r Room) IsAssigned() bool {
	return r.RN != Unassigned && r.RN != ""
}

// PriorityScore ranks how hard a room is to place. Higher is placed first.
func (r Room) PriorityScore() int {
	score := int(r.Acuity)
	if r.Chemo {
		score += 100
	}
	if r.IMC {
		score += 50
	}
	if r.Admit {
		score += 25
	}
	return score
}
