package allocator

import (
	"fmt"
	"strings"

	"github.com/jakechorley/charge-nurse/pkg/core/model"
)

// PlacementSummary counts what a run did
type PlacementSummary struct {
	Placed          int `json:"placedCount"`
	PreservedLocked int `json:"preservedLockedCount"`
	ChemoPlaced     int `json:"chemoPlaced"`
	AdmitsPlaced    int `json:"admitsPlaced"`
	Acuity4Placed   int `json:"acuity4Placed"`
}

// UnplacedRoom is a room no nurse could legally take
type UnplacedRoom struct {
	Room   model.RoomID `json:"roomId"`
	Reason string       `json:"reason"`
}

// Rationale explains the outcome of a run.
// Degenerate runs carry only a Message; completed runs carry a Summary.
type Rationale struct {
	Message  string            `json:"message,omitempty"`
	Summary  *PlacementSummary `json:"summary,omitempty"`
	Unplaced []UnplacedRoom    `json:"unplaced"`
}

// HasUnplaced returns true if any room was left without a nurse
func (r Rationale) HasUnplaced() bool {
	return len(r.Unplaced) > 0
}

// String renders the rationale for terminals and emails
func (r Rationale) String() string {
	if r.Summary == nil {
		return r.Message
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Auto-assigned %d patients while preserving %d locked assignments.\n", r.Summary.Placed, r.Summary.PreservedLocked)
	fmt.Fprintf(&b, "Placed %d chemo patients with certified RNs.\n", r.Summary.ChemoPlaced)
	fmt.Fprintf(&b, "Placed %d acuity 4 patients (max 1 per RN, capped at 3 patients total).\n", r.Summary.Acuity4Placed)
	fmt.Fprintf(&b, "Assigned %d admits (max 1 per RN).\n", r.Summary.AdmitsPlaced)
	if r.HasUnplaced() {
		b.WriteString("Could not place:\n")
		for _, u := range r.Unplaced {
			fmt.Fprintf(&b, "  Room %s: %s\n", u.Room, u.Reason)
		}
	}
	return b.String()
}

// UnplacedReason describes the traits that made a room hard to place.
// Falls back to the acuity when the room has no special flags.
func UnplacedReason(room model.Room) string {
	var traits []string
	if room.Acuity == 4 {
		traits = append(traits, "Acuity 4")
	}
	if room.Chemo {
		traits = append(traits, "Chemo")
	}
	if room.IMC {
		traits = append(traits, "IMC")
	}
	if room.Admit {
		traits = append(traits, "Admit")
	}
	if len(traits) == 0 {
		return fmt.Sprintf("Acuity %d", room.Acuity)
	}
	return strings.Join(traits, ", ")
}
