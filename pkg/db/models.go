package db

import "time"

// AssignmentRun is the history record of one auto-assign run
type AssignmentRun struct {
	ID              string         `json:"id"`
	ShiftLabel      string         `json:"shiftLabel"`
	CreatedAt       time.Time      `json:"createdAt"`
	Placed          int            `json:"placed"`
	PreservedLocked int            `json:"preservedLocked"`
	ChemoPlaced     int            `json:"chemoPlaced"`
	AdmitsPlaced    int            `json:"admitsPlaced"`
	Acuity4Placed   int            `json:"acuity4Placed"`
	Unplaced        []UnplacedRoom `json:"unplaced"`
}

// UnplacedRoom is a room a run could not place
type UnplacedRoom struct {
	Room   string `json:"room"`
	Reason string `json:"reason"`
}
