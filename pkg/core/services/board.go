package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/jakechorley/charge-nurse/pkg/core/allocator"
	"github.com/jakechorley/charge-nurse/pkg/core/board"
	"github.com/jakechorley/charge-nurse/pkg/core/model"
	"github.com/jakechorley/charge-nurse/pkg/db"
)

// Messages shown after board edits
const (
	MessageCNAsAssigned       = "CNAs automatically assigned to all Acuity 4 patients, Admissions, Not Independent patients, and Room H (if occupied)."
	MessageRoomsCleared       = "All unlocked rooms reset to default state (Pt #, Acuity 2)."
	MessageAssignmentsCleared = "Assignments cleared (locked assignments preserved)."
	MessageRemixed            = "Unlocked rooms repopulated with a random patient mix."
)

// EditResult is the board after an edit and the message to show for it
type EditResult struct {
	Board   model.Snapshot `json:"board"`
	Message string         `json:"message,omitempty"`
}

// LoadBoard fetches the saved board, or a fresh board with the unit layout if none was saved yet
func LoadBoard(ctx context.Context, store db.BoardStore, layout model.UnitLayout, logger *zap.Logger) (*model.Snapshot, error) {
	logger.Debug("Fetching board")
	snapshot, err := store.GetBoard(ctx)
	if errors.Is(err, db.ErrNotFound) {
		logger.Info("No saved board found, starting a new one",
			zap.Int("room_count", layout.RoomCount),
			zap.Bool("flex_bed", layout.FlexBed),
			zap.Int("nurses", layout.DefaultNurses))
		fresh := model.NewBoard(layout)
		return &fresh, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch board: %w", err)
	}

	logger.Debug("Board loaded", zap.Int("nurses", len(snapshot.Nurses)), zap.Int("rooms", len(snapshot.Rooms)))
	return snapshot, nil
}

// editBoard loads the board, applies edit and saves the result
func editBoard(
	ctx context.Context,
	store db.BoardStore,
	layout model.UnitLayout,
	logger *zap.Logger,
	name string,
	edit func(model.Snapshot) (model.Snapshot, error),
) (*model.Snapshot, error) {
	current, err := LoadBoard(ctx, store, layout, logger)
	if err != nil {
		return nil, err
	}

	next, err := edit(*current)
	if err != nil {
		return nil, err
	}

	if err := store.SaveBoard(ctx, next); err != nil {
		return nil, fmt.Errorf("failed to save board: %w", err)
	}

	logger.Debug("Board edited", zap.String("edit", name))
	return &next, nil
}

func pure(f func(model.Snapshot) model.Snapshot) func(model.Snapshot) (model.Snapshot, error) {
	return func(s model.Snapshot) (model.Snapshot, error) { return f(s), nil }
}

// AssignCNAs flags CNA support on every unlocked room that needs it
func AssignCNAs(ctx context.Context, store db.BoardStore, layout model.UnitLayout, logger *zap.Logger) (*EditResult, error) {
	next, err := editBoard(ctx, store, layout, logger, "assign_cnas", pure(func(s model.Snapshot) model.Snapshot {
		out := s.Clone()
		out.Rooms = allocator.AssignCNAs(s.Rooms)
		return out
	}))
	if err != nil {
		return nil, err
	}
	return &EditResult{Board: *next, Message: MessageCNAsAssigned}, nil
}

// ClearAssignments unassigns every room that is not locked by itself or by its nurse
func ClearAssignments(ctx context.Context, store db.BoardStore, layout model.UnitLayout, logger *zap.Logger) (*EditResult, error) {
	next, err := editBoard(ctx, store, layout, logger, "clear_assignments", pure(board.ClearAssignments))
	if err != nil {
		return nil, err
	}
	return &EditResult{Board: *next, Message: MessageAssignmentsCleared}, nil
}

// ClearRooms resets every unlocked room to a default patient
func ClearRooms(ctx context.Context, store db.BoardStore, layout model.UnitLayout, logger *zap.Logger) (*EditResult, error) {
	next, err := editBoard(ctx, store, layout, logger, "clear_rooms", pure(board.ClearRooms))
	if err != nil {
		return nil, err
	}
	return &EditResult{Board: *next, Message: MessageRoomsCleared}, nil
}

// SetNurseRooms gives the nurse (by id or name) exactly the rooms listed in text
func SetNurseRooms(ctx context.Context, store db.BoardStore, layout model.UnitLayout, logger *zap.Logger, nurseRef, text string) (*EditResult, error) {
	logger.Debug("Setting nurse rooms", zap.String("nurse", nurseRef), zap.String("rooms", text))

	next, err := editBoard(ctx, store, layout, logger, "set_nurse_rooms", func(s model.Snapshot) (model.Snapshot, error) {
		nurse, err := resolveNurse(s, nurseRef)
		if err != nil {
			return s, err
		}
		return board.SetNurseRooms(s, nurse.ID, text)
	})
	if err != nil {
		return nil, err
	}
	return &EditResult{Board: *next}, nil
}

// AddNurse appends a nurse to the roster
func AddNurse(ctx context.Context, store db.BoardStore, layout model.UnitLayout, logger *zap.Logger, name string) (*EditResult, error) {
	var added model.Nurse
	next, err := editBoard(ctx, store, layout, logger, "add_nurse", func(s model.Snapshot) (model.Snapshot, error) {
		out, nurse, err := board.AddNurse(s, name)
		added = nurse
		return out, err
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Nurse added", zap.String("id", string(added.ID)), zap.String("name", added.Name))
	return &EditResult{Board: *next, Message: fmt.Sprintf("Added %s.", added.Name)}, nil
}

// RenameNurse renames a nurse; their rooms follow the new name
func RenameNurse(ctx context.Context, store db.BoardStore, layout model.UnitLayout, logger *zap.Logger, nurseRef, name string) (*EditResult, error) {
	next, err := editBoard(ctx, store, layout, logger, "rename_nurse", func(s model.Snapshot) (model.Snapshot, error) {
		nurse, err := resolveNurse(s, nurseRef)
		if err != nil {
			return s, err
		}
		return board.RenameNurse(s, nurse.ID, name)
	})
	if err != nil {
		return nil, err
	}
	return &EditResult{Board: *next}, nil
}

// UpdateNurse renames a nurse and sets their flags in a single save.
// A nil name leaves the name alone.
func UpdateNurse(ctx context.Context, store db.BoardStore, layout model.UnitLayout, logger *zap.Logger, nurseRef string, name *string, flags board.NurseFlags) (*EditResult, error) {
	next, err := editBoard(ctx, store, layout, logger, "update_nurse", func(s model.Snapshot) (model.Snapshot, error) {
		nurse, err := resolveNurse(s, nurseRef)
		if err != nil {
			return s, err
		}
		out := s
		if name != nil {
			if out, err = board.RenameNurse(out, nurse.ID, *name); err != nil {
				return s, err
			}
		}
		return board.SetNurseFlags(out, nurse.ID, flags)
	})
	if err != nil {
		return nil, err
	}
	return &EditResult{Board: *next}, nil
}

// RemoveNurse deletes a nurse and unassigns their rooms
func RemoveNurse(ctx context.Context, store db.BoardStore, layout model.UnitLayout, logger *zap.Logger, nurseRef string) (*EditResult, error) {
	var removed model.Nurse
	next, err := editBoard(ctx, store, layout, logger, "remove_nurse", func(s model.Snapshot) (model.Snapshot, error) {
		nurse, err := resolveNurse(s, nurseRef)
		if err != nil {
			return s, err
		}
		removed = nurse
		return board.RemoveNurse(s, nurse.ID)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Nurse removed", zap.String("id", string(removed.ID)), zap.String("name", removed.Name))
	return &EditResult{Board: *next, Message: fmt.Sprintf("Removed %s.", removed.Name)}, nil
}

// SetNurseFlags updates a nurse's lock and chemo certification
func SetNurseFlags(ctx context.Context, store db.BoardStore, layout model.UnitLayout, logger *zap.Logger, nurseRef string, flags board.NurseFlags) (*EditResult, error) {
	next, err := editBoard(ctx, store, layout, logger, "set_nurse_flags", func(s model.Snapshot) (model.Snapshot, error) {
		nurse, err := resolveNurse(s, nurseRef)
		if err != nil {
			return s, err
		}
		return board.SetNurseFlags(s, nurse.ID, flags)
	})
	if err != nil {
		return nil, err
	}
	return &EditResult{Board: *next}, nil
}

// UpdateRoom applies a partial room update
func UpdateRoom(ctx context.Context, store db.BoardStore, layout model.UnitLayout, logger *zap.Logger, roomID model.RoomID, update board.RoomUpdate) (*EditResult, error) {
	next, err := editBoard(ctx, store, layout, logger, "update_room", func(s model.Snapshot) (model.Snapshot, error) {
		return board.UpdateRoom(s, roomID, update)
	})
	if err != nil {
		return nil, err
	}
	return &EditResult{Board: *next}, nil
}

// ToggleRoomLock flips a room's lock
func ToggleRoomLock(ctx context.Context, store db.BoardStore, layout model.UnitLayout, logger *zap.Logger, roomID model.RoomID) (*EditResult, error) {
	next, err := editBoard(ctx, store, layout, logger, "toggle_room_lock", func(s model.Snapshot) (model.Snapshot, error) {
		return board.ToggleRoomLock(s, roomID)
	})
	if err != nil {
		return nil, err
	}
	return &EditResult{Board: *next}, nil
}

// Remix repopulates the unlocked rooms with a random patient mix
func Remix(ctx context.Context, store db.BoardStore, layout model.UnitLayout, logger *zap.Logger, counts board.RemixCounts, rng *rand.Rand) (*EditResult, error) {
	logger.Debug("Remixing board",
		zap.Int("acuity4", counts.Acuity4),
		zap.Int("acuity3", counts.Acuity3),
		zap.Int("admits", counts.Admits),
		zap.Int("chemo", counts.Chemo),
		zap.Int("not_independent", counts.NotIndependent))

	next, err := editBoard(ctx, store, layout, logger, "remix", func(s model.Snapshot) (model.Snapshot, error) {
		out, err := board.Remix(s, counts, rng)
		if err != nil {
			return s, fmt.Errorf("invalid remix counts: %w", err)
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	return &EditResult{Board: *next, Message: MessageRemixed}, nil
}

// ReplaceBoard saves a whole board, normalising legacy references
func ReplaceBoard(ctx context.Context, store db.BoardStore, logger *zap.Logger, snapshot model.Snapshot) (*model.Snapshot, error) {
	next := snapshot.Clone()
	next.Normalize()

	if err := store.SaveBoard(ctx, next); err != nil {
		return nil, fmt.Errorf("failed to save board: %w", err)
	}

	logger.Debug("Board replaced", zap.Int("nurses", len(next.Nurses)), zap.Int("rooms", len(next.Rooms)))
	return &next, nil
}
