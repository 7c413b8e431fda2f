package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/charge-nurse/pkg/core/board"
	"github.com/jakechorley/charge-nurse/pkg/core/model"
	"github.com/jakechorley/charge-nurse/pkg/core/services"
)

// RoomCmd creates the room command and its subcommands
func RoomCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "room",
		Short: "Edit rooms",
	}

	cmd.AddCommand(roomUpdateCmd(app))

	cmd.AddCommand(&cobra.Command{
		Use:   "lock <room>",
		Short: "Toggle a room's lock",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			roomID, err := model.ParseRoomID(args[0])
			if err != nil {
				return err
			}

			result, err := services.ToggleRoomLock(app.Ctx, app.Database, app.Cfg.Layout(), app.Logger, roomID)
			if err != nil {
				return err
			}

			state := "unlocked"
			if room := result.Board.Rooms[result.Board.RoomIndex(roomID)]; room.Locked {
				state = "locked"
			}
			fmt.Printf("\n✓ Room %s %s\n\n", roomID, state)
			return nil
		},
	})

	return cmd
}

func roomUpdateCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <room>",
		Short: "Change a room's patient, flags or RN",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			roomID, err := model.ParseRoomID(args[0])
			if err != nil {
				return err
			}

			update, err := roomUpdateFromFlags(cmd)
			if err != nil {
				return err
			}

			if _, err := services.UpdateRoom(app.Ctx, app.Database, app.Cfg.Layout(), app.Logger, roomID, update); err != nil {
				return err
			}
			fmt.Printf("\n✓ Room %s updated\n\n", roomID)
			return nil
		},
	}

	cmd.Flags().String("tx", "", "Patient / diagnosis")
	cmd.Flags().Int("acuity", 2, "Acuity 0-4 (0 empties the room)")
	cmd.Flags().Bool("admit", false, "Admission")
	cmd.Flags().Bool("imc", false, "IMC patient")
	cmd.Flags().Bool("cna", false, "Needs a CNA")
	cmd.Flags().Bool("chemo", false, "Chemo patient")
	cmd.Flags().Bool("not-indep", false, "Not independent")
	cmd.Flags().Bool("locked", false, "Keep the room's RN during auto-assign")
	cmd.Flags().String("rn", "", "RN name, or - to unassign")
	return cmd
}

// roomUpdateFromFlags builds a partial update from the flags the user set
func roomUpdateFromFlags(cmd *cobra.Command) (board.RoomUpdate, error) {
	var update board.RoomUpdate
	flags := cmd.Flags()

	if flags.Changed("tx") {
		tx, _ := flags.GetString("tx")
		update.Diagnosis = &tx
	}
	if flags.Changed("acuity") {
		acuity, _ := flags.GetInt("acuity")
		update.Acuity = &acuity
	}
	if flags.Changed("rn") {
		rn, _ := flags.GetString("rn")
		update.NurseName = &rn
	}

	bools := []struct {
		name string
		dst  **bool
	}{
		{"admit", &update.Admit},
		{"imc", &update.IMC},
		{"cna", &update.CNA},
		{"chemo", &update.Chemo},
		{"not-indep", &update.NotIndependent},
		{"locked", &update.Locked},
	}
	changed := update.Diagnosis != nil || update.Acuity != nil || update.NurseName != nil
	for _, b := range bools {
		if !flags.Changed(b.name) {
			continue
		}
		v, _ := flags.GetBool(b.name)
		*b.dst = &v
		changed = true
	}

	if !changed {
		return update, fmt.Errorf("nothing to change: pass at least one flag")
	}
	return update, nil
}
