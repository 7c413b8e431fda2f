package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/charge-nurse/pkg/core/services"
)

// ClearCmd creates the clear command and its subcommands
func ClearCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear assignments or reset rooms",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "assignments",
		Short: "Unassign every room that is not locked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := services.ClearAssignments(app.Ctx, app.Database, app.Cfg.Layout(), app.Logger)
			if err != nil {
				return err
			}
			fmt.Printf("\n✓ %s\n\n", result.Message)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rooms",
		Short: "Reset every unlocked room to its default patient",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := services.ClearRooms(app.Ctx, app.Database, app.Cfg.Layout(), app.Logger)
			if err != nil {
				return err
			}
			fmt.Printf("\n✓ %s\n\n", result.Message)
			return nil
		},
	})

	return cmd
}
