package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/charge-nurse/pkg/core/services"
)

// CNAsCmd creates the cnas command
func CNAsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "cnas",
		Short: "Flag the rooms that need a CNA",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := services.AssignCNAs(app.Ctx, app.Database, app.Cfg.Layout(), app.Logger)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ %s\n\n", result.Message)
			for _, room := range result.Board.Rooms {
				if room.CNA {
					fmt.Printf("  Room %s\n", room.ID)
				}
			}
			fmt.Println()
			return nil
		},
	}
}
