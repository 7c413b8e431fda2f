package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/charge-nurse/pkg/core/services"
)

// ReportCmd creates the report command
func ReportCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Show the board with per-nurse loads and warnings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := services.UnitReport(app.Ctx, app.Database, app.Cfg.Layout(), app.Logger)
			if err != nil {
				return err
			}

			fmt.Printf("\n%s\n\n", app.Cfg.Unit.Name)
			fmt.Print(formatBoard(result.Board, result.Report))
			fmt.Println()
			return nil
		},
	}
}
