package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/charge-nurse/pkg/core/allocator"
	"github.com/jakechorley/charge-nurse/pkg/core/allocator/criteria"
	"github.com/jakechorley/charge-nurse/pkg/core/services"
)

// AssignCmd creates the assign command
func AssignCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "assign",
		Short: "Auto-assign every unlocked occupied room to an RN",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			label, err := services.ShiftLabel(app.Cfg.ShiftSchedule, time.Now())
			if err != nil {
				return err
			}

			app.Logger.Debug("assign command", zap.String("shift", label))

			result, err := services.AutoAssign(app.Ctx, app.Database, app.Cfg.Layout(), app.Logger, label)
			if err != nil {
				return err
			}

			fmt.Printf("\n%s - %s\n\n", app.Cfg.Unit.Name, label)
			fmt.Println(result.Rationale.String())

			report := allocator.BuildUnitReport(result.Board.Rooms, result.Board.Nurses, criteria.Default())
			fmt.Print(formatBoard(result.Board, report))

			if result.Run != nil {
				fmt.Printf("\n%sRun %s recorded%s\n", colorDim, result.Run.ID, colorReset)
			}
			return nil
		},
	}
}
