package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/charge-nurse/pkg/core/services"
)

// RunsCmd creates the runs command
func RunsCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List past auto-assign runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			app.Logger.Debug("runs command", zap.Int("limit", limit))

			runs, err := services.ListRuns(app.Ctx, app.Database, app.Logger)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Println("No assignment runs recorded yet.")
				return nil
			}
			if limit > 0 && len(runs) > limit {
				runs = runs[:limit]
			}

			fmt.Printf("\n%-22s  %-20s  %-6s  %-6s  %s\n", "Shift", "Run at", "Placed", "Locked", "Unplaced")
			fmt.Println(strings.Repeat("-", 80))
			for _, run := range runs {
				unplaced := make([]string, len(run.Unplaced))
				for i, u := range run.Unplaced {
					unplaced[i] = fmt.Sprintf("%s (%s)", u.Room, u.Reason)
				}
				fmt.Printf("%-22s  %-20s  %-6d  %-6d  %s\n",
					run.ShiftLabel,
					run.CreatedAt.Local().Format("2006-01-02 15:04:05"),
					run.Placed,
					run.PreservedLocked,
					strings.Join(unplaced, ", "))
			}
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().Int("limit", 10, "Number of runs to show (0 for all)")
	return cmd
}
