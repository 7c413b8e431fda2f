package commands

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/charge-nurse/pkg/core/services"
	"github.com/jakechorley/charge-nurse/pkg/export"
)

// ImportCmd creates the import command
func ImportCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.json>",
		Short: "Replace the board with a saved JSON board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", args[0], err)
			}
			defer f.Close()

			imported, err := services.ImportBoard(app.Ctx, app.Database, app.Logger, f)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Imported %d nurses and %d rooms from %s\n\n", len(imported.Nurses), len(imported.Rooms), args[0])
			return nil
		},
	}
}

// ExportCmd creates the export command
func ExportCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Save the board as JSON, or as a printable workbook with --xlsx",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			xlsx, _ := cmd.Flags().GetBool("xlsx")
			app.Logger.Debug("export command", zap.String("file", args[0]), zap.Bool("xlsx", xlsx))

			var buf bytes.Buffer
			if xlsx {
				result, err := services.UnitReport(app.Ctx, app.Database, app.Cfg.Layout(), app.Logger)
				if err != nil {
					return err
				}
				data, err := export.Workbook(result.Board, result.Report)
				if err != nil {
					return err
				}
				buf.Write(data)
			} else if err := services.ExportBoard(app.Ctx, app.Database, app.Cfg.Layout(), app.Logger, &buf); err != nil {
				return err
			}

			if err := os.WriteFile(args[0], buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", args[0], err)
			}

			fmt.Printf("\n✓ Board exported to %s\n\n", args[0])
			return nil
		},
	}

	cmd.Flags().Bool("xlsx", false, "Write an Excel workbook instead of JSON")
	return cmd
}
