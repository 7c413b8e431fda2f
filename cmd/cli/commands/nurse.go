package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/charge-nurse/pkg/core/board"
	"github.com/jakechorley/charge-nurse/pkg/core/services"
)

// NurseCmd creates the nurse command and its subcommands
func NurseCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nurse",
		Short: "Manage the RN roster",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add [name]",
		Short: "Add an RN (defaults to \"RN n\")",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args, " ")
			result, err := services.AddNurse(app.Ctx, app.Database, app.Cfg.Layout(), app.Logger, name)
			if err != nil {
				return err
			}
			fmt.Printf("\n✓ %s\n\n", result.Message)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rename <nurse> <name>",
		Short: "Rename an RN (a blank name takes them off the roster)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := services.RenameNurse(app.Ctx, app.Database, app.Cfg.Layout(), app.Logger, args[0], args[1]); err != nil {
				return err
			}
			fmt.Printf("\n✓ Renamed %s to %s\n\n", args[0], args[1])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <nurse>",
		Short: "Remove an RN and unassign their rooms",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := services.RemoveNurse(app.Ctx, app.Database, app.Cfg.Layout(), app.Logger, args[0])
			if err != nil {
				return err
			}
			fmt.Printf("\n✓ %s\n\n", result.Message)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rooms <nurse> <rooms...>",
		Short: "Give an RN exactly the listed rooms, e.g. \"1, 2 h\"",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rooms := strings.Join(args[1:], " ")
			if _, err := services.SetNurseRooms(app.Ctx, app.Database, app.Cfg.Layout(), app.Logger, args[0], rooms); err != nil {
				return err
			}
			fmt.Printf("\n✓ %s now has rooms: %s\n\n", args[0], orDash(rooms))
			return nil
		},
	})

	cmd.AddCommand(nurseFlagsCmd(app))

	return cmd
}

func nurseFlagsCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flags <nurse>",
		Short: "Lock an RN's assignments or change their chemo certification",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var flags board.NurseFlags
			if cmd.Flags().Changed("locked") {
				locked, _ := cmd.Flags().GetBool("locked")
				flags.Locked = &locked
			}
			if cmd.Flags().Changed("no-chemo") {
				noChemo, _ := cmd.Flags().GetBool("no-chemo")
				flags.NoChemo = &noChemo
			}
			if flags.Locked == nil && flags.NoChemo == nil {
				return fmt.Errorf("nothing to change: pass --locked or --no-chemo")
			}

			app.Logger.Debug("nurse flags command", zap.String("nurse", args[0]))

			if _, err := services.SetNurseFlags(app.Ctx, app.Database, app.Cfg.Layout(), app.Logger, args[0], flags); err != nil {
				return err
			}
			fmt.Printf("\n✓ Updated %s\n\n", args[0])
			return nil
		},
	}

	cmd.Flags().Bool("locked", false, "Keep the RN's current rooms during auto-assign")
	cmd.Flags().Bool("no-chemo", false, "RN is not chemo certified")
	return cmd
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
