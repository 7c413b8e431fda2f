package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/charge-nurse/cmd/cli/commands"
	"github.com/jakechorley/charge-nurse/internal/config"
	"github.com/jakechorley/charge-nurse/pkg/utils/logging"
)

func main() {
	app := &commands.AppContext{
		Ctx: context.Background(),
	}

	rootCmd := &cobra.Command{
		Use:   "charge",
		Short: "Charge nurse board - assign RNs to rooms",
		Long:  `A CLI tool for the charge nurse: keep the unit board, auto-assign RNs to rooms, and publish the assignments.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp(app)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.Database != nil {
				if err := app.Database.Close(); err != nil && app.Logger != nil {
					app.Logger.Warn("Failed to close database", zap.Error(err))
				}
			}
			if app.Logger != nil {
				app.Logger.Sync()
			}
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&app.Env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(commands.AssignCmd(app))
	rootCmd.AddCommand(commands.CNAsCmd(app))
	rootCmd.AddCommand(commands.ClearCmd(app))
	rootCmd.AddCommand(commands.ReportCmd(app))
	rootCmd.AddCommand(commands.NurseCmd(app))
	rootCmd.AddCommand(commands.RoomCmd(app))
	rootCmd.AddCommand(commands.RemixCmd(app))
	rootCmd.AddCommand(commands.ImportCmd(app))
	rootCmd.AddCommand(commands.ExportCmd(app))
	rootCmd.AddCommand(commands.PublishCmd(app))
	rootCmd.AddCommand(commands.RunsCmd(app))
	rootCmd.AddCommand(commands.ServeCmd(app))
	rootCmd.AddCommand(commands.InteractiveCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp loads config, sets up the logger and opens the store
func initApp(app *commands.AppContext) error {
	var err error

	app.Cfg, err = config.LoadWithEnv(app.Env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	app.Logger, err = logging.InitLogger(app.Env, app.Cfg.Logging.Dir)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Info("Starting application",
		zap.String("environment", app.Env),
		zap.String("unit", app.Cfg.Unit.Name))

	app.Logger.Info("Opening storage", zap.String("backend", app.Cfg.Storage.Backend))
	app.Database, err = commands.OpenStore(app.Ctx, app.Cfg.Storage, app.Logger)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	app.Logger.Debug("Storage opened successfully")

	return nil
}
