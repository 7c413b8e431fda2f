package commands

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/charge-nurse/pkg/server"
)

// ServeCmd creates the serve command
func ServeCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the board JSON API for the editor UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, _ := cmd.Flags().GetString("addr")
			if addr == "" {
				addr = app.Cfg.Server.Addr
			}

			h := server.NewHandler(app.Database, app.Cfg.Layout(), app.Cfg.ShiftSchedule, app.Logger)
			e := server.New(h, app.Logger)

			errCh := make(chan error, 1)
			go func() {
				app.Logger.Info("Starting server", zap.String("addr", addr))
				if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(quit)

			select {
			case err := <-errCh:
				return err
			case <-quit:
			}

			app.Logger.Info("Shutting down server")
			ctx, cancel := context.WithTimeout(app.Ctx, 10*time.Second)
			defer cancel()
			if err := e.Shutdown(ctx); err != nil {
				return err
			}
			app.Logger.Info("Server stopped")
			return nil
		},
	}

	cmd.Flags().String("addr", "", "Listen address (defaults to server.addr from the config)")
	return cmd
}
