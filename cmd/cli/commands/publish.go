package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/charge-nurse/internal/config"
	"github.com/jakechorley/charge-nurse/pkg/clients/gmailclient"
	"github.com/jakechorley/charge-nurse/pkg/clients/sheetsclient"
	"github.com/jakechorley/charge-nurse/pkg/core/services"
)

// PublishCmd creates the publish command
func PublishCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Publish the board to Google Sheets and email the summary",
		Long: `Publish the board to a Google Sheets tab named after the current shift and
email the assignment summary to the configured recipients.
The first run opens a browser to authorise access.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			noEmail, _ := cmd.Flags().GetBool("no-email")

			label, err := services.ShiftLabel(app.Cfg.ShiftSchedule, time.Now())
			if err != nil {
				return err
			}

			pub := app.Cfg.Publish
			target := services.PublishTarget{
				UnitName:      app.Cfg.Unit.Name,
				ShiftLabel:    label,
				SpreadsheetID: pub.SpreadsheetID,
				Sender:        pub.Sender,
				Recipients:    pub.Recipients,
			}
			if noEmail {
				target.Recipients = nil
			}
			if target.SpreadsheetID == "" && len(target.Recipients) == 0 {
				return fmt.Errorf("nothing to publish to: set publish.spreadsheetID or publish.recipients in the config")
			}

			app.Logger.Info("Loading OAuth client configuration")
			oauthCfg, err := config.LoadOAuthClientWithEnv(app.Env)
			if err != nil {
				return fmt.Errorf("failed to load OAuth client config: %w", err)
			}

			sheets, err := sheetsclient.NewClient(app.Ctx, oauthCfg, app.Env, app.Logger)
			if err != nil {
				return fmt.Errorf("failed to create sheets client: %w", err)
			}

			// gmail reuses the token from the sheets sign-in
			mail, err := gmailclient.NewClient(app.Ctx, oauthCfg, sheets.Token(), pub.GmailUserID)
			if err != nil {
				return fmt.Errorf("failed to create gmail client: %w", err)
			}

			app.Logger.Debug("publish command", zap.String("shift", label), zap.Bool("no_email", noEmail))

			result, err := services.PublishBoard(app.Ctx, app.Database, app.Cfg.Layout(), sheets, mail, target, app.Logger)
			if err != nil {
				return err
			}

			fmt.Printf("\n✅ Board published for %s\n\n", label)
			if result.Sheet {
				fmt.Printf("Sheet tab:  %s (%s)\n", result.TabTitle, target.SpreadsheetID)
			}
			if len(result.EmailedTo) > 0 {
				fmt.Printf("Emailed:    %d recipients\n", len(result.EmailedTo))
			}
			if result.Unassigned > 0 {
				fmt.Printf("%s⚠️  %d occupied rooms have no RN%s\n", colorYellow, result.Unassigned, colorReset)
			}
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().Bool("no-email", false, "Only update the sheet")
	return cmd
}
