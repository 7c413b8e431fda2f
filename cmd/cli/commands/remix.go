package commands

import (
	"fmt"
	"math/rand/v2"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/charge-nurse/pkg/core/board"
	"github.com/jakechorley/charge-nurse/pkg/core/services"
)

// RemixCmd creates the remix command
func RemixCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remix",
		Short: "Repopulate unlocked rooms with a random patient mix",
		Long:  "Repopulate unlocked rooms with a random patient mix. Useful for training and for trying out the allocator.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			var counts board.RemixCounts
			counts.Acuity4, _ = flags.GetInt("acuity4")
			counts.Acuity3, _ = flags.GetInt("acuity3")
			counts.Admits, _ = flags.GetInt("admits")
			counts.Chemo, _ = flags.GetInt("chemo")
			counts.NotIndependent, _ = flags.GetInt("not-indep")

			seed, _ := flags.GetUint64("seed")
			if !flags.Changed("seed") {
				seed = rand.Uint64()
			}

			app.Logger.Debug("remix command", zap.Uint64("seed", seed))

			result, err := services.Remix(app.Ctx, app.Database, app.Cfg.Layout(), app.Logger, counts, rand.New(rand.NewPCG(seed, seed)))
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ %s\n", result.Message)
			fmt.Printf("%sSeed: %d%s\n\n", colorDim, seed, colorReset)
			return nil
		},
	}

	d := board.DefaultRemixCounts
	cmd.Flags().Int("acuity4", d.Acuity4, "Number of acuity 4 patients")
	cmd.Flags().Int("acuity3", d.Acuity3, "Number of acuity 3 patients")
	cmd.Flags().Int("admits", d.Admits, "Number of admissions")
	cmd.Flags().Int("chemo", d.Chemo, "Number of chemo patients")
	cmd.Flags().Int("not-indep", d.NotIndependent, "Number of not independent patients")
	cmd.Flags().Uint64("seed", 0, "Seed for a reproducible mix")
	return cmd
}
