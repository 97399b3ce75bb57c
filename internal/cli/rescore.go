package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"trading-journal/internal/rescore"
	"trading-journal/internal/service"
)

func newRescoreCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rescore",
		Short: "Recompute derived scores",
		Long: `Recompute overall scores, stock sentiments and enthusiasm ratings
for stored records. Run this after a scoring change so old records match
the current formula.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Rescore == nil {
				return fmt.Errorf("journal store is not available")
			}
			output := NewOutput(cmd)

			fromFlag, _ := cmd.Flags().GetString("from")
			toFlag, _ := cmd.Flags().GetString("to")
			if toFlag == "" {
				toFlag = time.Now().Format(service.DateFormat)
			}
			from, err := service.DecodeDate("from", fromFlag)
			if err != nil {
				return err
			}
			to, err := service.DecodeDate("to", toFlag)
			if err != nil {
				return err
			}

			workers, _ := cmd.Flags().GetInt("workers")
			runner := app.Rescore
			if workers > 0 {
				runner = rescore.NewRunner(app.Store, app.Logger, workers)
			}

			ctx, cancel := commandContext()
			defer cancel()

			report, err := runner.Run(ctx, from, to)
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"risks":    report.RisksRescored,
					"ratings":  report.RatingsRescored,
					"failures": report.Failures,
					"elapsed":  report.Elapsed.String(),
				})
			}
			output.Success("✓ Re-score complete in %s", report.Elapsed.Round(time.Millisecond))
			output.Printf("  Risk assessments: %d\n", report.RisksRescored)
			output.Printf("  Stock ratings:    %d\n", report.RatingsRescored)
			if report.Failures > 0 {
				output.Warning("  Failures:         %d", report.Failures)
			}
			return nil
		},
	}

	cmd.Flags().String("from", "1970-01-01", "start date (YYYY-MM-DD)")
	cmd.Flags().String("to", "", "end date (YYYY-MM-DD, default today)")
	cmd.Flags().Int("workers", 0, "worker count (default: CPU count)")

	return cmd
}
