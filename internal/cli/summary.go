package cli

import (
	"errors"

	"github.com/spf13/cobra"

	apperrors "trading-journal/internal/errors"
)

func newSummaryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Summarize scores over a window",
		Long: `Roll up a kind's tracked value over a date window: count, mean,
min, max, and the trend direction of the fitted slope.

Risk assessments aggregate the overall score, stock ratings the stock
sentiment, and trades the entry price.`,
		Example: `  journal summary --kind risk
  journal summary --kind rating --from 2025-06-01 --to 2025-08-31`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireService(app); err != nil {
				return err
			}
			output := NewOutput(cmd)
			ctx, cancel := commandContext()
			defer cancel()

			kind, _ := cmd.Flags().GetString("kind")
			from, to := windowFlags(cmd)

			rec, err := app.Service.Summarize(ctx, kind, from, to)
			if err != nil {
				if errors.Is(err, apperrors.ErrEmptyRange) {
					if output.IsJSON() {
						return output.JSON(map[string]interface{}{"kind": kind, "from": from, "to": to, "count": 0})
					}
					output.Info("No %s entries between %s and %s.", kind, from, to)
					return nil
				}
				return err
			}

			if output.IsJSON() {
				return output.JSON(rec)
			}
			output.Bold("%s summary, %s to %s", rec.Kind, rec.From, rec.To)
			output.Printf("  Count: %d\n", rec.Count)
			output.Printf("  Mean:  %s\n", output.FormatSignedScore(rec.Mean))
			output.Printf("  Min:   %s\n", output.FormatSignedScore(rec.Min))
			output.Printf("  Max:   %s\n", output.FormatSignedScore(rec.Max))
			output.Printf("  Trend: %s\n", output.Trend(rec.Trend))
			return nil
		},
	}

	cmd.Flags().String("kind", "risk", "entity kind: trade, risk, or rating")
	addWindowFlags(cmd)

	return cmd
}
