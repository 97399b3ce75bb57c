package cli

import (
	"time"

	"github.com/spf13/cobra"

	"trading-journal/internal/service"
)

// addRiskCommands adds daily risk assessment commands.
func addRiskCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "risk",
		Short: "Daily risk assessment management",
		Long: `Record daily risk self-assessments. Each factor is scored on the
-3 to +3 scale; the overall score is derived from the raw factors.`,
	}

	cmd.AddCommand(newRiskAddCmd(app))
	cmd.AddCommand(newRiskListCmd(app))
	cmd.AddCommand(newRiskShowCmd(app))
	cmd.AddCommand(newRiskEditCmd(app))
	cmd.AddCommand(newRiskRmCmd(app))

	rootCmd.AddCommand(cmd)
}

func newRiskAddCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a daily risk assessment",
		Example: `  journal risk add --emotional 1 --fomo -2 --bias 0 --physical 2 --pnl 1
  journal risk add --date 2025-08-15 --emotional -1 --pnl -3`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireService(app); err != nil {
				return err
			}
			output := NewOutput(cmd)
			ctx, cancel := commandContext()
			defer cancel()

			date, _ := cmd.Flags().GetString("date")
			if date == "" {
				date = time.Now().Format(service.DateFormat)
			}
			emotional, _ := cmd.Flags().GetInt("emotional")
			fomo, _ := cmd.Flags().GetInt("fomo")
			bias, _ := cmd.Flags().GetInt("bias")
			physical, _ := cmd.Flags().GetInt("physical")
			pnl, _ := cmd.Flags().GetInt("pnl")

			rec, err := app.Service.CreateRiskAssessment(ctx, service.RiskInput{
				Date:      date,
				Emotional: emotional,
				Fomo:      fomo,
				Bias:      bias,
				Physical:  physical,
				Pnl:       pnl,
			})
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(rec)
			}
			output.Success("✓ Risk assessment recorded: %s", rec.ID)
			output.Printf("  Overall score: %s\n", output.FormatSignedScore(rec.OverallScore))
			return nil
		},
	}

	cmd.Flags().String("date", "", "assessment date (YYYY-MM-DD, default today)")
	cmd.Flags().Int("emotional", 0, "emotional state (-3 to +3)")
	cmd.Flags().Int("fomo", 0, "fear of missing out (-3 to +3)")
	cmd.Flags().Int("bias", 0, "directional bias (-3 to +3)")
	cmd.Flags().Int("physical", 0, "physical condition (-3 to +3)")
	cmd.Flags().Int("pnl", 0, "recent P&L pressure (-3 to +3)")

	return cmd
}

func newRiskListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List risk assessments",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireService(app); err != nil {
				return err
			}
			output := NewOutput(cmd)
			ctx, cancel := commandContext()
			defer cancel()

			from, to := windowFlags(cmd)
			records, err := app.Service.ListRiskAssessments(ctx, from, to)
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(records)
			}
			if len(records) == 0 {
				output.Info("No risk assessments between %s and %s.", from, to)
				return nil
			}

			table := NewTable(output, "ID", "Date", "Emo", "FOMO", "Bias", "Phys", "PnL", "Overall")
			for _, ra := range records {
				table.AddRow(
					TruncateString(ra.ID, 10),
					ra.Date,
					PadLeft(intString(ra.Emotional), 3),
					PadLeft(intString(ra.Fomo), 3),
					PadLeft(intString(ra.Bias), 3),
					PadLeft(intString(ra.Physical), 3),
					PadLeft(intString(ra.Pnl), 3),
					output.FormatSignedScore(ra.OverallScore),
				)
			}
			table.Render()
			return nil
		},
	}

	addWindowFlags(cmd)
	return cmd
}

func newRiskShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a risk assessment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireService(app); err != nil {
				return err
			}
			output := NewOutput(cmd)
			ctx, cancel := commandContext()
			defer cancel()

			rec, err := app.Service.GetRiskAssessment(ctx, args[0])
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(rec)
			}
			output.Bold("Risk Assessment %s", rec.ID)
			output.Printf("  Date:      %s\n", rec.Date)
			output.Printf("  Emotional: %d\n", rec.Emotional)
			output.Printf("  FOMO:      %d\n", rec.Fomo)
			output.Printf("  Bias:      %d\n", rec.Bias)
			output.Printf("  Physical:  %d\n", rec.Physical)
			output.Printf("  PnL:       %d\n", rec.Pnl)
			output.Printf("  Overall:   %s\n", output.FormatSignedScore(rec.OverallScore))
			return nil
		},
	}
}

func newRiskEditCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update a risk assessment",
		Long:  "Update raw factors; the overall score is recomputed.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireService(app); err != nil {
				return err
			}
			output := NewOutput(cmd)
			ctx, cancel := commandContext()
			defer cancel()

			var patch service.RiskPatchInput
			if cmd.Flags().Changed("date") {
				v, _ := cmd.Flags().GetString("date")
				patch.Date = &v
			}
			if cmd.Flags().Changed("emotional") {
				v, _ := cmd.Flags().GetInt("emotional")
				patch.Emotional = &v
			}
			if cmd.Flags().Changed("fomo") {
				v, _ := cmd.Flags().GetInt("fomo")
				patch.Fomo = &v
			}
			if cmd.Flags().Changed("bias") {
				v, _ := cmd.Flags().GetInt("bias")
				patch.Bias = &v
			}
			if cmd.Flags().Changed("physical") {
				v, _ := cmd.Flags().GetInt("physical")
				patch.Physical = &v
			}
			if cmd.Flags().Changed("pnl") {
				v, _ := cmd.Flags().GetInt("pnl")
				patch.Pnl = &v
			}

			rec, err := app.Service.UpdateRiskAssessment(ctx, args[0], patch)
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(rec)
			}
			output.Success("✓ Risk assessment updated: %s", rec.ID)
			output.Printf("  Overall score: %s\n", output.FormatSignedScore(rec.OverallScore))
			return nil
		},
	}

	cmd.Flags().String("date", "", "assessment date (YYYY-MM-DD)")
	cmd.Flags().Int("emotional", 0, "emotional state (-3 to +3)")
	cmd.Flags().Int("fomo", 0, "fear of missing out (-3 to +3)")
	cmd.Flags().Int("bias", 0, "directional bias (-3 to +3)")
	cmd.Flags().Int("physical", 0, "physical condition (-3 to +3)")
	cmd.Flags().Int("pnl", 0, "recent P&L pressure (-3 to +3)")

	return cmd
}

func newRiskRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a risk assessment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireService(app); err != nil {
				return err
			}
			output := NewOutput(cmd)
			ctx, cancel := commandContext()
			defer cancel()

			if err := app.Service.DeleteRiskAssessment(ctx, args[0]); err != nil {
				return err
			}
			if output.IsJSON() {
				return output.JSON(map[string]bool{"deleted": true})
			}
			output.Success("✓ Risk assessment deleted")
			return nil
		},
	}
}
