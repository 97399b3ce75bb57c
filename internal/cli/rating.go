package cli

import (
	"sort"
	"time"

	"github.com/spf13/cobra"

	"trading-journal/internal/service"
)

// addRatingCommands adds stock rating commands.
func addRatingCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "rating",
		Short: "Stock rating management",
		Long: `Record stock ratings with market and sector sentiment. Stock
sentiment and the enthusiasm rating are derived from the raw inputs.`,
	}

	cmd.AddCommand(newRatingAddCmd(app))
	cmd.AddCommand(newRatingListCmd(app))
	cmd.AddCommand(newRatingShowCmd(app))
	cmd.AddCommand(newRatingEditCmd(app))
	cmd.AddCommand(newRatingRmCmd(app))

	rootCmd.AddCommand(cmd)
}

func newRatingAddCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <ticker>",
		Short: "Record a stock rating",
		Example: `  journal rating add NVDA --market 2 --sectors technology=3,energy=-1 --pattern "High Base"
  journal rating add XOM --market 0 --sector-sentiment 1 --enthusiasm 2`,
		Args: cobra.ExactArgs(1),
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
			market, _ := cmd.Flags().GetInt("market")
			sectors, _ := cmd.Flags().GetStringToInt("sectors")
			pattern, _ := cmd.Flags().GetString("pattern")
			enthusiasm, _ := cmd.Flags().GetInt("enthusiasm")

			in := service.RatingInput{
				Date:            date,
				Ticker:          args[0],
				MarketSentiment: market,
				Sectors:         sectors,
				Pattern:         pattern,
				Enthusiasm:      enthusiasm,
			}
			if cmd.Flags().Changed("sector-sentiment") {
				v, _ := cmd.Flags().GetInt("sector-sentiment")
				in.SectorSentiment = &v
			}

			rec, err := app.Service.CreateStockRating(ctx, in)
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(rec)
			}
			output.Success("✓ Rating recorded: %s", rec.ID)
			output.Printf("  Stock sentiment: %s\n", output.FormatSignedScore(rec.StockSentiment))
			output.Printf("  Enthusiasm:      %s\n", output.FormatSignedScore(float64(rec.EnthusiasmRating)))
			return nil
		},
	}

	cmd.Flags().String("date", "", "rating date (YYYY-MM-DD, default today)")
	cmd.Flags().Int("market", 0, "market sentiment (-3 to +3)")
	cmd.Flags().Int("sector-sentiment", 0, "legacy single sector sentiment (-3 to +3)")
	cmd.Flags().StringToInt("sectors", nil, "per-sector sentiments, e.g. technology=2,energy=-1")
	cmd.Flags().String("pattern", "", "chart pattern name")
	cmd.Flags().Int("enthusiasm", 0, "enthusiasm input, used when no pattern is set")

	return cmd
}

func newRatingListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stock ratings",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireService(app); err != nil {
				return err
			}
			output := NewOutput(cmd)
			ctx, cancel := commandContext()
			defer cancel()

			from, to := windowFlags(cmd)
			records, err := app.Service.ListStockRatings(ctx, from, to)
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(records)
			}
			if len(records) == 0 {
				output.Info("No ratings between %s and %s.", from, to)
				return nil
			}

			table := NewTable(output, "ID", "Date", "Ticker", "Mkt", "Pattern", "Sentiment", "Enthusiasm")
			for _, sr := range records {
				table.AddRow(
					TruncateString(sr.ID, 10),
					sr.Date,
					sr.Ticker,
					PadLeft(intString(sr.MarketSentiment), 3),
					TruncateString(sr.Pattern, 18),
					output.FormatSignedScore(sr.StockSentiment),
					output.FormatSignedScore(float64(sr.EnthusiasmRating)),
				)
			}
			table.Render()
			return nil
		},
	}

	addWindowFlags(cmd)
	return cmd
}

func newRatingShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a stock rating",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireService(app); err != nil {
				return err
			}
			output := NewOutput(cmd)
			ctx, cancel := commandContext()
			defer cancel()

			rec, err := app.Service.GetStockRating(ctx, args[0])
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(rec)
			}
			output.Bold("Stock Rating %s", rec.ID)
			output.Printf("  Date:            %s\n", rec.Date)
			output.Printf("  Ticker:          %s\n", rec.Ticker)
			output.Printf("  Market:          %s\n", intString(rec.MarketSentiment))
			if rec.Pattern != "" {
				output.Printf("  Pattern:         %s\n", rec.Pattern)
			}
			output.Printf("  Stock sentiment: %s\n", output.FormatSignedScore(rec.StockSentiment))
			output.Printf("  Enthusiasm:      %s\n", output.FormatSignedScore(float64(rec.EnthusiasmRating)))

			if len(rec.Sectors) > 0 {
				output.Println()
				output.Bold("Sectors")
				names := make([]string, 0, len(rec.Sectors))
				for name := range rec.Sectors {
					names = append(names, name)
				}
				sort.Strings(names)
				for _, name := range names {
					output.Printf("  %s %s\n", PadRight(name+":", 18), intString(rec.Sectors[name]))
				}
			}
			return nil
		},
	}
}

func newRatingEditCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update a stock rating",
		Long:  "Update raw inputs; derived sentiment fields are recomputed.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireService(app); err != nil {
				return err
			}
			output := NewOutput(cmd)
			ctx, cancel := commandContext()
			defer cancel()

			var patch service.RatingPatchInput
			if cmd.Flags().Changed("date") {
				v, _ := cmd.Flags().GetString("date")
				patch.Date = &v
			}
			if cmd.Flags().Changed("ticker") {
				v, _ := cmd.Flags().GetString("ticker")
				patch.Ticker = &v
			}
			if cmd.Flags().Changed("market") {
				v, _ := cmd.Flags().GetInt("market")
				patch.MarketSentiment = &v
			}
			if cmd.Flags().Changed("sector-sentiment") {
				v, _ := cmd.Flags().GetInt("sector-sentiment")
				patch.SectorSentiment = &v
			}
			if cmd.Flags().Changed("sectors") {
				v, _ := cmd.Flags().GetStringToInt("sectors")
				patch.Sectors = v
			}
			if cmd.Flags().Changed("pattern") {
				v, _ := cmd.Flags().GetString("pattern")
				patch.Pattern = &v
			}
			if cmd.Flags().Changed("enthusiasm") {
				v, _ := cmd.Flags().GetInt("enthusiasm")
				patch.Enthusiasm = &v
			}

			rec, err := app.Service.UpdateStockRating(ctx, args[0], patch)
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(rec)
			}
			output.Success("✓ Rating updated: %s", rec.ID)
			output.Printf("  Stock sentiment: %s\n", output.FormatSignedScore(rec.StockSentiment))
			output.Printf("  Enthusiasm:      %s\n", output.FormatSignedScore(float64(rec.EnthusiasmRating)))
			return nil
		},
	}

	cmd.Flags().String("date", "", "rating date (YYYY-MM-DD)")
	cmd.Flags().String("ticker", "", "ticker")
	cmd.Flags().Int("market", 0, "market sentiment (-3 to +3)")
	cmd.Flags().Int("sector-sentiment", 0, "legacy single sector sentiment (-3 to +3)")
	cmd.Flags().StringToInt("sectors", nil, "per-sector sentiments, e.g. technology=2,energy=-1")
	cmd.Flags().String("pattern", "", "chart pattern name")
	cmd.Flags().Int("enthusiasm", 0, "enthusiasm input, used when no pattern is set")

	return cmd
}

func newRatingRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a stock rating",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireService(app); err != nil {
				return err
			}
			output := NewOutput(cmd)
			ctx, cancel := commandContext()
			defer cancel()

			if err := app.Service.DeleteStockRating(ctx, args[0]); err != nil {
				return err
			}
			if output.IsJSON() {
				return output.JSON(map[string]bool{"deleted": true})
			}
			output.Success("✓ Rating deleted")
			return nil
		},
	}
}
