package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"trading-journal/internal/service"
)

const commandTimeout = 30 * time.Second

func commandContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), commandTimeout)
}

func requireService(app *App) error {
	if app.Service == nil {
		return fmt.Errorf("journal store is not available")
	}
	return nil
}

// windowFlags reads the --from/--to flags, defaulting to the last 30 days.
func windowFlags(cmd *cobra.Command) (from, to string) {
	from, _ = cmd.Flags().GetString("from")
	to, _ = cmd.Flags().GetString("to")
	now := time.Now()
	if to == "" {
		to = now.Format(service.DateFormat)
	}
	if from == "" {
		from = now.AddDate(0, 0, -30).Format(service.DateFormat)
	}
	return from, to
}

func addWindowFlags(cmd *cobra.Command) {
	cmd.Flags().String("from", "", "start date (YYYY-MM-DD, default 30 days ago)")
	cmd.Flags().String("to", "", "end date (YYYY-MM-DD, default today)")
}

// addTradeCommands adds trade journal commands.
func addTradeCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "trade",
		Short: "Trade journal management",
		Long:  "Record, review, and maintain journaled trades.",
	}

	cmd.AddCommand(newTradeAddCmd(app))
	cmd.AddCommand(newTradeListCmd(app))
	cmd.AddCommand(newTradeShowCmd(app))
	cmd.AddCommand(newTradeEditCmd(app))
	cmd.AddCommand(newTradeRmCmd(app))

	rootCmd.AddCommand(cmd)
}

func newTradeAddCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <ticker>",
		Short: "Record a new trade",
		Example: `  journal trade add AAPL --price 182.50 --sector technology
  journal trade add SPY --price 440 --strategy "iron condor" --spread credit --direction short --expiration 2025-09-19`,
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
			price, _ := cmd.Flags().GetFloat64("price")
			sector, _ := cmd.Flags().GetString("sector")
			notes, _ := cmd.Flags().GetString("notes")
			expiration, _ := cmd.Flags().GetString("expiration")
			strategy, _ := cmd.Flags().GetString("strategy")
			spread, _ := cmd.Flags().GetString("spread")
			direction, _ := cmd.Flags().GetString("direction")

			rec, err := app.Service.CreateTrade(ctx, service.TradeInput{
				EntryDate:      date,
				Ticker:         args[0],
				Sector:         sector,
				EntryPrice:     price,
				Notes:          notes,
				ExpirationDate: expiration,
				StrategyType:   strategy,
				SpreadType:     spread,
				Direction:      direction,
			})
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(rec)
			}
			output.Success("✓ Trade recorded: %s", rec.ID)
			return nil
		},
	}

	cmd.Flags().String("date", "", "entry date (YYYY-MM-DD, default today)")
	cmd.Flags().Float64("price", 0, "entry price")
	cmd.Flags().String("sector", "", "sector")
	cmd.Flags().String("notes", "", "trade notes")
	cmd.Flags().String("expiration", "", "expiration date (YYYY-MM-DD)")
	cmd.Flags().String("strategy", "", "strategy type")
	cmd.Flags().String("spread", "", "spread type")
	cmd.Flags().String("direction", "", "direction: long or short")

	return cmd
}

func newTradeListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List journaled trades",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireService(app); err != nil {
				return err
			}
			output := NewOutput(cmd)
			ctx, cancel := commandContext()
			defer cancel()

			from, to := windowFlags(cmd)
			records, err := app.Service.ListTrades(ctx, from, to)
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(records)
			}
			if len(records) == 0 {
				output.Info("No trades between %s and %s.", from, to)
				return nil
			}

			table := NewTable(output, "ID", "Date", "Ticker", "Sector", "Price", "Strategy", "Dir")
			for _, t := range records {
				table.AddRow(
					TruncateString(t.ID, 10),
					t.EntryDate,
					t.Ticker,
					TruncateString(t.Sector, 14),
					FormatPrice(t.EntryPrice),
					TruncateString(t.StrategyType, 15),
					t.Direction,
				)
			}
			table.Render()
			return nil
		},
	}

	addWindowFlags(cmd)
	return cmd
}

func newTradeShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a trade",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireService(app); err != nil {
				return err
			}
			output := NewOutput(cmd)
			ctx, cancel := commandContext()
			defer cancel()

			rec, err := app.Service.GetTrade(ctx, args[0])
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(rec)
			}
			output.Bold("Trade %s", rec.ID)
			output.Printf("  Date:       %s\n", rec.EntryDate)
			output.Printf("  Ticker:     %s\n", rec.Ticker)
			output.Printf("  Sector:     %s\n", rec.Sector)
			output.Printf("  Price:      %s\n", FormatPrice(rec.EntryPrice))
			if rec.ExpirationDate != "" {
				output.Printf("  Expiration: %s\n", rec.ExpirationDate)
			}
			if rec.StrategyType != "" {
				output.Printf("  Strategy:   %s\n", rec.StrategyType)
			}
			if rec.SpreadType != "" {
				output.Printf("  Spread:     %s\n", rec.SpreadType)
			}
			if rec.Direction != "" {
				output.Printf("  Direction:  %s\n", rec.Direction)
			}
			if rec.Notes != "" {
				output.Printf("  Notes:      %s\n", rec.Notes)
			}
			return nil
		},
	}
}

func newTradeEditCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update a trade",
		Long:  "Update mutable trade fields. Ticker and entry date cannot change.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireService(app); err != nil {
				return err
			}
			output := NewOutput(cmd)
			ctx, cancel := commandContext()
			defer cancel()

			var patch service.TradePatchInput
			if cmd.Flags().Changed("sector") {
				v, _ := cmd.Flags().GetString("sector")
				patch.Sector = &v
			}
			if cmd.Flags().Changed("price") {
				v, _ := cmd.Flags().GetFloat64("price")
				patch.EntryPrice = &v
			}
			if cmd.Flags().Changed("notes") {
				v, _ := cmd.Flags().GetString("notes")
				patch.Notes = &v
			}
			if cmd.Flags().Changed("expiration") {
				v, _ := cmd.Flags().GetString("expiration")
				patch.ExpirationDate = &v
			}
			if cmd.Flags().Changed("strategy") {
				v, _ := cmd.Flags().GetString("strategy")
				patch.StrategyType = &v
			}
			if cmd.Flags().Changed("spread") {
				v, _ := cmd.Flags().GetString("spread")
				patch.SpreadType = &v
			}
			if cmd.Flags().Changed("direction") {
				v, _ := cmd.Flags().GetString("direction")
				patch.Direction = &v
			}

			rec, err := app.Service.UpdateTrade(ctx, args[0], patch)
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(rec)
			}
			output.Success("✓ Trade updated: %s", rec.ID)
			return nil
		},
	}

	cmd.Flags().String("sector", "", "sector")
	cmd.Flags().Float64("price", 0, "entry price")
	cmd.Flags().String("notes", "", "trade notes")
	cmd.Flags().String("expiration", "", "expiration date (YYYY-MM-DD)")
	cmd.Flags().String("strategy", "", "strategy type")
	cmd.Flags().String("spread", "", "spread type")
	cmd.Flags().String("direction", "", "direction: long or short")

	return cmd
}

func newTradeRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a trade",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireService(app); err != nil {
				return err
			}
			output := NewOutput(cmd)
			ctx, cancel := commandContext()
			defer cancel()

			if err := app.Service.DeleteTrade(ctx, args[0]); err != nil {
				return err
			}
			if output.IsJSON() {
				return output.JSON(map[string]bool{"deleted": true})
			}
			output.Success("✓ Trade deleted")
			return nil
		},
	}
}
