package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"trading-journal/internal/config"
	"trading-journal/internal/rescore"
	"trading-journal/internal/service"
	"trading-journal/internal/store"
	"trading-journal/internal/trends"
	"trading-journal/pkg/utils"
)

// Version information
const (
	Version   = "0.1.0"
	BuildDate = "2025-08-01"
)

// App holds the application dependencies.
type App struct {
	Config  *config.Config
	Logger  zerolog.Logger
	Store   store.Store
	Trends  *trends.Service
	Service *service.Service
	Rescore *rescore.Runner
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	opts := store.Options{
		OpTimeout: cfg.Store.OpTimeout,
		Retry: utils.RetryConfig{
			MaxAttempts:   cfg.Store.MaxAttempts,
			InitialDelay:  cfg.Store.InitialDelay,
			MaxDelay:      cfg.Store.MaxDelay,
			BackoffFactor: cfg.Store.BackoffFactor,
		},
		MigrationSector: cfg.MigrationSector(),
	}
	journalStore, err := store.NewSQLiteStoreWithOptions(cfg.Store.DBPath, logger, opts)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to initialize store, journal commands will be unavailable")
	} else {
		app.Store = journalStore
		app.Trends = trends.NewService(journalStore)
		app.Service = service.New(journalStore, app.Trends, logger, cfg.MigrationSector())
		app.Rescore = rescore.NewRunner(journalStore, logger, 0)
		logger.Debug().Str("db", cfg.Store.DBPath).Msg("journal store initialized")
	}

	rootCmd := &cobra.Command{
		Use:   "journal",
		Short: "Trading journal with multi-factor scoring",
		Long: `Trading journal records trades, daily risk assessments, and stock
ratings, and derives composite scores from the raw factors you enter.

Use 'journal help <command>' for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/trading-journal)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(app))
	addTradeCommands(rootCmd, app)
	addRiskCommands(rootCmd, app)
	addRatingCommands(rootCmd, app)
	rootCmd.AddCommand(newSummaryCmd(app))
	rootCmd.AddCommand(newRescoreCmd(app))

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{
					"version":    Version,
					"build_date": BuildDate,
				})
			} else {
				output.Printf("Trading Journal v%s\n", Version)
				output.Dim("Build date: %s", BuildDate)
			}
		},
	}
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  "View and manage application configuration.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(app.Config)
			}
			showConfig(output, app.Config)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration directory path",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"path": config.DefaultConfigDir()})
			} else {
				output.Println(config.DefaultConfigDir())
			}
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.Config.Validate(); err != nil {
				output.Error("Configuration validation failed: %v", err)
				return err
			}
			if output.IsJSON() {
				output.JSON(map[string]bool{"valid": true})
			} else {
				output.Success("✓ Configuration is valid")
			}
			return nil
		},
	})

	return cmd
}

func showConfig(output *Output, cfg *config.Config) {
	output.Bold("Store")
	output.Printf("  DB Path:        %s\n", cfg.Store.DBPath)
	output.Printf("  Op Timeout:     %s\n", cfg.Store.OpTimeout)
	output.Printf("  Max Attempts:   %d\n", cfg.Store.MaxAttempts)
	output.Println()

	output.Bold("Scoring")
	output.Printf("  Migration Sector: %s\n", cfg.MigrationSector())
	output.Println()

	output.Bold("Logging")
	output.Printf("  Level:          %s\n", cfg.Logging.Level)
	output.Printf("  Console:        %v\n", cfg.Logging.Console)
}
