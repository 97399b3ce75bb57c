// Package config provides configuration management for the trading journal.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"trading-journal/internal/models"
)

// Config holds all application configuration.
type Config struct {
	Store   StoreConfig   `mapstructure:"store"`
	Scoring ScoringConfig `mapstructure:"scoring"`
	Logging LoggingConfig `mapstructure:"logging"`
	UI      UIConfig      `mapstructure:"ui"`
}

// StoreConfig holds persistence configuration.
type StoreConfig struct {
	DBPath        string        `mapstructure:"db_path"`
	OpTimeout     time.Duration `mapstructure:"op_timeout"`
	MaxAttempts   int           `mapstructure:"max_attempts"`
	InitialDelay  time.Duration `mapstructure:"initial_delay"`
	MaxDelay      time.Duration `mapstructure:"max_delay"`
	BackoffFactor float64       `mapstructure:"backoff_factor"`
}

// ScoringConfig holds scoring-engine configuration.
type ScoringConfig struct {
	// MigrationSector is where legacy scalar sector sentiments land when
	// ratings are canonicalized. Empty selects the synthetic
	// "unspecified" sector.
	MigrationSector string `mapstructure:"migration_sector"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Console    bool   `mapstructure:"console"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// UIConfig holds output-related configuration.
type UIConfig struct {
	ColorEnabled bool   `mapstructure:"color_enabled"`
	DateFormat   string `mapstructure:"date_format"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/trading-journal"
	}
	return filepath.Join(home, ".config", "trading-journal")
}

// Load loads configuration from the specified directory. If configDir is
// empty, the default directory is used. A missing config file is not an
// error: a commented template is written and the defaults apply.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)
	setDefaults(v, configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if err := createTemplateConfig(configDir); err != nil {
				return nil, err
			}
		} else {
			return nil, fmt.Errorf("reading config.toml: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config.toml: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, configDir string) {
	v.SetDefault("store.db_path", filepath.Join(configDir, "journal.db"))
	v.SetDefault("store.op_timeout", "5s")
	v.SetDefault("store.max_attempts", 3)
	v.SetDefault("store.initial_delay", "50ms")
	v.SetDefault("store.max_delay", "2s")
	v.SetDefault("store.backoff_factor", 2.0)

	v.SetDefault("scoring.migration_sector", "")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.console", false)
	v.SetDefault("logging.max_size_mb", 10)
	v.SetDefault("logging.max_backups", 5)
	v.SetDefault("logging.max_age_days", 30)
	v.SetDefault("logging.compress", true)

	v.SetDefault("ui.color_enabled", true)
	v.SetDefault("ui.date_format", "02-Jan-2006")
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("JOURNAL_DB_PATH"); v != "" {
		cfg.Store.DBPath = v
	}
	if v := os.Getenv("JOURNAL_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("JOURNAL_MIGRATION_SECTOR"); v != "" {
		cfg.Scoring.MigrationSector = v
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Store.DBPath == "" {
		return fmt.Errorf("store.db_path must not be empty")
	}
	if c.Store.OpTimeout <= 0 {
		return fmt.Errorf("store.op_timeout must be positive")
	}
	if c.Store.MaxAttempts < 1 {
		return fmt.Errorf("store.max_attempts must be at least 1")
	}
	if c.Store.BackoffFactor < 1 {
		return fmt.Errorf("store.backoff_factor must be at least 1")
	}

	if s := c.Scoring.MigrationSector; s != "" && !models.Sector(s).Valid() {
		return fmt.Errorf("invalid scoring.migration_sector: %s", s)
	}

	switch c.Logging.Level {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging.level: %s (must be trace, debug, info, warn, or error)", c.Logging.Level)
	}

	return nil
}

// MigrationSector resolves the configured migration sector, defaulting to
// the synthetic unspecified sector.
func (c *Config) MigrationSector() models.Sector {
	if c.Scoring.MigrationSector == "" {
		return models.SectorUnspecified
	}
	return models.Sector(c.Scoring.MigrationSector)
}
