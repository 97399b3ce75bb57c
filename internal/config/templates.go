package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# Trading Journal Configuration

[store]
# Path to the SQLite journal database. Defaults to journal.db in this
# directory.
#db_path = ""
# Per-operation timeout (e.g., "5s", "500ms")
op_timeout = "5s"
# Retry policy for transient storage failures
max_attempts = 3
initial_delay = "50ms"
max_delay = "2s"
backoff_factor = 2.0

[scoring]
# Sector that legacy scalar sector sentiments migrate into. Leave empty to
# keep them under the synthetic "unspecified" sector.
migration_sector = ""

[logging]
# Log level: trace, debug, info, warn, error
level = "info"
# Also log to the console
console = false
# Log rotation
max_size_mb = 10
max_backups = 5
max_age_days = 30
compress = true

[ui]
# Enable colored output
color_enabled = true
# Date format for table output
date_format = "02-Jan-2006"
`

func createTemplateConfig(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, "config.toml")
	if err := os.WriteFile(path, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing config template: %w", err)
	}

	return nil
}
