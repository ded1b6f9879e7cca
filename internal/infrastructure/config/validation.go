package config

import (
	"fmt"
	"strings"
	"time"
)

// validateConfig checks configuration values against their allowed ranges.
// Every violation is reported, not just the first.
func validateConfig(config *Config) error {
	var validationErrors []string

	if config.Layout.DropZoneBand < 0.05 || config.Layout.DropZoneBand > 0.45 {
		validationErrors = append(validationErrors,
			fmt.Sprintf("layout.drop_zone_band must be between 0.05 and 0.45 (got: %v)", config.Layout.DropZoneBand))
	}
	if config.Layout.ResizeStepPercent <= 0 || config.Layout.ResizeStepPercent > 25 {
		validationErrors = append(validationErrors,
			fmt.Sprintf("layout.resize_step_percent must be between 0 (exclusive) and 25 (got: %v)", config.Layout.ResizeStepPercent))
	}
	if config.Layout.MinPanePercent < 5 || config.Layout.MinPanePercent > 45 {
		validationErrors = append(validationErrors,
			fmt.Sprintf("layout.min_pane_percent must be between 5 and 45 (got: %v)", config.Layout.MinPanePercent))
	}

	if config.Editor.Autosave && config.Editor.AutosaveInterval < time.Second {
		validationErrors = append(validationErrors, "editor.autosave_interval must be at least 1s when autosave is enabled")
	}

	if config.History.MaxEntries < 0 {
		validationErrors = append(validationErrors, "history.max_entries must be non-negative")
	}
	if config.History.RetentionPeriodDays < 0 {
		validationErrors = append(validationErrors, "history.retention_period_days must be non-negative")
	}

	if config.Database.QueryTimeout < 0 {
		validationErrors = append(validationErrors, "database.query_timeout must be non-negative")
	}

	switch config.Logging.Format {
	case "", "console", "json":
	default:
		validationErrors = append(validationErrors,
			fmt.Sprintf("logging.format must be console or json (got: %s)", config.Logging.Format))
	}

	if len(validationErrors) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}
	return nil
}
