package config

import "time"

// DefaultConfig returns the configuration used when no file or overrides
// are present.
func DefaultConfig() *Config {
	return &Config{
		Editor: EditorConfig{
			Autosave:         false,
			AutosaveInterval: 30 * time.Second,
			WordWrap:         true,
		},
		Layout: LayoutConfig{
			DropZoneBand:      0.20,
			ResizeStepPercent: 5.0,
			MinPanePercent:    10.0,
			PreviewEnabled:    false,
		},
		History: HistoryConfig{
			MaxEntries:          500,
			RetentionPeriodDays: 180,
		},
		Database: DatabaseConfig{
			Path:         "", // resolved to the XDG data dir at load time
			QueryTimeout: 5 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// setDefaults mirrors DefaultConfig into Viper so file and environment
// overrides layer on top of it.
func (m *Manager) setDefaults() {
	defaults := DefaultConfig()

	m.viper.SetDefault("editor.autosave", defaults.Editor.Autosave)
	m.viper.SetDefault("editor.autosave_interval", defaults.Editor.AutosaveInterval)
	m.viper.SetDefault("editor.word_wrap", defaults.Editor.WordWrap)

	m.viper.SetDefault("layout.drop_zone_band", defaults.Layout.DropZoneBand)
	m.viper.SetDefault("layout.resize_step_percent", defaults.Layout.ResizeStepPercent)
	m.viper.SetDefault("layout.min_pane_percent", defaults.Layout.MinPanePercent)
	m.viper.SetDefault("layout.preview_enabled", defaults.Layout.PreviewEnabled)

	m.viper.SetDefault("history.max_entries", defaults.History.MaxEntries)
	m.viper.SetDefault("history.retention_period_days", defaults.History.RetentionPeriodDays)

	m.viper.SetDefault("database.query_timeout", defaults.Database.QueryTimeout)

	m.viper.SetDefault("logging.level", defaults.Logging.Level)
	m.viper.SetDefault("logging.format", defaults.Logging.Format)
}
