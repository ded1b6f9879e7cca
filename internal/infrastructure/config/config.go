// Package config provides configuration management for plume with Viper
// integration: TOML config file under the XDG config directory, environment
// overrides, live reload, and schema generation.
package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/ouvrier/plume/internal/logging"
)

// File permission constants
const (
	dirPerm  = 0755
	filePerm = 0644
)

// Config represents the complete configuration for plume.
type Config struct {
	Editor   EditorConfig   `mapstructure:"editor" toml:"editor"`
	Layout   LayoutConfig   `mapstructure:"layout" toml:"layout"`
	History  HistoryConfig  `mapstructure:"history" toml:"history"`
	Database DatabaseConfig `mapstructure:"database" toml:"database"`
	Logging  LoggingConfig  `mapstructure:"logging" toml:"logging"`
}

// EditorConfig holds editing-surface preferences.
type EditorConfig struct {
	Autosave         bool          `mapstructure:"autosave" toml:"autosave"`
	AutosaveInterval time.Duration `mapstructure:"autosave_interval" toml:"autosave_interval"`
	WordWrap         bool          `mapstructure:"word_wrap" toml:"word_wrap"`
}

// LayoutConfig holds pane grid tunables.
type LayoutConfig struct {
	// DropZoneBand is the fraction of a pane's width/height near each edge
	// that classifies a drop as a split rather than a move.
	DropZoneBand float64 `mapstructure:"drop_zone_band" toml:"drop_zone_band"`

	// ResizeStepPercent is applied to the split ratio per resize keystroke.
	ResizeStepPercent float64 `mapstructure:"resize_step_percent" toml:"resize_step_percent"`

	// MinPanePercent is the smallest share of a split either side can hold.
	MinPanePercent float64 `mapstructure:"min_pane_percent" toml:"min_pane_percent"`

	// PreviewEnabled shows the preview grid at startup.
	PreviewEnabled bool `mapstructure:"preview_enabled" toml:"preview_enabled"`
}

// HistoryConfig holds recently-opened-document retention settings.
type HistoryConfig struct {
	MaxEntries          int `mapstructure:"max_entries" toml:"max_entries"`
	RetentionPeriodDays int `mapstructure:"retention_period_days" toml:"retention_period_days"`
}

// DatabaseConfig holds history database settings.
type DatabaseConfig struct {
	Path         string        `mapstructure:"path" toml:"path"`
	QueryTimeout time.Duration `mapstructure:"query_timeout" toml:"query_timeout"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level" toml:"level"`
	Format string `mapstructure:"format" toml:"format"`
}

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	config    *Config
	viper     *viper.Viper
	mu        sync.RWMutex
	callbacks []func(*Config)
	watching  bool
}

// NewManager creates a new configuration manager.
func NewManager() (*Manager, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")

	configDir, err := ConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get config directory: %w", err)
	}
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")

	v.SetEnvPrefix("PLUME")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindings := map[string]string{
		"editor.autosave":            "EDITOR_AUTOSAVE",
		"editor.autosave_interval":   "EDITOR_AUTOSAVE_INTERVAL",
		"editor.word_wrap":           "EDITOR_WORD_WRAP",
		"layout.drop_zone_band":      "LAYOUT_DROP_ZONE_BAND",
		"layout.resize_step_percent": "LAYOUT_RESIZE_STEP_PERCENT",
		"layout.min_pane_percent":    "LAYOUT_MIN_PANE_PERCENT",
		"layout.preview_enabled":     "LAYOUT_PREVIEW_ENABLED",
		"history.max_entries":        "HISTORY_MAX_ENTRIES",
		"database.path":              "DATABASE_PATH",
		"database.query_timeout":     "DATABASE_QUERY_TIMEOUT",
		"logging.level":              "LOG_LEVEL",
		"logging.format":             "LOG_FORMAT",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, "PLUME_"+env); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable %s: %w", env, err)
		}
	}

	return &Manager{
		viper:     v,
		callbacks: make([]func(*Config), 0),
	}, nil
}

// Load loads the configuration from file and environment variables.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := EnsureDirectories(); err != nil {
		return fmt.Errorf("failed to ensure directories: %w", err)
	}

	m.setDefaults()

	if err := m.viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			if err := m.createDefaultConfig(); err != nil {
				return fmt.Errorf("failed to create default config: %w", err)
			}
		} else {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	config, err := m.unmarshal()
	if err != nil {
		return err
	}
	m.config = config
	return nil
}

func (m *Manager) unmarshal() (*Config, error) {
	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.Database.Path == "" {
		dbPath, err := DatabaseFile()
		if err != nil {
			return nil, fmt.Errorf("failed to get database path: %w", err)
		}
		config.Database.Path = dbPath
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

// Get returns the current configuration (thread-safe).
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	configCopy := *m.config
	return &configCopy
}

// Watch starts watching the config file for changes and reloads
// automatically. Invalid edits keep the previous configuration.
func (m *Manager) Watch() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.watching {
		return nil
	}

	m.viper.WatchConfig()
	m.viper.OnConfigChange(func(_ fsnotify.Event) {
		if err := m.reload(); err != nil {
			// The configured logger may not exist yet during reloads
			// triggered early in startup; fall back to the env logger.
			logger := logging.NewFromEnv()
			logger.Warn().Err(err).Msg("failed to reload config; keeping previous")
			return
		}

		m.mu.RLock()
		config := m.config
		callbacks := make([]func(*Config), len(m.callbacks))
		copy(callbacks, m.callbacks)
		m.mu.RUnlock()

		for _, callback := range callbacks {
			callback(config)
		}
	})

	m.watching = true
	return nil
}

// OnConfigChange registers a callback to be called when config changes.
func (m *Manager) OnConfigChange(callback func(*Config)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.callbacks = append(m.callbacks, callback)
}

func (m *Manager) reload() error {
	if err := m.viper.ReadInConfig(); err != nil {
		return err
	}

	config, err := m.unmarshal()
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.config = config
	m.mu.Unlock()
	return nil
}

// createDefaultConfig writes the default configuration file and its JSON
// schema next to it.
func (m *Manager) createDefaultConfig() error {
	configFile, err := ConfigFile()
	if err != nil {
		return err
	}

	if err := m.viper.SafeWriteConfigAs(configFile); err != nil {
		var exists viper.ConfigFileAlreadyExistsError
		if !errors.As(err, &exists) {
			return fmt.Errorf("failed to write config file: %w", err)
		}
	}

	if err := GenerateSchemaFile(); err != nil {
		logger := logging.NewFromEnv()
		logger.Warn().Err(err).Msg("failed to generate config schema")
	}
	return nil
}

// ConfigFileUsed returns the path of the configuration file in use.
func (m *Manager) ConfigFileUsed() string {
	return m.viper.ConfigFileUsed()
}
