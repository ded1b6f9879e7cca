package config

import (
	"strings"
	"testing"
	"time"
)

func TestValidateConfig_DefaultsAreValid(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Database.Path = "/tmp/plume.sqlite"

	if err := validateConfig(cfg); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestValidateConfig_Ranges(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "drop zone band too small",
			mutate:  func(c *Config) { c.Layout.DropZoneBand = 0.01 },
			wantErr: "layout.drop_zone_band",
		},
		{
			name:    "drop zone band too large",
			mutate:  func(c *Config) { c.Layout.DropZoneBand = 0.5 },
			wantErr: "layout.drop_zone_band",
		},
		{
			name:    "resize step zero",
			mutate:  func(c *Config) { c.Layout.ResizeStepPercent = 0 },
			wantErr: "layout.resize_step_percent",
		},
		{
			name:    "min pane percent too large",
			mutate:  func(c *Config) { c.Layout.MinPanePercent = 50 },
			wantErr: "layout.min_pane_percent",
		},
		{
			name: "autosave interval too short",
			mutate: func(c *Config) {
				c.Editor.Autosave = true
				c.Editor.AutosaveInterval = 100 * time.Millisecond
			},
			wantErr: "editor.autosave_interval",
		},
		{
			name:    "negative history entries",
			mutate:  func(c *Config) { c.History.MaxEntries = -1 },
			wantErr: "history.max_entries",
		},
		{
			name:    "unknown logging format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: "logging.format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := validateConfig(cfg)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateConfig_ReportsAllViolations(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Layout.DropZoneBand = 0.9
	cfg.Layout.MinPanePercent = 0
	cfg.History.MaxEntries = -5

	err := validateConfig(cfg)
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"layout.drop_zone_band", "layout.min_pane_percent", "history.max_entries"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err, want)
		}
	}
}

func TestDefaultConfig_LayoutTunables(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Layout.DropZoneBand != 0.20 {
		t.Errorf("drop zone band = %v, want 0.20", cfg.Layout.DropZoneBand)
	}
	if cfg.Layout.ResizeStepPercent != 5.0 {
		t.Errorf("resize step = %v, want 5.0", cfg.Layout.ResizeStepPercent)
	}
	if cfg.Layout.MinPanePercent != 10.0 {
		t.Errorf("min pane percent = %v, want 10.0", cfg.Layout.MinPanePercent)
	}
}
