package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ouvrier/plume/internal/infrastructure/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `View the configuration file location and the effective settings.`,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	RunE:  runConfigPath,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long:  `Print the effective configuration after defaults and environment overrides.`,
	RunE:  runConfigShow,
}

var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Regenerate the JSON schema for the config file",
	Long:  `Write config.schema.json next to the config file, for editor completion.`,
	RunE:  runConfigSchema,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSchemaCmd)
}

func runConfigPath(_ *cobra.Command, _ []string) error {
	configFile, err := config.ConfigFile()
	if err != nil {
		return fmt.Errorf("resolve config path: %w", err)
	}
	if _, statErr := os.Stat(configFile); os.IsNotExist(statErr) {
		fmt.Printf("%s (not created yet)\n", configFile)
		return nil
	}
	fmt.Println(configFile)
	return nil
}

func runConfigSchema(_ *cobra.Command, _ []string) error {
	if err := config.GenerateSchemaFile(); err != nil {
		return fmt.Errorf("generate schema: %w", err)
	}
	configDir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	fmt.Printf("schema written to %s/config.schema.json\n", configDir)
	return nil
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	a := GetApp()
	if a == nil {
		return fmt.Errorf("app not initialized")
	}
	cfg := a.Config

	fmt.Printf("config file: %s\n\n", a.Manager.ConfigFileUsed())
	fmt.Printf("[editor]\n")
	fmt.Printf("  autosave          = %v\n", cfg.Editor.Autosave)
	fmt.Printf("  autosave_interval = %s\n", cfg.Editor.AutosaveInterval)
	fmt.Printf("  word_wrap         = %v\n", cfg.Editor.WordWrap)
	fmt.Printf("[layout]\n")
	fmt.Printf("  drop_zone_band      = %.2f\n", cfg.Layout.DropZoneBand)
	fmt.Printf("  resize_step_percent = %.1f\n", cfg.Layout.ResizeStepPercent)
	fmt.Printf("  min_pane_percent    = %.1f\n", cfg.Layout.MinPanePercent)
	fmt.Printf("  preview_enabled     = %v\n", cfg.Layout.PreviewEnabled)
	fmt.Printf("[history]\n")
	fmt.Printf("  max_entries           = %d\n", cfg.History.MaxEntries)
	fmt.Printf("  retention_period_days = %d\n", cfg.History.RetentionPeriodDays)
	fmt.Printf("[database]\n")
	fmt.Printf("  path          = %s\n", cfg.Database.Path)
	fmt.Printf("  query_timeout = %s\n", cfg.Database.QueryTimeout)
	fmt.Printf("[logging]\n")
	fmt.Printf("  level  = %s\n", cfg.Logging.Level)
	fmt.Printf("  format = %s\n", cfg.Logging.Format)
	return nil
}
