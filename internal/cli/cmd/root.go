// Package cmd provides Cobra CLI commands for plume.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ouvrier/plume/internal/cli"
	"github.com/ouvrier/plume/internal/domain/build"
	"github.com/ouvrier/plume/internal/infrastructure/filesystem"
	"github.com/ouvrier/plume/internal/tui"
	"github.com/ouvrier/plume/internal/ui/coordinator"
)

var (
	app       *cli.App
	buildInfo build.Info
	rootCmd   = &cobra.Command{
		Use:   "plume [files...]",
		Short: "A keyboard-driven markdown editor for the terminal",
		Long: `Plume - a markdown editor that works like your favorite terminal multiplexer.

Documents open as tabs inside panes; panes split, resize, and rearrange like
a tiling window manager. Tabs can be dragged between panes with the mouse,
including into the side-by-side preview grid.

Run 'plume' with file paths to open them, or explore the subcommands for
recent-document history and configuration.`,
		Args: cobra.ArbitraryArgs,
		RunE: runEdit,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			switch cmd.Name() {
			case "help", "completion":
				return nil
			}

			var err error
			app, err = cli.NewApp()
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}
			app.BuildInfo = buildInfo
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if app != nil {
				_ = app.Close()
			}
		},
	}
)

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// GetApp returns the initialized app (for use by subcommands).
func GetApp() *cli.App {
	return app
}

// SetBuildInfo sets the build information (called from main.go before Execute).
func SetBuildInfo(info build.Info) {
	buildInfo = info
}

// runEdit launches the full-screen editor with the given paths open.
func runEdit(_ *cobra.Command, args []string) error {
	a := GetApp()
	if a == nil {
		return fmt.Errorf("app not initialized")
	}

	shell := coordinator.NewShell(a.Ctx(), coordinator.ShellOptions{
		Store:        filesystem.NewStore(),
		ViewFactory:  tui.NewFactory(),
		IDGenerator:  uuid.NewString,
		DropZoneBand: a.Config.Layout.DropZoneBand,
		Recent:       a.RecentUC,
	})

	paths := make([]string, 0, len(args))
	for _, arg := range args {
		abs, err := absPath(arg)
		if err != nil {
			return fmt.Errorf("resolve %q: %w", arg, err)
		}
		paths = append(paths, abs)
	}

	m := tui.NewModel(a.Ctx(), shell, *a.Config, paths)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run editor: %w", err)
	}
	return nil
}

// absPath normalizes a CLI argument to an absolute path so the same file
// opened from different working directories shares one document table entry.
func absPath(arg string) (string, error) {
	return filepath.Abs(arg)
}
