package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	recentJSON bool
	recentMax  int
)

const defaultRecentMax = 20

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List recently opened documents",
	Long:  `Show the most recently opened documents, newest first.`,
	RunE:  runRecent,
}

func init() {
	rootCmd.AddCommand(recentCmd)

	recentCmd.Flags().BoolVar(&recentJSON, "json", false, "output as JSON")
	recentCmd.Flags().IntVar(&recentMax, "max", defaultRecentMax, "maximum entries to show")
}

var (
	recentPathStyle = lipgloss.NewStyle().Bold(true)
	recentMetaStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

func runRecent(_ *cobra.Command, _ []string) error {
	a := GetApp()
	if a == nil {
		return fmt.Errorf("app not initialized")
	}

	entries, err := a.RecentUC.GetRecent(a.Ctx(), recentMax)
	if err != nil {
		return fmt.Errorf("load recent documents: %w", err)
	}

	if recentJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Println("no recent documents")
		return nil
	}

	for _, entry := range entries {
		name := entry.Title
		if name == "" {
			name = filepath.Base(entry.Path)
		}
		fmt.Printf("%s  %s\n",
			recentPathStyle.Render(name),
			recentMetaStyle.Render(fmt.Sprintf("%s  opened %dx, last %s",
				entry.Path, entry.OpenCount, entry.LastOpened.Format("2006-01-02 15:04"))))
	}
	return nil
}
