package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var purgeAll bool

var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Clean up recent-document history",
	Long: `Apply the retention policy to the recent-document history: entries older
than the configured retention period are removed, and the list is trimmed to
the configured maximum.

Use --all to delete the entire history instead.`,
	RunE: runPurge,
}

func init() {
	rootCmd.AddCommand(purgeCmd)
	purgeCmd.Flags().BoolVar(&purgeAll, "all", false, "delete all history entries")
}

func runPurge(_ *cobra.Command, _ []string) error {
	a := GetApp()
	if a == nil {
		return fmt.Errorf("app not initialized")
	}

	if purgeAll {
		if err := a.History.Prune(a.Ctx(), 0); err != nil {
			return fmt.Errorf("delete history: %w", err)
		}
		fmt.Println("recent-document history deleted")
		return nil
	}

	if err := a.RecentUC.Cleanup(a.Ctx()); err != nil {
		return fmt.Errorf("clean up history: %w", err)
	}
	fmt.Println("recent-document history cleaned up")
	return nil
}
