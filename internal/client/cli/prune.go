package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove already-synced entries from the change journal",
	Long: `Deletes journal entries that have been confirmed by the server. Pending
changes are never touched. Purely a disk space measure, sync behaves the
same with or without it.`,
	Args: cobra.NoArgs,
	RunE: runPrune,
}

func runPrune(cmd *cobra.Command, _ []string) error {
	removed, err := app.Journal.PruneSynced(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %d synced journal entries.\n", removed)
	return nil
}

func init() {
	rootCmd.AddCommand(pruneCmd)
}
