package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and clear the local session",
	Long: `Stops periodic sync, revokes the session on the server when reachable and
wipes the stored credentials. Notes and unsynced changes stay on disk.`,
	Args: cobra.NoArgs,
	RunE: runLogout,
}

func runLogout(cmd *cobra.Command, _ []string) error {
	if err := app.Orchestrator.Logout(cmd.Context()); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
	return nil
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
