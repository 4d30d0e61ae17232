package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/aitemdev/notnative-sync-server-sub000/internal/client/api"
	"github.com/aitemdev/notnative-sync-server-sub000/internal/client/models"
	"github.com/aitemdev/notnative-sync-server-sub000/internal/client/repositories/syncconfig"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current sync state",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	status, err := app.Orchestrator.Status(ctx)
	if err != nil {
		return err
	}

	if jsonOut {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(status)
	}

	renderStatus(out, status, tokenExpiry(ctx))
	return nil
}

func renderStatus(w io.Writer, status models.SyncStatus, expiry *time.Time) {
	fmt.Fprintf(w, "Logged in:       %s\n", yesNo(status.IsLoggedIn))
	fmt.Fprintf(w, "Syncing now:     %s\n", yesNo(status.IsSyncing))

	lastSync := "never"
	if status.LastSync != nil {
		lastSync = formatMillis(*status.LastSync)
	}
	fmt.Fprintf(w, "Last sync:       %s\n", lastSync)
	fmt.Fprintf(w, "Pending changes: %d\n", status.PendingChanges)

	if expiry != nil {
		fmt.Fprintf(w, "Token expires:   %s\n", expiry.Format(time.RFC3339))
	}
	if status.Error != "" {
		fmt.Fprintf(w, "Last error:      %s\n", status.Error)
	}
}

// tokenExpiry extracts the expiry of the stored access token for display.
// Any failure, including a missing session, just hides the line.
func tokenExpiry(ctx context.Context) *time.Time {
	token, err := app.SyncConfig.Get(ctx, syncconfig.KeyJWTToken)
	if err != nil || token == "" {
		return nil
	}
	exp, err := api.TokenExpiry(token)
	if err != nil {
		return nil
	}
	return &exp
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
