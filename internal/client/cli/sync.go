package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var syncLoop bool

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Synchronize with the server",
	Long: `Runs a single sync pass against the server. With --loop the command keeps
running and repeats the pass periodically, backing off while the server is
unreachable, until interrupted.`,
	Args: cobra.NoArgs,
	RunE: runSync,
}

func runSync(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	if !syncLoop {
		return app.Orchestrator.ManualSync(ctx)
	}

	// In loop mode a failed first pass is not fatal, the notifier already
	// reported it and the loop will retry.
	if err := app.Orchestrator.ManualSync(ctx); err != nil {
		log.Warn(ctx, "initial sync pass failed", "error", err)
	}

	app.Orchestrator.StartLoop(ctx)
	fmt.Fprintln(cmd.OutOrStdout(), "Periodic sync running. Press Ctrl+C to stop.")
	<-ctx.Done()
	app.Orchestrator.StopLoop()
	return nil
}

func init() {
	syncCmd.Flags().BoolVar(&syncLoop, "loop", false, "keep syncing periodically until interrupted")
	rootCmd.AddCommand(syncCmd)
}
