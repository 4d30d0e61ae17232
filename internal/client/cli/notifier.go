package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"

	"github.com/aitemdev/notnative-sync-server-sub000/internal/client/services"
)

// colorNotifier renders sync lifecycle events on the terminal. It is the
// CLI's stand-in for the event channels a GUI shell would subscribe to.
type colorNotifier struct {
	out  io.Writer
	ok   *color.Color
	warn *color.Color
	fail *color.Color
}

func newColorNotifier() *colorNotifier {
	return &colorNotifier{
		out:  os.Stdout,
		ok:   color.New(color.FgGreen),
		warn: color.New(color.FgYellow),
		fail: color.New(color.FgRed),
	}
}

func (n *colorNotifier) StatusChanged(isSyncing bool) {
	if isSyncing {
		fmt.Fprintln(n.out, "syncing...")
	}
}

func (n *colorNotifier) Completed(e services.CompletedEvent) {
	n.ok.Fprintf(n.out, "sync completed at %s\n", formatMillis(e.Timestamp))
	for _, c := range e.Conflicts {
		winner, ts := "remote", c.RemoteTimestamp
		if c.LocalTimestamp > c.RemoteTimestamp {
			winner, ts = "local", c.LocalTimestamp
		}
		n.warn.Fprintf(n.out, "  conflict on %s %s: %s version from %s won\n",
			c.EntityType, c.EntityID, winner, formatMillis(ts))
	}
}

func (n *colorNotifier) Failed(e services.FailedEvent) {
	n.fail.Fprintf(n.out, "sync failed: %v (%d changes waiting)\n", e.Err, e.Pending)
}

func formatMillis(ms int64) string {
	return time.UnixMilli(ms).Format(time.RFC3339)
}
