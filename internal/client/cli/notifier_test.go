package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/aitemdev/notnative-sync-server-sub000/internal/client/models"
	"github.com/aitemdev/notnative-sync-server-sub000/internal/client/services"
)

func plainNotifier(buf *bytes.Buffer) *colorNotifier {
	n := newColorNotifier()
	n.out = buf
	return n
}

func TestColorNotifier_StatusChanged(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	n := plainNotifier(&buf)

	n.StatusChanged(true)
	assert.Equal(t, "syncing...\n", buf.String())

	buf.Reset()
	n.StatusChanged(false)
	assert.Empty(t, buf.String())
}

func TestColorNotifier_Completed(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	n := plainNotifier(&buf)

	n.Completed(services.CompletedEvent{Timestamp: 1700000000000})

	assert.Contains(t, buf.String(), "sync completed at ")
	assert.NotContains(t, buf.String(), "conflict")
}

func TestColorNotifier_CompletedWithConflicts(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	n := plainNotifier(&buf)

	n.Completed(services.CompletedEvent{
		Timestamp: 1700000000000,
		Conflicts: []models.SyncConflict{
			{EntityType: "note", EntityID: "n-1", LocalTimestamp: 100, RemoteTimestamp: 200},
			{EntityType: "note", EntityID: "n-2", LocalTimestamp: 300, RemoteTimestamp: 200},
		},
	})

	assert.Contains(t, buf.String(), "conflict on note n-1: remote version")
	assert.Contains(t, buf.String(), "conflict on note n-2: local version")
}

func TestColorNotifier_Failed(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	n := plainNotifier(&buf)

	n.Failed(services.FailedEvent{Err: errors.New("server unavailable"), Pending: 3})

	assert.Equal(t, "sync failed: server unavailable (3 changes waiting)\n", buf.String())
}
