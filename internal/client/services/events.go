package services

import (
	"github.com/aitemdev/notnative-sync-server-sub000/internal/client/models"
)

// CompletedEvent describes a successfully finished sync pass.
type CompletedEvent struct {
	// Conflicts the server resolved against this device's changes during
	// the pass. Informational: the server's winners are already final.
	Conflicts []models.SyncConflict

	// Timestamp is the pass start time in unix milliseconds, which is also
	// the new sync cursor.
	Timestamp int64
}

// FailedEvent describes a sync pass that stopped before completing.
type FailedEvent struct {
	Err error

	// Pending is the number of local changes still waiting to be pushed.
	Pending int64
}

// Notifier receives engine lifecycle events, typically to drive a UI.
// Implementations must not block: events are emitted from the sync pass
// itself.
type Notifier interface {
	// StatusChanged fires when a pass starts (true) and ends (false).
	StatusChanged(isSyncing bool)

	// Completed fires after a successful pass.
	Completed(e CompletedEvent)

	// Failed fires after a failed pass.
	Failed(e FailedEvent)
}

// NopNotifier discards all events. It is the default when no notifier is
// configured.
type NopNotifier struct{}

func (NopNotifier) StatusChanged(bool) {}

func (NopNotifier) Completed(CompletedEvent) {}

func (NopNotifier) Failed(FailedEvent) {}
