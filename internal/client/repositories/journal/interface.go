package journal

import (
	"context"

	"github.com/aitemdev/notnative-sync-server-sub000/internal/client/models"
)

// Repository is the append-only change journal. Every local mutation of a
// synced entity lands here as one immutable row; the only permitted update
// is flipping the synced flag after a confirmed push.
type Repository interface {
	// Append inserts one unsynced row. The write is atomic: it either lands
	// completely or not at all. Empty userID/deviceID are stored as NULL.
	Append(ctx context.Context, rec models.ChangeRecord, userID, deviceID string) error

	// Pending returns up to limit unsynced rows ordered by timestamp
	// ascending, oldest first, preserving causal order for push.
	Pending(ctx context.Context, limit int) ([]models.ChangeRecord, error)

	// MarkSynced flips synced=true for the rows matching the
	// (entity_type, entity_id, timestamp) triple of each given record, in a
	// single transaction: either the whole batch transitions or, on error,
	// none of it does.
	MarkSynced(ctx context.Context, recs []models.ChangeRecord) error

	// CountPending returns the number of unsynced rows.
	CountPending(ctx context.Context) (int64, error)

	// PruneSynced deletes rows already marked synced and returns how many
	// were removed. It never touches unsynced rows and is safe to run at
	// any time.
	PruneSynced(ctx context.Context) (int64, error)
}
