// Package journal provides the durable append-only change journal that
// records every local note mutation awaiting transmission to the server.
//
// # Overview
//
// The package defines a Repository interface over the sync_log table and a
// SQLite-backed implementation (SQLiteRepository). Producers append one row
// per create/update/delete with a point-in-time data snapshot and a
// wall-clock millisecond timestamp; the orchestrator later reads unsynced
// rows in timestamp order, pushes them, and marks the pushed batch synced.
//
// # Data Model
//
// Each row carries entity_type, entity_id (the stable identifier, not the
// local autoincrement id), operation, an optional JSON snapshot (absent for
// deletes), the timestamp, the synced flag, and optional user/device tags.
// Rows are immutable except for the synced flag. An index on
// (synced, timestamp) backs the "unsynced, ordered" query.
//
// # Synced Marking
//
// The server acknowledges pushes by change payload, not by journal row id,
// so MarkSynced addresses rows by the (entity_type, entity_id, timestamp)
// triple. The whole batch is flipped inside one transaction via dbx.WithTx:
// a failure rolls back every row, never part of the batch.
//
// Key Types
//
//   - type Repository        — interface used by the orchestrator
//   - type SQLiteRepository  — SQLite implementation
//
// Typical Usage
//
//	repo := journal.NewSQLiteRepository(db)
//	_ = repo.Append(ctx, rec, userID, deviceID)
//	pend, _ := repo.Pending(ctx, 1000)
//	_ = repo.MarkSynced(ctx, pend)
//	n, _ := repo.PruneSynced(ctx)
package journal
