// Package notes provides the client-side persistence layer for notes.
//
// # Overview
//
// The package defines a Repository interface for note storage and a
// SQLite-backed implementation (SQLiteRepository) that keeps metadata in the
// notes table via a dbx.DBTX (either *sql.DB or *sql.Tx) and note bodies as
// markdown files on disk.
//
// # Data Model
//
// Each note row stores id, title, the path of its body file, and creation /
// update timestamps in unix milliseconds. The body file lives at
// <dir>/<id>.md and is written atomically with respect to a single Upsert.
//
// # Idempotence
//
// Both the sync engine (applying remote changes) and the CLI (local edits)
// write through this package, and remote changes may be delivered more than
// once. Upsert and Remove are therefore replay-safe: repeating either call
// leaves the store unchanged.
//
// Key Types
//
//   - type Repository        — interface used by higher-level services
//   - type SQLiteRepository  — SQLite + file implementation over dbx.DBTX
//
// Typical Usage
//
//	repo := notes.NewSQLiteRepository(db, notesDir)
//	_ = repo.Upsert(ctx, snap)
//	list, _ := repo.List(ctx)
//	one, _ := repo.Get(ctx, id)
//	_ = repo.Remove(ctx, id)
//
// See also: internal/client/models for the Note and NoteSnapshot structures.
package notes
