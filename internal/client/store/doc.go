// Package store opens the client's local SQLite database and keeps its
// schema current.
//
// # Overview
//
// Open wires together the pure-Go sqlite driver (modernc.org/sqlite), parent
// directory creation, a connectivity check, and embedded goose migrations
// (internal/client/migrations). Callers receive a ready *sql.DB and hand it
// to the repository constructors.
//
// Typical Usage
//
//	db, err := store.Open(ctx, cfg.DatabasePath())
//	if err != nil { ... }
//	defer db.Close()
//
// See also: internal/client/migrations for the schema itself.
package store
