// Package syncconfig provides the durable key/value store that holds device
// identity and session credentials for the sync engine.
//
// # Overview
//
// The package defines a Repository interface over the sync_config table and
// a SQLite-backed implementation (SQLiteRepository). Stored keys cover the
// whole session lifecycle: user_id, device_id, jwt_token, refresh_token,
// server_url, user_email and the last_sync_timestamp cursor.
//
// # Semantics
//
// Every write is immediately durable (plain upserts, no write-behind cache),
// so a crash between Set calls never loses an already-written key. SetMany
// groups related writes, such as the credential set persisted on login, into
// one transaction. Clear removes everything at once on logout.
//
// The store performs no validation of values; interpreting them is the
// orchestrator's job. Storage errors are wrapped with the failing key and
// propagate to the caller unchanged in kind.
//
// Key Types
//
//   - type Repository        — interface used by the orchestrator
//   - type SQLiteRepository  — SQLite implementation
//
// Typical Usage
//
//	repo := syncconfig.NewSQLiteRepository(db)
//	_ = repo.Set(ctx, syncconfig.KeyServerURL, "https://sync.example.com")
//	url, _ := repo.Get(ctx, syncconfig.KeyServerURL)
//	ok, _ := repo.IsLoggedIn(ctx)
package syncconfig
