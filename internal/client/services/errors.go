package services

import "errors"

// Errors returned by the orchestrator. Callers branch on these to decide
// whether to prompt for login, wait, or surface the failure.
var (
	// ErrNotLoggedIn means no session exists; sync operations are refused
	// until Login or Register succeeds.
	ErrNotLoggedIn = errors.New("not logged in")

	// ErrSyncInProgress means another sync pass is already running. The
	// rejected call is dropped, not queued.
	ErrSyncInProgress = errors.New("sync already in progress")

	// ErrAuthExpired means the access token was rejected and the refresh
	// token could not mint a new one. The user must log in again.
	ErrAuthExpired = errors.New("session expired, please log in again")

	// ErrNotConfigured means required sync settings (server URL, tokens)
	// are missing from the config store.
	ErrNotConfigured = errors.New("sync not configured")
)
