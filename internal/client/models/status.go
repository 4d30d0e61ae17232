package models

// SyncStatus is a point-in-time view of the engine, computed on demand from
// the config store, the change journal and the orchestrator's in-memory
// state. Nothing here is persisted.
type SyncStatus struct {
	IsLoggedIn     bool   `json:"isLoggedIn"`
	IsSyncing      bool   `json:"isSyncing"`
	LastSync       *int64 `json:"lastSync,omitempty"`
	PendingChanges int64  `json:"pendingChanges"`
	Error          string `json:"error,omitempty"`
}
