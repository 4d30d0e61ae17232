// Package models defines the data types shared by the change journal,
// the sync API client and the orchestrator.
package models

import "encoding/json"

// EntityTypeNote is the only entity type the engine currently syncs.
const EntityTypeNote = "note"

// Operation classifies a journaled mutation.
type Operation string

const (
	OperationCreate Operation = "create"
	OperationUpdate Operation = "update"
	OperationDelete Operation = "delete"
)

// Valid reports whether o is one of the known operations.
func (o Operation) Valid() bool {
	switch o {
	case OperationCreate, OperationUpdate, OperationDelete:
		return true
	}
	return false
}

// ChangeRecord is one journaled mutation of a local entity. Records are
// immutable once written; only the Synced flag is flipped after a confirmed
// push. The same shape travels over the wire on pull and push.
type ChangeRecord struct {
	EntityType string          `json:"entity_type"`
	EntityID   string          `json:"entity_id"`
	Operation  Operation       `json:"operation"`
	Data       json.RawMessage `json:"data,omitempty"`
	Timestamp  int64           `json:"timestamp"`
	Synced     bool            `json:"synced,omitempty"`
	UserID     string          `json:"user_id,omitempty"`
	DeviceID   string          `json:"device_id,omitempty"`
}

// SyncConflict reports that two writers raced on the same entity. It is
// produced by the server on push, resolved there by last-write-wins, and
// surfaced to the UI for visibility only. Conflicts are never persisted.
type SyncConflict struct {
	EntityType      string          `json:"entity_type"`
	EntityID        string          `json:"entity_id"`
	LocalTimestamp  int64           `json:"localTimestamp"`
	RemoteTimestamp int64           `json:"remoteTimestamp"`
	LocalData       json.RawMessage `json:"localData,omitempty"`
	RemoteData      json.RawMessage `json:"remoteData,omitempty"`
}
