package models

import "encoding/json"

// Note is a locally stored note. Metadata lives in the database, the body
// text lives in the file at FilePath. Timestamps are unix milliseconds.
type Note struct {
	ID        string
	Title     string
	Content   string
	FilePath  string
	CreatedAt int64
	UpdatedAt int64
}

// NoteSnapshot is the full entity state carried in ChangeRecord.Data for
// note changes. The server treats it as opaque and echoes it back on pull.
type NoteSnapshot struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	CreatedAt int64  `json:"created_at,omitempty"`
	UpdatedAt int64  `json:"updated_at,omitempty"`
}

// SnapshotOf captures the sync-relevant state of a note.
func SnapshotOf(n *Note) NoteSnapshot {
	return NoteSnapshot{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

// Encode marshals the snapshot for journaling.
func (s NoteSnapshot) Encode() (json.RawMessage, error) {
	return json.Marshal(s)
}
