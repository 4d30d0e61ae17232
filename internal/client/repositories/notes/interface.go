package notes

import (
	"context"

	"github.com/aitemdev/notnative-sync-server-sub000/internal/client/models"
)

// Repository describes storage operations for notes. The sync engine drives
// it when applying remote changes, the CLI when editing locally, so every
// write must tolerate replays.
type Repository interface {
	// Upsert inserts a new note or updates an existing one by Id. Applying
	// the same snapshot twice leaves the store in the same state.
	Upsert(ctx context.Context, snap models.NoteSnapshot) error

	// Remove deletes a note and its body file. Removing an absent note is
	// a no-op, not an error.
	Remove(ctx context.Context, id string) error

	// Get returns a note with its body content loaded, or
	// common.ErrNotFound when the note does not exist.
	Get(ctx context.Context, id string) (*models.Note, error)

	// List returns note metadata (no body content), most recently updated
	// first.
	List(ctx context.Context) ([]models.Note, error)
}
