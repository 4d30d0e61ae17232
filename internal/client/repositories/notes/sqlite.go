package notes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/aitemdev/notnative-sync-server-sub000/internal/client/models"
	"github.com/aitemdev/notnative-sync-server-sub000/internal/common"
	"github.com/aitemdev/notnative-sync-server-sub000/internal/dbx"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or
// *sql.Tx) for metadata and plain files under dir for note bodies.
type SQLiteRepository struct {
	db  dbx.DBTX
	dir string
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
// Body files are written to dir, which must already exist.
func NewSQLiteRepository(db dbx.DBTX, dir string) *SQLiteRepository {
	return &SQLiteRepository{db: db, dir: dir}
}

func (r *SQLiteRepository) bodyPath(id string) string {
	return filepath.Join(r.dir, id+".md")
}

// Upsert creates or updates a note by id. On conflict the metadata columns
// are updated and the body file is overwritten.
func (r *SQLiteRepository) Upsert(ctx context.Context, snap models.NoteSnapshot) error {
	path := r.bodyPath(snap.ID)
	query := `INSERT INTO notes (id, title, file_path, created_at, updated_at)
			values (?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET title = excluded.title,
				file_path = excluded.file_path,
				updated_at = excluded.updated_at
	`
	_, err := r.db.ExecContext(ctx, query,
		snap.ID, snap.Title, path, snap.CreatedAt, snap.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert note[%s]: %w", snap.ID, err)
	}
	if err := os.WriteFile(path, []byte(snap.Content), 0o600); err != nil {
		return fmt.Errorf("failed to write note body[%s]: %w", snap.ID, err)
	}
	return nil
}

// Remove deletes the note row and its body file. Both steps tolerate the
// note being already gone.
func (r *SQLiteRepository) Remove(ctx context.Context, id string) error {
	query := `delete from notes where id=?`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete note[%s]: %w", id, err)
	}
	if err := os.Remove(r.bodyPath(id)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove note body[%s]: %w", id, err)
	}
	return nil
}

// Get returns a single note with its body content read from disk. A missing
// body file reads as empty content rather than an error.
func (r *SQLiteRepository) Get(ctx context.Context, id string) (*models.Note, error) {
	query := `select id, title, file_path, created_at, updated_at from notes where id=?`
	row := r.db.QueryRowContext(ctx, query, id)

	n := &models.Note{}
	err := row.Scan(&n.ID, &n.Title, &n.FilePath, &n.CreatedAt, &n.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get note[%s]: %w", id, err)
	}

	body, err := os.ReadFile(n.FilePath)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read note body[%s]: %w", id, err)
	}
	n.Content = string(body)
	return n, nil
}

// List returns note metadata ordered by updated_at descending. Body content
// is not loaded.
func (r *SQLiteRepository) List(ctx context.Context) ([]models.Note, error) {
	query := `select id, title, file_path, created_at, updated_at from notes order by updated_at desc`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select notes: %w", err)
	}
	defer rows.Close()

	var result []models.Note
	for rows.Next() {
		var item models.Note
		if err := rows.Scan(&item.ID, &item.Title, &item.FilePath, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
