package syncconfig

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aitemdev/notnative-sync-server-sub000/internal/dbx"
)

// SQLiteRepository implements Repository on the sync_config table. It holds
// a *sql.DB rather than a dbx.DBTX because SetMany owns its own transaction.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DB.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM sync_config WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get sync config[%s]: %w", key, err)
	}
	return value, nil
}

func (r *SQLiteRepository) Set(ctx context.Context, key string, value string) error {
	return set(ctx, r.db, key, value)
}

func (r *SQLiteRepository) SetMany(ctx context.Context, values map[string]string) error {
	return dbx.WithTx(ctx, r.db, func(ctx context.Context, tx dbx.DBTX) error {
		for key, value := range values {
			if err := set(ctx, tx, key, value); err != nil {
				return err
			}
		}
		return nil
	})
}

func set(ctx context.Context, db dbx.DBTX, key string, value string) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO sync_config (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set sync config[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sync_config WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete sync config[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sync_config`)
	if err != nil {
		return fmt.Errorf("failed to clear sync config: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetAll(ctx context.Context) (map[string]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, value FROM sync_config`)
	if err != nil {
		return nil, fmt.Errorf("failed to list sync config: %w", err)
	}
	defer rows.Close()

	result := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan sync config row: %w", err)
		}
		result[key] = value
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sync config rows: %w", err)
	}

	return result, nil
}

func (r *SQLiteRepository) IsLoggedIn(ctx context.Context) (bool, error) {
	userID, err := r.Get(ctx, KeyUserID)
	if err != nil {
		return false, err
	}
	token, err := r.Get(ctx, KeyJWTToken)
	if err != nil {
		return false, err
	}
	return userID != "" && token != "", nil
}
