package journal

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aitemdev/notnative-sync-server-sub000/internal/client/models"
	"github.com/aitemdev/notnative-sync-server-sub000/internal/dbx"
)

// SQLiteRepository implements Repository on the sync_log table. It holds a
// *sql.DB rather than a dbx.DBTX because MarkSynced owns its own transaction.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DB.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Append inserts one unsynced journal row.
func (r *SQLiteRepository) Append(ctx context.Context, rec models.ChangeRecord, userID, deviceID string) error {
	query := `INSERT INTO sync_log (entity_type, entity_id, operation, data, timestamp, synced, user_id, device_id)
			VALUES (?, ?, ?, ?, ?, 0, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		rec.EntityType, rec.EntityID, string(rec.Operation),
		nullIfEmpty(string(rec.Data)), rec.Timestamp,
		nullIfEmpty(userID), nullIfEmpty(deviceID))
	if err != nil {
		return fmt.Errorf("failed to append change: %w", err)
	}
	return nil
}

// Pending returns up to limit unsynced rows, oldest first.
func (r *SQLiteRepository) Pending(ctx context.Context, limit int) ([]models.ChangeRecord, error) {
	query := `SELECT entity_type, entity_id, operation, data, timestamp, user_id, device_id
			FROM sync_log WHERE synced = 0 ORDER BY timestamp ASC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to select pending changes: %w", err)
	}
	defer rows.Close()

	var result []models.ChangeRecord
	for rows.Next() {
		rec, err := scanChange(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan change row: %w", err)
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate change rows: %w", err)
	}
	return result, nil
}

// MarkSynced flips synced=1 for each record's natural key, all in one
// transaction. Rows already synced or no longer present are skipped silently;
// a storage error rolls the whole batch back.
func (r *SQLiteRepository) MarkSynced(ctx context.Context, recs []models.ChangeRecord) error {
	if len(recs) == 0 {
		return nil
	}
	err := dbx.WithTx(ctx, r.db, func(ctx context.Context, tx dbx.DBTX) error {
		for _, rec := range recs {
			_, err := tx.ExecContext(ctx,
				`UPDATE sync_log SET synced = 1 WHERE entity_type = ? AND entity_id = ? AND timestamp = ?`,
				rec.EntityType, rec.EntityID, rec.Timestamp)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to mark changes synced: %w", err)
	}
	return nil
}

// CountPending returns the number of unsynced rows.
func (r *SQLiteRepository) CountPending(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sync_log WHERE synced = 0`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count pending changes: %w", err)
	}
	return n, nil
}

// PruneSynced deletes rows already marked synced.
func (r *SQLiteRepository) PruneSynced(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sync_log WHERE synced = 1`)
	if err != nil {
		return 0, fmt.Errorf("failed to prune synced changes: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanChange(row rowScanner) (models.ChangeRecord, error) {
	var (
		rec       models.ChangeRecord
		operation string
		data      sql.NullString
		userID    sql.NullString
		deviceID  sql.NullString
	)
	err := row.Scan(&rec.EntityType, &rec.EntityID, &operation, &data, &rec.Timestamp, &userID, &deviceID)
	if err != nil {
		return models.ChangeRecord{}, err
	}
	rec.Operation = models.Operation(operation)
	if data.Valid {
		rec.Data = []byte(data.String)
	}
	rec.UserID = userID.String
	rec.DeviceID = deviceID.String
	return rec, nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
