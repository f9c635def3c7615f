package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"irrigation_dashboard/internal/models"
)

const (
	insertLogSQL = `
		INSERT INTO activity_log (id, occurred_at, zone_id, type, message)
		VALUES (?, ?, ?, ?, ?)
	`

	// Keeps the newest ? rows. The subquery yields NULL while under capacity, so nothing is deleted.
	trimLogSQL = `
		DELETE FROM activity_log
		WHERE seq <= (SELECT seq FROM activity_log ORDER BY seq DESC LIMIT 1 OFFSET ?)
	`

	selectLogSQL = `
		SELECT id, occurred_at, zone_id, type, message
		FROM activity_log ORDER BY seq ASC
	`
)

// LogSQLite stores the activity log in SQLite, bounded to capacity rows.
type LogSQLite struct {
	db       *sql.DB
	capacity int
}

func NewLogSQLite(db *sql.DB, capacity int) *LogSQLite {
	if capacity < 1 {
		capacity = 1
	}
	return &LogSQLite{db: db, capacity: capacity}
}

func (r *LogSQLite) Capacity() int { return r.capacity }

// Append inserts e and trims the oldest rows in the same transaction.
func (r *LogSQLite) Append(ctx context.Context, e models.LogEntry) error {
	e = withDefaults(e)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin append: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, insertLogSQL,
		e.EntryID,
		e.OccurredAt,
		e.ZoneID,
		strings.ToUpper(strings.TrimSpace(e.Type)),
		e.Message,
	); err != nil {
		return fmt.Errorf("insert log entry: %w", err)
	}
	if _, err := tx.ExecContext(ctx, trimLogSQL, r.capacity); err != nil {
		return fmt.Errorf("trim log: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit append: %w", err)
	}
	return nil
}

// List returns all stored entries, oldest first.
func (r *LogSQLite) List(ctx context.Context) ([]models.LogEntry, error) {
	rows, err := r.db.QueryContext(ctx, selectLogSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.LogEntry, 0, r.capacity)
	for rows.Next() {
		var e models.LogEntry
		if err := rows.Scan(&e.EntryID, &e.OccurredAt, &e.ZoneID, &e.Type, &e.Message); err != nil {
			return nil, err
		}
		e.OccurredAt = e.OccurredAt.UTC()
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
