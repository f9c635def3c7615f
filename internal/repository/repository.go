package repository

import (
	"context"
	"database/sql"

	"irrigation_dashboard/internal/models"
)

// LogRepo is a bounded, append-only activity log. Entries come back oldest first.
// Append and capacity eviction happen as one step.
type LogRepo interface {
	Append(ctx context.Context, e models.LogEntry) error
	List(ctx context.Context) ([]models.LogEntry, error)
	Capacity() int
}

type Repository struct {
	LogRepo LogRepo
}

// NewMemoryRepository keeps the activity log in a fixed-capacity ring.
func NewMemoryRepository(capacity int) *Repository {
	return &Repository{LogRepo: NewLogRing(capacity)}
}

// NewSQLiteRepository keeps the activity log in SQLite, trimmed to capacity on every append.
func NewSQLiteRepository(db *sql.DB, capacity int) *Repository {
	return &Repository{LogRepo: NewLogSQLite(db, capacity)}
}
