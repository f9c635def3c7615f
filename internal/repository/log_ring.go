package repository

import (
	"context"
	"sync"
	"time"

	"irrigation_dashboard/internal/models"

	"github.com/google/uuid"
)

// LogRing is an in-memory fixed-capacity deque. When full, Append evicts the oldest entry.
type LogRing struct {
	mu      sync.Mutex
	entries []models.LogEntry
	head    int // index of the oldest entry
	size    int
}

func NewLogRing(capacity int) *LogRing {
	if capacity < 1 {
		capacity = 1
	}
	return &LogRing{entries: make([]models.LogEntry, capacity)}
}

func (r *LogRing) Capacity() int { return len(r.entries) }

// Append stores e, filling in EntryID and OccurredAt when empty.
func (r *LogRing) Append(_ context.Context, e models.LogEntry) error {
	e = withDefaults(e)

	r.mu.Lock()
	defer r.mu.Unlock()

	capacity := len(r.entries)
	if r.size < capacity {
		r.entries[(r.head+r.size)%capacity] = e
		r.size++
		return nil
	}
	r.entries[r.head] = e
	r.head = (r.head + 1) % capacity
	return nil
}

// List returns a copy of the entries, oldest first.
func (r *LogRing) List(_ context.Context) ([]models.LogEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.LogEntry, 0, r.size)
	for i := 0; i < r.size; i++ {
		out = append(out, r.entries[(r.head+i)%len(r.entries)])
	}
	return out, nil
}

func withDefaults(e models.LogEntry) models.LogEntry {
	if e.EntryID == "" {
		e.EntryID = uuid.NewString()
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	} else {
		e.OccurredAt = e.OccurredAt.UTC()
	}
	return e
}
