package service

import (
	"context"
	"strings"
	"time"

	"irrigation_dashboard/internal/models"
	"irrigation_dashboard/internal/repository"
)

type ActivityLogService struct {
	logRepo repository.LogRepo
	now     func() time.Time
}

func NewActivityLogService(logRepo repository.LogRepo) *ActivityLogService {
	return &ActivityLogService{logRepo: logRepo, now: time.Now}
}

// normalizeLogType trims spaces and uppercases the entry type.
func normalizeLogType(s string) string {
	return strings.TrimSpace(strings.ToUpper(s))
}

// Record appends one entry stamped with the current time.
func (s *ActivityLogService) Record(ctx context.Context, zoneID int, typ, msg string) error {
	return s.logRepo.Append(ctx, models.LogEntry{
		OccurredAt: s.now().UTC(),
		ZoneID:     zoneID,
		Type:       normalizeLogType(typ),
		Message:    msg,
	})
}

// recordAll appends notes in order. Failures are dropped: the log is best-effort display data.
func (s *ActivityLogService) recordAll(ctx context.Context, zoneID int, typ string, notes []string) {
	for _, n := range notes {
		_ = s.Record(ctx, zoneID, typ, n)
	}
}

// List returns entries oldest first, filtered by f.
func (s *ActivityLogService) List(ctx context.Context, f LogFilter) ([]models.LogEntry, error) {
	entries, err := s.logRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	typ := normalizeLogType(f.Type)
	if f.ZoneID == 0 && typ == "" {
		return entries, nil
	}
	out := make([]models.LogEntry, 0, len(entries))
	for _, e := range entries {
		if f.ZoneID != 0 && e.ZoneID != f.ZoneID {
			continue
		}
		if typ != "" && e.Type != typ {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

// Capacity is the configured log size.
func (s *ActivityLogService) Capacity() int {
	return s.logRepo.Capacity()
}
