package service

import (
	"context"
	"time"

	"irrigation_dashboard/internal/models"
)

type MonitoringService struct {
	zones    *ZoneTable
	health   *Health
	activity *ActivityLogService
	now      func() time.Time
}

func NewMonitoringService(zones *ZoneTable, health *Health, activity *ActivityLogService) *MonitoringService {
	return &MonitoringService{zones: zones, health: health, activity: activity, now: time.Now}
}

// Zones returns a rendered view of every zone, ordered by id.
func (s *MonitoringService) Zones(_ context.Context) ([]models.ZoneView, error) {
	zones := s.zones.Zones()
	out := make([]models.ZoneView, 0, len(zones))
	for _, z := range zones {
		out = append(out, models.NewZoneView(z.Snapshot()))
	}
	return out, nil
}

// Zone returns one rendered zone, or ErrZoneNotFound.
func (s *MonitoringService) Zone(_ context.Context, id int) (models.ZoneView, error) {
	z, _, err := s.zones.Get(id)
	if err != nil {
		return models.ZoneView{}, err
	}
	return models.NewZoneView(z.Snapshot()), nil
}

// Dashboard returns the alert banner, all zones and the activity log.
func (s *MonitoringService) Dashboard(ctx context.Context) (models.Dashboard, error) {
	zones, err := s.Zones(ctx)
	if err != nil {
		return models.Dashboard{}, err
	}
	entries, err := s.activity.List(ctx, LogFilter{})
	if err != nil {
		return models.Dashboard{}, err
	}
	return models.Dashboard{
		Alert:     s.health.Alert(),
		Zones:     zones,
		Logs:      models.NewLogLines(entries),
		UpdatedAt: s.now().UTC(),
	}, nil
}
