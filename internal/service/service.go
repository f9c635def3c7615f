package service

import (
	"context"
	"time"

	"irrigation_dashboard/internal/models"
	"irrigation_dashboard/internal/repository"
)

// Irrigation exposes the zone commands: manual start/stop and moisture input.
type Irrigation interface {
	Start(ctx context.Context, zoneID int) (models.ZoneState, error)
	Stop(ctx context.Context, zoneID int) (models.ZoneState, error)
	SetMoisture(ctx context.Context, zoneID, percent int) (models.ZoneState, error)
	PushReading(ctx context.Context, zoneID int, raw float64) (models.ZoneState, error)
	Seed(ctx context.Context, percent int)
}

// Monitoring exposes read-only snapshots for the dashboard.
type Monitoring interface {
	Dashboard(ctx context.Context) (models.Dashboard, error)
	Zones(ctx context.Context) ([]models.ZoneView, error)
	Zone(ctx context.Context, id int) (models.ZoneView, error)
}

// ActivityLog exposes the bounded activity log.
type ActivityLog interface {
	Record(ctx context.Context, zoneID int, typ, msg string) error
	List(ctx context.Context, f LogFilter) ([]models.LogEntry, error)
}

// Poller runs the backend polling loop. Stop via context cancellation.
type Poller interface {
	Run(ctx context.Context, tick time.Duration)
}

// Service aggregates all sub-services.
type Service struct {
	Irrigation
	Monitoring
	ActivityLog
	Poller
}

// NewService wires the zone table and the log repository into concrete services.
// All services share one Health tracker.
func NewService(repos *repository.Repository, zones *ZoneTable, opts Options) *Service {
	health := NewHealth()
	activity := NewActivityLogService(repos.LogRepo)
	return &Service{
		Irrigation:  NewIrrigationService(zones, health, activity, opts),
		Monitoring:  NewMonitoringService(zones, health, activity),
		ActivityLog: activity,
		Poller:      NewPollerService(zones, health, activity, opts),
	}
}
