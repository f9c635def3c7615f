package service

import (
	"context"
	"errors"
	"time"

	"irrigation_dashboard/internal/models"
)

const (
	msgBackendError = "Error talking to backend."
	msgReconnected  = "Reconnected to backend."
)

// PollerService periodically fetches readings for live zones.
type PollerService struct {
	zones    *ZoneTable
	health   *Health
	activity *ActivityLogService
	metrics  Metrics
	now      func() time.Time
}

func NewPollerService(zones *ZoneTable, health *Health, activity *ActivityLogService, opts Options) *PollerService {
	return &PollerService{
		zones:    zones,
		health:   health,
		activity: activity,
		metrics:  metricsOrNoop(opts.Metrics),
		now:      time.Now,
	}
}

// Run polls once immediately and then at every tick until ctx is canceled.
// Polls run sequentially, so responses are applied in issue order; a hung
// request delays the following ticks instead of overlapping with them.
func (s *PollerService) Run(ctx context.Context, tick time.Duration) {
	s.PollOnce(ctx)

	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.PollOnce(ctx)
		}
	}
}

// PollOnce fetches and reconciles every live zone.
func (s *PollerService) PollOnce(ctx context.Context) {
	s.zones.each(func(z *Zone, src Source) {
		if src.Kind() != models.SourceLive {
			return
		}
		s.pollZone(ctx, z, src)
	})
}

func (s *PollerService) pollZone(ctx context.Context, z *Zone, src Source) {
	reading, err := src.Fetch(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		s.metrics.ObservePoll(err)
		if s.health.PollFailed() {
			_ = s.activity.Record(ctx, 0, models.LogTypeNetwork, msgBackendError)
		}
		return
	}

	out, err := z.ApplyReading(reading, s.now())
	if errors.Is(err, models.ErrInvalidReading) {
		// skip the cycle: nothing rendered, health untouched
		s.metrics.ObservePoll(err)
		return
	}
	s.metrics.ObservePoll(nil)

	if s.health.PollSucceeded() {
		_ = s.activity.Record(ctx, 0, models.LogTypeNetwork, msgReconnected)
	}
	if out.Changed {
		s.activity.recordAll(ctx, z.ID(), models.LogTypeAuto, out.Notes)
	}
	s.metrics.ObserveZone(out.State)
}
