package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"irrigation_dashboard/internal/models"
)

// Command names reported to metrics.
const (
	CommandStart    = "start"
	CommandStop     = "stop"
	CommandMoisture = "moisture"
	CommandReading  = "reading"
)

const (
	msgLiveStartPressed = "Start button pressed (requesting manual watering from ESP32)."
	msgLiveStopPressed  = "Stop button pressed (ESP32 will stop when its timer expires)."
)

type IrrigationService struct {
	zones    *ZoneTable
	health   *Health
	activity *ActivityLogService
	metrics  Metrics
	rawMax   float64
	now      func() time.Time
}

func NewIrrigationService(zones *ZoneTable, health *Health, activity *ActivityLogService, opts Options) *IrrigationService {
	rawMax := opts.RawMax
	if rawMax <= 0 {
		rawMax = models.DefaultRawMax
	}
	return &IrrigationService{
		zones:    zones,
		health:   health,
		activity: activity,
		metrics:  metricsOrNoop(opts.Metrics),
		rawMax:   rawMax,
		now:      time.Now,
	}
}

// Start requests manual watering. A blocked zone is rejected with ErrManualStartRejected
// and one log entry. For live zones the request is forwarded to the backend first;
// a failure there surfaces as ErrNetworkFailure and a sticky alert.
func (s *IrrigationService) Start(ctx context.Context, zoneID int) (models.ZoneState, error) {
	z, src, err := s.zones.Get(zoneID)
	if err != nil {
		return models.ZoneState{}, err
	}

	if err := z.CheckStart(); err != nil {
		_ = s.activity.Record(ctx, zoneID, models.LogTypeRejected, rejectionNote(zoneID))
		s.metrics.ObserveCommand(zoneID, CommandStart, err)
		return z.Snapshot(), err
	}

	if src.Kind() == models.SourceLive {
		_ = s.activity.Record(ctx, zoneID, models.LogTypeManual, msgLiveStartPressed)
	}
	if err := src.StartWatering(ctx); err != nil {
		_ = s.activity.Record(ctx, zoneID, models.LogTypeNetwork, AlertManualFailed)
		s.health.CommandFailed(AlertManualFailed)
		s.metrics.ObserveCommand(zoneID, CommandStart, err)
		return z.Snapshot(), err
	}
	s.health.CommandSucceeded()

	out, err := z.StartManual(s.now())
	typ := models.LogTypeManual
	if errors.Is(err, ErrManualStartRejected) {
		typ = models.LogTypeRejected
	}
	s.activity.recordAll(ctx, zoneID, typ, out.Notes)
	s.metrics.ObserveCommand(zoneID, CommandStart, err)
	s.metrics.ObserveZone(out.State)
	return out.State, err
}

// Stop turns watering off. It is always accepted.
func (s *IrrigationService) Stop(ctx context.Context, zoneID int) (models.ZoneState, error) {
	z, src, err := s.zones.Get(zoneID)
	if err != nil {
		return models.ZoneState{}, err
	}

	if src.Kind() == models.SourceLive {
		_ = s.activity.Record(ctx, zoneID, models.LogTypeManual, msgLiveStopPressed)
	}
	if err := src.StopWatering(ctx); err != nil {
		return z.Snapshot(), err
	}

	out := z.StopManual(s.now())
	s.activity.recordAll(ctx, zoneID, models.LogTypeManual, out.Notes)
	s.metrics.ObserveCommand(zoneID, CommandStop, nil)
	s.metrics.ObserveZone(out.State)
	return out.State, nil
}

// SetMoisture applies a slider move to a simulated zone.
func (s *IrrigationService) SetMoisture(ctx context.Context, zoneID, percent int) (models.ZoneState, error) {
	z, err := s.adjustable(zoneID)
	if err != nil {
		return models.ZoneState{}, err
	}
	out := z.SetMoisture(percent, s.now())
	s.activity.recordAll(ctx, zoneID, models.LogTypeAuto, out.Notes)
	s.metrics.ObserveCommand(zoneID, CommandMoisture, nil)
	s.metrics.ObserveZone(out.State)
	return out.State, nil
}

// PushReading applies a raw sensor value pushed by a device to a simulated zone.
// Non-finite values return models.ErrInvalidReading and change nothing.
func (s *IrrigationService) PushReading(ctx context.Context, zoneID int, raw float64) (models.ZoneState, error) {
	z, err := s.adjustable(zoneID)
	if err != nil {
		return models.ZoneState{}, err
	}
	out, err := z.ApplyReading(models.Reading{Raw: raw, RawMax: s.rawMax}, s.now())
	s.metrics.ObserveCommand(zoneID, CommandReading, err)
	if err != nil {
		return out.State, err
	}
	s.activity.recordAll(ctx, zoneID, models.LogTypeAuto, out.Notes)
	s.metrics.ObserveZone(out.State)
	return out.State, nil
}

// Seed sets every simulated zone to percent, logging the initial classification.
func (s *IrrigationService) Seed(ctx context.Context, percent int) {
	s.zones.each(func(z *Zone, src Source) {
		if src.Kind() != models.SourceSimulated {
			return
		}
		out := z.SetMoisture(percent, s.now())
		s.activity.recordAll(ctx, z.ID(), models.LogTypeAuto, out.Notes)
		s.metrics.ObserveZone(out.State)
	})
}

func (s *IrrigationService) adjustable(zoneID int) (*Zone, error) {
	z, src, err := s.zones.Get(zoneID)
	if err != nil {
		return nil, err
	}
	if src.Kind() != models.SourceSimulated {
		return nil, fmt.Errorf("%w: zone %d is %s", ErrNotAdjustable, zoneID, src.Kind())
	}
	return z, nil
}
