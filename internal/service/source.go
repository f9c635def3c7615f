package service

import (
	"context"
	"fmt"

	"irrigation_dashboard/internal/backend"
	"irrigation_dashboard/internal/models"
)

// Source is the data-source strategy behind a zone: a polled remote backend
// or local slider input.
type Source interface {
	Kind() models.SourceKind
	// Fetch returns the latest reading. Push-driven sources return ErrNotPolled.
	Fetch(ctx context.Context) (models.Reading, error)
	// StartWatering asks the actuator to start. Errors wrap ErrNetworkFailure.
	StartWatering(ctx context.Context) error
	// StopWatering asks the actuator to stop.
	StopWatering(ctx context.Context) error
}

// StatusClient is the subset of backend.Client used by RemoteSource.
type StatusClient interface {
	Status(ctx context.Context) (backend.Status, error)
	StartWatering(ctx context.Context) (string, error)
}

// RemoteSource polls the ESP32 backend.
type RemoteSource struct {
	client StatusClient
	rawMax float64
}

func NewRemoteSource(client StatusClient, rawMax float64) *RemoteSource {
	if rawMax <= 0 {
		rawMax = models.DefaultRawMax
	}
	return &RemoteSource{client: client, rawMax: rawMax}
}

func (s *RemoteSource) Kind() models.SourceKind { return models.SourceLive }

func (s *RemoteSource) Fetch(ctx context.Context) (models.Reading, error) {
	st, err := s.client.Status(ctx)
	if err != nil {
		return models.Reading{}, fmt.Errorf("%w: %w", ErrNetworkFailure, err)
	}
	watering := st.Watering()
	return models.Reading{Raw: st.MoistureValue(), RawMax: s.rawMax, Watering: &watering}, nil
}

func (s *RemoteSource) StartWatering(ctx context.Context) error {
	if _, err := s.client.StartWatering(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrNetworkFailure, err)
	}
	return nil
}

// StopWatering is a no-op: the firmware stops on its own timer.
func (s *RemoteSource) StopWatering(context.Context) error { return nil }

// SimulatedSource is a push-driven zone with no network.
type SimulatedSource struct{}

func (SimulatedSource) Kind() models.SourceKind { return models.SourceSimulated }

func (SimulatedSource) Fetch(context.Context) (models.Reading, error) {
	return models.Reading{}, ErrNotPolled
}

func (SimulatedSource) StartWatering(context.Context) error { return nil }

func (SimulatedSource) StopWatering(context.Context) error { return nil }
