package service

import "irrigation_dashboard/internal/models"

// Metrics receives observations from the services.
type Metrics interface {
	ObserveZone(z models.ZoneState)
	ObservePoll(err error)
	ObserveCommand(zoneID int, command string, err error)
}

type noopMetrics struct{}

func (noopMetrics) ObserveZone(models.ZoneState)      {}
func (noopMetrics) ObservePoll(error)                 {}
func (noopMetrics) ObserveCommand(int, string, error) {}

func metricsOrNoop(m Metrics) Metrics {
	if m == nil {
		return noopMetrics{}
	}
	return m
}
