// Package metrics exports zone and poller state to Prometheus.
package metrics

import (
	"errors"
	"strconv"

	"irrigation_dashboard/internal/models"
	"irrigation_dashboard/internal/service"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "irrigation"

var _ service.Metrics = (*Metrics)(nil)

// Metrics implements service.Metrics on its own registry.
type Metrics struct {
	Registry *prometheus.Registry

	moisture *prometheus.GaugeVec
	watering *prometheus.GaugeVec
	blocked  *prometheus.GaugeVec
	polls    *prometheus.CounterVec
	commands *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		moisture: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "zone_moisture_percent",
			Help:      "Latest normalized moisture per zone",
		}, []string{"zone"}),
		watering: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "zone_watering",
			Help:      "1 when the zone is watering",
		}, []string{"zone"}),
		blocked: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "zone_blocked",
			Help:      "1 when watering is blocked because the zone is oversaturated",
		}, []string{"zone"}),
		polls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backend_polls_total",
			Help:      "Backend polls by result",
		}, []string{"result"}),
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "zone_commands_total",
			Help:      "Zone commands by zone, command and result",
		}, []string{"zone", "command", "result"}),
	}
	m.Registry.MustRegister(m.moisture, m.watering, m.blocked, m.polls, m.commands)
	return m
}

func (m *Metrics) ObserveZone(z models.ZoneState) {
	zone := strconv.Itoa(z.ZoneID)
	m.moisture.WithLabelValues(zone).Set(float64(z.MoisturePercent))
	m.watering.WithLabelValues(zone).Set(boolToFloat(z.Watering))
	m.blocked.WithLabelValues(zone).Set(boolToFloat(z.Blocked))
}

func (m *Metrics) ObservePoll(err error) {
	m.polls.WithLabelValues(result(err)).Inc()
}

func (m *Metrics) ObserveCommand(zoneID int, command string, err error) {
	m.commands.WithLabelValues(strconv.Itoa(zoneID), command, result(err)).Inc()
}

func result(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, models.ErrInvalidReading):
		return "invalid"
	case errors.Is(err, service.ErrManualStartRejected):
		return "rejected"
	default:
		return "error"
	}
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
