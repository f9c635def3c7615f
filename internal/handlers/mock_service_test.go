package handlers

import (
	"context"

	"irrigation_dashboard/internal/models"
	"irrigation_dashboard/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockIrrigation struct {
	zone models.ZoneState
	err  error

	startCalls   int
	stopCalls    int
	lastZoneID   int
	lastPercent  int
	lastRawValue float64
	seeded       []int
}

func (m *mockIrrigation) Start(_ context.Context, zoneID int) (models.ZoneState, error) {
	m.startCalls++
	m.lastZoneID = zoneID
	return m.zone, m.err
}

func (m *mockIrrigation) Stop(_ context.Context, zoneID int) (models.ZoneState, error) {
	m.stopCalls++
	m.lastZoneID = zoneID
	return m.zone, m.err
}

func (m *mockIrrigation) SetMoisture(_ context.Context, zoneID, percent int) (models.ZoneState, error) {
	m.lastZoneID = zoneID
	m.lastPercent = percent
	return m.zone, m.err
}

func (m *mockIrrigation) PushReading(_ context.Context, zoneID int, raw float64) (models.ZoneState, error) {
	m.lastZoneID = zoneID
	m.lastRawValue = raw
	return m.zone, m.err
}

func (m *mockIrrigation) Seed(_ context.Context, percent int) {
	m.seeded = append(m.seeded, percent)
}

type mockMonitoring struct {
	dashboard models.Dashboard
	zones     []models.ZoneView
	err       error
}

func (m *mockMonitoring) Dashboard(context.Context) (models.Dashboard, error) {
	return m.dashboard, m.err
}

func (m *mockMonitoring) Zones(context.Context) ([]models.ZoneView, error) {
	return m.zones, m.err
}

func (m *mockMonitoring) Zone(_ context.Context, id int) (models.ZoneView, error) {
	if m.err != nil {
		return models.ZoneView{}, m.err
	}
	for _, z := range m.zones {
		if z.ZoneID == id {
			return z, nil
		}
	}
	return models.ZoneView{}, service.ErrZoneNotFound
}

type mockActivityLog struct {
	resp       []models.LogEntry
	err        error
	lastFilter service.LogFilter
}

func (m *mockActivityLog) Record(context.Context, int, string, string) error { return m.err }

func (m *mockActivityLog) List(_ context.Context, f service.LogFilter) ([]models.LogEntry, error) {
	m.lastFilter = f
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}
