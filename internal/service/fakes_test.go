package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"irrigation_dashboard/internal/backend"
	"irrigation_dashboard/internal/models"
	"irrigation_dashboard/internal/repository"

	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 6, 1, 9, 30, 0, 0, time.UTC)

func fixedNow() time.Time { return testNow }

var errOffline = errors.New("dial tcp 192.168.1.50:80: connect: connection refused")

// fakeClient is a scripted backend.Client.
type fakeClient struct {
	mu          sync.Mutex
	status      backend.Status
	statusErr   error
	startErr    error
	statusCalls int
	startCalls  int
}

func (c *fakeClient) Status(context.Context) (backend.Status, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.statusCalls++
	return c.status, c.statusErr
}

func (c *fakeClient) StartWatering(context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.startCalls++
	if c.startErr != nil {
		return "", c.startErr
	}
	return "ok", nil
}

func (c *fakeClient) set(moisture any, watering int, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status = backend.Status{Moisture: moisture, IsWatering: float64(watering)}
	c.statusErr = err
}

func (c *fakeClient) calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.statusCalls
}

type commandCall struct {
	zoneID  int
	command string
	err     error
}

type recordingMetrics struct {
	mu       sync.Mutex
	zones    []models.ZoneState
	polls    []error
	commands []commandCall
}

func (m *recordingMetrics) ObserveZone(z models.ZoneState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.zones = append(m.zones, z)
}

func (m *recordingMetrics) ObservePoll(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.polls = append(m.polls, err)
}

func (m *recordingMetrics) ObserveCommand(zoneID int, command string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commands = append(m.commands, commandCall{zoneID, command, err})
}

// fixture wires the concrete services around one shared zone table.
type fixture struct {
	zones      *ZoneTable
	health     *Health
	activity   *ActivityLogService
	irrigation *IrrigationService
	poller     *PollerService
	monitoring *MonitoringService
	metrics    *recordingMetrics
	client     *fakeClient
}

// newFixture builds zone 1 as live (when live is true) and the rest as simulated.
func newFixture(t *testing.T, live bool, simulated int, policy OverridePolicy) *fixture {
	t.Helper()

	f := &fixture{
		zones:   NewZoneTable(),
		health:  NewHealth(),
		metrics: &recordingMetrics{},
		client:  &fakeClient{},
	}
	id := 1
	if live {
		require.NoError(t, f.zones.Add(NewZone(id, models.SourceLive, policy), NewRemoteSource(f.client, 0)))
		id++
	}
	for i := 0; i < simulated; i++ {
		require.NoError(t, f.zones.Add(NewZone(id, models.SourceSimulated, policy), SimulatedSource{}))
		id++
	}

	repos := repository.NewMemoryRepository(40)
	f.activity = NewActivityLogService(repos.LogRepo)
	f.activity.now = fixedNow
	opts := Options{Metrics: f.metrics}
	f.irrigation = NewIrrigationService(f.zones, f.health, f.activity, opts)
	f.irrigation.now = fixedNow
	f.poller = NewPollerService(f.zones, f.health, f.activity, opts)
	f.poller.now = fixedNow
	f.monitoring = NewMonitoringService(f.zones, f.health, f.activity)
	f.monitoring.now = fixedNow
	return f
}

func (f *fixture) logs(t *testing.T) []models.LogEntry {
	t.Helper()
	entries, err := f.activity.List(context.Background(), LogFilter{})
	require.NoError(t, err)
	return entries
}

func messages(entries []models.LogEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Message)
	}
	return out
}

func countMessage(entries []models.LogEntry, msg string) int {
	n := 0
	for _, e := range entries {
		if e.Message == msg {
			n++
		}
	}
	return n
}
