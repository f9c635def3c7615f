package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"irrigation_dashboard/internal/models"
	"irrigation_dashboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// --- parseInterval unit tests ---

func TestParseInterval(t *testing.T) {
	h := NewHandler(&service.Service{}, nil)

	cases := []struct {
		name string
		u    string
		want time.Duration
	}{
		{"default_when_missing", "/ws", 2 * time.Second},
		{"interval_string_valid", "/ws?interval=200ms", 200 * time.Millisecond},
		{"interval_ms_valid", "/ws?interval_ms=150", 150 * time.Millisecond},
		{"interval_too_large", "/ws?interval=20s", 2 * time.Second},
		{"interval_ms_too_large", "/ws?interval_ms=20000", 2 * time.Second},
		{"interval_invalid_string", "/ws?interval=bogus", 2 * time.Second},
		{"interval_ms_invalid", "/ws?interval_ms=NaN", 2 * time.Second},
		{"both_present_interval_wins", "/ws?interval=1s&interval_ms=150", 1 * time.Second},
		{"both_present_invalid_interval_ms_used", "/ws?interval=bogus&interval_ms=250", 250 * time.Millisecond},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tc.u, nil)
			c, _ := gin.CreateTestContext(w)
			c.Request = req
			got := h.parseInterval(c)
			if got != tc.want {
				t.Fatalf("got %v, want %v for %s", got, tc.want, tc.u)
			}
		})
	}
}

// --- websocket integration tests ---

func dialWS(t *testing.T, s *service.Service, query string) *websocket.Conn {
	t.Helper()

	r := gin.New()
	h := NewHandler(s, nil)
	r.GET("/ws", h.wsConnect)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	u, _ := url.Parse(srv.URL)
	u.Scheme = "ws"
	u.Path = "/ws"
	u.RawQuery = query

	dialer := websocket.Dialer{HandshakeTimeout: 2 * time.Second}
	conn, _, err := dialer.Dial(u.String(), nil)
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestWebSocket_DashboardStream_InitialAndPeriodic(t *testing.T) {
	zone := models.NewZoneView(models.ZoneState{
		ZoneID:          1,
		Source:          models.SourceSimulated,
		MoisturePercent: 35,
		Watering:        true,
		Category:        models.CategoryTooDry,
	})
	mon := &mockMonitoring{dashboard: models.Dashboard{
		Alert: service.AlertBackend,
		Zones: []models.ZoneView{zone},
	}}
	conn := dialWS(t, &service.Service{Monitoring: mon}, "interval_ms=20")

	type envelope struct {
		Type  string          `json:"type"`
		Data  json.RawMessage `json:"data"`
		Error string          `json:"error"`
	}

	// Read initial snapshot
	_ = conn.SetReadDeadline(time.Now().Add(1 * time.Second))
	var env envelope
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read initial: %v", err)
	}
	if env.Type != "dashboard" || len(env.Data) == 0 {
		t.Fatalf("bad envelope: %+v", env)
	}
	var d models.Dashboard
	if err := json.Unmarshal(env.Data, &d); err != nil {
		t.Fatalf("unmarshal dashboard: %v", err)
	}
	if d.Alert != service.AlertBackend || len(d.Zones) != 1 {
		t.Fatalf("unexpected dashboard: %+v", d)
	}
	if got := d.Zones[0]; got.PercentText != "35 %" || got.StatusLabel != models.LabelOn || got.Category != models.CategoryTooDry {
		t.Fatalf("unexpected zone: %+v", got)
	}

	// Read a subsequent tick
	_ = conn.SetReadDeadline(time.Now().Add(1 * time.Second))
	env = envelope{}
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read second: %v", err)
	}
	if env.Type != "dashboard" {
		t.Fatalf("expected type=dashboard, got %+v", env)
	}
}

func TestWebSocket_InitialDashboardError_Closes(t *testing.T) {
	mon := &mockMonitoring{err: errors.New("boom")}
	conn := dialWS(t, &service.Service{Monitoring: mon}, "")

	// The server closes right after failing the initial snapshot
	_ = conn.SetReadDeadline(time.Now().Add(500 * time.Millisecond))
	var raw json.RawMessage
	if err := conn.ReadJSON(&raw); err == nil {
		t.Fatalf("expected read error (closed), got message: %s", string(raw))
	}
}
