package handlers

import (
	"context"
	"strconv"
	"time"

	"irrigation_dashboard/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait   = 10 * time.Second
	pongWait    = 60 * time.Second
	pingPeriod  = (pongWait * 9) / 10
	maxMsgSize  = 1 << 12
	maxInterval = 10 * time.Second

	// Matches the browser dashboard refresh period.
	defaultInterval = 2 * time.Second
)

const wsTypeDashboard = "dashboard"

type wsEnvelope struct {
	Type  string      `json:"type"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

// The dashboard page and the socket share an origin, so the default check applies.
var upgrader = websocket.Upgrader{}

// dashboardStream pushes dashboard snapshots to one browser over a socket.
type dashboardStream struct {
	h        *Handler
	conn     *websocket.Conn
	interval time.Duration
	log      *logger.Logger
}

// wsConnect upgrades the request and streams snapshots until either side goes away.
func (h *Handler) wsConnect(c *gin.Context) {
	interval := h.parseInterval(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_upgrade_failed", "err", err)
		}
		return
	}
	defer func() { _ = conn.Close() }()

	s := &dashboardStream{h: h, conn: conn, interval: interval, log: h.log}
	s.run(c.Request.Context())
}

func (s *dashboardStream) run(ctx context.Context) {
	s.conn.SetReadLimit(maxMsgSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	gone := make(chan struct{})
	go s.drain(gone)

	if err := s.push(ctx); err != nil {
		s.info("ws_initial_push_failed", err)
		return
	}

	refresh := time.NewTicker(s.interval)
	defer refresh.Stop()
	keepalive := time.NewTicker(pingPeriod)
	defer keepalive.Stop()

	for {
		select {
		case <-gone:
			return
		case <-ctx.Done():
			return
		case <-keepalive.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				s.info("ws_ping_failed", err)
				return
			}
		case <-refresh.C:
			if err := s.push(ctx); err != nil {
				s.info("ws_push_failed", err)
				return
			}
		}
	}
}

// drain reads until the peer closes so control frames get processed.
func (s *dashboardStream) drain(gone chan<- struct{}) {
	defer close(gone)
	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			s.info("ws_read_closed", err)
			return
		}
	}
}

func (s *dashboardStream) push(ctx context.Context) error {
	d, err := s.h.services.Monitoring.Dashboard(ctx)
	if err != nil {
		if s.log != nil {
			s.log.Errorw("ws_dashboard_failed", "err", err)
		}
		return err
	}
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteJSON(wsEnvelope{Type: wsTypeDashboard, Data: d})
}

func (s *dashboardStream) info(event string, err error) {
	if s.log != nil {
		s.log.Infow(event, "err", err)
	}
}

// parseInterval reads ?interval=2s or ?interval_ms=2000. Out of range values fall back to the default.
func (h *Handler) parseInterval(c *gin.Context) time.Duration {
	if s := c.Query("interval"); s != "" {
		if d, err := time.ParseDuration(s); err == nil && inInterval(d) {
			return d
		}
	}
	if ms := c.Query("interval_ms"); ms != "" {
		if v, err := strconv.Atoi(ms); err == nil && inInterval(time.Duration(v)*time.Millisecond) {
			return time.Duration(v) * time.Millisecond
		}
	}
	return defaultInterval
}

func inInterval(d time.Duration) bool {
	return d > 0 && d <= maxInterval
}
