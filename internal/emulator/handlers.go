package emulator

import (
	"math"
	"net/http"
	"time"

	"irrigation_dashboard/internal/logger"

	"github.com/gin-gonic/gin"
)

// statusResponse mirrors the firmware's GET /api/status body.
type statusResponse struct {
	Moisture   int `json:"moisture"`
	IsWatering int `json:"isWatering"`
}

// Handler serves the firmware API from a Device.
type Handler struct {
	device *Device
	log    *logger.Logger
	now    func() time.Time
}

func NewHandler(device *Device, log *logger.Logger) *Handler {
	return &Handler{device: device, log: log, now: time.Now}
}

// InitRoutes registers GET /api/status and POST /api/water/start.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.GET("/api/status", h.status)
	router.POST("/api/water/start", h.waterStart)
	return router
}

func (h *Handler) status(c *gin.Context) {
	h.device.Advance(h.now())
	st := h.device.Snapshot()
	resp := statusResponse{Moisture: int(math.Round(st.Raw))}
	if st.Watering {
		resp.IsWatering = 1
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) waterStart(c *gin.Context) {
	h.device.StartWatering(h.now())
	if h.log != nil {
		h.log.Infow("emulator_watering_started", "raw", h.device.Snapshot().Raw)
	}
	c.String(http.StatusOK, "ok")
}
