package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"irrigation_dashboard/internal/models"
	"irrigation_dashboard/internal/service"

	"github.com/gin-gonic/gin"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK       = "ok"
	statusStarted  = "started"
	statusStopped  = "stopped"
	statusMoisture = "moisture_set"
	statusReading  = "reading_applied"

	errInvalidZoneID   = "invalid zone id"
	errInvalidBodyPref = "invalid body: "
)

// Request DTO for a slider move.
type moistureRequest struct {
	Percent *int `json:"percent" binding:"required"`
}

// Request DTO for a pushed sensor reading.
type readingRequest struct {
	SensorValue *float64 `json:"sensor_value" binding:"required"`
}

// SetMoistureRequest is an exported model for Swagger docs of the setMoisture payload.
type SetMoistureRequest struct {
	// Moisture percentage; values outside 0..100 are clamped
	Percent int `json:"percent" example:"55"`
}

// PushReadingRequest is an exported model for Swagger docs of the pushReading payload.
type PushReadingRequest struct {
	// Raw sensor value, normalized with sensor.raw_max
	SensorValue float64 `json:"sensor_value" example:"2048"`
}

// httpStatusFor maps service errors to HTTP codes.
func httpStatusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrZoneNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrManualStartRejected), errors.Is(err, service.ErrNotAdjustable):
		return http.StatusConflict
	case errors.Is(err, models.ErrInvalidReading):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNetworkFailure):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Centralized error logging and response. Only server-side failures are logged at error level.
func (h *Handler) respondError(c *gin.Context, logKey string, err error, kv ...interface{}) {
	code := httpStatusFor(err)
	if h.log != nil {
		fields := append([]interface{}{"err", err}, kv...)
		if code >= http.StatusInternalServerError {
			h.log.Errorw(logKey, fields...)
		} else {
			h.log.Infow(logKey, fields...)
		}
	}
	c.JSON(code, gin.H{"error": err.Error()})
}

// Respond with a status and the rendered zone.
func (h *Handler) respondWithZone(c *gin.Context, status string, z models.ZoneState) {
	c.JSON(http.StatusOK, gin.H{
		"status": status,
		"zone":   models.NewZoneView(z),
	})
}

func zoneID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidZoneID})
		return 0, false
	}
	return id, true
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Dashboard snapshot
// @Description  Alert banner, all zones and the activity log
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  models.Dashboard
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/dashboard [get]
func (h *Handler) getDashboard(c *gin.Context) {
	d, err := h.services.Monitoring.Dashboard(c.Request.Context())
	if err != nil {
		h.respondError(c, "dashboard_load_failed", err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// @Summary      List zones
// @Tags         zones
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, zones"
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/zones [get]
func (h *Handler) getZones(c *gin.Context) {
	zones, err := h.services.Monitoring.Zones(c.Request.Context())
	if err != nil {
		h.respondError(c, "zones_load_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count": len(zones),
		"zones": zones,
	})
}

// @Summary      Get zone
// @Tags         zones
// @Produce      json
// @Param        id   path      int  true  "Zone id"
// @Success      200  {object}  models.ZoneView
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/zones/{id} [get]
func (h *Handler) getZone(c *gin.Context) {
	id, ok := zoneID(c)
	if !ok {
		return
	}
	z, err := h.services.Monitoring.Zone(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, "zone_load_failed", err, "zone", id)
		return
	}
	c.JSON(http.StatusOK, z)
}

// @Summary      Start watering (manual override)
// @Description  Rejected with 409 while the zone is oversaturated. Live zones forward the request to the controller.
// @Tags         zones
// @Produce      json
// @Param        id   path      int  true  "Zone id"
// @Success      200  {object}  map[string]interface{}  "status, zone"
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /api/v1/zones/{id}/start [post]
func (h *Handler) startZone(c *gin.Context) {
	id, ok := zoneID(c)
	if !ok {
		return
	}
	z, err := h.services.Irrigation.Start(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, "zone_start_failed", err, "zone", id)
		return
	}
	h.respondWithZone(c, statusStarted, z)
}

// @Summary      Stop watering
// @Tags         zones
// @Produce      json
// @Param        id   path      int  true  "Zone id"
// @Success      200  {object}  map[string]interface{}  "status, zone"
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/zones/{id}/stop [post]
func (h *Handler) stopZone(c *gin.Context) {
	id, ok := zoneID(c)
	if !ok {
		return
	}
	z, err := h.services.Irrigation.Stop(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, "zone_stop_failed", err, "zone", id)
		return
	}
	h.respondWithZone(c, statusStopped, z)
}

// @Summary      Set moisture (slider)
// @Description  Simulated zones only
// @Tags         zones
// @Accept       json
// @Produce      json
// @Param        id    path   int                 true  "Zone id"
// @Param        body  body   SetMoistureRequest  true  "Moisture payload"
// @Success      200   {object}  map[string]interface{}  "status, zone"
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/v1/zones/{id}/moisture [put]
func (h *Handler) setMoisture(c *gin.Context) {
	id, ok := zoneID(c)
	if !ok {
		return
	}
	var req moistureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	z, err := h.services.Irrigation.SetMoisture(c.Request.Context(), id, *req.Percent)
	if err != nil {
		h.respondError(c, "zone_set_moisture_failed", err, "zone", id)
		return
	}
	h.respondWithZone(c, statusMoisture, z)
}

// @Summary      Push a raw sensor reading
// @Description  Simulated zones only; the value is normalized with sensor.raw_max
// @Tags         zones
// @Accept       json
// @Produce      json
// @Param        id    path   int                 true  "Zone id"
// @Param        body  body   PushReadingRequest  true  "Reading payload"
// @Success      200   {object}  map[string]interface{}  "status, zone"
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/v1/zones/{id}/readings [post]
func (h *Handler) pushReading(c *gin.Context) {
	id, ok := zoneID(c)
	if !ok {
		return
	}
	var req readingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	z, err := h.services.Irrigation.PushReading(c.Request.Context(), id, *req.SensorValue)
	if err != nil {
		h.respondError(c, "zone_push_reading_failed", err, "zone", id)
		return
	}
	h.respondWithZone(c, statusReading, z)
}
