package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"irrigation_dashboard/internal/models"
	"irrigation_dashboard/internal/service"

	"github.com/gin-gonic/gin"
)

const errZoneInvalid = "invalid 'zone'; use a positive zone id"

// @Summary      List activity log
// @Description  Most recent entries, oldest first. Bounded to the configured capacity.
// @Tags         logs
// @Produce      json
// @Param        zone  query   int     false  "Zone id"  example(1)
// @Param        type  query   string  false  "Entry type"  Enums(SYSTEM,AUTO,MANUAL,REJECTED,NETWORK)
// @Success      200   {object}  map[string]interface{}  "count, entries"
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/logs [get]
func (h *Handler) getLogs(c *gin.Context) {
	ctx := c.Request.Context()
	var (
		zone      int
		entryType = strings.ToUpper(strings.TrimSpace(c.Query("type")))
	)
	if qs := c.Query("zone"); qs != "" {
		id, err := strconv.Atoi(qs)
		if err != nil || id < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": errZoneInvalid})
			return
		}
		zone = id
	}
	entries, err := h.services.ActivityLog.List(ctx, service.LogFilter{
		ZoneID: zone,
		Type:   entryType,
	})
	if err != nil {
		if h.log != nil {
			h.log.Errorw("logs_list_failed", "err", err, "zone", zone, "type", entryType)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load logs"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":   len(entries),
		"entries": models.NewLogLines(entries),
	})
}
