package admin

import (
	"net/http"
	"strconv"

	"github.com/techgear-vn/techgear-api/internal/http/response"

	"github.com/gin-gonic/gin"
)

// DashboardStats returns the back-office overview for the requested
// range, defaulting to the last 30 days.
func (h *Handler) DashboardStats(c *gin.Context) {
	rangeDays, _ := strconv.Atoi(c.DefaultQuery("range_days", "30"))
	stats, err := h.DashboardService.Stats(rangeDays)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Dashboard stats failed", err)
		return
	}
	response.Success(c, stats)
}
