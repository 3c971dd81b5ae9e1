package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nanotasks/internal/auth"
	"nanotasks/internal/services"
)

type StatsHandler struct {
	statsService *services.StatsService
}

func NewStatsHandler(statsService *services.StatsService) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
	}
}

// AdminStats returns the platform-wide dashboard rollup.
// GET /api/stats/admin
func (h *StatsHandler) AdminStats(c *gin.Context) {
	stats, err := h.statsService.AdminStats(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// BuyerStats returns the authenticated buyer's dashboard rollup.
// GET /api/stats/buyer
func (h *StatsHandler) BuyerStats(c *gin.Context) {
	principal, ok := auth.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	stats, err := h.statsService.BuyerStats(c.Request.Context(), principal.Email)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// WorkerStats returns the authenticated worker's dashboard rollup.
// GET /api/stats/worker
func (h *StatsHandler) WorkerStats(c *gin.Context) {
	principal, ok := auth.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	stats, err := h.statsService.WorkerStats(c.Request.Context(), principal.Email)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
