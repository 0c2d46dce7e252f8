package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"rental_backend/internal/services"
	"rental_backend/pkg/utils"
)

// DashboardHandler holds the dashboard service.
type DashboardHandler struct {
	dashboardService services.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(ds services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: ds}
}

// GetStats serves the dashboard stat cards.
func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.dashboardService.GetStats()
	if err != nil {
		utils.LogError(err, "GetStats: Error from dashboardService.GetStats")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch dashboard stats.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetRecentActivity serves the latest reservations for the activity table.
func (h *DashboardHandler) GetRecentActivity(c *gin.Context) {
	entries, err := h.dashboardService.GetRecentActivity()
	if err != nil {
		utils.LogError(err, "GetRecentActivity: Error from dashboardService.GetRecentActivity")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch recent activity.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, entries)
}

// GetActiveRooms serves reservations currently in progress.
func (h *DashboardHandler) GetActiveRooms(c *gin.Context) {
	entries, err := h.dashboardService.GetActiveRooms()
	if err != nil {
		utils.LogError(err, "GetActiveRooms: Error from dashboardService.GetActiveRooms")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch active rooms.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, entries)
}

// GetRevenueDetail serves the per-reservation revenue breakdown.
func (h *DashboardHandler) GetRevenueDetail(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	detail, err := h.dashboardService.GetRevenueDetail(limit)
	if err != nil {
		utils.LogError(err, "GetRevenueDetail: Error from dashboardService.GetRevenueDetail")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch revenue detail.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, detail)
}

// GetRevenueTrend serves the zero-filled per-day revenue series.
func (h *DashboardHandler) GetRevenueTrend(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "7"))

	series, err := h.dashboardService.GetRevenueTrend(days)
	if err != nil {
		utils.LogError(err, "GetRevenueTrend: Error from dashboardService.GetRevenueTrend")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch revenue trend.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, series)
}
