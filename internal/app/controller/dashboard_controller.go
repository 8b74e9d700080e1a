package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/amontenegro/gadgethub-backend/internal/app/service"
	apperrors "github.com/amontenegro/gadgethub-backend/internal/errors"
	"github.com/amontenegro/gadgethub-backend/internal/middleware"
)

type DashboardController struct {
	dashboardService service.DashboardService
}

func NewDashboardController(dashboardService service.DashboardService) *DashboardController {
	return &DashboardController{
		dashboardService: dashboardService,
	}
}

// GetStats returns the admin dashboard aggregates
// GET /api/admin/dashboard/stats
func (ctrl *DashboardController) GetStats(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	stats, err := ctrl.dashboardService.GetStats()
	if err != nil {
		log.Error("Failed to compute dashboard stats", err, nil)
		apperrors.InternalError(c, "Failed to compute dashboard stats")
		return
	}

	c.JSON(http.StatusOK, stats)
}
