package controllers

import (
	"github.com/gin-gonic/gin"

	"apnadoctor/internal/services"
	"apnadoctor/pkg/utils"
)

type AnalyticsController struct {
	analyticsService services.AnalyticsService
}

func NewAnalyticsController(analyticsService services.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{
		analyticsService: analyticsService,
	}
}

// GetDashboard godoc
// @Summary Health dashboard
// @Description Totals, health score, severity trend, triage distribution and recent activity over the caller's last 100 sessions
// @Tags Analytics
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Failure 500 {object} utils.APIResponse
// @Security BearerAuth
// @Router /analytics/dashboard [get]
func (a *AnalyticsController) GetDashboard(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	report, err := a.analyticsService.BuildDashboard(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, report, "Dashboard data fetched successfully")
}
