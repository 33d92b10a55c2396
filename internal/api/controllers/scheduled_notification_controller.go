package controllers

import (
	"github.com/gin-gonic/gin"

	"apnadoctor/internal/models/request_models"
	"apnadoctor/internal/services"
	"apnadoctor/pkg/utils"
)

type ScheduledNotificationController struct {
	scheduleService services.ScheduledNotificationServiceInterface
}

func NewScheduledNotificationController(scheduleService services.ScheduledNotificationServiceInterface) *ScheduledNotificationController {
	return &ScheduledNotificationController{scheduleService: scheduleService}
}

// List godoc
// @Summary List reminders
// @Tags Scheduled Notifications
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /scheduled-notifications [get]
func (s *ScheduledNotificationController) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	items, err := s.scheduleService.List(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, items, "Reminders fetched successfully")
}

// Create godoc
// @Summary Create a reminder
// @Description Daily reminder at HH:MM; channels default to email
// @Tags Scheduled Notifications
// @Accept json
// @Produce json
// @Param request body request_models.CreateScheduleRequest true "Reminder"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /scheduled-notifications [post]
func (s *ScheduledNotificationController) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req request_models.CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err)
		return
	}

	schedule, err := s.scheduleService.Create(c.Request.Context(), userID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, schedule, "Reminder created successfully")
}

// Update godoc
// @Summary Update a reminder
// @Tags Scheduled Notifications
// @Accept json
// @Produce json
// @Param id path string true "Reminder ID"
// @Param request body request_models.UpdateScheduleRequest true "Fields to change"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /scheduled-notifications/{id} [put]
func (s *ScheduledNotificationController) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req request_models.UpdateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err)
		return
	}

	schedule, err := s.scheduleService.Update(c.Request.Context(), userID, id, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, schedule, "Reminder updated successfully")
}

// Toggle godoc
// @Summary Toggle a reminder on or off
// @Tags Scheduled Notifications
// @Produce json
// @Param id path string true "Reminder ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /scheduled-notifications/{id}/toggle [patch]
func (s *ScheduledNotificationController) Toggle(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	schedule, err := s.scheduleService.Toggle(c.Request.Context(), userID, id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, schedule, "Reminder toggled successfully")
}

// Delete godoc
// @Summary Delete a reminder
// @Tags Scheduled Notifications
// @Produce json
// @Param id path string true "Reminder ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /scheduled-notifications/{id} [delete]
func (s *ScheduledNotificationController) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := s.scheduleService.Delete(c.Request.Context(), userID, id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Reminder deleted successfully")
}
