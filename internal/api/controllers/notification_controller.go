package controllers

import (
	"github.com/gin-gonic/gin"

	"apnadoctor/internal/services"
	"apnadoctor/pkg/utils"
)

type NotificationController struct {
	notificationService services.NotificationServiceInterface
}

func NewNotificationController(notificationService services.NotificationServiceInterface) *NotificationController {
	return &NotificationController{notificationService: notificationService}
}

// List godoc
// @Summary Latest notifications
// @Description The 20 newest notifications for the caller
// @Tags Notifications
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /notifications [get]
func (n *NotificationController) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	items, err := n.notificationService.List(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, items, "Notifications fetched successfully")
}

// MarkRead godoc
// @Summary Mark a notification read
// @Tags Notifications
// @Produce json
// @Param id path string true "Notification ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /notifications/{id}/read [put]
func (n *NotificationController) MarkRead(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := n.notificationService.MarkRead(c.Request.Context(), userID, id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Notification marked as read")
}

// MarkAllRead godoc
// @Summary Mark every notification read
// @Tags Notifications
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /notifications/read-all [put]
func (n *NotificationController) MarkAllRead(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	count, err := n.notificationService.MarkAllRead(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"updated": count}, "All notifications marked as read")
}

// Delete godoc
// @Summary Delete a notification
// @Tags Notifications
// @Produce json
// @Param id path string true "Notification ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /notifications/{id} [delete]
func (n *NotificationController) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := n.notificationService.Delete(c.Request.Context(), userID, id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Notification deleted")
}

// DeleteAll godoc
// @Summary Delete every notification
// @Tags Notifications
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /notifications [delete]
func (n *NotificationController) DeleteAll(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	count, err := n.notificationService.DeleteAll(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"deleted": count}, "All notifications deleted")
}

// SendTestEmail godoc
// @Summary Send a test email
// @Tags Notifications
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Failure 500 {object} utils.APIResponse
// @Security BearerAuth
// @Router /notifications/test-email [post]
func (n *NotificationController) SendTestEmail(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := n.notificationService.SendTestEmail(c.Request.Context(), userID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Test email sent successfully")
}
