package controllers

import (
	"github.com/gin-gonic/gin"

	"apnadoctor/internal/models/request_models"
	"apnadoctor/internal/services"
	"apnadoctor/pkg/utils"
)

type ChatController struct {
	chatService services.ChatServiceInterface
}

func NewChatController(chatService services.ChatServiceInterface) *ChatController {
	return &ChatController{chatService: chatService}
}

// Chat godoc
// @Summary Chat with the health assistant
// @Tags Chat
// @Accept json
// @Produce json
// @Param request body request_models.ChatRequest true "Message and recent history"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /chat [post]
func (ch *ChatController) Chat(c *gin.Context) {
	var req request_models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err)
		return
	}

	reply, err := ch.chatService.Reply(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, reply, "Reply generated")
}
