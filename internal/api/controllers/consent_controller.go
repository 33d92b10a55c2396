package controllers

import (
	"github.com/gin-gonic/gin"

	"apnadoctor/internal/models/request_models"
	"apnadoctor/internal/services"
	"apnadoctor/pkg/utils"
)

type ConsentController struct {
	consentService services.ConsentServiceInterface
}

func NewConsentController(consentService services.ConsentServiceInterface) *ConsentController {
	return &ConsentController{consentService: consentService}
}

// Record godoc
// @Summary Record consent
// @Description Append a consent decision with the caller's IP and user agent
// @Tags Consent
// @Accept json
// @Produce json
// @Param request body request_models.RecordConsentRequest true "Consent decision"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /consent [post]
func (cc *ConsentController) Record(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req request_models.RecordConsentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err)
		return
	}

	record, err := cc.consentService.Record(c.Request.Context(), userID, req, clientInfo(c))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, record, "Consent recorded successfully")
}

// Check godoc
// @Summary Check consent
// @Tags Consent
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /consent/check [get]
func (cc *ConsentController) Check(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	result, err := cc.consentService.Check(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Consent status fetched successfully")
}
