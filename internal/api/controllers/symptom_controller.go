package controllers

import (
	"github.com/gin-gonic/gin"

	"apnadoctor/internal/models/request_models"
	"apnadoctor/internal/services"
	"apnadoctor/pkg/utils"
)

type SymptomController struct {
	symptomService services.SymptomServiceInterface
}

func NewSymptomController(symptomService services.SymptomServiceInterface) *SymptomController {
	return &SymptomController{symptomService: symptomService}
}

// Analyze godoc
// @Summary Analyze symptoms
// @Description Persist a symptom session and attach an AI triage, falling back to static guidance
// @Tags Symptoms
// @Accept json
// @Produce json
// @Param request body request_models.AnalyzeSymptomsRequest true "Symptom details"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /symptoms/analyze [post]
func (s *SymptomController) Analyze(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req request_models.AnalyzeSymptomsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err)
		return
	}

	result, err := s.symptomService.Analyze(c.Request.Context(), userID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Symptoms analyzed successfully")
}

// History godoc
// @Summary Symptom history
// @Tags Symptoms
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Page size (default 10, max 50)"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /symptoms/history [get]
func (s *SymptomController) History(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var q request_models.HistoryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.RespondValidationError(c, err)
		return
	}

	history, err := s.symptomService.History(c.Request.Context(), userID, q.Page, q.Limit)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, history, "History fetched successfully")
}

// GetSession godoc
// @Summary Get one symptom session
// @Tags Symptoms
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /symptoms/{id} [get]
func (s *SymptomController) GetSession(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	sessionID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	session, err := s.symptomService.GetSession(c.Request.Context(), userID, sessionID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, session, "Session fetched successfully")
}

// DeleteSession godoc
// @Summary Delete a symptom session
// @Tags Symptoms
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /symptoms/{id} [delete]
func (s *SymptomController) DeleteSession(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	sessionID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := s.symptomService.DeleteSession(c.Request.Context(), userID, sessionID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Session deleted successfully")
}
