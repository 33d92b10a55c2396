package controllers

import (
	"github.com/gin-gonic/gin"

	"apnadoctor/internal/services"
	"apnadoctor/pkg/utils"
)

type ReportController struct {
	pdfService services.PDFServiceInterface
}

func NewReportController(pdfService services.PDFServiceInterface) *ReportController {
	return &ReportController{pdfService: pdfService}
}

// Generate godoc
// @Summary Session report PDF
// @Description Printable analysis report for one symptom session
// @Tags Reports
// @Produce application/pdf
// @Param sessionId path string true "Session ID"
// @Success 200 {file} file
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /reports/generate/{sessionId} [get]
func (r *ReportController) Generate(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	sessionID, ok := uuidParam(c, "sessionId")
	if !ok {
		return
	}

	doc, err := r.pdfService.SessionReport(c.Request.Context(), userID, sessionID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	sendPDF(c, doc)
}
