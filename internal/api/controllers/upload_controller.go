package controllers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"apnadoctor/internal/services"
	"apnadoctor/pkg/utils"
)

// multipartOverhead leaves room for boundaries and headers around a maximum-size file.
const multipartOverhead = 1 << 20

type UploadController struct {
	reportService services.MedicalReportServiceInterface
	pdfService    services.PDFServiceInterface
}

func NewUploadController(reportService services.MedicalReportServiceInterface, pdfService services.PDFServiceInterface) *UploadController {
	return &UploadController{reportService: reportService, pdfService: pdfService}
}

// Upload godoc
// @Summary Upload a medical report
// @Description Multipart field "report"; JPEG, PNG or PDF up to 5 MB
// @Tags Uploads
// @Accept multipart/form-data
// @Produce json
// @Param report formData file true "Report file"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 413 {object} utils.APIResponse
// @Security BearerAuth
// @Router /upload/upload [post]
func (u *UploadController) Upload(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, services.MaxUploadSize+multipartOverhead)
	fh, err := c.FormFile("report")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			utils.HandleServiceError(c, utils.ErrFileTooLarge)
			return
		}
		utils.RespondError(c, http.StatusBadRequest, "No file uploaded")
		return
	}

	file, err := fh.Open()
	if err != nil {
		utils.RespondInternalError(c, fmt.Errorf("open upload: %w", err))
		return
	}
	defer file.Close()

	report, err := u.reportService.Upload(c.Request.Context(), userID, services.UploadInput{
		OriginalName: fh.Filename,
		MimeType:     fh.Header.Get("Content-Type"),
		Size:         fh.Size,
		Body:         file,
	})
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, report, "File uploaded successfully")
}

// Analyze godoc
// @Summary Analyze an uploaded report
// @Description Runs the vision model over the stored file and saves its summary
// @Tags Uploads
// @Produce json
// @Param id path string true "Report ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 502 {object} utils.APIResponse
// @Security BearerAuth
// @Router /upload/analyze/{id} [post]
func (u *UploadController) Analyze(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	report, err := u.reportService.Analyze(c.Request.Context(), userID, id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, report, "Report analyzed successfully")
}

// ListReports godoc
// @Summary List uploaded reports
// @Tags Uploads
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /upload/reports [get]
func (u *UploadController) ListReports(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	reports, err := u.reportService.List(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, reports, "Reports fetched successfully")
}

// DeleteReport godoc
// @Summary Delete an uploaded report
// @Tags Uploads
// @Produce json
// @Param id path string true "Report ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /upload/reports/{id} [delete]
func (u *UploadController) DeleteReport(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := u.reportService.Delete(c.Request.Context(), userID, id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Report deleted successfully")
}

// Download godoc
// @Summary Download an uploaded report
// @Tags Uploads
// @Produce octet-stream
// @Param id path string true "Report ID"
// @Success 200 {file} file
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /upload/reports/{id}/download [get]
func (u *UploadController) Download(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	file, err := u.reportService.Download(c.Request.Context(), userID, id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	defer file.Body.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
	c.Header("Content-Type", file.MimeType)
	if file.Size > 0 {
		c.Header("Content-Length", strconv.FormatInt(file.Size, 10))
	}
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, file.Body); err != nil {
		_ = c.Error(err)
	}
}

// HistoryPDF godoc
// @Summary Health history PDF
// @Description Patient profile, health goals and recent symptom checks
// @Tags Uploads
// @Produce application/pdf
// @Success 200 {file} file
// @Security BearerAuth
// @Router /upload/history-pdf [get]
func (u *UploadController) HistoryPDF(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	doc, err := u.pdfService.HistoryReport(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	sendPDF(c, doc)
}

func sendPDF(c *gin.Context, doc *services.PDFDocument) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	c.Data(http.StatusOK, "application/pdf", doc.Content)
}
