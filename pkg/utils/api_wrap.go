package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Errors  []string    `json:"errors,omitempty"`
}

// exposeErrorDetail controls whether 500 responses carry the underlying error text.
var exposeErrorDetail = true

func ExposeErrorDetail(on bool) {
	exposeErrorDetail = on
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	RespondWithStatus(c, http.StatusOK, data, message)
}

func RespondCreated(c *gin.Context, data interface{}, message string) {
	RespondWithStatus(c, http.StatusCreated, data, message)
}

func RespondWithStatus(c *gin.Context, code int, data interface{}, message string) {
	c.JSON(code, APIResponse{
		Status:  "success",
		Code:    code,
		Message: message,
		TraceID: c.GetString("trace_id"),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string, details ...string) {
	c.AbortWithStatusJSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: c.GetString("trace_id"),
		Errors:  details,
	})
}

// RespondValidationError answers a failed ShouldBind* call with one message per offending field.
func RespondValidationError(c *gin.Context, err error) {
	RespondError(c, http.StatusBadRequest, "Validation failed", ValidationMessages(err)...)
}

// RespondInternalError hides err behind a generic message unless detail exposure is on.
func RespondInternalError(c *gin.Context, err error) {
	zap.L().Error("request failed",
		zap.String("trace_id", c.GetString("trace_id")),
		zap.String("path", c.FullPath()),
		zap.Error(err))

	if exposeErrorDetail && err != nil {
		RespondError(c, http.StatusInternalServerError, "Internal server error", err.Error())
		return
	}
	RespondError(c, http.StatusInternalServerError, "Internal server error")
}

func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrSymptomsTooShort),
		errors.Is(err, ErrInvalidTime),
		errors.Is(err, ErrInvalidChannel),
		errors.Is(err, ErrInvalidFileType):
		RespondError(c, http.StatusBadRequest, "Validation failed", err.Error())
	case errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrUnauthorized):
		RespondError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrInvalidAdminSecret):
		RespondError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, ErrAccountNotFound):
		RespondError(c, http.StatusNotFound, "User not found")
	case errors.Is(err, ErrSessionNotFound):
		RespondError(c, http.StatusNotFound, "Session not found")
	case errors.Is(err, ErrNotificationNotFound):
		RespondError(c, http.StatusNotFound, "Notification not found")
	case errors.Is(err, ErrScheduleNotFound):
		RespondError(c, http.StatusNotFound, "Scheduled notification not found")
	case errors.Is(err, ErrReportNotFound):
		RespondError(c, http.StatusNotFound, "Report not found")
	case errors.Is(err, ErrFileNotFound):
		RespondError(c, http.StatusNotFound, "File not found on server")
	case errors.Is(err, ErrEmailAlreadyExists):
		RespondError(c, http.StatusConflict, err.Error())
	case errors.Is(err, ErrFileTooLarge):
		RespondError(c, http.StatusRequestEntityTooLarge, err.Error())
	case errors.Is(err, ErrAIUnavailable):
		RespondError(c, http.StatusBadGateway, "Failed to analyze report")
	default:
		RespondInternalError(c, err)
	}
}
