package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"apnadoctor/internal/services"
	"apnadoctor/pkg/middleware"
	"apnadoctor/pkg/utils"
)

// currentUserID reads the id the auth middleware stored and aborts with 401 when it is absent.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.GetString(middleware.ContextUserID))
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, "Not authorized")
		return uuid.Nil, false
	}
	return id, true
}

func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Validation failed", name+" must be a valid id")
		return uuid.Nil, false
	}
	return id, true
}

func clientInfo(c *gin.Context) services.ClientInfo {
	return services.ClientInfo{
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
}
