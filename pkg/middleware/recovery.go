package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"apnadoctor/pkg/utils"
)

// RecoveryMiddleware turns panics into the standard 500 envelope.
func RecoveryMiddleware() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		utils.RespondInternalError(c, fmt.Errorf("panic: %v", recovered))
	})
}
