package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	mem "apnadoctor/pkg/memcache"
	"apnadoctor/pkg/utils"
)

const (
	ContextUserID = "user_id"
	ContextRole   = "Role"
	ContextToken  = "token"
)

func JWTAuthMiddleware(jwtManager *utils.JWTManager, revoked mem.RevokedTokenStore) gin.HandlerFunc {

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondError(c, http.StatusUnauthorized, "Authorization header missing or invalid")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := jwtManager.ValidateToken(tokenString)
		if err != nil {
			utils.RespondError(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		if revoked != nil && revoked.IsRevoked(tokenString) {
			utils.RespondError(c, http.StatusUnauthorized, "Token is logged out")
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextRole, claims.Role)
		c.Set(ContextToken, tokenString)
		c.Next()
	}
}
