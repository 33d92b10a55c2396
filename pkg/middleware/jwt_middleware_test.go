package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mem "apnadoctor/pkg/memcache"
	"apnadoctor/pkg/utils"
)

func newProtectedRouter(jwtManager *utils.JWTManager, revoked mem.RevokedTokenStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(TraceIDMiddleware())
	r.GET("/private", JWTAuthMiddleware(jwtManager, revoked), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(ContextUserID))
	})
	return r
}

func doGet(r http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuthMiddleware(t *testing.T) {
	jwtManager := utils.NewJWTManager("test-secret", time.Hour)
	revoked := mem.NewRevokedTokens()
	r := newProtectedRouter(jwtManager, revoked)

	userID := uuid.New()
	token, err := jwtManager.CreateToken(userID, utils.RoleUser)
	require.NoError(t, err)

	t.Run("missing header", func(t *testing.T) {
		w := doGet(r, "/private", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.NotEmpty(t, w.Header().Get("X-Trace-ID"))
	})

	t.Run("valid token", func(t *testing.T) {
		w := doGet(r, "/private", token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, userID.String(), w.Body.String())
	})

	t.Run("revoked token", func(t *testing.T) {
		revoked.Revoke(token, time.Now().Add(time.Hour))
		w := doGet(r, "/private", token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/login", RateLimit(NewRateLimiter(1, 2)), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		codes = append(codes, doGet(r, "/login", "").Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestTraceIDMiddleware_ReusesInboundID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(TraceIDMiddleware())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("trace_id")) })

	inbound := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Trace-ID", inbound)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, inbound, w.Body.String())
	assert.Equal(t, inbound, w.Header().Get("X-Trace-ID"))
}
