package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/finvolt/banking-core/internal/core/domain"
	"github.com/finvolt/banking-core/internal/middleware"
	"github.com/finvolt/banking-core/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", middleware.AuthMiddleware(testSecret), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	r.GET("/privileged", middleware.AuthMiddleware(testSecret), middleware.RequireSystemRole(), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return r
}

func doRequest(t *testing.T, r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	r := newTestRouter()
	w := doRequest(t, r, "/protected", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", middleware.AuthMiddleware(testSecret), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	r := newTestRouter()
	w := doRequest(t, r, "/protected", "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	token, err := utils.GenerateJWT(uuid.NewString(), string(domain.RoleUser), testSecret, -time.Minute, "test")
	require.NoError(t, err)

	r := newTestRouter()
	w := doRequest(t, r, "/protected", token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "expired")
}

func TestAuthMiddleware_WrongSecret(t *testing.T) {
	token, err := utils.GenerateJWT(uuid.NewString(), string(domain.RoleUser), "another-secret", time.Hour, "test")
	require.NoError(t, err)

	r := newTestRouter()
	w := doRequest(t, r, "/protected", token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_ResolvesPrincipal(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userID := uuid.NewString()
	token, err := utils.GenerateJWT(userID, string(domain.RoleUser), testSecret, time.Hour, "test")
	require.NoError(t, err)

	var seen domain.Principal
	r := gin.New()
	r.GET("/protected", middleware.AuthMiddleware(testSecret), func(c *gin.Context) {
		seen, _ = middleware.GetPrincipalFromCtx(c.Request.Context())
		c.String(http.StatusOK, "ok")
	})

	w := doRequest(t, r, "/protected", token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, userID, seen.UserID)
	assert.Equal(t, domain.RoleUser, seen.Role)
	assert.False(t, seen.IsSystem())
}

func TestRequireSystemRole_RejectsOrdinaryUser(t *testing.T) {
	token, err := utils.GenerateJWT(uuid.NewString(), string(domain.RoleUser), testSecret, time.Hour, "test")
	require.NoError(t, err)

	r := newTestRouter()
	w := doRequest(t, r, "/privileged", token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireSystemRole_AllowsSystemPrincipal(t *testing.T) {
	token, err := utils.GenerateJWT(uuid.NewString(), string(domain.RoleSystem), testSecret, time.Hour, "test")
	require.NoError(t, err)

	r := newTestRouter()
	w := doRequest(t, r, "/privileged", token)
	assert.Equal(t, http.StatusOK, w.Code)
}
