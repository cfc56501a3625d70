package authentication

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/opportunity-hub/api/internal/user"
)

func newMiddlewareRouter(t *testing.T, f *authFixture) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := zap.NewNop()
	router := gin.New()

	protected := router.Group("/")
	protected.Use(AuthMiddleware(f.service, f.userService, logger))
	protected.GET("/me", func(c *gin.Context) {
		account, ok := user.FromContext(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"email": account.Email})
	})
	protected.GET("/partner-only", RequireRole(logger, user.Partner), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	protected.GET("/any-role", RequireRole(logger, user.Student, user.Partner), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func performRequest(router *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestAuthMiddleware(t *testing.T) {
	f := newAuthFixture(t)
	router := newMiddlewareRouter(t, f)

	pair, err := f.service.Login(context.Background(), f.email, f.password)
	require.NoError(t, err)

	t.Run("missing header", func(t *testing.T) {
		resp := performRequest(router, "/me", "")
		assert.Equal(t, http.StatusUnauthorized, resp.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		resp := performRequest(router, "/me", "Token abc")
		assert.Equal(t, http.StatusUnauthorized, resp.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		resp := performRequest(router, "/me", "Bearer not.a.jwt")
		assert.Equal(t, http.StatusUnauthorized, resp.Code)
	})

	t.Run("refresh token is not an access token", func(t *testing.T) {
		resp := performRequest(router, "/me", "Bearer "+pair.RefreshToken)
		assert.Equal(t, http.StatusUnauthorized, resp.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		resp := performRequest(router, "/me", "Bearer "+pair.AccessToken)
		assert.Equal(t, http.StatusOK, resp.Code)
		assert.Contains(t, resp.Body.String(), f.email)
	})

	t.Run("revoked token", func(t *testing.T) {
		revokedPair, err := f.service.Login(context.Background(), f.email, f.password)
		require.NoError(t, err)
		require.NoError(t, f.service.Logout(context.Background(), revokedPair.AccessToken))

		resp := performRequest(router, "/me", "Bearer "+revokedPair.AccessToken)
		assert.Equal(t, http.StatusUnauthorized, resp.Code)
	})
}

func TestRequireRole(t *testing.T) {
	f := newAuthFixture(t)
	router := newMiddlewareRouter(t, f)

	// the fixture account is a student
	pair, err := f.service.Login(context.Background(), f.email, f.password)
	require.NoError(t, err)

	resp := performRequest(router, "/partner-only", "Bearer "+pair.AccessToken)
	assert.Equal(t, http.StatusForbidden, resp.Code)

	resp = performRequest(router, "/any-role", "Bearer "+pair.AccessToken)
	assert.Equal(t, http.StatusOK, resp.Code)
}
