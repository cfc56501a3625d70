package authentication

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/opportunity-hub/api/internal/user"
)

// RefreshCookieName is the cookie the refresh token travels in.
const RefreshCookieName = "refresh"

// LoginRequest is the payload for logging in.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest is the body fallback when the refresh cookie is absent.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// PasswordResetRequest carries a reset token and the new password.
type PasswordResetRequest struct {
	Token           string `json:"token" binding:"required"`
	Password        string `json:"password" binding:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

// PasswordUpdateRequest changes the caller's password after verifying
// the old one.
type PasswordUpdateRequest struct {
	OldPassword     string `json:"old_password" binding:"required"`
	Password        string `json:"password" binding:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

// TokenResponse contains both access and refresh tokens.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// AuthHandler handles authentication-related HTTP endpoints.
type AuthHandler struct {
	service    AuthenticationService
	logger     *zap.Logger
	refreshTTL time.Duration
}

// NewAuthHandler registers auth endpoints on the given router group.
func NewAuthHandler(router *gin.RouterGroup, service AuthenticationService, refreshTTL time.Duration, logger *zap.Logger) *AuthHandler {
	h := &AuthHandler{service: service, logger: logger, refreshTTL: refreshTTL}
	router.POST("/auth/login", h.Login)
	router.POST("/auth/refresh", h.Refresh)
	router.POST("/auth/logout", h.Logout)
	router.POST("/auth/password-reset", h.PasswordReset)
	router.POST("/auth/password-update", h.PasswordUpdate)
	return h
}

// Login godoc
// @Summary      Login
// @Description  Authenticate user and issue an access/refresh token pair
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body      LoginRequest  true  "Login credentials"
// @Success      200      {object}  TokenResponse
// @Failure      400      {object}  map[string]string
// @Failure      401      {object}  map[string]string
// @Failure      500      {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid login payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid email or password format"})
		return
	}
	pair, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	switch {
	case err == nil:
		h.setRefreshCookie(c, pair.RefreshToken)
		c.JSON(http.StatusOK, TokenResponse{
			AccessToken:  pair.AccessToken,
			RefreshToken: pair.RefreshToken,
			TokenType:    "bearer",
		})
	case errors.Is(err, ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	default:
		h.logger.Error("Login service failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not login"})
	}
}

// Refresh godoc
// @Summary      Refresh Token
// @Description  Rotate the refresh token and issue a new pair. The old refresh token is consumed.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body      RefreshRequest  false  "Refresh token payload (fallback when the cookie is absent)"
// @Success      200      {object}  TokenResponse
// @Failure      400      {object}  map[string]string
// @Failure      401      {object}  map[string]string
// @Failure      500      {object}  map[string]string
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	refreshJWT, err := c.Cookie(RefreshCookieName)
	if err != nil || refreshJWT == "" {
		var req RefreshRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.RefreshToken == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "refresh token required"})
			return
		}
		refreshJWT = req.RefreshToken
	}

	pair, err := h.service.Refresh(c.Request.Context(), refreshJWT)
	switch {
	case err == nil:
		h.setRefreshCookie(c, pair.RefreshToken)
		c.JSON(http.StatusOK, TokenResponse{
			AccessToken:  pair.AccessToken,
			RefreshToken: pair.RefreshToken,
			TokenType:    "bearer",
		})
	case errors.Is(err, ErrInvalidToken),
		errors.Is(err, ErrTokenExpired),
		errors.Is(err, ErrTokenRevoked),
		errors.Is(err, ErrWrongTokenKind):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired refresh token"})
	default:
		h.logger.Error("Refresh service failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not refresh token"})
	}
}

// Logout godoc
// @Summary      Logout
// @Description  Blacklist the presented access token
// @Tags         auth
// @Produce      json
// @Success      200      {object}  map[string]string
// @Failure      401      {object}  map[string]string
// @Failure      500      {object}  map[string]string
// @Security     BearerAuth
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	rawToken, ok := bearerToken(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer <token>"})
		return
	}
	err := h.service.Logout(c.Request.Context(), rawToken)
	switch {
	case err == nil:
		c.SetCookie(RefreshCookieName, "", -1, "/", "", false, true)
		c.JSON(http.StatusOK, gin.H{"msg": "successfully logged out"})
	case errors.Is(err, ErrInvalidToken),
		errors.Is(err, ErrTokenExpired),
		errors.Is(err, ErrTokenRevoked),
		errors.Is(err, ErrWrongTokenKind):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid access token"})
	default:
		h.logger.Error("Logout service failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not logout"})
	}
}

// PasswordReset godoc
// @Summary      Reset password
// @Description  Set a new password using a reset token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body      PasswordResetRequest  true  "Reset payload"
// @Success      200      {object}  map[string]string
// @Failure      400      {object}  map[string]string
// @Failure      401      {object}  map[string]string
// @Failure      500      {object}  map[string]string
// @Router       /auth/password-reset [post]
func (h *AuthHandler) PasswordReset(c *gin.Context) {
	var req PasswordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid reset payload"})
		return
	}
	if req.Password != req.ConfirmPassword {
		c.JSON(http.StatusBadRequest, gin.H{"error": "the two passwords did not match"})
		return
	}
	err := h.service.ResetPassword(c.Request.Context(), req.Token, req.Password)
	h.respondPasswordChange(c, err, "password successfully updated")
}

// PasswordUpdate godoc
// @Summary      Update password
// @Description  Change the caller's password after verifying the old one
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body      PasswordUpdateRequest  true  "Update payload"
// @Success      200      {object}  map[string]string
// @Failure      400      {object}  map[string]string
// @Failure      401      {object}  map[string]string
// @Failure      500      {object}  map[string]string
// @Security     BearerAuth
// @Router       /auth/password-update [post]
func (h *AuthHandler) PasswordUpdate(c *gin.Context) {
	rawToken, ok := bearerToken(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer <token>"})
		return
	}
	var req PasswordUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid update payload"})
		return
	}
	if req.Password != req.ConfirmPassword {
		c.JSON(http.StatusBadRequest, gin.H{"error": "the two passwords did not match"})
		return
	}
	err := h.service.UpdatePassword(c.Request.Context(), rawToken, req.OldPassword, req.Password)
	if errors.Is(err, ErrWrongOldPassword) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "old password is not correct"})
		return
	}
	h.respondPasswordChange(c, err, "successfully updated")
}

func (h *AuthHandler) respondPasswordChange(c *gin.Context, err error, msg string) {
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"msg": msg})
	case errors.Is(err, ErrInvalidToken),
		errors.Is(err, ErrTokenExpired),
		errors.Is(err, ErrTokenRevoked),
		errors.Is(err, ErrWrongTokenKind):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
	case errors.Is(err, user.ErrPasswordShouldBeNCharacters),
		errors.Is(err, user.ErrPasswordNotAlphanumeric):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logger.Error("password change failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update password"})
	}
}

func (h *AuthHandler) setRefreshCookie(c *gin.Context, refreshJWT string) {
	c.SetCookie(RefreshCookieName, refreshJWT, int(h.refreshTTL.Seconds()), "/", "", false, true)
}

func bearerToken(c *gin.Context) (string, bool) {
	parts := strings.Fields(c.GetHeader("Authorization"))
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}
