package authentication

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/opportunity-hub/api/internal/user"
	"github.com/opportunity-hub/api/internal/utils"
)

// AuthMiddleware validates the Bearer access token, resolves it to a
// live user and stores the user in the request context. Every
// validation failure surfaces uniformly as 401.
func AuthMiddleware(service AuthenticationService, userService user.UserService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer <token>"})
			return
		}
		rawToken := parts[1]

		claims, err := service.Validate(c.Request.Context(), rawToken, utils.AccessToken)
		if err != nil {
			logger.Warn("access token validation failed", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid, expired or revoked access token"})
			return
		}

		userID, err := uuid.Parse(claims.Subject)
		if err != nil {
			logger.Error("invalid subject claim", zap.String("subject", claims.Subject), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token subject"})
			return
		}

		account, err := userService.ReadUserByID(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, user.ErrUserNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
				return
			}
			logger.Error("failed to load user by id", zap.String("user_id", userID.String()), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "could not validate user"})
			return
		}

		c.Set(user.ContextUserKey, account)
		c.Next()
	}
}

// RequireRole rejects callers whose role is not in the allowed set.
// Roles are compared as the closed user.Role enum; handlers never do
// their own string comparisons.
func RequireRole(logger *zap.Logger, allowed ...user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		account, ok := user.FromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		for _, role := range allowed {
			if account.Role == role {
				c.Next()
				return
			}
		}
		logger.Warn("role check failed",
			zap.String("user_id", account.ID.String()),
			zap.String("role", string(account.Role)),
		)
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	}
}
