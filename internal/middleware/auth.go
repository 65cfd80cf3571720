package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/finvolt/banking-core/internal/core/domain"
	"github.com/finvolt/banking-core/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware creates a Gin middleware handler that validates bearer
// tokens and resolves the principal {user id, role} for downstream handlers.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warn("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			logger.Warn("Authorization header format invalid")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		claims, err := utils.ParseAndValidateJWT(parts[1], jwtSecret)
		if err != nil {
			logger.Warn("Invalid token", slog.String("error", err.Error()))
			msg := "Invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "Token has expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		if claims.Subject == "" {
			logger.Error("User ID (subject) missing from valid token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}

		principal := domain.Principal{
			UserID: claims.Subject,
			Role:   domain.UserRole(claims.Role),
		}
		if principal.Role == "" {
			principal.Role = domain.RoleUser
		}

		enrichedLogger := logger.With(slog.String("user_id", principal.UserID))
		ctx := context.WithValue(c.Request.Context(), principalKey, principal)
		ctx = context.WithValue(ctx, loggerCtxKey, enrichedLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequireSystemRole guards privileged routes (issuance, reconciliation).
// Must run after AuthMiddleware.
func RequireSystemRole() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipalFromCtx(c.Request.Context())
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		if !principal.IsSystem() {
			GetLoggerFromCtx(c.Request.Context()).Warn("Non-system principal on privileged route")
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "System role required"})
			return
		}
		c.Next()
	}
}
