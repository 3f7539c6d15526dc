package middleware

import (
	"context"
	"net/http"
	"strings"

	"finance-tracker/api/logger"
	"finance-tracker/api/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Context keys set by Auth.
const (
	ClaimsKey = "claims"
	UserIDKey = "userId"
)

// TokenParser verifies a bearer token.
type TokenParser interface {
	Parse(token string) (*models.Claims, error)
}

// UserChecker reports whether the account behind a token still exists.
type UserChecker interface {
	UserExists(ctx context.Context, userID string) (bool, error)
}

func abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, models.Response{Status: models.StatusFailed, Message: message})
}

// Auth rejects requests without a valid token for an existing user and stores
// the caller's id under UserIDKey.
func Auth(tokens TokenParser, users UserChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c.Request)
		if tokenString == "" {
			abort(c, http.StatusUnauthorized, "Access denied. No token provided.")
			return
		}

		claims, err := tokens.Parse(tokenString)
		if err != nil {
			logger.Get().Debug("token rejected", zap.Error(err))
			abort(c, http.StatusForbidden, "Invalid or expired token.")
			return
		}

		exists, err := users.UserExists(c.Request.Context(), claims.UserID)
		if err != nil {
			logger.Get().Error("error checking user", zap.String("user_id", claims.UserID), zap.Error(err))
			abort(c, http.StatusInternalServerError, "Internal server error")
			return
		}
		if !exists {
			abort(c, http.StatusUnauthorized, "User not found.")
			return
		}

		c.Set(ClaimsKey, claims)
		c.Set(UserIDKey, claims.UserID)
		c.Next()
	}
}

// UserID returns the id stored by Auth.
func UserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}

func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	return parts[1]
}
