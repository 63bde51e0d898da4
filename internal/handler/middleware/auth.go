package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"calendar-booking/internal/handler/httperr"
	"calendar-booking/internal/usecase"

	"github.com/gin-gonic/gin"
)

const ctxAdminKey = "admin"

type AuthMiddleware struct {
	authenticator usecase.AdminAuthenticator
}

func NewAuthMiddleware(authenticator usecase.AdminAuthenticator) *AuthMiddleware {
	return &AuthMiddleware{
		authenticator: authenticator,
	}
}

// RequireAdmin accepts "Authorization: Bearer <token>" only.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			httperr.AbortWithError(c, http.StatusUnauthorized, errMissingToken, "unauthorized", nil)
			return
		}

		if err := m.authenticator.Authenticate(token); err != nil {
			slog.Warn("Admin authentication failed", "error", err.Error(), "client_ip", c.ClientIP())
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "unauthorized", nil)
			return
		}

		c.Set(ctxAdminKey, true)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(authHeader[len("Bearer "):])
	}
	return ""
}

func IsAdmin(c *gin.Context) bool {
	v, exists := c.Get(ctxAdminKey)
	if !exists {
		return false
	}
	ok, _ := v.(bool)
	return ok
}
