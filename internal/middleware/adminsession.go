package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/helpston-festival/festival-api/internal/service"
	appErrors "github.com/helpston-festival/festival-api/pkg/errors"
	"github.com/helpston-festival/festival-api/pkg/response"
)

// ContextAdminKey is the gin context key set for authenticated admin requests.
const ContextAdminKey = "adminSession"

// AdminSession protects routes by requiring a valid admin session cookie.
func AdminSession(authService *service.AdminAuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !authService.Enabled() {
			response.Error(c, appErrors.ErrAdminDisabled)
			c.Abort()
			return
		}

		token, err := c.Cookie(service.AdminSessionCookie)
		if err != nil || token == "" {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		if err := authService.ValidateSession(token); err != nil {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		c.Set(ContextAdminKey, true)
		c.Next()
	}
}
