package middleware

import (
	"net/http"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

// RequireRole wraps the access gate for route groups. The gate is
// re-evaluated on every request; nothing about the decision is cached.
func RequireRole(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch domain.Authorize(PrincipalFrom(c), roles...) {
		case domain.Allow:
			c.Next()
		case domain.DenyUnauthenticated:
			response.Error(c, http.StatusUnauthorized, "User not authenticated", nil)
			c.Abort()
		case domain.DenyWrongRole:
			response.Error(c, http.StatusForbidden, "You do not have access to this resource", nil)
			c.Abort()
		}
	}
}
