package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/quochao170402/cekspek/auth"
)

const (
	ContextEmail = "email"
	ContextRole  = "role"
)

func abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"success": false, "message": message, "data": nil})
}

func AuthMiddleware(tokens *auth.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abort(c, http.StatusUnauthorized, "authorization header required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			abort(c, http.StatusUnauthorized, "invalid authorization format")
			return
		}

		id, err := tokens.ParseAccess(parts[1])
		if err != nil {
			abort(c, http.StatusUnauthorized, err.Error())
			return
		}

		c.Set(ContextEmail, id.Email)
		c.Set(ContextRole, id.Role)

		c.Next()
	}
}

func RequireRole(requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleValue, exists := c.Get(ContextRole)
		if !exists {
			abort(c, http.StatusUnauthorized, "unauthorized")
			return
		}

		role, ok := roleValue.(string)
		if !ok || role != requiredRole {
			abort(c, http.StatusForbidden, "forbidden, requires "+requiredRole)
			return
		}

		c.Next()
	}
}
