package authorization

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const contextKeyUserRole = "user_role"

// RequireCapability aborts with 403 unless the authenticated role (set by the
// auth middleware) holds capability.
func RequireCapability(checker Checker, capability Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := UserRole(c.GetString(contextKeyUserRole))
		if !checker.Can(role, capability) {
			abortForbidden(c)
			return
		}
		c.Next()
	}
}

// RequireRole aborts with 403 unless the authenticated role ranks at or
// above min.
func RequireRole(min UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !RoleFromContext(c).AtLeast(min) {
			abortForbidden(c)
			return
		}
		c.Next()
	}
}

func abortForbidden(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
		"success": false,
		"error": gin.H{
			"type":    "forbidden",
			"message": "insufficient permissions",
		},
	})
}

// RoleFromContext returns the role stored by the auth middleware.
func RoleFromContext(c *gin.Context) UserRole {
	return UserRole(c.GetString(contextKeyUserRole))
}
