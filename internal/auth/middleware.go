package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ContextKeyAdmin holds whether the request carries an admin session.
const ContextKeyAdmin = "auth_admin"

// LoadAdmin copies the session's admin flag into the gin context. It must run
// after SessionLoadSave. A nil manager marks every request anonymous.
func (sm *SessionManager) LoadAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextKeyAdmin, sm != nil && sm.IsAdmin(c.Request))
		c.Next()
	}
}

// RequireAdmin rejects requests without an admin session with 401.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAdmin(c) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "authentication required",
				"code":    "unauthorized",
			})
			return
		}
		c.Next()
	}
}

// IsAdmin reports whether the request was authenticated as the admin.
func IsAdmin(c *gin.Context) bool {
	return c.GetBool(ContextKeyAdmin)
}
