package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Admin checks that the authenticated identity carries the admin role.
func Admin() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := IdentityFrom(c)
		if !ok || id.Role != "admin" {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"error":   "Access denied: admin role required",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
