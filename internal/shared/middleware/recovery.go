package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"novinky-backend/internal/shared/response"
	"novinky-backend/pkg/logger"
)

// Recovery turns a handler panic into the shared 500 envelope instead
// of dropping the connection.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error("panic recovered", fmt.Errorf("%s %s [%s]: %v",
					c.Request.Method, c.Request.URL.Path, c.GetString("request_id"), rec))

				response.ErrorResponse(c, http.StatusInternalServerError, "SYS_001", "Internal server error")
				c.Abort()
			}
		}()

		c.Next()
	}
}
