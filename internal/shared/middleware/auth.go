package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"novinky-backend/pkg/jwt"
)

const authCookie = "novinky_auth"

// Identity is the opaque identity attached to each authenticated request.
// Issued by the authentication collaborator, trusted without re-verification.
type Identity struct {
	Username           string
	AuthorName         string
	Role               string
	MustChangePassword bool
}

const identityKey = "identity"

// Auth validates the signed identity token from the auth cookie (or the
// Authorization bearer header) and attaches the Identity to the context.
func Auth(manager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			if cookie, err := c.Cookie(authCookie); err == nil {
				token = cookie
			}
		}
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "missing credentials"})
			c.Abort()
			return
		}

		claims, err := manager.ValidateToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "invalid token"})
			c.Abort()
			return
		}

		c.Set(identityKey, Identity{
			Username:           claims.Username,
			AuthorName:         claims.AuthorName,
			Role:               claims.Role,
			MustChangePassword: claims.MustChangePassword,
		})

		c.Next()
	}
}

// IdentityFrom returns the request identity set by Auth.
func IdentityFrom(c *gin.Context) (Identity, bool) {
	v, exists := c.Get(identityKey)
	if !exists {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}

func bearerToken(c *gin.Context) string {
	const prefix = "Bearer "
	h := c.GetHeader("Authorization")
	if len(h) > len(prefix) && h[:len(prefix)] == prefix {
		return h[len(prefix):]
	}
	return ""
}
