package middleware

import (
	"net/http"
	"strings"

	"reviewhub/internal/httpapi/models"
	"reviewhub/internal/httpapi/policy"
	"reviewhub/internal/httpapi/service"

	"github.com/gin-gonic/gin"
)

const actorKey = "actor"

// Actor returns the authenticated identity set by the auth middleware,
// or nil for an anonymous request.
func Actor(c *gin.Context) *models.User {
	v, exists := c.Get(actorKey)
	if !exists {
		return nil
	}
	actor, _ := v.(*models.User)
	return actor
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// RequireAuth resolves the bearer token to an identity and aborts with
// 401 when it is missing or invalid.
func RequireAuth(auth service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or malformed authorization header"})
			c.Abort()
			return
		}

		actor, err := auth.ResolveActor(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		c.Set(actorKey, actor)
		c.Next()
	}
}

// Authorize consults the capability table for role-gated operations
// where ownership plays no part (catalog writes, user administration).
func Authorize(action policy.Action, resource policy.Resource) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := Actor(c)
		if !policy.Can(policy.RoleOf(actor), action, resource, false) {
			if actor == nil {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			} else {
				c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
			}
			c.Abort()
			return
		}
		c.Next()
	}
}
