package middlewares

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quickbite/backend/utils"
)

// RequireRole gates a route group to the listed roles.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("unauthorized"))
			c.Abort()
			return
		}

		roleStr, ok := role.(string)
		if !ok || !allowed[roleStr] {
			utils.RespondError(c, http.StatusForbidden, errors.New("access denied"))
			c.Abort()
			return
		}

		c.Next()
	}
}
