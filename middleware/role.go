package middleware

import (
	"net/http"

	"propcare/models"
	"propcare/utils"

	"github.com/gin-gonic/gin"
)

// RequireRole admits only the listed roles. Must run after JWTAuthMiddleware.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	allowed := make(map[models.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		p, ok := PrincipalFrom(c)
		if !ok {
			utils.JSONError(c, http.StatusUnauthorized, "User not authenticated", "")
			return
		}
		if _, ok := allowed[p.Role]; !ok {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		c.Next()
	}
}
