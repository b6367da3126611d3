package middleware

import (
	"net/http"
	"strings"

	"propcare/models"
	"propcare/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	principalKey      = "principal"
	requestContextKey = "requestContext"
)

// JWTAuthMiddleware verifies the bearer token and stores the caller on the
// context.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.JSONError(c, http.StatusUnauthorized, "Missing or invalid Authorization header", "")
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		p, err := utils.PrincipalFromToken(tokenString)
		if err != nil {
			zap.L().Debug("Rejected bearer token", zap.Error(err))
			utils.JSONError(c, http.StatusUnauthorized, "Invalid token", "")
			return
		}

		c.Set(principalKey, p)
		c.Set("userID", p.UserID)
		c.Next()
	}
}

// PrincipalFrom returns the caller stored by JWTAuthMiddleware.
func PrincipalFrom(c *gin.Context) (models.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return models.Principal{}, false
	}
	p, ok := v.(models.Principal)
	return p, ok
}
