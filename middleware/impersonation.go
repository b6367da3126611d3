package middleware

import (
	"context"
	"errors"
	"net/http"

	"propcare/models"
	"propcare/services/access"
	"propcare/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Snapshotter reads the caller's session state once per request.
type Snapshotter interface {
	Snapshot(ctx context.Context, p models.Principal) (access.RequestContext, error)
}

// RequestContextMiddleware freezes the principal and any impersonation into
// an access.RequestContext. Handlers never read session state themselves.
// Must run after JWTAuthMiddleware.
func RequestContextMiddleware(s Snapshotter) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := PrincipalFrom(c)
		if !ok {
			utils.JSONError(c, http.StatusUnauthorized, "User not authenticated", "")
			return
		}

		rc, err := s.Snapshot(c.Request.Context(), p)
		if err != nil {
			if errors.Is(err, access.ErrImpersonationStateInconsistent) {
				zap.L().Warn("Impersonation state inconsistent; denying request",
					zap.String("userID", p.UserID), zap.Error(err))
				c.AbortWithStatus(http.StatusForbidden)
				return
			}
			zap.L().Error("Failed to read session state", zap.String("userID", p.UserID), zap.Error(err))
			utils.JSONError(c, http.StatusServiceUnavailable, "Session state unavailable", "")
			return
		}

		c.Set(requestContextKey, rc)
		c.Next()
	}
}

// RequestContextFrom returns the snapshot stored by RequestContextMiddleware.
func RequestContextFrom(c *gin.Context) (access.RequestContext, bool) {
	v, ok := c.Get(requestContextKey)
	if !ok {
		return access.RequestContext{}, false
	}
	rc, ok := v.(access.RequestContext)
	return rc, ok
}
