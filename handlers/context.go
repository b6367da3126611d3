package handlers

import (
	"net/http"

	"propcare/middleware"
	"propcare/services/access"
	"propcare/utils"

	"github.com/gin-gonic/gin"
)

// requestContext fetches the per-request snapshot, aborting when the route
// was wired without RequestContextMiddleware.
func requestContext(c *gin.Context) (access.RequestContext, bool) {
	rc, ok := middleware.RequestContextFrom(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "User not authenticated", "")
		return access.RequestContext{}, false
	}
	return rc, true
}
