package handlers

import (
	"errors"
	"net/http"

	"propcare/services/access"
	"propcare/services/cases"
	"propcare/services/interval"
	"propcare/services/matching"
	"propcare/services/scheduling"
	"propcare/services/session"
	"propcare/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError maps service errors to HTTP statuses. Access failures carry
// no body so a hidden record looks the same as a missing one.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, access.ErrAccessDenied),
		errors.Is(err, access.ErrImpersonationStateInconsistent),
		errors.Is(err, session.ErrNotSuperAdmin):
		c.AbortWithStatus(http.StatusForbidden)
	case errors.Is(err, interval.ErrMalformedInterval),
		errors.Is(err, cases.ErrUnknownUnit),
		errors.Is(err, cases.ErrInvalidDuration),
		errors.Is(err, scheduling.ErrInvalidDate):
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
	case errors.Is(err, matching.ErrNoOverlappingProposal):
		utils.JSONError(c, http.StatusUnprocessableEntity, "Selection does not overlap any proposed slot", "")
	case errors.Is(err, matching.ErrNoFullyFreeSlot),
		errors.Is(err, matching.ErrNoProposals),
		errors.Is(err, scheduling.ErrNoContractor):
		utils.JSONError(c, http.StatusConflict, "Cannot schedule case", err.Error())
	case errors.Is(err, session.ErrUnknownOrg):
		utils.JSONError(c, http.StatusNotFound, "Organization not found", "")
	default:
		zap.L().Error("Request failed", zap.String("path", c.FullPath()), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", "")
	}
}
