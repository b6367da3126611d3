package handlers

import (
	"context"
	"net/http"

	"propcare/middleware"
	"propcare/models"
	"propcare/services/session"
	"propcare/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ImpersonationService is the admin-initiated side of services/session.
type ImpersonationService interface {
	Start(ctx context.Context, admin models.Principal, orgID string) (*session.ImpersonationRecord, error)
	Stop(ctx context.Context, admin models.Principal) error
	Current(ctx context.Context, adminUserID string) (*session.ImpersonationRecord, error)
}

// AdminHandler serves platform super admin operations.
type AdminHandler struct {
	Impersonation ImpersonationService
}

func NewAdminHandler(s ImpersonationService) *AdminHandler {
	return &AdminHandler{Impersonation: s}
}

type startImpersonationRequest struct {
	OrgID string `json:"orgId" binding:"required"`
}

func (ah *AdminHandler) StartImpersonationHandler(c *gin.Context) {
	admin, ok := middleware.PrincipalFrom(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "User not authenticated", "")
		return
	}
	var req startImpersonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	rec, err := ah.Impersonation.Start(c.Request.Context(), admin, req.OrgID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (ah *AdminHandler) StopImpersonationHandler(c *gin.Context) {
	admin, ok := middleware.PrincipalFrom(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "User not authenticated", "")
		return
	}
	if err := ah.Impersonation.Stop(c.Request.Context(), admin); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (ah *AdminHandler) ImpersonationStatusHandler(c *gin.Context) {
	admin, ok := middleware.PrincipalFrom(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "User not authenticated", "")
		return
	}
	rec, err := ah.Impersonation.Current(c.Request.Context(), admin.UserID)
	if err != nil {
		zap.L().Error("Failed to read impersonation state", zap.String("userID", admin.UserID), zap.Error(err))
		respondError(c, err)
		return
	}
	if rec == nil {
		c.JSON(http.StatusOK, gin.H{"active": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"active": true, "session": rec})
}
