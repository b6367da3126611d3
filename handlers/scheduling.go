package handlers

import (
	"context"
	"net/http"

	"propcare/models"
	"propcare/services/access"
	"propcare/services/scheduling"
	"propcare/utils"

	"github.com/gin-gonic/gin"
)

// SchedulingService is the appointment surface of services/scheduling.
type SchedulingService interface {
	RankProposals(ctx context.Context, rc access.RequestContext, caseID string) ([]models.MatchResult, error)
	DayGrid(ctx context.Context, rc access.RequestContext, caseID, date string) (*scheduling.DayGrid, error)
	ConfirmSelection(ctx context.Context, rc access.RequestContext, caseID string, sel models.SelectedInterval) (*scheduling.Confirmation, error)
	AcceptTopMatch(ctx context.Context, rc access.RequestContext, caseID string) (*scheduling.Confirmation, error)
}

type SchedulingHandler struct {
	Service SchedulingService
}

func NewSchedulingHandler(s SchedulingService) *SchedulingHandler {
	return &SchedulingHandler{Service: s}
}

// RankProposalsHandler returns the tenant's proposals best first.
func (h *SchedulingHandler) RankProposalsHandler(c *gin.Context) {
	rc, ok := requestContext(c)
	if !ok {
		return
	}
	ranked, err := h.Service.RankProposals(c.Request.Context(), rc, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"matches": ranked})
}

func (h *SchedulingHandler) DayGridHandler(c *gin.Context) {
	rc, ok := requestContext(c)
	if !ok {
		return
	}
	date := c.Query("date")
	if date == "" {
		utils.JSONError(c, http.StatusBadRequest, "Missing date", "expected ?date=YYYY-MM-DD")
		return
	}
	grid, err := h.Service.DayGrid(c.Request.Context(), rc, c.Param("id"), date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, grid)
}

func (h *SchedulingHandler) ConfirmSelectionHandler(c *gin.Context) {
	rc, ok := requestContext(c)
	if !ok {
		return
	}
	var sel models.SelectedInterval
	if err := c.ShouldBindJSON(&sel); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	conf, err := h.Service.ConfirmSelection(c.Request.Context(), rc, c.Param("id"), sel)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, conf)
}

func (h *SchedulingHandler) AcceptTopMatchHandler(c *gin.Context) {
	rc, ok := requestContext(c)
	if !ok {
		return
	}
	conf, err := h.Service.AcceptTopMatch(c.Request.Context(), rc, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, conf)
}
