package handlers

import (
	"context"
	"net/http"

	"propcare/models"
	"propcare/services/access"
	"propcare/utils"

	"github.com/gin-gonic/gin"
)

// CaseService is the read and intake surface of services/cases.
type CaseService interface {
	Create(ctx context.Context, rc access.RequestContext, in models.CaseIntake) (*models.MaintenanceCase, error)
	Get(ctx context.Context, rc access.RequestContext, id string) (*models.MaintenanceCase, error)
	List(ctx context.Context, rc access.RequestContext) ([]models.MaintenanceCase, error)
	Marketplace(ctx context.Context, rc access.RequestContext) ([]models.MaintenanceCase, error)
	ListProperties(ctx context.Context, rc access.RequestContext) ([]models.Property, error)
	GetProperty(ctx context.Context, rc access.RequestContext, id string) (*models.Property, error)
}

type CaseHandler struct {
	Service CaseService
}

func NewCaseHandler(s CaseService) *CaseHandler {
	return &CaseHandler{Service: s}
}

func (h *CaseHandler) CreateCaseHandler(c *gin.Context) {
	rc, ok := requestContext(c)
	if !ok {
		return
	}
	var in models.CaseIntake
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	created, err := h.Service.Create(c.Request.Context(), rc, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *CaseHandler) GetCaseHandler(c *gin.Context) {
	rc, ok := requestContext(c)
	if !ok {
		return
	}
	mc, err := h.Service.Get(c.Request.Context(), rc, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mc)
}

func (h *CaseHandler) ListCasesHandler(c *gin.Context) {
	rc, ok := requestContext(c)
	if !ok {
		return
	}
	list, err := h.Service.List(c.Request.Context(), rc)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cases": list})
}

func (h *CaseHandler) MarketplaceHandler(c *gin.Context) {
	rc, ok := requestContext(c)
	if !ok {
		return
	}
	list, err := h.Service.Marketplace(c.Request.Context(), rc)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cases": list})
}

func (h *CaseHandler) ListPropertiesHandler(c *gin.Context) {
	rc, ok := requestContext(c)
	if !ok {
		return
	}
	props, err := h.Service.ListProperties(c.Request.Context(), rc)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"properties": props})
}

func (h *CaseHandler) GetPropertyHandler(c *gin.Context) {
	rc, ok := requestContext(c)
	if !ok {
		return
	}
	p, err := h.Service.GetProperty(c.Request.Context(), rc, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}
