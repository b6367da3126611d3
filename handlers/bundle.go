package handlers

import (
	"propcare/middleware"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups the endpoint handlers and the middleware they share.
type HandlerBundle struct {
	Sessions middleware.Snapshotter

	// Case and property endpoints
	CreateCaseHandler     gin.HandlerFunc
	GetCaseHandler        gin.HandlerFunc
	ListCasesHandler      gin.HandlerFunc
	MarketplaceHandler    gin.HandlerFunc
	ListPropertiesHandler gin.HandlerFunc
	GetPropertyHandler    gin.HandlerFunc

	// Scheduling endpoints
	RankProposalsHandler    gin.HandlerFunc
	DayGridHandler          gin.HandlerFunc
	ConfirmSelectionHandler gin.HandlerFunc
	AcceptTopMatchHandler   gin.HandlerFunc

	// Admin endpoints
	AdminHandler *AdminHandler
}

func NewHandlerBundle(sessions middleware.Snapshotter, ch *CaseHandler, sh *SchedulingHandler, ah *AdminHandler) *HandlerBundle {
	return &HandlerBundle{
		Sessions: sessions,

		CreateCaseHandler:     ch.CreateCaseHandler,
		GetCaseHandler:        ch.GetCaseHandler,
		ListCasesHandler:      ch.ListCasesHandler,
		MarketplaceHandler:    ch.MarketplaceHandler,
		ListPropertiesHandler: ch.ListPropertiesHandler,
		GetPropertyHandler:    ch.GetPropertyHandler,

		RankProposalsHandler:    sh.RankProposalsHandler,
		DayGridHandler:          sh.DayGridHandler,
		ConfirmSelectionHandler: sh.ConfirmSelectionHandler,
		AcceptTopMatchHandler:   sh.AcceptTopMatchHandler,

		AdminHandler: ah,
	}
}
