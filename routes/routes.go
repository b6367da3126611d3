package routes

import (
	"net/http"
	"time"

	"propcare/handlers"
	"propcare/middleware"
	"propcare/models"
	"propcare/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterCaseRoutes registers case, marketplace and property reads.
func RegisterCaseRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	api.Use(middleware.JWTAuthMiddleware(), middleware.RequestContextMiddleware(hb.Sessions))
	{
		api.GET("/cases", hb.ListCasesHandler)
		api.POST("/cases", hb.CreateCaseHandler)
		api.GET("/cases/:id", hb.GetCaseHandler)

		api.GET("/marketplace/cases", middleware.RequireRole(models.RoleContractor), hb.MarketplaceHandler)

		api.GET("/properties", hb.ListPropertiesHandler)
		api.GET("/properties/:id", hb.GetPropertyHandler)
	}
}

// RegisterSchedulingRoutes registers the appointment matching endpoints.
func RegisterSchedulingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	sched := r.Group("/api/cases/:id/schedule")
	sched.Use(middleware.JWTAuthMiddleware(), middleware.RequestContextMiddleware(hb.Sessions))
	{
		sched.GET("/matches", hb.RankProposalsHandler)
		sched.GET("/grid", hb.DayGridHandler)
		sched.POST("/selection", hb.ConfirmSelectionHandler)
		sched.POST("/accept-top", hb.AcceptTopMatchHandler)
	}
}

// RegisterAdminRoutes sets up platform super admin endpoints.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.Use(middleware.JWTAuthMiddleware(), middleware.RequireRole(models.RolePlatformSuperAdmin))
		adminGroup.GET("/impersonation", hb.AdminHandler.ImpersonationStatusHandler)
		adminGroup.POST("/impersonation", hb.AdminHandler.StartImpersonationHandler)
		adminGroup.DELETE("/impersonation", hb.AdminHandler.StopImpersonationHandler)
	}
}

// RegisterHealthRoute reports the last backing store check.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		status := utils.GetHealthStatus()
		code := http.StatusOK
		if !status.Mongo {
			code = http.StatusServiceUnavailable
		}
		for _, ok := range status.Redis {
			if !ok {
				code = http.StatusServiceUnavailable
			}
		}
		c.JSON(code, gin.H{"status": http.StatusText(code), "checks": status})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", utils.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", utils.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterCaseRoutes(r, hb)
	RegisterSchedulingRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
}
