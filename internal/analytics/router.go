package analytics

import (
	"medq/internal/shared/config"
	"medq/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// Router handles analytics routes
type Router struct {
	controller *Controller
	config     *config.Config
}

func NewRouter(controller *Controller, cfg *config.Config) *Router {
	return &Router{
		controller: controller,
		config:     cfg,
	}
}

// SetupRoutes registers all analytics routes
func (analyticsRouter *Router) SetupRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/analytics")
	group.Use(middleware.JWTAuthWithConfig(analyticsRouter.config))
	{
		// Doctors see their facility's day; overview and exports are
		// admin territory
		staff := group.Group("")
		staff.Use(middleware.RequireStaff())
		{
			staff.GET("/slots", analyticsRouter.controller.SlotDashboard)
		}

		admin := group.Group("")
		admin.Use(middleware.RequireAdmin())
		{
			admin.GET("/overview", analyticsRouter.controller.Overview)
			admin.GET("/export", analyticsRouter.controller.ExportCSV)
		}
	}
}
