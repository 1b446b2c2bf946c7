package facilities

import (
	"medq/internal/shared/config"
	"medq/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// Router handles facility-related routes
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

// SetupRoutes registers all facility routes
func (facilityRouter *Router) SetupRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/facilities")
	{
		// Public routes: patients browse facilities before submitting
		group.GET("", facilityRouter.controller.List)
		group.GET("/:id", facilityRouter.controller.GetByID)

		// Admin routes
		protected := group.Group("")
		protected.Use(middleware.JWTAuthWithConfig(facilityRouter.config), middleware.RequireAdmin())
		{
			protected.POST("", facilityRouter.controller.Create)
		}
	}
}
