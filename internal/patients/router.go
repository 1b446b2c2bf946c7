package patients

import (
	"medq/internal/shared/config"
	"medq/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// Router handles patient intake and listing routes
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

// SetupRoutes registers all patient routes
func (patientRouter *Router) SetupRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/patients")
	{
		// Public intake: walk-ins submit without an account, logged-in
		// patients get the record linked via OptionalAuth
		group.POST("", middleware.OptionalAuthWithConfig(patientRouter.config), patientRouter.controller.Submit)
		group.GET("/slots", patientRouter.controller.Slots)

		// Staff routes: doctors and admins review the day's queue
		staff := group.Group("")
		staff.Use(middleware.JWTAuthWithConfig(patientRouter.config), middleware.RequireStaff())
		{
			staff.GET("", patientRouter.controller.List)
			staff.GET("/:id", patientRouter.controller.GetByID)
		}
	}
}
