package routes

import (
	"net/http"
	"time"

	"medq/internal/analytics"
	"medq/internal/auth"
	"medq/internal/facilities"
	"medq/internal/notifications"
	"medq/internal/patients"
	"medq/internal/shared/config"
	"medq/internal/shared/database"
	"medq/internal/tokens"
	"medq/pkg/cache"
	"medq/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config    *config.Config
	db        *database.DB
	publisher notifications.Publisher

	// Shared services wired once and injected across modules
	cacheService    cache.Service
	facilityService facilities.Service
	tokenService    tokens.Service
}

// NewRouter creates a new router instance. publisher may be nil when
// Kafka is disabled; intake then skips notifications.
func NewRouter(cfg *config.Config, db *database.DB, publisher notifications.Publisher) *Router {
	return &Router{
		config:    cfg,
		db:        db,
		publisher: publisher,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupSharedServices()

	// Health check and basic info endpoints
	r.setupHealthRoutes(engine)

	// API routes
	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupAuthRoutes(api)
		r.setupFacilityRoutes(api)
		r.setupPatientRoutes(api)
		r.setupAnalyticsRoutes(api)
	}
}

// setupSharedServices builds the services more than one module depends on.
// The token allocator runs on Redis when available and falls back to the
// in-process counter otherwise (single-instance deployments, tests).
func (r *Router) setupSharedServices() {
	if r.db.Redis != nil {
		r.cacheService = cache.NewService(r.db.GetRedis())
	}

	var counter tokens.CounterStore
	if r.db.Redis != nil {
		counter = tokens.NewRedisCounterStore(r.db.GetRedis())
	} else {
		logger.GetDefault().Warn("Redis unavailable, using in-memory token counter")
		counter = tokens.NewMemoryCounterStore()
	}
	r.tokenService = tokens.NewService(counter, logger.GetDefault())

	facilityRepo := facilities.NewRepository(r.db.GetPostgreSQL())
	r.facilityService = facilities.NewService(facilityRepo, r.cacheService)
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "medq-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "medq-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}

// setupAuthRoutes configures authentication routes
func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	authRepo := auth.NewRepository(r.db.GetPostgreSQL())
	authService := auth.NewService(authRepo, r.config)
	authController := auth.NewController(authService)
	authRouter := auth.NewRouter(authController, r.config)

	authRouter.SetupRoutes(rg)
}

// setupFacilityRoutes configures the facility catalog routes
func (r *Router) setupFacilityRoutes(rg *gin.RouterGroup) {
	facilityController := facilities.NewController(r.facilityService)
	facilityRouter := facilities.NewRouter(facilityController, r.config)

	facilityRouter.SetupRoutes(rg)
}

// setupPatientRoutes configures intake and queue listing routes
func (r *Router) setupPatientRoutes(rg *gin.RouterGroup) {
	patientRepo := patients.NewRepository(r.db.GetPostgreSQL())
	patientService := patients.NewService(patientRepo, r.facilityService, r.tokenService, r.publisher, logger.GetDefault())
	patientController := patients.NewController(patientService, r.tokenService)
	patientRouter := patients.NewRouter(patientController, r.config)

	patientRouter.SetupRoutes(rg)
}

// setupAnalyticsRoutes configures dashboard and export routes
func (r *Router) setupAnalyticsRoutes(rg *gin.RouterGroup) {
	analyticsRepo := analytics.NewRepository(r.db.GetPostgreSQL())
	analyticsService := analytics.NewService(analyticsRepo, r.cacheService, logger.GetDefault())
	analyticsController := analytics.NewController(analyticsService)
	analyticsRouter := analytics.NewRouter(analyticsController, r.config)

	analyticsRouter.SetupRoutes(rg)
}
