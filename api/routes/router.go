// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"campusmind/internal/auth"
	"campusmind/internal/courts"
	"campusmind/internal/equipment"
	"campusmind/internal/reservations"
	"campusmind/internal/shared/config"
	"campusmind/internal/shared/database"
	"campusmind/internal/sports"
	"campusmind/pkg/cache"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config       *config.Config
	db           *database.DB
	cacheService cache.Service

	// Cross-feature services wired during setup.
	sportService sports.Service
	courtService courts.Service
	resRepo      reservations.Repository
	jobs         *reservations.JobProcessor
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB) *Router {
	r := &Router{
		config: cfg,
		db:     db,
	}
	if db.GetRedisClient() != nil {
		r.cacheService = cache.NewService(db.GetRedisClient())
	}
	return r
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Health check and basic info endpoints
	r.setupHealthRoutes(engine)

	// API routes
	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupAuthRoutes(api)

		// Catalog routes come first: the reservation pipeline depends on
		// the sport and court services created here.
		r.setupSportRoutes(api)
		r.setupCourtRoutes(api)
		r.setupReservationRoutes(api)
		r.setupEquipmentRoutes(api)
	}
}

// Jobs returns the background job processor, created during route setup.
func (r *Router) Jobs() *reservations.JobProcessor {
	return r.jobs
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "campusmind-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "campusmind-backend",
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
	authRouter := auth.NewRouter(authController)

	authRouter.SetupRoutes(rg)
}

// setupSportRoutes configures the sport catalog routes
func (r *Router) setupSportRoutes(rg *gin.RouterGroup) {
	sportRepo := sports.NewRepository(r.db.GetPostgreSQL())
	sportService := sports.NewService(sportRepo)
	if r.cacheService != nil {
		sportService.SetCacheService(r.cacheService)
	}
	r.sportService = sportService

	sports.SetupSportRoutes(rg, sports.NewController(sportService))
}

// setupCourtRoutes configures court catalog and availability routes
func (r *Router) setupCourtRoutes(rg *gin.RouterGroup) {
	courtRepo := courts.NewRepository(r.db.GetPostgreSQL())
	courtService := courts.NewService(courtRepo, r.sportService)
	if r.cacheService != nil {
		courtService.SetCacheService(r.cacheService)
	}
	r.courtService = courtService

	courts.SetupCourtRoutes(rg, courts.NewController(courtService))
}

// setupReservationRoutes configures the reservation admission routes
func (r *Router) setupReservationRoutes(rg *gin.RouterGroup) {
	campusTZ, err := time.LoadLocation(r.config.Reservations.CampusTimezone)
	if err != nil {
		campusTZ = time.UTC
	}

	resRepo := reservations.NewRepository(r.db.GetPostgreSQL())
	r.resRepo = resRepo

	// Availability answers and admission decisions must agree, so the
	// courts service reads reservations through the finder adapter.
	r.courtService.SetReservationFinder(reservations.NewCourtFinder(resRepo))

	var locker reservations.AdmissionLocker
	if rdb := r.db.GetRedisClient(); rdb != nil {
		locker = reservations.NewRedisLocker(rdb, r.config.Reservations.LockTTL, r.config.Reservations.LockWait)
	} else {
		locker = reservations.NewLocalLocker()
	}

	courtRepo := courts.NewRepository(r.db.GetPostgreSQL())
	resService := reservations.NewService(resRepo, courtRepo, r.sportService, locker, campusTZ)
	if r.cacheService != nil {
		resService.SetCacheService(r.cacheService)
	}

	reservations.SetupReservationRoutes(rg, reservations.NewController(resService))

	r.jobs = reservations.NewJobProcessor(resRepo, &reservations.JobConfig{
		SweepInterval: r.config.Reservations.SweepInterval,
		RetentionDays: r.config.Reservations.RetentionDays,
		CampusTZ:      campusTZ,
	})
}

// setupEquipmentRoutes configures the equipment inventory routes
func (r *Router) setupEquipmentRoutes(rg *gin.RouterGroup) {
	equipmentRepo := equipment.NewRepository(r.db.GetPostgreSQL())
	equipmentService := equipment.NewService(equipmentRepo, r.sportService)

	equipment.SetupEquipmentRoutes(rg, equipment.NewController(equipmentService))
}
