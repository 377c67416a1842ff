package courts

import (
	"campusmind/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupCourtRoutes configures the court catalog and availability routes
func SetupCourtRoutes(rg *gin.RouterGroup, controller *Controller) {
	courts := rg.Group("/courts")
	courts.Use(middleware.JWTAuth())
	{
		courts.GET("", controller.ListCourts)                       // GET /api/v1/courts
		courts.GET("/sport/:sportName", controller.ListCourtsBySport) // GET /api/v1/courts/sport/:sportName
		courts.GET("/available", controller.FindAvailableCourts)    // GET /api/v1/courts/available
	}
}
