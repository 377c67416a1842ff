package sports

import (
	"campusmind/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupSportRoutes configures the sport catalog routes
func SetupSportRoutes(rg *gin.RouterGroup, controller *Controller) {
	sports := rg.Group("/sports")
	sports.Use(middleware.JWTAuth())
	{
		sports.GET("", controller.ListSports) // GET /api/v1/sports
	}
}
