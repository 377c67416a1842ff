package equipment

import (
	"campusmind/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupEquipmentRoutes configures the equipment inventory routes
func SetupEquipmentRoutes(rg *gin.RouterGroup, controller *Controller) {
	equipment := rg.Group("/equipment")
	equipment.Use(middleware.JWTAuth())
	{
		equipment.GET("/sport/:sportName", controller.ListBySport) // GET /api/v1/equipment/sport/:sportName
		equipment.POST("/:id/checkout", controller.Checkout)       // POST /api/v1/equipment/:id/checkout
		equipment.POST("/:id/return", controller.Return)           // POST /api/v1/equipment/:id/return
	}
}
