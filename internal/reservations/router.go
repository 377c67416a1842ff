package reservations

import (
	"campusmind/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupReservationRoutes configures the reservation routes
func SetupReservationRoutes(rg *gin.RouterGroup, controller *Controller) {
	reservations := rg.Group("/reservations")
	reservations.Use(middleware.JWTAuth())
	{
		reservations.POST("", controller.CreateReservation)       // POST /api/v1/reservations
		reservations.GET("", controller.ListReservations)         // GET /api/v1/reservations
		reservations.GET("/:id", controller.GetReservation)       // GET /api/v1/reservations/:id
		reservations.PUT("/:id", controller.ModifyReservation)    // PUT /api/v1/reservations/:id
		reservations.DELETE("/:id", controller.CancelReservation) // DELETE /api/v1/reservations/:id

		// Front-desk only: book on behalf of an unregistered visitor.
		reservations.POST("/walk-in", middleware.RequireStaff(), controller.CreateWalkIn)
	}
}
