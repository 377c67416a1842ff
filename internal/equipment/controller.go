package equipment

import (
	"errors"
	"net/http"

	"campusmind/internal/shared/utils/response"
	"campusmind/internal/sports"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// ListBySport handles GET /api/v1/equipment/sport/:sportName
func (c *Controller) ListBySport(ctx *gin.Context) {
	equipment, err := c.service.ListBySport(ctx.Request.Context(), ctx.Param("sportName"))
	if err != nil {
		c.respondError(ctx, err, "Failed to fetch sport equipment")
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Sport equipment retrieved successfully", equipment, nil)
}

// Checkout handles POST /api/v1/equipment/:id/checkout
func (c *Controller) Checkout(ctx *gin.Context) {
	id, ok := equipmentID(ctx)
	if !ok {
		return
	}

	equipment, err := c.service.Checkout(ctx.Request.Context(), id)
	if err != nil {
		c.respondError(ctx, err, "Failed to check out equipment")
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Equipment checked out successfully", equipment, nil)
}

// Return handles POST /api/v1/equipment/:id/return
func (c *Controller) Return(ctx *gin.Context) {
	id, ok := equipmentID(ctx)
	if !ok {
		return
	}

	equipment, err := c.service.Return(ctx.Request.Context(), id)
	if err != nil {
		c.respondError(ctx, err, "Failed to return equipment")
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Equipment returned successfully", equipment, nil)
}

func equipmentID(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid equipment ID", nil, nil)
		return uuid.Nil, false
	}
	return id, true
}

func (c *Controller) respondError(ctx *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrMissingParameter):
		response.RespondJSON(ctx, "error", http.StatusBadRequest, err.Error(), nil, nil)
	case errors.Is(err, sports.ErrSportNotFound):
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Sport not found.", nil, nil)
	case errors.Is(err, ErrEquipmentNotFound):
		response.RespondJSON(ctx, "error", http.StatusNotFound, err.Error(), nil, nil)
	case errors.Is(err, ErrEquipmentExhausted), errors.Is(err, ErrNothingCheckedOut):
		response.RespondJSON(ctx, "error", http.StatusConflict, err.Error(), nil, nil)
	default:
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, fallback, nil, nil)
	}
}
