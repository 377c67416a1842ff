package sports

import (
	"net/http"

	"campusmind/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// ListSports handles GET /api/v1/sports
func (c *Controller) ListSports(ctx *gin.Context) {
	sports, err := c.service.ListSports(ctx.Request.Context())
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to fetch sports", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Sports retrieved successfully", sports, nil)
}
