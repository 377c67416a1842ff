package courts

import (
	"errors"
	"net/http"

	"campusmind/internal/shared/timeslot"
	"campusmind/internal/shared/utils/response"
	"campusmind/internal/sports"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// ListCourts handles GET /api/v1/courts
func (c *Controller) ListCourts(ctx *gin.Context) {
	courts, err := c.service.ListCourts(ctx.Request.Context())
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to fetch courts", nil, nil)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Courts retrieved successfully", courts, nil)
}

// ListCourtsBySport handles GET /api/v1/courts/sport/:sportName
func (c *Controller) ListCourtsBySport(ctx *gin.Context) {
	sportName := ctx.Param("sportName")

	courts, err := c.service.ListCourtsBySport(ctx.Request.Context(), sportName)
	if err != nil {
		c.respondError(ctx, err, "Failed to fetch courts for sport")
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Courts retrieved successfully", courts, nil)
}

// FindAvailableCourts handles GET /api/v1/courts/available.
//
// The time window arrives either as a combined range string
// (?time=1:30 PM - 2:30 PM) or as canonical 24-hour bounds
// (?start_time=13:30&end_time=14:30).
func (c *Controller) FindAvailableCourts(ctx *gin.Context) {
	sportName := ctx.Query("sport")
	date := ctx.Query("date")
	startTime := ctx.Query("start_time")
	endTime := ctx.Query("end_time")

	if rangeStr := ctx.Query("time"); rangeStr != "" {
		var err error
		startTime, endTime, err = timeslot.ParseRange(rangeStr)
		if err != nil {
			response.RespondJSON(ctx, "error", http.StatusBadRequest,
				"Invalid time format. Expected 'H:MM AM/PM - H:MM AM/PM'.", nil, nil)
			return
		}
	}

	courts, err := c.service.FindAvailableCourts(ctx.Request.Context(), sportName, date, startTime, endTime)
	if err != nil {
		c.respondError(ctx, err, "Failed to check court availability")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Available courts retrieved successfully", courts, nil)
}

func (c *Controller) respondError(ctx *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrMissingParameter):
		response.RespondJSON(ctx, "error", http.StatusBadRequest,
			"All parameters (sport, date, start_time, end_time) are required.", nil, nil)
	case errors.Is(err, ErrInvalidDate):
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid date format.", nil, nil)
	case errors.Is(err, ErrInvalidTimeFormat):
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid time format.", nil, nil)
	case errors.Is(err, sports.ErrSportNotFound):
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Sport not found.", nil, nil)
	case errors.Is(err, ErrCourtNotFound):
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Court not found.", nil, nil)
	default:
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, fallback, nil, nil)
	}
}
