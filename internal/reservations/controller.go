package reservations

import (
	"errors"
	"net/http"

	"campusmind/internal/shared/utils/response"
	"campusmind/internal/users"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type Controller struct {
	service   Service
	validator *validator.Validate
}

func NewController(service Service) *Controller {
	return &Controller{
		service:   service,
		validator: validator.New(),
	}
}

// CreateReservation handles POST /api/v1/reservations
func (c *Controller) CreateReservation(ctx *gin.Context) {
	actor, ok := actorFromContext(ctx)
	if !ok {
		return
	}

	var req CreateReservationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	reservation, err := c.service.CreateReservation(ctx.Request.Context(), *actor.UserID, req)
	if err != nil {
		c.respondError(ctx, err, "Failed to create reservation")
		return
	}
	response.RespondJSON(ctx, "success", http.StatusCreated, "Reservation created successfully", reservation, nil)
}

// CreateWalkIn handles POST /api/v1/reservations/walk-in (staff only)
func (c *Controller) CreateWalkIn(ctx *gin.Context) {
	actor, ok := actorFromContext(ctx)
	if !ok {
		return
	}

	var req WalkInRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	reservation, err := c.service.CreateWalkIn(ctx.Request.Context(), actor, req)
	if err != nil {
		c.respondError(ctx, err, "Failed to create walk-in reservation")
		return
	}
	response.RespondJSON(ctx, "success", http.StatusCreated, "Walk-in reservation created successfully", reservation, nil)
}

// ListReservations handles GET /api/v1/reservations.
// Members see their own bookings; staff see the whole schedule.
func (c *Controller) ListReservations(ctx *gin.Context) {
	actor, ok := actorFromContext(ctx)
	if !ok {
		return
	}

	var (
		reservations []ReservationResponse
		err          error
	)
	if actor.Staff {
		reservations, err = c.service.ListAllReservations(ctx.Request.Context())
	} else {
		reservations, err = c.service.ListUserReservations(ctx.Request.Context(), *actor.UserID)
	}
	if err != nil {
		c.respondError(ctx, err, "Failed to fetch reservations")
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Reservations retrieved successfully", reservations, nil)
}

// GetReservation handles GET /api/v1/reservations/:id
func (c *Controller) GetReservation(ctx *gin.Context) {
	actor, ok := actorFromContext(ctx)
	if !ok {
		return
	}
	id, ok := reservationID(ctx)
	if !ok {
		return
	}

	reservation, err := c.service.GetReservation(ctx.Request.Context(), actor, id)
	if err != nil {
		c.respondError(ctx, err, "Failed to fetch reservation")
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Reservation retrieved successfully", reservation, nil)
}

// ModifyReservation handles PUT /api/v1/reservations/:id
func (c *Controller) ModifyReservation(ctx *gin.Context) {
	actor, ok := actorFromContext(ctx)
	if !ok {
		return
	}
	id, ok := reservationID(ctx)
	if !ok {
		return
	}

	var req ModifyReservationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	reservation, err := c.service.ModifyReservation(ctx.Request.Context(), actor, id, req)
	if err != nil {
		c.respondError(ctx, err, "Failed to modify reservation")
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Reservation modified successfully", reservation, nil)
}

// CancelReservation handles DELETE /api/v1/reservations/:id
func (c *Controller) CancelReservation(ctx *gin.Context) {
	actor, ok := actorFromContext(ctx)
	if !ok {
		return
	}
	id, ok := reservationID(ctx)
	if !ok {
		return
	}

	if err := c.service.CancelReservation(ctx.Request.Context(), actor, id); err != nil {
		c.respondError(ctx, err, "Failed to cancel reservation")
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Reservation cancelled successfully", nil, nil)
}

// actorFromContext builds the acting identity from the JWT claims the auth
// middleware stored on the request.
func actorFromContext(ctx *gin.Context) (Actor, bool) {
	userIDInterface, exists := ctx.Get("user_id")
	if !exists {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return Actor{}, false
	}
	userIDStr, ok := userIDInterface.(string)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Invalid user ID format", nil, nil)
		return Actor{}, false
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid user ID", nil, nil)
		return Actor{}, false
	}

	if role, exists := ctx.Get("user_role"); exists {
		if roleStr, ok := role.(string); ok && roleStr == string(users.RoleStaff) {
			return StaffActor(userID), true
		}
	}
	return MemberActor(userID), true
}

func reservationID(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid reservation ID", nil, nil)
		return uuid.Nil, false
	}
	return id, true
}

func (c *Controller) respondError(ctx *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrMissingParameter),
		errors.Is(err, ErrInvalidTimeFormat),
		errors.Is(err, ErrInvalidDate),
		errors.Is(err, ErrBackwardsRange),
		errors.Is(err, ErrReservationInPast):
		response.RespondJSON(ctx, "error", http.StatusBadRequest, err.Error(), nil, nil)
	case errors.Is(err, ErrSportNotFound),
		errors.Is(err, ErrCourtNotFound),
		errors.Is(err, ErrReservationNotFound):
		response.RespondJSON(ctx, "error", http.StatusNotFound, err.Error(), nil, nil)
	case errors.Is(err, ErrDuplicateReservation),
		errors.Is(err, ErrTimeConflict):
		response.RespondJSON(ctx, "error", http.StatusConflict, err.Error(), nil, nil)
	case errors.Is(err, ErrNotAuthorized):
		response.RespondJSON(ctx, "error", http.StatusForbidden, err.Error(), nil, nil)
	case errors.Is(err, ErrStoreUnavailable):
		response.RespondJSON(ctx, "error", http.StatusServiceUnavailable, "Reservation store temporarily unavailable", nil, nil)
	default:
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, fallback, nil, nil)
	}
}
