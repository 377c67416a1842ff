package reservations

import "errors"

// Admission failures are deterministic validation outcomes: the first failing
// check short-circuits the pipeline and no retry will change the answer. The
// boundary layer maps each to a status and shows the message verbatim.
var (
	ErrInvalidTimeFormat    = errors.New("invalid time format, expected 'H:MM AM/PM - H:MM AM/PM'")
	ErrInvalidDate          = errors.New("invalid date format, expected YYYY-MM-DD")
	ErrBackwardsRange       = errors.New("end time must be after start time")
	ErrReservationInPast    = errors.New("reservation date and time cannot be in the past")
	ErrSportNotFound        = errors.New("sport not found")
	ErrCourtNotFound        = errors.New("court not found")
	ErrMissingParameter     = errors.New("required field is missing")
	ErrDuplicateReservation = errors.New("you already have an identical reservation for this date and time")
	ErrTimeConflict         = errors.New("time conflict with an existing reservation")
	ErrNotAuthorized        = errors.New("not authorized to manage this reservation")
	ErrReservationNotFound  = errors.New("reservation not found")
)

// ErrStoreUnavailable wraps store connectivity failures. Unlike the
// validation errors above it is safe to retry at the boundary: nothing has
// been written when it surfaces.
var ErrStoreUnavailable = errors.New("reservation store unavailable")
