package reservations

// CreateReservationRequest is a member booking. The time window arrives
// either as the combined human-facing range string or as canonical 24-hour
// bounds; exactly the same admission pipeline runs either way.
type CreateReservationRequest struct {
	SportName string `json:"sport_name" validate:"required"`
	CourtName string `json:"court_name" validate:"required"`
	Date      string `json:"date" validate:"required"`
	Time      string `json:"time,omitempty"`
	StartTime string `json:"start_time,omitempty"`
	EndTime   string `json:"end_time,omitempty"`
}

// WalkInRequest is a staff-created booking for an unregistered visitor.
type WalkInRequest struct {
	SportName string `json:"sport_name" validate:"required"`
	CourtName string `json:"court_name" validate:"required"`
	Date      string `json:"date" validate:"required"`
	Time      string `json:"time,omitempty"`
	StartTime string `json:"start_time,omitempty"`
	EndTime   string `json:"end_time,omitempty"`
	UserName  string `json:"userName,omitempty"`
}

// ModifyReservationRequest overwrites sport/court/date/time of an existing
// reservation after the admission pipeline re-approves the new slot.
type ModifyReservationRequest struct {
	SportName string `json:"sport_name" validate:"required"`
	CourtName string `json:"court_name" validate:"required"`
	Date      string `json:"date" validate:"required"`
	Time      string `json:"time,omitempty"`
	StartTime string `json:"start_time,omitempty"`
	EndTime   string `json:"end_time,omitempty"`
}
