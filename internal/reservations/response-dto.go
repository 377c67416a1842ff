package reservations

import "time"

// ReservationResponse is the booking shape returned to clients. Time carries
// the human-facing range string alongside the canonical bounds.
type ReservationResponse struct {
	ID        string    `json:"id"`
	SportName string    `json:"sport_name"`
	CourtName string    `json:"court_name"`
	Date      string    `json:"date"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	Time      string    `json:"time"`
	UserName  string    `json:"userName,omitempty"`
	WalkIn    bool      `json:"walk_in"`
	CreatedAt time.Time `json:"created_at"`
}
