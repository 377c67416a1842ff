package reservations

import (
	"time"

	"campusmind/internal/courts"
	"campusmind/internal/sports"
	"campusmind/internal/users"

	"github.com/google/uuid"
)

// Reservation is a claim on one logical court for one civil date and one
// contiguous time range. Date is a plain YYYY-MM-DD string and the times are
// canonical 24-hour "HH:MM" values, so range comparisons work directly in
// SQL. A nil UserID marks a staff-created walk-in; UserName then carries the
// free-text display name.
type Reservation struct {
	ID        uuid.UUID  `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	UserID    *uuid.UUID `json:"user_id,omitempty" gorm:"type:uuid;index"`
	SportID   uuid.UUID  `json:"sport_id" gorm:"type:uuid;not null"`
	CourtID   uuid.UUID  `json:"court_id" gorm:"type:uuid;index;not null"`
	Date      string     `json:"date" gorm:"type:varchar(10);index;not null"`
	StartTime string     `json:"start_time" gorm:"type:varchar(5);not null"`
	EndTime   string     `json:"end_time" gorm:"type:varchar(5);not null"`
	UserName  string     `json:"userName,omitempty" gorm:"column:user_name"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	User  *users.User   `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Sport *sports.Sport `json:"sport,omitempty" gorm:"foreignKey:SportID;constraint:OnDelete:RESTRICT;"`
	Court *courts.Court `json:"court,omitempty" gorm:"foreignKey:CourtID;constraint:OnDelete:RESTRICT;"`
}

func (Reservation) TableName() string {
	return "reservations"
}

// IsWalkIn reports whether this reservation was created at the front desk
// for an unregistered visitor.
func (r *Reservation) IsWalkIn() bool {
	return r.UserID == nil
}

// OwnedBy reports whether the given user owns this reservation. Walk-ins
// have no owner.
func (r *Reservation) OwnedBy(userID uuid.UUID) bool {
	return r.UserID != nil && *r.UserID == userID
}

// Actor identifies who is attempting an operation: a registered member, or
// staff acting with override authority (walk-ins, front-desk fixes).
type Actor struct {
	UserID *uuid.UUID
	Staff  bool
}

// MemberActor builds an actor for a registered user.
func MemberActor(userID uuid.UUID) Actor {
	return Actor{UserID: &userID}
}

// StaffActor builds an actor with staff override authority.
func StaffActor(userID uuid.UUID) Actor {
	return Actor{UserID: &userID, Staff: true}
}

// CanManage reports whether the actor may modify or cancel the reservation.
func (a Actor) CanManage(r *Reservation) bool {
	if a.Staff {
		return true
	}
	return a.UserID != nil && r.OwnedBy(*a.UserID)
}
