package users

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	// RoleMember is a regular campus member booking for themselves.
	RoleMember Role = "MEMBER"
	// RoleStaff is front-desk staff: walk-in bookings, overrides.
	RoleStaff Role = "STAFF"
)

type User struct {
	ID        uuid.UUID `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	FirstName string    `json:"first_name" gorm:"not null"`
	LastName  string    `json:"last_name" gorm:"not null"`
	CID       string    `json:"cid" gorm:"column:cid;uniqueIndex;not null"` // campus ID
	Password  string    `json:"-" gorm:"not null"`                         // hide in json
	Role      Role      `json:"role" gorm:"not null;default:'MEMBER'"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

func IsValidRole(role string) bool {
	switch role {
	case string(RoleMember), string(RoleStaff):
		return true
	default:
		return false
	}
}

func (u *User) IsStaff() bool {
	return u.Role == RoleStaff
}
