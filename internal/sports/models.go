package sports

import (
	"time"

	"github.com/google/uuid"
)

// Sport is a named activity category. Seeded administratively and immutable
// after creation; end users never create sports.
type Sport struct {
	ID        uuid.UUID `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	Name      string    `json:"sport_name" gorm:"column:sport_name;uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Sport) TableName() string {
	return "sports"
}

// SportResponse is the catalog listing shape.
type SportResponse struct {
	ID   string `json:"id"`
	Name string `json:"sport_name"`
}

func (s *Sport) ToResponse() SportResponse {
	return SportResponse{
		ID:   s.ID.String(),
		Name: s.Name,
	}
}
