package equipment

import (
	"time"

	"campusmind/internal/sports"

	"github.com/google/uuid"
)

// SportEquipment is a counted inventory line for one sport, e.g. 10
// basketballs. Quantity is what is on the shelf right now; TotalQuantity is
// the owned stock, so returns can never push the count above it.
type SportEquipment struct {
	ID            uuid.UUID `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	SportID       uuid.UUID `json:"sport_id" gorm:"type:uuid;index;not null"`
	Name          string    `json:"equipment_name" gorm:"column:equipment_name;not null"`
	Quantity      int       `json:"quantity" gorm:"not null"`
	TotalQuantity int       `json:"total_quantity" gorm:"not null"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Sport *sports.Sport `json:"sport,omitempty" gorm:"foreignKey:SportID;constraint:OnDelete:CASCADE;"`
}

func (SportEquipment) TableName() string {
	return "sport_equipment"
}

// EquipmentResponse is the client-facing inventory shape.
type EquipmentResponse struct {
	ID            string `json:"id"`
	SportName     string `json:"sport_name,omitempty"`
	Name          string `json:"equipment_name"`
	Quantity      int    `json:"quantity"`
	TotalQuantity int    `json:"total_quantity"`
}

func (e *SportEquipment) ToResponse() EquipmentResponse {
	resp := EquipmentResponse{
		ID:            e.ID.String(),
		Name:          e.Name,
		Quantity:      e.Quantity,
		TotalQuantity: e.TotalQuantity,
	}
	if e.Sport != nil {
		resp.SportName = e.Sport.Name
	}
	return resp
}
