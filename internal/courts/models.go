package courts

import (
	"time"

	"campusmind/internal/sports"

	"github.com/google/uuid"
)

// Court is a logical, bookable unit. Several logical courts can share one
// physical floor: the whole-court entry "Court A" (Basketball) and the
// sub-courts "Court A-1"/"Court A-2" (Badminton, Pickleball) all carry the
// same GroupKey. GroupKey is stored explicitly rather than re-derived from
// the name on every check; the seeder computes it once via GroupKeyFor.
type Court struct {
	ID          uuid.UUID `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	Name        string    `json:"court_name" gorm:"column:court_name;not null;index"`
	GroupKey    string    `json:"group_key" gorm:"column:group_key;not null;index"`
	SportID     uuid.UUID `json:"sport_id" gorm:"type:uuid;index;not null"`
	IsAvailable bool      `json:"is_available" gorm:"default:true"`
	IsShared    bool      `json:"is_shared" gorm:"default:false"`
	SharedWith  []string  `json:"shared_with" gorm:"serializer:json"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Sport *sports.Sport `json:"sport,omitempty" gorm:"foreignKey:SportID;constraint:OnDelete:RESTRICT;"`
}

func (Court) TableName() string {
	return "courts"
}

// IsWholeCourt reports whether this logical court is the whole physical
// floor (its name is the bare group key, e.g. "Court A" as opposed to
// "Court A-1"). Reserving a whole court blocks every sub-court in the group,
// and any sub-court reservation blocks the whole court.
func (c *Court) IsWholeCourt() bool {
	return c.Name == c.GroupKey
}

// CourtResponse is the shape returned by catalog and availability queries,
// carrying the shared/shared-with metadata the clients display.
type CourtResponse struct {
	ID          string   `json:"id"`
	CourtName   string   `json:"court_name"`
	SportName   string   `json:"sport_name"`
	GroupKey    string   `json:"group_key"`
	IsAvailable bool     `json:"is_available"`
	IsShared    bool     `json:"is_shared"`
	SharedWith  []string `json:"shared_with"`
}

func (c *Court) ToResponse() CourtResponse {
	resp := CourtResponse{
		ID:          c.ID.String(),
		CourtName:   c.Name,
		GroupKey:    c.GroupKey,
		IsAvailable: c.IsAvailable,
		IsShared:    c.IsShared,
		SharedWith:  c.SharedWith,
	}
	if resp.SharedWith == nil {
		resp.SharedWith = []string{}
	}
	if c.Sport != nil {
		resp.SportName = c.Sport.Name
	}
	return resp
}
