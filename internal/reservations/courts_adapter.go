package reservations

import (
	"context"

	"campusmind/internal/courts"

	"github.com/google/uuid"
)

// finderAdapter exposes the reservation store to the courts package as a
// courts.ReservationFinder, keeping the dependency one-directional.
type finderAdapter struct {
	repo Repository
}

// NewCourtFinder wraps the repository for injection into the courts service.
func NewCourtFinder(repo Repository) courts.ReservationFinder {
	return &finderAdapter{repo: repo}
}

func (a *finderAdapter) FindOverlappingSlots(ctx context.Context, date, startTime, endTime string, courtIDs []uuid.UUID) ([]courts.BookedSlot, error) {
	reservations, err := a.repo.FindOverlapping(ctx, date, startTime, endTime, courtIDs, nil)
	if err != nil {
		return nil, err
	}

	slots := make([]courts.BookedSlot, 0, len(reservations))
	for i := range reservations {
		r := &reservations[i]
		slot := courts.BookedSlot{
			CourtID:   r.CourtID,
			StartTime: r.StartTime,
			EndTime:   r.EndTime,
		}
		if r.Court != nil {
			slot.CourtName = r.Court.Name
			slot.GroupKey = r.Court.GroupKey
		}
		slots = append(slots, slot)
	}
	return slots, nil
}
