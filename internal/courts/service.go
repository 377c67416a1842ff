package courts

import (
	"context"
	"errors"
	"fmt"

	"campusmind/internal/shared/constants"
	"campusmind/internal/shared/timeslot"
	"campusmind/internal/sports"
	"campusmind/pkg/cache"

	"github.com/google/uuid"
)

var (
	ErrMissingParameter  = errors.New("required parameter is missing")
	ErrInvalidTimeFormat = errors.New("invalid time format")
	ErrInvalidDate       = errors.New("invalid date")
)

// BookedSlot is the slice of an existing reservation the availability query
// needs: which court it holds and for what range.
type BookedSlot struct {
	CourtID   uuid.UUID
	CourtName string
	GroupKey  string
	StartTime string
	EndTime   string
}

// ReservationFinder is implemented by the reservations repository (via an
// adapter) so this package can see existing bookings without a circular
// dependency.
type ReservationFinder interface {
	FindOverlappingSlots(ctx context.Context, date, startTime, endTime string, courtIDs []uuid.UUID) ([]BookedSlot, error)
}

type Service interface {
	SetCacheService(cacheService cache.Service)
	SetReservationFinder(finder ReservationFinder)
	ListCourts(ctx context.Context) ([]CourtResponse, error)
	ListCourtsBySport(ctx context.Context, sportName string) ([]CourtResponse, error)
	FindAvailableCourts(ctx context.Context, sportName, date, startTime, endTime string) ([]CourtResponse, error)
}

type service struct {
	repo         Repository
	sportService sports.Service
	finder       ReservationFinder
	cacheService cache.Service
}

func NewService(repo Repository, sportService sports.Service) Service {
	return &service{
		repo:         repo,
		sportService: sportService,
	}
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) SetReservationFinder(finder ReservationFinder) {
	s.finder = finder
}

func (s *service) ListCourts(ctx context.Context) ([]CourtResponse, error) {
	if s.cacheService != nil {
		var cached []CourtResponse
		if err := s.cacheService.Get(ctx, constants.CacheKeyCourtsList, &cached); err == nil {
			return cached, nil
		}
	}

	courts, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	responses := toResponses(courts)

	if s.cacheService != nil {
		_ = s.cacheService.Set(ctx, constants.CacheKeyCourtsList, responses, constants.TTLCatalog)
	}
	return responses, nil
}

func (s *service) ListCourtsBySport(ctx context.Context, sportName string) ([]CourtResponse, error) {
	if sportName == "" {
		return nil, ErrMissingParameter
	}

	sport, err := s.sportService.GetSportByName(ctx, sportName)
	if err != nil {
		return nil, err
	}

	courts, err := s.repo.GetBySportID(ctx, sport.ID)
	if err != nil {
		return nil, err
	}
	return toResponses(courts), nil
}

// FindAvailableCourts returns the courts of sportName free on date for the
// half-open range [startTime, endTime). Conflicts are evaluated across the
// whole physical group of each candidate, so a badminton half-court booking
// removes the basketball floor and vice versa. An empty result is a valid
// outcome, not an error.
func (s *service) FindAvailableCourts(ctx context.Context, sportName, date, startTime, endTime string) ([]CourtResponse, error) {
	if sportName == "" || date == "" || startTime == "" || endTime == "" {
		return nil, ErrMissingParameter
	}
	if _, err := timeslot.ParseDate(date); err != nil {
		return nil, ErrInvalidDate
	}
	if !timeslot.IsCanonical(startTime) || !timeslot.IsCanonical(endTime) {
		return nil, ErrInvalidTimeFormat
	}

	cacheKey := constants.BuildAvailabilityKey(sportName, date, startTime, endTime)
	if s.cacheService != nil {
		var cached []CourtResponse
		if err := s.cacheService.Get(ctx, cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	sport, err := s.sportService.GetSportByName(ctx, sportName)
	if err != nil {
		return nil, err
	}

	candidates, err := s.repo.GetBySportID(ctx, sport.ID)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return []CourtResponse{}, nil
	}

	// Expand to every logical court sharing a physical group with a
	// candidate; their reservations all compete for the same floor space.
	groupCourts, err := s.repo.GetByGroupKeys(ctx, GroupKeys(candidates))
	if err != nil {
		return nil, err
	}

	courtIDs := make([]uuid.UUID, 0, len(groupCourts))
	for _, court := range groupCourts {
		courtIDs = append(courtIDs, court.ID)
	}

	var conflicts []BookedSlot
	if s.finder != nil {
		conflicts, err = s.finder.FindOverlappingSlots(ctx, date, startTime, endTime, courtIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to load existing reservations: %w", err)
		}
	}

	conflictsByGroup := make(map[string][]BookedSlot)
	for _, slot := range conflicts {
		conflictsByGroup[slot.GroupKey] = append(conflictsByGroup[slot.GroupKey], slot)
	}

	available := make([]CourtResponse, 0, len(candidates))
	for i := range candidates {
		candidate := &candidates[i]
		if !candidate.IsAvailable {
			continue
		}
		if groupIsFree(candidate, conflictsByGroup[candidate.GroupKey]) {
			available = append(available, candidate.ToResponse())
		}
	}

	if s.cacheService != nil {
		// Short TTL; reservation writes also sweep these keys.
		_ = s.cacheService.Set(ctx, cacheKey, available, constants.TTLAvailability)
	}
	return available, nil
}

func groupIsFree(candidate *Court, conflicts []BookedSlot) bool {
	for _, slot := range conflicts {
		if Blocks(candidate, slot.CourtName, slot.GroupKey) {
			return false
		}
	}
	return true
}

func toResponses(courts []Court) []CourtResponse {
	responses := make([]CourtResponse, 0, len(courts))
	for i := range courts {
		responses = append(responses, courts[i].ToResponse())
	}
	return responses
}
