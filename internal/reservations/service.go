package reservations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"campusmind/internal/courts"
	"campusmind/internal/shared/constants"
	"campusmind/internal/shared/timeslot"
	"campusmind/internal/sports"
	"campusmind/pkg/cache"
	"campusmind/pkg/logger"

	"github.com/google/uuid"
)

type Service interface {
	SetCacheService(cacheService cache.Service)
	CreateReservation(ctx context.Context, userID uuid.UUID, req CreateReservationRequest) (*ReservationResponse, error)
	CreateWalkIn(ctx context.Context, actor Actor, req WalkInRequest) (*ReservationResponse, error)
	ModifyReservation(ctx context.Context, actor Actor, id uuid.UUID, req ModifyReservationRequest) (*ReservationResponse, error)
	CancelReservation(ctx context.Context, actor Actor, id uuid.UUID) error
	GetReservation(ctx context.Context, actor Actor, id uuid.UUID) (*ReservationResponse, error)
	ListUserReservations(ctx context.Context, userID uuid.UUID) ([]ReservationResponse, error)
	ListAllReservations(ctx context.Context) ([]ReservationResponse, error)
}

type service struct {
	repo         Repository
	courtRepo    courts.Repository
	sportService sports.Service
	locker       AdmissionLocker
	cacheService cache.Service
	campusTZ     *time.Location
	log          *logger.Logger
}

// NewService wires the admission pipeline. campusTZ is the campus wall-clock
// location used for every "is this slot in the past" decision; clients never
// send zone information.
func NewService(repo Repository, courtRepo courts.Repository, sportService sports.Service, locker AdmissionLocker, campusTZ *time.Location) Service {
	return &service{
		repo:         repo,
		courtRepo:    courtRepo,
		sportService: sportService,
		locker:       locker,
		campusTZ:     campusTZ,
		log:          logger.New(),
	}
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

// admission is one validated booking attempt, ready for the conflict check.
type admission struct {
	sport     *sports.Sport
	court     *courts.Court
	date      string
	startTime string
	endTime   string
}

// validate runs every per-request check that needs no lock: window and date
// format, ordering, temporality, and sport/court resolution. Checks run in this
// order so a request with several problems gets the earliest one reported.
func (s *service) validate(ctx context.Context, sportName, courtName, date, timeRange, startTime, endTime string) (*admission, error) {
	if sportName == "" || courtName == "" || date == "" {
		return nil, ErrMissingParameter
	}

	start, end, err := resolveWindow(timeRange, startTime, endTime)
	if err != nil {
		return nil, err
	}
	// Format problems outrank ordering ones, so the date parse comes first.
	if _, err := timeslot.ParseDate(date); err != nil {
		return nil, ErrInvalidDate
	}
	if !timeslot.IsOrdered(start, end) {
		return nil, ErrBackwardsRange
	}
	past, err := timeslot.IsPast(date, start, s.campusTZ)
	if err != nil {
		return nil, ErrInvalidDate
	}
	if past {
		return nil, ErrReservationInPast
	}

	sport, err := s.sportService.GetSportByName(ctx, sportName)
	if err != nil {
		if errors.Is(err, sports.ErrSportNotFound) {
			return nil, ErrSportNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	court, err := s.courtRepo.GetByNameAndSport(ctx, courtName, sport.ID)
	if err != nil {
		if errors.Is(err, courts.ErrCourtNotFound) {
			return nil, ErrCourtNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	return &admission{
		sport:     sport,
		court:     court,
		date:      date,
		startTime: start,
		endTime:   end,
	}, nil
}

// resolveWindow accepts either the combined human-facing range string or
// explicit canonical bounds, never both halves of a mix.
func resolveWindow(timeRange, startTime, endTime string) (string, string, error) {
	if timeRange != "" {
		start, end, err := timeslot.ParseRange(timeRange)
		if err != nil {
			return "", "", ErrInvalidTimeFormat
		}
		return start, end, nil
	}
	if startTime == "" || endTime == "" {
		return "", "", ErrMissingParameter
	}
	if !timeslot.IsCanonical(startTime) || !timeslot.IsCanonical(endTime) {
		return "", "", ErrInvalidTimeFormat
	}
	return startTime, endTime, nil
}

// admit runs the duplicate and conflict checks under the physical-group
// lock, then hands the still-held lock window to commit. Two overlapping
// requests for the same floor on the same date serialize here, so whichever
// commits first makes the other see the conflict.
func (s *service) admit(ctx context.Context, adm *admission, ownerID *uuid.UUID, excluding *uuid.UUID, commit func(ctx context.Context) error) error {
	release, err := s.locker.Acquire(ctx, adm.court.GroupKey, adm.date)
	if err != nil {
		return err
	}
	defer release()

	dup, err := s.repo.FindDuplicate(ctx, ownerID, adm.sport.ID, adm.court.ID, adm.date, adm.startTime, adm.endTime)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if dup != nil && (excluding == nil || dup.ID != *excluding) {
		return ErrDuplicateReservation
	}

	// Every court sharing the physical group competes for the same floor,
	// so the overlap query spans the whole group, not just the requested
	// court.
	groupCourts, err := s.courtRepo.GetByGroupKeys(ctx, []string{adm.court.GroupKey})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	courtIDs := make([]uuid.UUID, 0, len(groupCourts))
	for _, c := range groupCourts {
		courtIDs = append(courtIDs, c.ID)
	}

	overlapping, err := s.repo.FindOverlapping(ctx, adm.date, adm.startTime, adm.endTime, courtIDs, excluding)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	for i := range overlapping {
		conflict := &overlapping[i]
		if conflict.Court == nil {
			continue
		}
		if courts.Blocks(adm.court, conflict.Court.Name, conflict.Court.GroupKey) {
			return ErrTimeConflict
		}
	}

	return commit(ctx)
}

func (s *service) CreateReservation(ctx context.Context, userID uuid.UUID, req CreateReservationRequest) (*ReservationResponse, error) {
	adm, err := s.validate(ctx, req.SportName, req.CourtName, req.Date, req.Time, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	reservation := &Reservation{
		UserID:    &userID,
		SportID:   adm.sport.ID,
		CourtID:   adm.court.ID,
		Date:      adm.date,
		StartTime: adm.startTime,
		EndTime:   adm.endTime,
	}

	err = s.admit(ctx, adm, &userID, nil, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, reservation); err != nil {
			return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateAvailability(ctx)
	s.log.LogReservationCreated(ctx, reservation.ID.String(), adm.court.Name, adm.date)
	return s.toResponse(reservation, adm.sport, adm.court), nil
}

func (s *service) CreateWalkIn(ctx context.Context, actor Actor, req WalkInRequest) (*ReservationResponse, error) {
	if !actor.Staff {
		return nil, ErrNotAuthorized
	}
	if req.UserName == "" {
		return nil, ErrMissingParameter
	}

	adm, err := s.validate(ctx, req.SportName, req.CourtName, req.Date, req.Time, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	reservation := &Reservation{
		UserID:    nil,
		SportID:   adm.sport.ID,
		CourtID:   adm.court.ID,
		Date:      adm.date,
		StartTime: adm.startTime,
		EndTime:   adm.endTime,
		UserName:  req.UserName,
	}

	err = s.admit(ctx, adm, nil, nil, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, reservation); err != nil {
			return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateAvailability(ctx)
	s.log.LogReservationCreated(ctx, reservation.ID.String(), adm.court.Name, adm.date)
	return s.toResponse(reservation, adm.sport, adm.court), nil
}

// ModifyReservation re-runs the full admission pipeline on the replacement
// slot, excluding the reservation being modified from the conflict and
// duplicate checks so it never collides with itself. On any failure the
// stored reservation is untouched.
func (s *service) ModifyReservation(ctx context.Context, actor Actor, id uuid.UUID, req ModifyReservationRequest) (*ReservationResponse, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanManage(existing) {
		return nil, ErrNotAuthorized
	}

	adm, err := s.validate(ctx, req.SportName, req.CourtName, req.Date, req.Time, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	err = s.admit(ctx, adm, existing.UserID, &id, func(ctx context.Context) error {
		updates := map[string]interface{}{
			"sport_id":   adm.sport.ID,
			"court_id":   adm.court.ID,
			"date":       adm.date,
			"start_time": adm.startTime,
			"end_time":   adm.endTime,
		}
		if err := s.repo.Update(ctx, id, updates); err != nil {
			if errors.Is(err, ErrReservationNotFound) {
				return err
			}
			return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateAvailability(ctx)

	existing.SportID = adm.sport.ID
	existing.CourtID = adm.court.ID
	existing.Date = adm.date
	existing.StartTime = adm.startTime
	existing.EndTime = adm.endTime
	return s.toResponse(existing, adm.sport, adm.court), nil
}

func (s *service) CancelReservation(ctx context.Context, actor Actor, id uuid.UUID) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !actor.CanManage(existing) {
		return ErrNotAuthorized
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrReservationNotFound) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	s.invalidateAvailability(ctx)
	s.log.LogReservationCancelled(ctx, id.String())
	return nil
}

func (s *service) GetReservation(ctx context.Context, actor Actor, id uuid.UUID) (*ReservationResponse, error) {
	reservation, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanManage(reservation) {
		return nil, ErrNotAuthorized
	}
	return s.toResponse(reservation, reservation.Sport, reservation.Court), nil
}

func (s *service) ListUserReservations(ctx context.Context, userID uuid.UUID) ([]ReservationResponse, error) {
	reservations, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return s.toResponses(reservations), nil
}

func (s *service) ListAllReservations(ctx context.Context) ([]ReservationResponse, error) {
	reservations, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return s.toResponses(reservations), nil
}

// invalidateAvailability drops cached availability answers after any write.
// Best effort: a stale cache entry only survives its short TTL anyway.
func (s *service) invalidateAvailability(ctx context.Context) {
	if s.cacheService == nil {
		return
	}
	if err := s.cacheService.DeletePattern(ctx, constants.PatternInvalidateAvailability); err != nil {
		s.log.WithError(err).Warn("failed to invalidate availability cache")
	}
}

func (s *service) toResponse(r *Reservation, sport *sports.Sport, court *courts.Court) *ReservationResponse {
	resp := &ReservationResponse{
		ID:        r.ID.String(),
		Date:      r.Date,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		WalkIn:    r.IsWalkIn(),
		CreatedAt: r.CreatedAt,
	}
	if sport != nil {
		resp.SportName = sport.Name
	}
	if court != nil {
		resp.CourtName = court.Name
	}
	if rangeStr, err := timeslot.FormatRange(r.StartTime, r.EndTime); err == nil {
		resp.Time = rangeStr
	}
	if r.IsWalkIn() {
		resp.UserName = r.UserName
	} else if r.User != nil {
		resp.UserName = r.User.FirstName + " " + r.User.LastName
	}
	return resp
}

func (s *service) toResponses(reservations []Reservation) []ReservationResponse {
	responses := make([]ReservationResponse, 0, len(reservations))
	for i := range reservations {
		r := &reservations[i]
		responses = append(responses, *s.toResponse(r, r.Sport, r.Court))
	}
	return responses
}
