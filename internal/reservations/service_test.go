package reservations

import (
	"context"
	"sort"
	"testing"
	"time"

	"campusmind/internal/courts"
	"campusmind/internal/shared/timeslot"
	"campusmind/internal/sports"
	"campusmind/pkg/cache"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// In-memory fakes over the seeded campus topology. The reservation repo
// fills in the Court relation the way the GORM preload would, since the
// conflict check reads conflict.Court.

type memReservationRepo struct {
	reservations map[uuid.UUID]*Reservation
	courtsByID   map[uuid.UUID]*courts.Court
}

func newMemReservationRepo(courtRepo *memCourtRepo) *memReservationRepo {
	byID := make(map[uuid.UUID]*courts.Court)
	for i := range courtRepo.courts {
		c := &courtRepo.courts[i]
		byID[c.ID] = c
	}
	return &memReservationRepo{
		reservations: make(map[uuid.UUID]*Reservation),
		courtsByID:   byID,
	}
}

func (m *memReservationRepo) Create(ctx context.Context, r *Reservation) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	r.CreatedAt = time.Now()
	stored := *r
	stored.Court = m.courtsByID[r.CourtID]
	m.reservations[r.ID] = &stored
	return nil
}

func (m *memReservationRepo) GetByID(ctx context.Context, id uuid.UUID) (*Reservation, error) {
	r, ok := m.reservations[id]
	if !ok {
		return nil, ErrReservationNotFound
	}
	copied := *r
	return &copied, nil
}

func (m *memReservationRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	r, ok := m.reservations[id]
	if !ok {
		return ErrReservationNotFound
	}
	if v, ok := updates["sport_id"]; ok {
		r.SportID = v.(uuid.UUID)
	}
	if v, ok := updates["court_id"]; ok {
		r.CourtID = v.(uuid.UUID)
		r.Court = m.courtsByID[r.CourtID]
	}
	if v, ok := updates["date"]; ok {
		r.Date = v.(string)
	}
	if v, ok := updates["start_time"]; ok {
		r.StartTime = v.(string)
	}
	if v, ok := updates["end_time"]; ok {
		r.EndTime = v.(string)
	}
	return nil
}

func (m *memReservationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.reservations[id]; !ok {
		return ErrReservationNotFound
	}
	delete(m.reservations, id)
	return nil
}

func (m *memReservationRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]Reservation, error) {
	var out []Reservation
	for _, r := range m.reservations {
		if r.UserID != nil && *r.UserID == userID {
			out = append(out, *r)
		}
	}
	sortReservations(out)
	return out, nil
}

func (m *memReservationRepo) ListAll(ctx context.Context) ([]Reservation, error) {
	var out []Reservation
	for _, r := range m.reservations {
		out = append(out, *r)
	}
	sortReservations(out)
	return out, nil
}

func (m *memReservationRepo) FindOverlapping(ctx context.Context, date, startTime, endTime string, courtIDs []uuid.UUID, excluding *uuid.UUID) ([]Reservation, error) {
	ids := make(map[uuid.UUID]bool, len(courtIDs))
	for _, id := range courtIDs {
		ids[id] = true
	}
	var out []Reservation
	for _, r := range m.reservations {
		if excluding != nil && r.ID == *excluding {
			continue
		}
		if r.Date == date && ids[r.CourtID] && timeslot.Overlaps(r.StartTime, r.EndTime, startTime, endTime) {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *memReservationRepo) FindDuplicate(ctx context.Context, userID *uuid.UUID, sportID, courtID uuid.UUID, date, startTime, endTime string) (*Reservation, error) {
	for _, r := range m.reservations {
		if r.SportID != sportID || r.CourtID != courtID || r.Date != date || r.StartTime != startTime || r.EndTime != endTime {
			continue
		}
		if userID == nil {
			if r.UserID == nil {
				copied := *r
				return &copied, nil
			}
			continue
		}
		if r.UserID != nil && *r.UserID == *userID {
			copied := *r
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *memReservationRepo) DeleteDatedBefore(ctx context.Context, cutoffDate string) (int64, error) {
	var purged int64
	for id, r := range m.reservations {
		if r.Date < cutoffDate {
			delete(m.reservations, id)
			purged++
		}
	}
	return purged, nil
}

func sortReservations(rs []Reservation) {
	sort.Slice(rs, func(i, j int) bool {
		if rs[i].Date != rs[j].Date {
			return rs[i].Date < rs[j].Date
		}
		return rs[i].StartTime < rs[j].StartTime
	})
}

type memCourtRepo struct {
	courts []courts.Court
}

func (m *memCourtRepo) GetAll(ctx context.Context) ([]courts.Court, error) {
	return m.courts, nil
}

func (m *memCourtRepo) GetBySportID(ctx context.Context, sportID uuid.UUID) ([]courts.Court, error) {
	var out []courts.Court
	for _, c := range m.courts {
		if c.SportID == sportID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memCourtRepo) GetByGroupKeys(ctx context.Context, keys []string) ([]courts.Court, error) {
	want := make(map[string]bool, len(keys))
	for _, k := range keys {
		want[k] = true
	}
	var out []courts.Court
	for _, c := range m.courts {
		if want[c.GroupKey] {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memCourtRepo) GetByNameAndSport(ctx context.Context, name string, sportID uuid.UUID) (*courts.Court, error) {
	for i := range m.courts {
		if m.courts[i].Name == name && m.courts[i].SportID == sportID {
			return &m.courts[i], nil
		}
	}
	return nil, courts.ErrCourtNotFound
}

func (m *memCourtRepo) GetByID(ctx context.Context, id uuid.UUID) (*courts.Court, error) {
	for i := range m.courts {
		if m.courts[i].ID == id {
			return &m.courts[i], nil
		}
	}
	return nil, courts.ErrCourtNotFound
}

func (m *memCourtRepo) Create(ctx context.Context, court *courts.Court) error {
	m.courts = append(m.courts, *court)
	return nil
}

type stubSportService struct {
	sports map[string]*sports.Sport
}

func (s *stubSportService) SetCacheService(cache.Service) {}

func (s *stubSportService) ListSports(ctx context.Context) ([]sports.SportResponse, error) {
	return nil, nil
}

func (s *stubSportService) GetSportByName(ctx context.Context, name string) (*sports.Sport, error) {
	if sport, ok := s.sports[name]; ok {
		return sport, nil
	}
	return nil, sports.ErrSportNotFound
}

func (s *stubSportService) GetSportByID(ctx context.Context, id uuid.UUID) (*sports.Sport, error) {
	for _, sport := range s.sports {
		if sport.ID == id {
			return sport, nil
		}
	}
	return nil, sports.ErrSportNotFound
}

type fixture struct {
	svc     Service
	repo    *memReservationRepo
	date    string // one week out, always bookable
	member  uuid.UUID
	member2 uuid.UUID
	staff   uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	loc, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)

	basketball := &sports.Sport{ID: uuid.New(), Name: "Basketball"}
	badminton := &sports.Sport{ID: uuid.New(), Name: "Badminton"}
	pickleball := &sports.Sport{ID: uuid.New(), Name: "Pickleball"}

	courtRepo := &memCourtRepo{}
	add := func(sport *sports.Sport, name string, sharedWith []string) {
		courtRepo.courts = append(courtRepo.courts, courts.Court{
			ID:          uuid.New(),
			Name:        name,
			GroupKey:    courts.GroupKeyFor(name),
			SportID:     sport.ID,
			Sport:       sport,
			IsAvailable: true,
			IsShared:    len(sharedWith) > 0,
			SharedWith:  sharedWith,
		})
	}
	add(basketball, "Court A", []string{"Badminton", "Pickleball"})
	add(basketball, "Court B", []string{"Badminton", "Pickleball"})
	add(badminton, "Court A-1", []string{"Basketball", "Pickleball"})
	add(badminton, "Court A-2", []string{"Basketball", "Pickleball"})
	add(pickleball, "Court A-1", []string{"Basketball", "Badminton"})
	add(pickleball, "Court A-2", []string{"Basketball", "Badminton"})

	repo := newMemReservationRepo(courtRepo)
	sportSvc := &stubSportService{sports: map[string]*sports.Sport{
		"Basketball": basketball,
		"Badminton":  badminton,
		"Pickleball": pickleball,
	}}

	return &fixture{
		svc:     NewService(repo, courtRepo, sportSvc, NewLocalLocker(), loc),
		repo:    repo,
		date:    time.Now().In(loc).AddDate(0, 0, 7).Format(timeslot.DateLayout),
		member:  uuid.New(),
		member2: uuid.New(),
		staff:   uuid.New(),
	}
}

func (f *fixture) create(t *testing.T, userID uuid.UUID, sport, court, start, end string) *ReservationResponse {
	t.Helper()
	resp, err := f.svc.CreateReservation(context.Background(), userID, CreateReservationRequest{
		SportName: sport,
		CourtName: court,
		Date:      f.date,
		StartTime: start,
		EndTime:   end,
	})
	require.NoError(t, err)
	return resp
}

func TestCreateReservation(t *testing.T) {
	f := newFixture(t)

	resp := f.create(t, f.member, "Basketball", "Court A", "14:00", "15:00")

	assert.Equal(t, "Basketball", resp.SportName)
	assert.Equal(t, "Court A", resp.CourtName)
	assert.Equal(t, f.date, resp.Date)
	assert.Equal(t, "14:00", resp.StartTime)
	assert.Equal(t, "15:00", resp.EndTime)
	assert.Equal(t, "2:00 PM - 3:00 PM", resp.Time)
	assert.False(t, resp.WalkIn)
}

func TestCreateReservationCombinedRange(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.CreateReservation(context.Background(), f.member, CreateReservationRequest{
		SportName: "Badminton",
		CourtName: "Court A-1",
		Date:      f.date,
		Time:      "1:30 PM - 2:30 PM",
	})
	require.NoError(t, err)
	assert.Equal(t, "13:30", resp.StartTime)
	assert.Equal(t, "14:30", resp.EndTime)
}

func TestCreateReservationDuplicate(t *testing.T) {
	f := newFixture(t)
	f.create(t, f.member, "Basketball", "Court A", "14:00", "15:00")

	_, err := f.svc.CreateReservation(context.Background(), f.member, CreateReservationRequest{
		SportName: "Basketball",
		CourtName: "Court A",
		Date:      f.date,
		StartTime: "14:00",
		EndTime:   "15:00",
	})
	assert.ErrorIs(t, err, ErrDuplicateReservation)

	// The same slot requested by someone else is a conflict, not a
	// duplicate.
	_, err = f.svc.CreateReservation(context.Background(), f.member2, CreateReservationRequest{
		SportName: "Basketball",
		CourtName: "Court A",
		Date:      f.date,
		StartTime: "14:00",
		EndTime:   "15:00",
	})
	assert.ErrorIs(t, err, ErrTimeConflict)
}

func TestCreateReservationSharedCourtBlocking(t *testing.T) {
	f := newFixture(t)
	// Badminton holds half-court A-1 from 2-3 PM.
	f.create(t, f.member, "Badminton", "Court A-1", "14:00", "15:00")

	t.Run("whole basketball floor A is gone for overlapping windows", func(t *testing.T) {
		_, err := f.svc.CreateReservation(context.Background(), f.member2, CreateReservationRequest{
			SportName: "Basketball",
			CourtName: "Court A",
			Date:      f.date,
			StartTime: "14:30",
			EndTime:   "15:30",
		})
		assert.ErrorIs(t, err, ErrTimeConflict)
	})

	t.Run("basketball floor B is unaffected", func(t *testing.T) {
		f.create(t, f.member2, "Basketball", "Court B", "14:30", "15:30")
	})

	t.Run("pickleball sibling sub-court A-2 stays open", func(t *testing.T) {
		f.create(t, f.member2, "Pickleball", "Court A-2", "14:30", "15:30")
	})

	t.Run("touching windows do not conflict", func(t *testing.T) {
		f.create(t, f.member2, "Badminton", "Court A-1", "15:00", "16:00")
	})
}

func TestCreateReservationWholeCourtBlocksSubCourts(t *testing.T) {
	f := newFixture(t)
	// Basketball holds the entire floor A from 10 AM to noon.
	f.create(t, f.member, "Basketball", "Court A", "10:00", "12:00")

	_, err := f.svc.CreateReservation(context.Background(), f.member2, CreateReservationRequest{
		SportName: "Badminton",
		CourtName: "Court A-1",
		Date:      f.date,
		StartTime: "11:00",
		EndTime:   "12:00",
	})
	assert.ErrorIs(t, err, ErrTimeConflict)

	_, err = f.svc.CreateReservation(context.Background(), f.member2, CreateReservationRequest{
		SportName: "Pickleball",
		CourtName: "Court A-2",
		Date:      f.date,
		StartTime: "11:30",
		EndTime:   "12:30",
	})
	assert.ErrorIs(t, err, ErrTimeConflict)
}

func TestCreateReservationValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	base := func() CreateReservationRequest {
		return CreateReservationRequest{
			SportName: "Basketball",
			CourtName: "Court A",
			Date:      f.date,
			StartTime: "14:00",
			EndTime:   "15:00",
		}
	}

	req := base()
	req.SportName = ""
	_, err := f.svc.CreateReservation(ctx, f.member, req)
	assert.ErrorIs(t, err, ErrMissingParameter)

	req = base()
	req.StartTime = ""
	_, err = f.svc.CreateReservation(ctx, f.member, req)
	assert.ErrorIs(t, err, ErrMissingParameter)

	req = base()
	req.StartTime = "2pm"
	_, err = f.svc.CreateReservation(ctx, f.member, req)
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)

	req = base()
	req.Time = "25:00 PM - 26:00 PM"
	_, err = f.svc.CreateReservation(ctx, f.member, req)
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)

	req = base()
	req.StartTime, req.EndTime = "15:00", "14:00"
	_, err = f.svc.CreateReservation(ctx, f.member, req)
	assert.ErrorIs(t, err, ErrBackwardsRange)

	req = base()
	req.StartTime = "14:00"
	req.EndTime = "14:00"
	_, err = f.svc.CreateReservation(ctx, f.member, req)
	assert.ErrorIs(t, err, ErrBackwardsRange)

	req = base()
	req.Date = "06/01/2025"
	_, err = f.svc.CreateReservation(ctx, f.member, req)
	assert.ErrorIs(t, err, ErrInvalidDate)

	// A malformed date outranks a backwards range.
	req = base()
	req.Date = "06/01/2025"
	req.StartTime, req.EndTime = "15:00", "14:00"
	_, err = f.svc.CreateReservation(ctx, f.member, req)
	assert.ErrorIs(t, err, ErrInvalidDate)

	req = base()
	req.Date = "2024-01-01"
	_, err = f.svc.CreateReservation(ctx, f.member, req)
	assert.ErrorIs(t, err, ErrReservationInPast)

	req = base()
	req.Date = "2024-01-01"
	req.StartTime, req.EndTime = "15:00", "14:00"
	_, err = f.svc.CreateReservation(ctx, f.member, req)
	assert.ErrorIs(t, err, ErrBackwardsRange)

	req = base()
	req.SportName = "Curling"
	_, err = f.svc.CreateReservation(ctx, f.member, req)
	assert.ErrorIs(t, err, ErrSportNotFound)

	req = base()
	req.CourtName = "Court Z"
	_, err = f.svc.CreateReservation(ctx, f.member, req)
	assert.ErrorIs(t, err, ErrCourtNotFound)
}

func TestCreateReservationSameDayPastSlot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	loc, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)
	now := time.Now().In(loc)

	// Midnight today has already gone by on the campus clock.
	req := CreateReservationRequest{
		SportName: "Basketball",
		CourtName: "Court A",
		Date:      now.Format(timeslot.DateLayout),
		StartTime: "00:00",
		EndTime:   "00:30",
	}
	_, err = f.svc.CreateReservation(ctx, f.member, req)
	assert.ErrorIs(t, err, ErrReservationInPast)

	// The same clock time tomorrow is bookable.
	req.Date = now.AddDate(0, 0, 1).Format(timeslot.DateLayout)
	resp, err := f.svc.CreateReservation(ctx, f.member, req)
	require.NoError(t, err)
	assert.Equal(t, req.Date, resp.Date)
}

func TestCreateWalkIn(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := WalkInRequest{
		SportName: "Basketball",
		CourtName: "Court A",
		Date:      f.date,
		StartTime: "14:00",
		EndTime:   "15:00",
		UserName:  "Front Desk Guest",
	}

	_, err := f.svc.CreateWalkIn(ctx, MemberActor(f.member), req)
	assert.ErrorIs(t, err, ErrNotAuthorized)

	noName := req
	noName.UserName = ""
	_, err = f.svc.CreateWalkIn(ctx, StaffActor(f.staff), noName)
	assert.ErrorIs(t, err, ErrMissingParameter)

	resp, err := f.svc.CreateWalkIn(ctx, StaffActor(f.staff), req)
	require.NoError(t, err)
	assert.True(t, resp.WalkIn)
	assert.Equal(t, "Front Desk Guest", resp.UserName)

	// Walk-ins have no owning user; an identical slot is still a
	// duplicate, not a conflict.
	_, err = f.svc.CreateWalkIn(ctx, StaffActor(f.staff), req)
	assert.ErrorIs(t, err, ErrDuplicateReservation)
}

func TestModifyReservation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created := f.create(t, f.member, "Basketball", "Court A", "14:00", "15:00")
	id := uuid.MustParse(created.ID)

	t.Run("sliding a reservation over itself succeeds", func(t *testing.T) {
		resp, err := f.svc.ModifyReservation(ctx, MemberActor(f.member), id, ModifyReservationRequest{
			SportName: "Basketball",
			CourtName: "Court A",
			Date:      f.date,
			StartTime: "14:30",
			EndTime:   "15:30",
		})
		require.NoError(t, err)
		assert.Equal(t, "14:30", resp.StartTime)

		stored, err := f.repo.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "14:30", stored.StartTime)
		assert.Equal(t, "15:30", stored.EndTime)
	})

	t.Run("moving onto another booking fails and leaves the original untouched", func(t *testing.T) {
		f.create(t, f.member2, "Badminton", "Court A-1", "17:00", "18:00")

		_, err := f.svc.ModifyReservation(ctx, MemberActor(f.member), id, ModifyReservationRequest{
			SportName: "Basketball",
			CourtName: "Court A",
			Date:      f.date,
			StartTime: "17:30",
			EndTime:   "18:30",
		})
		assert.ErrorIs(t, err, ErrTimeConflict)

		stored, err := f.repo.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "14:30", stored.StartTime, "failed modify must not touch the stored reservation")
	})

	t.Run("only the owner or staff may modify", func(t *testing.T) {
		_, err := f.svc.ModifyReservation(ctx, MemberActor(f.member2), id, ModifyReservationRequest{
			SportName: "Basketball",
			CourtName: "Court A",
			Date:      f.date,
			StartTime: "09:00",
			EndTime:   "10:00",
		})
		assert.ErrorIs(t, err, ErrNotAuthorized)

		_, err = f.svc.ModifyReservation(ctx, StaffActor(f.staff), id, ModifyReservationRequest{
			SportName: "Basketball",
			CourtName: "Court A",
			Date:      f.date,
			StartTime: "09:00",
			EndTime:   "10:00",
		})
		require.NoError(t, err)
	})

	t.Run("unknown reservation", func(t *testing.T) {
		_, err := f.svc.ModifyReservation(ctx, MemberActor(f.member), uuid.New(), ModifyReservationRequest{
			SportName: "Basketball",
			CourtName: "Court A",
			Date:      f.date,
			StartTime: "09:00",
			EndTime:   "10:00",
		})
		assert.ErrorIs(t, err, ErrReservationNotFound)
	})
}

func TestCancelReservation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	mine := f.create(t, f.member, "Basketball", "Court A", "14:00", "15:00")
	theirs := f.create(t, f.member2, "Basketball", "Court B", "14:00", "15:00")

	err := f.svc.CancelReservation(ctx, MemberActor(f.member), uuid.MustParse(theirs.ID))
	assert.ErrorIs(t, err, ErrNotAuthorized)

	require.NoError(t, f.svc.CancelReservation(ctx, MemberActor(f.member), uuid.MustParse(mine.ID)))
	err = f.svc.CancelReservation(ctx, MemberActor(f.member), uuid.MustParse(mine.ID))
	assert.ErrorIs(t, err, ErrReservationNotFound)

	// Staff can cancel anyone's booking.
	require.NoError(t, f.svc.CancelReservation(ctx, StaffActor(f.staff), uuid.MustParse(theirs.ID)))
}

func TestCancelFreesTheSlot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created := f.create(t, f.member, "Badminton", "Court A-1", "14:00", "15:00")

	_, err := f.svc.CreateReservation(ctx, f.member2, CreateReservationRequest{
		SportName: "Basketball",
		CourtName: "Court A",
		Date:      f.date,
		StartTime: "14:00",
		EndTime:   "15:00",
	})
	assert.ErrorIs(t, err, ErrTimeConflict)

	require.NoError(t, f.svc.CancelReservation(ctx, MemberActor(f.member), uuid.MustParse(created.ID)))

	f.create(t, f.member2, "Basketball", "Court A", "14:00", "15:00")
}

func TestListReservations(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.create(t, f.member, "Basketball", "Court A", "14:00", "15:00")
	f.create(t, f.member, "Badminton", "Court A-1", "09:00", "10:00")
	f.create(t, f.member2, "Pickleball", "Court A-2", "11:00", "12:00")

	mine, err := f.svc.ListUserReservations(ctx, f.member)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "09:00", mine[0].StartTime, "listings are ordered by date then start time")
	assert.Equal(t, "14:00", mine[1].StartTime)

	all, err := f.svc.ListAllReservations(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestRetentionSweep(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	old := &Reservation{
		ID:        uuid.New(),
		UserID:    &f.member,
		Date:      "2024-01-05",
		StartTime: "14:00",
		EndTime:   "15:00",
	}
	require.NoError(t, f.repo.Create(ctx, old))
	f.create(t, f.member, "Basketball", "Court A", "14:00", "15:00")

	purged, err := f.repo.DeleteDatedBefore(ctx, "2024-01-10")
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	all, err := f.repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
