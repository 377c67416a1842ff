package courts

import (
	"context"
	"testing"

	"campusmind/internal/sports"
	"campusmind/pkg/cache"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// In-memory fakes over the seeded campus topology: Basketball owns the
// whole courts A-D, Badminton and Pickleball own the numbered sub-courts.

type fakeCourtRepo struct {
	courts []Court
}

func (f *fakeCourtRepo) GetAll(ctx context.Context) ([]Court, error) {
	return f.courts, nil
}

func (f *fakeCourtRepo) GetBySportID(ctx context.Context, sportID uuid.UUID) ([]Court, error) {
	var out []Court
	for _, c := range f.courts {
		if c.SportID == sportID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCourtRepo) GetByGroupKeys(ctx context.Context, keys []string) ([]Court, error) {
	want := make(map[string]bool, len(keys))
	for _, k := range keys {
		want[k] = true
	}
	var out []Court
	for _, c := range f.courts {
		if want[c.GroupKey] {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCourtRepo) GetByNameAndSport(ctx context.Context, name string, sportID uuid.UUID) (*Court, error) {
	for i := range f.courts {
		if f.courts[i].Name == name && f.courts[i].SportID == sportID {
			return &f.courts[i], nil
		}
	}
	return nil, ErrCourtNotFound
}

func (f *fakeCourtRepo) GetByID(ctx context.Context, id uuid.UUID) (*Court, error) {
	for i := range f.courts {
		if f.courts[i].ID == id {
			return &f.courts[i], nil
		}
	}
	return nil, ErrCourtNotFound
}

func (f *fakeCourtRepo) Create(ctx context.Context, court *Court) error {
	f.courts = append(f.courts, *court)
	return nil
}

type fakeSportService struct {
	sports map[string]*sports.Sport
}

func (f *fakeSportService) SetCacheService(cache.Service) {}

func (f *fakeSportService) ListSports(ctx context.Context) ([]sports.SportResponse, error) {
	return nil, nil
}

func (f *fakeSportService) GetSportByName(ctx context.Context, name string) (*sports.Sport, error) {
	if s, ok := f.sports[name]; ok {
		return s, nil
	}
	return nil, sports.ErrSportNotFound
}

func (f *fakeSportService) GetSportByID(ctx context.Context, id uuid.UUID) (*sports.Sport, error) {
	for _, s := range f.sports {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, sports.ErrSportNotFound
}

type fakeFinder struct {
	slots []BookedSlot
}

func (f *fakeFinder) FindOverlappingSlots(ctx context.Context, date, startTime, endTime string, courtIDs []uuid.UUID) ([]BookedSlot, error) {
	ids := make(map[uuid.UUID]bool, len(courtIDs))
	for _, id := range courtIDs {
		ids[id] = true
	}
	var out []BookedSlot
	for _, slot := range f.slots {
		if ids[slot.CourtID] && slot.StartTime < endTime && startTime < slot.EndTime {
			out = append(out, slot)
		}
	}
	return out, nil
}

type fixture struct {
	svc        Service
	finder     *fakeFinder
	courtIDs   map[string]uuid.UUID // keyed "Sport/Name"
	basketball *sports.Sport
	badminton  *sports.Sport
	pickleball *sports.Sport
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	basketball := &sports.Sport{ID: uuid.New(), Name: "Basketball"}
	badminton := &sports.Sport{ID: uuid.New(), Name: "Badminton"}
	pickleball := &sports.Sport{ID: uuid.New(), Name: "Pickleball"}

	repo := &fakeCourtRepo{}
	courtIDs := make(map[string]uuid.UUID)

	add := func(sport *sports.Sport, name string, sharedWith []string) {
		court := Court{
			ID:          uuid.New(),
			Name:        name,
			GroupKey:    GroupKeyFor(name),
			SportID:     sport.ID,
			Sport:       sport,
			IsAvailable: true,
			IsShared:    len(sharedWith) > 0,
			SharedWith:  sharedWith,
		}
		repo.courts = append(repo.courts, court)
		courtIDs[sport.Name+"/"+name] = court.ID
	}

	add(basketball, "Court A", []string{"Badminton", "Pickleball"})
	add(basketball, "Court B", []string{"Badminton", "Pickleball"})
	add(badminton, "Court A-1", []string{"Basketball", "Pickleball"})
	add(badminton, "Court A-2", []string{"Basketball", "Pickleball"})
	add(pickleball, "Court A-1", []string{"Basketball", "Badminton"})
	add(pickleball, "Court A-2", []string{"Basketball", "Badminton"})

	finder := &fakeFinder{}
	svc := NewService(repo, &fakeSportService{sports: map[string]*sports.Sport{
		"Basketball": basketball,
		"Badminton":  badminton,
		"Pickleball": pickleball,
	}})
	svc.SetReservationFinder(finder)

	return &fixture{
		svc:        svc,
		finder:     finder,
		courtIDs:   courtIDs,
		basketball: basketball,
		badminton:  badminton,
		pickleball: pickleball,
	}
}

func (f *fixture) book(sport, court, start, end string) {
	f.finder.slots = append(f.finder.slots, BookedSlot{
		CourtID:   f.courtIDs[sport+"/"+court],
		CourtName: court,
		GroupKey:  GroupKeyFor(court),
		StartTime: start,
		EndTime:   end,
	})
}

func courtNames(responses []CourtResponse) []string {
	names := make([]string, 0, len(responses))
	for _, r := range responses {
		names = append(names, r.CourtName)
	}
	return names
}

func TestFindAvailableCourtsNoReservations(t *testing.T) {
	f := newFixture(t)

	got, err := f.svc.FindAvailableCourts(context.Background(), "Basketball", "2025-06-01", "13:00", "14:00")
	require.NoError(t, err)
	assert.Equal(t, []string{"Court A", "Court B"}, courtNames(got))
}

func TestFindAvailableCourtsExclusiveSportBlocking(t *testing.T) {
	f := newFixture(t)
	// Badminton holds half-court A-1 from 2-3 PM.
	f.book("Badminton", "Court A-1", "14:00", "15:00")

	t.Run("whole basketball floor A is gone for overlapping windows", func(t *testing.T) {
		got, err := f.svc.FindAvailableCourts(context.Background(), "Basketball", "2025-06-01", "14:30", "15:30")
		require.NoError(t, err)
		assert.Equal(t, []string{"Court B"}, courtNames(got))
	})

	t.Run("pickleball sibling sub-court A-2 stays open", func(t *testing.T) {
		got, err := f.svc.FindAvailableCourts(context.Background(), "Pickleball", "2025-06-01", "14:30", "15:30")
		require.NoError(t, err)
		assert.Equal(t, []string{"Court A-2"}, courtNames(got))
	})

	t.Run("badminton cannot rebook the same sub-court", func(t *testing.T) {
		got, err := f.svc.FindAvailableCourts(context.Background(), "Badminton", "2025-06-01", "14:30", "15:30")
		require.NoError(t, err)
		assert.Equal(t, []string{"Court A-2"}, courtNames(got))
	})

	t.Run("touching windows do not conflict", func(t *testing.T) {
		got, err := f.svc.FindAvailableCourts(context.Background(), "Basketball", "2025-06-01", "15:00", "16:00")
		require.NoError(t, err)
		assert.Equal(t, []string{"Court A", "Court B"}, courtNames(got))
	})
}

func TestFindAvailableCourtsWholeCourtBlocksSubCourts(t *testing.T) {
	f := newFixture(t)
	// Basketball holds the entire floor A.
	f.book("Basketball", "Court A", "10:00", "12:00")

	got, err := f.svc.FindAvailableCourts(context.Background(), "Badminton", "2025-06-01", "11:00", "12:00")
	require.NoError(t, err)
	assert.Empty(t, got, "every sub-court of floor A is taken; empty is a valid outcome")

	// A disjoint window later the same day frees both sub-courts again.
	got, err = f.svc.FindAvailableCourts(context.Background(), "Badminton", "2025-06-01", "12:00", "13:00")
	require.NoError(t, err)
	assert.Equal(t, []string{"Court A-1", "Court A-2"}, courtNames(got))
}

func TestFindAvailableCourtsValidation(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.FindAvailableCourts(context.Background(), "", "2025-06-01", "13:00", "14:00")
	assert.ErrorIs(t, err, ErrMissingParameter)

	_, err = f.svc.FindAvailableCourts(context.Background(), "Basketball", "", "13:00", "14:00")
	assert.ErrorIs(t, err, ErrMissingParameter)

	_, err = f.svc.FindAvailableCourts(context.Background(), "Basketball", "junk", "13:00", "14:00")
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = f.svc.FindAvailableCourts(context.Background(), "Basketball", "2025-06-01", "1:00", "14:00")
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)

	_, err = f.svc.FindAvailableCourts(context.Background(), "Curling", "2025-06-01", "13:00", "14:00")
	assert.ErrorIs(t, err, sports.ErrSportNotFound)
}

func TestFindAvailableCourtsSkipsUnavailableCourt(t *testing.T) {
	basketball := &sports.Sport{ID: uuid.New(), Name: "Basketball"}
	repo := &fakeCourtRepo{courts: []Court{
		{ID: uuid.New(), Name: "Court A", GroupKey: "Court A", SportID: basketball.ID, Sport: basketball, IsAvailable: false},
		{ID: uuid.New(), Name: "Court B", GroupKey: "Court B", SportID: basketball.ID, Sport: basketball, IsAvailable: true},
	}}
	svc := NewService(repo, &fakeSportService{sports: map[string]*sports.Sport{"Basketball": basketball}})
	svc.SetReservationFinder(&fakeFinder{})

	got, err := svc.FindAvailableCourts(context.Background(), "Basketball", "2025-06-01", "13:00", "14:00")
	require.NoError(t, err)
	assert.Equal(t, []string{"Court B"}, courtNames(got))
}
