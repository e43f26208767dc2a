package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/itinerary/backend/internal/domain"
	"github.com/pkordes/itinerary/backend/internal/repo"
	"github.com/pkordes/itinerary/backend/testutil"
)

// newTestRepos opens a transaction against the test database and returns a
// Repos bundle backed by it. The transaction is rolled back when the test
// finishes, giving free per-test isolation — no cleanup SQL needed.
//
// Requires TEST_DATABASE_URL to be set; migrations are applied by TestMain.
func newTestRepos(t *testing.T) repo.Repos {
	t.Helper()
	pool := testutil.NewPool(t)

	tx, err := pool.Begin(context.Background())
	require.NoError(t, err, "begin transaction")

	t.Cleanup(func() {
		_ = tx.Rollback(context.Background())
	})

	return repo.NewRepos(tx)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dayPtr(y int, m time.Month, d int) *time.Time {
	t := day(y, m, d)
	return &t
}

// tripFixture returns a domain.Trip with sensible defaults. Callers override
// individual fields as needed.
func tripFixture() domain.Trip {
	return domain.Trip{
		Title:       "Portugal Roadtrip",
		Description: "Two weeks along the coast",
		Destination: "Lisbon",
		AuthorID:    uuid.New(),
		StartDate:   dayPtr(2026, 6, 1),
		EndDate:     dayPtr(2026, 6, 3),
		Status:      domain.StatusNotStarted,
	}
}

func stayFixture() domain.Stay {
	return domain.Stay{
		Name:    "Hotel Avenida",
		Address: "Av. da Liberdade 1, Lisboa",
		City:    "Lisboa",
	}
}

func eventFixture(tripID uuid.UUID) domain.Event {
	return domain.Event{
		TripID:    tripID,
		Name:      "Maritime museum",
		StartTime: 9 * 60,
		EndTime:   11 * 60,
		Category:  domain.CategoryExperience,
		Detail:    domain.EventDetail{Experience: &domain.ExperienceDetail{}},
	}
}

// createTrip inserts a trip and returns it.
func createTrip(t *testing.T, r repo.Repos) domain.Trip {
	t.Helper()
	trip, err := r.Trips.Create(context.Background(), tripFixture())
	require.NoError(t, err)
	return trip
}

// createDay inserts one day for the trip.
func createDay(t *testing.T, r repo.Repos, tripID uuid.UUID, number int, date time.Time) domain.Day {
	t.Helper()
	d, err := r.Days.Create(context.Background(), domain.Day{TripID: tripID, Number: number, Date: date})
	require.NoError(t, err)
	return d
}

// createPairedEvent inserts an event placed on the given day.
func createPairedEvent(t *testing.T, r repo.Repos, tripID, dayID uuid.UUID, name string, start, end domain.ClockTime) domain.Event {
	t.Helper()
	e := eventFixture(tripID)
	e.Name = name
	e.DayID = &dayID
	e.StartTime, e.EndTime = start, end
	created, err := r.Events.Create(context.Background(), e)
	require.NoError(t, err)
	return created
}
