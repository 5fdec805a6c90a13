package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/bvggies/recommendersystem/internal/data/entity"
	"github.com/bvggies/recommendersystem/internal/data/memory"
	"github.com/bvggies/recommendersystem/internal/data/repository"
	"github.com/bvggies/recommendersystem/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixture struct {
	store *memory.Store
	repo  *repository.Repository
	svc   *Service
}

func testConfig() *utils.Config {
	return &utils.Config{
		App: utils.AppConfig{NotifyTimeout: time.Second},
		Ranker: utils.RankerConfig{
			Timeout:     50 * time.Millisecond,
			TopN:        20,
			HistorySize: 5,
		},
		Recommend: utils.RecommendConfig{
			DefaultFareMin: 0,
			DefaultFareMax: 1000,
			MaxCandidates:  100,
			DefaultLimit:   10,
			MaxLimit:       50,
		},
	}
}

func newFixture(t *testing.T, ext Externals) *fixture {
	t.Helper()
	store := memory.NewStore(zap.NewNop())
	repo := memory.NewRepository(store)
	return newFixtureWithRepo(t, store, repo, ext)
}

func newFixtureWithRepo(t *testing.T, store *memory.Store, repo *repository.Repository, ext Externals) *fixture {
	t.Helper()
	svc := NewService(repo, ext, testConfig(), zap.NewNop())
	t.Cleanup(svc.Wait)
	return &fixture{store: store, repo: repo, svc: svc}
}

func (f *fixture) seedTrip(t *testing.T, total int, fare float64, departIn time.Duration) *entity.Trip {
	t.Helper()
	return f.seedDriverTrip(t, uuid.New(), total, fare, departIn)
}

func (f *fixture) seedDriverTrip(t *testing.T, driverID uuid.UUID, total int, fare float64, departIn time.Duration) *entity.Trip {
	t.Helper()
	now := time.Now()
	trip := &entity.Trip{
		BaseNoDelete:   entity.BaseNoDelete{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		DriverID:       driverID,
		Origin:         "Accra",
		Destination:    "Kumasi",
		Fare:           fare,
		DepartureTime:  now.Add(departIn),
		TotalSeats:     total,
		AvailableSeats: total,
		Status:         entity.TripStatusScheduled,
	}
	require.NoError(t, f.repo.Trip.Create(context.Background(), trip))
	return trip
}

func (f *fixture) availableSeats(t *testing.T, tripID uuid.UUID) int {
	t.Helper()
	trip, err := f.repo.Trip.FindByID(context.Background(), tripID)
	require.NoError(t, err)
	require.NotNil(t, trip)
	return trip.AvailableSeats
}

// assertLedger checks available seats plus every active booking equals the trip total.
func (f *fixture) assertLedger(t *testing.T, trip *entity.Trip, bookingIDs ...string) {
	t.Helper()
	held := 0
	for _, raw := range bookingIDs {
		b, err := f.repo.Booking.FindByID(context.Background(), uuid.MustParse(raw))
		require.NoError(t, err)
		require.NotNil(t, b)
		if b.Status.Active() {
			held += b.SeatsBooked
		}
	}
	available := f.availableSeats(t, trip.ID)
	assert.GreaterOrEqual(t, available, 0)
	assert.LessOrEqual(t, available, trip.TotalSeats)
	assert.Equal(t, trip.TotalSeats, available+held)
}

func seats(n int) *int {
	return &n
}

func intPtr(n int) *int {
	return &n
}
