package memory

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bvggies/recommendersystem/internal/data/entity"
	"github.com/bvggies/recommendersystem/internal/data/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func seedTrip(t *testing.T, repo *repository.Repository, total, available int) *entity.Trip {
	t.Helper()
	now := time.Now()
	trip := &entity.Trip{
		BaseNoDelete:   entity.BaseNoDelete{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		DriverID:       uuid.New(),
		Origin:         "Accra",
		Destination:    "Kumasi",
		Fare:           40,
		DepartureTime:  now.Add(2 * time.Hour),
		TotalSeats:     total,
		AvailableSeats: available,
		Status:         entity.TripStatusScheduled,
	}
	require.NoError(t, repo.Trip.Create(context.Background(), trip))
	return trip
}

func TestReserveSeats_ConcurrentNeverOversells(t *testing.T) {
	repo := NewRepository(NewStore(zap.NewNop()))
	trip := seedTrip(t, repo, 10, 10)

	var wg sync.WaitGroup
	var succeeded int32
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			updated, err := repo.Trip.ReserveSeats(context.Background(), trip.ID, 1)
			assert.NoError(t, err)
			if updated != nil {
				atomic.AddInt32(&succeeded, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(10), succeeded)
	got, err := repo.Trip.FindByID(context.Background(), trip.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.AvailableSeats)
}

func TestReserveSeats_RejectsDepartedTrip(t *testing.T) {
	clock := time.Now().Add(3 * time.Hour)
	repo := NewRepository(NewStore(zap.NewNop(), WithClock(func() time.Time { return clock })))
	trip := seedTrip(t, repo, 4, 4)

	updated, err := repo.Trip.ReserveSeats(context.Background(), trip.ID, 1)
	require.NoError(t, err)
	assert.Nil(t, updated)
}

func TestReleaseSeats_CappedAtTotal(t *testing.T) {
	repo := NewRepository(NewStore(zap.NewNop()))
	trip := seedTrip(t, repo, 5, 4)

	updated, err := repo.Trip.ReleaseSeats(context.Background(), trip.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 5, updated.AvailableSeats)
}

func TestWithinTx_RollbackUndoesReserveAndInsert(t *testing.T) {
	repo := NewRepository(NewStore(zap.NewNop()))
	trip := seedTrip(t, repo, 10, 4)
	booking := &entity.Booking{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New(), CreatedAt: time.Now()},
		PassengerID:  uuid.New(),
		TripID:       trip.ID,
		SeatsBooked:  3,
		Status:       entity.BookingStatusConfirmed,
	}
	failure := errors.New("late failure")

	err := repo.Tx.WithinTx(context.Background(), func(ctx context.Context) error {
		if _, err := repo.Trip.ReserveSeats(ctx, trip.ID, 3); err != nil {
			return err
		}
		if err := repo.Booking.Create(ctx, booking); err != nil {
			return err
		}
		return failure
	})
	assert.ErrorIs(t, err, failure)

	got, _ := repo.Trip.FindByID(context.Background(), trip.ID)
	assert.Equal(t, 4, got.AvailableSeats)
	stored, _ := repo.Booking.FindByID(context.Background(), booking.ID)
	assert.Nil(t, stored)
	active, _ := repo.Booking.FindActiveByPassengerAndTrip(context.Background(), booking.PassengerID, trip.ID)
	assert.Nil(t, active)
}

func TestBookingCreate_OneActivePerPassengerAndTrip(t *testing.T) {
	repo := NewRepository(NewStore(zap.NewNop()))
	ctx := context.Background()
	passengerID, tripID := uuid.New(), uuid.New()

	first := &entity.Booking{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New()},
		PassengerID:  passengerID, TripID: tripID, SeatsBooked: 1,
		Status: entity.BookingStatusConfirmed,
	}
	second := &entity.Booking{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New()},
		PassengerID:  passengerID, TripID: tripID, SeatsBooked: 1,
		Status: entity.BookingStatusConfirmed,
	}

	require.NoError(t, repo.Booking.Create(ctx, first))
	assert.ErrorIs(t, repo.Booking.Create(ctx, second), repository.ErrDuplicate)

	ok, err := repo.Booking.UpdateStatus(ctx, first.ID, entity.BookingStatusConfirmed, entity.BookingStatusCancelled)
	require.NoError(t, err)
	require.True(t, ok)

	assert.NoError(t, repo.Booking.Create(ctx, second), "cancelled booking frees the pair")
}

func TestFindCandidates_DefaultOrder(t *testing.T) {
	repo := NewRepository(NewStore(zap.NewNop()))
	ctx := context.Background()

	early := seedTrip(t, repo, 4, 4)
	late := seedTrip(t, repo, 4, 4)
	seedTrip(t, repo, 4, 0) // sold out, never a candidate

	// late departs after early but has a better rated driver
	require.NoError(t, repo.Rating.Create(ctx, &entity.Rating{
		BaseSimple:  entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		PassengerID: uuid.New(), DriverID: late.DriverID, TripID: uuid.New(), Rating: 5,
	}))

	candidates, err := repo.Trip.FindCandidates(ctx, entity.CandidateFilter{FareMin: 0, FareMax: 1000, Limit: 10})
	require.NoError(t, err)
	require.Len(t, candidates, 2)
	assert.Equal(t, late.ID, candidates[0].ID)
	assert.Equal(t, early.ID, candidates[1].ID)
	assert.InDelta(t, 5.0, candidates[0].AvgRating, 0.001)
}
