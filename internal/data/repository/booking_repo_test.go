package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bvggies/recommendersystem/internal/data/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newBooking() *entity.Booking {
	now := time.Now()
	return &entity.Booking{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		PassengerID:  uuid.New(),
		TripID:       uuid.New(),
		SeatsBooked:  2,
		Status:       entity.BookingStatusConfirmed,
	}
}

func TestBookingRepository_Create_Duplicate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewBookingRepository(mock, zap.NewNop())
	b := newBooking()

	mock.ExpectExec(`INSERT INTO bookings`).
		WithArgs(b.ID, b.PassengerID, b.TripID, b.SeatsBooked, b.Status, b.CreatedAt, b.UpdatedAt).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "bookings_one_active_per_passenger"})

	err = repo.Create(context.Background(), b)
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_Create_OtherError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewBookingRepository(mock, zap.NewNop())
	b := newBooking()
	boom := errors.New("connection reset")

	mock.ExpectExec(`INSERT INTO bookings`).
		WithArgs(b.ID, b.PassengerID, b.TripID, b.SeatsBooked, b.Status, b.CreatedAt, b.UpdatedAt).
		WillReturnError(boom)

	err = repo.Create(context.Background(), b)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_UpdateStatus_OnlyFromExpected(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewBookingRepository(mock, zap.NewNop())
	id := uuid.New()

	mock.ExpectExec(`UPDATE bookings SET booking_status = \$3`).
		WithArgs(id, entity.BookingStatusConfirmed, entity.BookingStatusCancelled).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`UPDATE bookings SET booking_status = \$3`).
		WithArgs(id, entity.BookingStatusConfirmed, entity.BookingStatusCancelled).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	ok, err := repo.UpdateStatus(context.Background(), id, entity.BookingStatusConfirmed, entity.BookingStatusCancelled)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.UpdateStatus(context.Background(), id, entity.BookingStatusConfirmed, entity.BookingStatusCancelled)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_FindByID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewBookingRepository(mock, zap.NewNop())
	id := uuid.New()

	mock.ExpectQuery(`FROM bookings WHERE id = \$1`).
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows([]string{"id", "passenger_id", "trip_id", "seats_booked", "booking_status", "created_at", "updated_at"}))

	booking, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Nil(t, booking)
}

func TestBookingRepository_HasCompleted(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewBookingRepository(mock, zap.NewNop())
	passengerID, tripID := uuid.New(), uuid.New()

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(passengerID, tripID).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := repo.HasCompleted(context.Background(), passengerID, tripID)
	require.NoError(t, err)
	assert.True(t, ok)
}
