package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/bvggies/recommendersystem/internal/data/entity"
	"github.com/bvggies/recommendersystem/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingRepository interface {
	// Create returns ErrDuplicate when the passenger already holds an
	// active booking on the trip.
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindActiveByPassengerAndTrip(ctx context.Context, passengerID, tripID uuid.UUID) (*entity.Booking, error)
	FindByPassenger(ctx context.Context, passengerID uuid.UUID, limit, offset int) ([]*entity.BookingDetail, error)
	CountByPassenger(ctx context.Context, passengerID uuid.UUID) (int64, error)

	// Business queries
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.BookingStatus) (bool, error)
	CompleteByTrip(ctx context.Context, tripID uuid.UUID) (int64, error)
	HasCompleted(ctx context.Context, passengerID, tripID uuid.UUID) (bool, error)
	FindHistory(ctx context.Context, passengerID uuid.UUID, limit int) ([]*entity.BookingHistory, error)
}

const bookingColumns = `id, passenger_id, trip_id, seats_booked, booking_status, created_at, updated_at`

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var booking entity.Booking
	err := row.Scan(
		&booking.ID,
		&booking.PassengerID,
		&booking.TripID,
		&booking.SeatsBooked,
		&booking.Status,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := database.Conn(ctx, r.db).Exec(ctx, query,
		booking.ID,
		booking.PassengerID,
		booking.TripID,
		booking.SeatsBooked,
		booking.Status,
		booking.CreatedAt,
		booking.UpdatedAt,
	)
	if database.IsUniqueViolation(err) {
		return ErrDuplicate
	}
	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("passenger_id", booking.PassengerID.String()),
			zap.String("trip_id", booking.TripID.String()),
		)
		return fmt.Errorf("create booking for trip %s: %w", booking.TripID.String(), err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(database.Conn(ctx, r.db).QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) FindActiveByPassengerAndTrip(ctx context.Context, passengerID, tripID uuid.UUID) (*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE passenger_id = $1 AND trip_id = $2 AND booking_status <> 'cancelled'
	`

	booking, err := scanBooking(database.Conn(ctx, r.db).QueryRow(ctx, query, passengerID, tripID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find active booking",
			zap.Error(err),
			zap.String("passenger_id", passengerID.String()),
			zap.String("trip_id", tripID.String()),
		)
		return nil, fmt.Errorf("find active booking of %s on trip %s: %w", passengerID.String(), tripID.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByPassenger(ctx context.Context, passengerID uuid.UUID, limit, offset int) ([]*entity.BookingDetail, error) {
	query := `
		SELECT b.id, b.passenger_id, b.trip_id, b.seats_booked, b.booking_status, b.created_at, b.updated_at,
		       t.driver_id, t.origin, t.destination, t.fare, t.departure_time, t.status, v.vehicle_type
		FROM bookings b
		JOIN trips t ON t.id = b.trip_id
		LEFT JOIN vehicles v ON v.id = t.vehicle_id
		WHERE b.passenger_id = $1
		ORDER BY b.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := database.Conn(ctx, r.db).Query(ctx, query, passengerID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings by passenger",
			zap.Error(err),
			zap.String("passenger_id", passengerID.String()),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find bookings by passenger %s: %w", passengerID.String(), err)
	}
	defer rows.Close()

	var bookings []*entity.BookingDetail
	for rows.Next() {
		var d entity.BookingDetail
		err := rows.Scan(
			&d.ID,
			&d.PassengerID,
			&d.TripID,
			&d.SeatsBooked,
			&d.Status,
			&d.CreatedAt,
			&d.UpdatedAt,
			&d.DriverID,
			&d.Origin,
			&d.Destination,
			&d.Fare,
			&d.DepartureTime,
			&d.TripStatus,
			&d.VehicleType,
		)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate booking rows: %w", err)
	}

	return bookings, nil
}

func (r *bookingRepository) CountByPassenger(ctx context.Context, passengerID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE passenger_id = $1`

	var count int64
	err := database.Conn(ctx, r.db).QueryRow(ctx, query, passengerID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings by passenger",
			zap.Error(err),
			zap.String("passenger_id", passengerID.String()),
		)
		return 0, fmt.Errorf("count bookings by passenger %s: %w", passengerID.String(), err)
	}

	return count, nil
}

// UpdateStatus only succeeds for a booking currently in status from; it
// reports false otherwise so callers can tell a lost race from an error.
func (r *bookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.BookingStatus) (bool, error) {
	query := `UPDATE bookings SET booking_status = $3, updated_at = NOW() WHERE id = $1 AND booking_status = $2`

	result, err := database.Conn(ctx, r.db).Exec(ctx, query, id, from, to)
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", id.String()),
			zap.String("status", string(to)),
		)
		return false, fmt.Errorf("update booking %s status to %s: %w", id.String(), string(to), err)
	}

	return result.RowsAffected() == 1, nil
}

func (r *bookingRepository) CompleteByTrip(ctx context.Context, tripID uuid.UUID) (int64, error) {
	query := `
		UPDATE bookings SET booking_status = 'completed', updated_at = NOW()
		WHERE trip_id = $1 AND booking_status = 'confirmed'
	`

	result, err := database.Conn(ctx, r.db).Exec(ctx, query, tripID)
	if err != nil {
		r.log.Error("Failed to complete bookings of trip",
			zap.Error(err),
			zap.String("trip_id", tripID.String()),
		)
		return 0, fmt.Errorf("complete bookings of trip %s: %w", tripID.String(), err)
	}

	return result.RowsAffected(), nil
}

func (r *bookingRepository) HasCompleted(ctx context.Context, passengerID, tripID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE passenger_id = $1 AND trip_id = $2 AND booking_status = 'completed'
		)
	`

	var exists bool
	err := database.Conn(ctx, r.db).QueryRow(ctx, query, passengerID, tripID).Scan(&exists)
	if err != nil {
		r.log.Error("Failed to check completed booking",
			zap.Error(err),
			zap.String("passenger_id", passengerID.String()),
			zap.String("trip_id", tripID.String()),
		)
		return false, fmt.Errorf("check completed booking on trip %s: %w", tripID.String(), err)
	}

	return exists, nil
}

func (r *bookingRepository) FindHistory(ctx context.Context, passengerID uuid.UUID, limit int) ([]*entity.BookingHistory, error) {
	query := `
		SELECT t.route_id, t.origin, t.destination, t.fare, v.vehicle_type, rt.rating
		FROM bookings b
		JOIN trips t ON t.id = b.trip_id
		LEFT JOIN vehicles v ON v.id = t.vehicle_id
		LEFT JOIN ratings rt ON rt.trip_id = t.id AND rt.passenger_id = b.passenger_id
		WHERE b.passenger_id = $1 AND b.booking_status = 'completed'
		ORDER BY b.created_at DESC
		LIMIT $2
	`

	rows, err := database.Conn(ctx, r.db).Query(ctx, query, passengerID, limit)
	if err != nil {
		r.log.Error("Failed to find booking history",
			zap.Error(err),
			zap.String("passenger_id", passengerID.String()),
		)
		return nil, fmt.Errorf("find booking history of %s: %w", passengerID.String(), err)
	}
	defer rows.Close()

	var history []*entity.BookingHistory
	for rows.Next() {
		var h entity.BookingHistory
		if err := rows.Scan(&h.RouteID, &h.Origin, &h.Destination, &h.Fare, &h.VehicleType, &h.Rating); err != nil {
			r.log.Error("Failed to scan history row", zap.Error(err))
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		history = append(history, &h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history rows: %w", err)
	}

	return history, nil
}
