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

type TripRepository interface {
	Create(ctx context.Context, trip *entity.Trip) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Trip, error)

	// Seat ledger. ReserveSeats returns (nil, nil) when the trip is missing,
	// not bookable or short of seats; nothing is changed in that case.
	ReserveSeats(ctx context.Context, id uuid.UUID, seats int) (*entity.Trip, error)
	ReleaseSeats(ctx context.Context, id uuid.UUID, seats int) (*entity.Trip, error)

	// UpdateStatus moves the trip from one status to another and reports
	// false when the trip was not in status from.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.TripStatus) (bool, error)

	FindCandidates(ctx context.Context, filter entity.CandidateFilter) ([]*entity.Candidate, error)
}

const tripColumns = `id, driver_id, vehicle_id, route_id, origin, destination, fare, departure_time,
		total_seats, available_seats, status, created_at, updated_at`

type tripRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTripRepository(db database.PgxIface, log *zap.Logger) TripRepository {
	return &tripRepository{
		db:  db,
		log: log.With(zap.String("repository", "trip")),
	}
}

func scanTrip(row pgx.Row) (*entity.Trip, error) {
	var trip entity.Trip
	err := row.Scan(
		&trip.ID,
		&trip.DriverID,
		&trip.VehicleID,
		&trip.RouteID,
		&trip.Origin,
		&trip.Destination,
		&trip.Fare,
		&trip.DepartureTime,
		&trip.TotalSeats,
		&trip.AvailableSeats,
		&trip.Status,
		&trip.CreatedAt,
		&trip.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &trip, nil
}

func (r *tripRepository) Create(ctx context.Context, trip *entity.Trip) error {
	query := `
		INSERT INTO trips (` + tripColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := database.Conn(ctx, r.db).Exec(ctx, query,
		trip.ID,
		trip.DriverID,
		trip.VehicleID,
		trip.RouteID,
		trip.Origin,
		trip.Destination,
		trip.Fare,
		trip.DepartureTime,
		trip.TotalSeats,
		trip.AvailableSeats,
		trip.Status,
		trip.CreatedAt,
		trip.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create trip",
			zap.Error(err),
			zap.String("driver_id", trip.DriverID.String()),
		)
		return fmt.Errorf("create trip for driver %s: %w", trip.DriverID.String(), err)
	}

	return nil
}

func (r *tripRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE id = $1`

	trip, err := scanTrip(database.Conn(ctx, r.db).QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find trip by ID",
			zap.Error(err),
			zap.String("trip_id", id.String()),
		)
		return nil, fmt.Errorf("find trip by ID %s: %w", id.String(), err)
	}

	return trip, nil
}

// ReserveSeats checks and decrements in one conditional UPDATE, so two
// concurrent reservations on the same trip serialize on the row lock.
func (r *tripRepository) ReserveSeats(ctx context.Context, id uuid.UUID, seats int) (*entity.Trip, error) {
	query := `
		UPDATE trips
		SET available_seats = available_seats - $2, updated_at = NOW()
		WHERE id = $1
		  AND status = 'scheduled'
		  AND departure_time > NOW()
		  AND available_seats >= $2
		RETURNING ` + tripColumns

	trip, err := scanTrip(database.Conn(ctx, r.db).QueryRow(ctx, query, id, seats))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to reserve seats",
			zap.Error(err),
			zap.String("trip_id", id.String()),
			zap.Int("seats", seats),
		)
		return nil, fmt.Errorf("reserve %d seats on trip %s: %w", seats, id.String(), err)
	}

	return trip, nil
}

func (r *tripRepository) ReleaseSeats(ctx context.Context, id uuid.UUID, seats int) (*entity.Trip, error) {
	query := `
		UPDATE trips
		SET available_seats = LEAST(available_seats + $2, total_seats), updated_at = NOW()
		WHERE id = $1
		RETURNING ` + tripColumns

	trip, err := scanTrip(database.Conn(ctx, r.db).QueryRow(ctx, query, id, seats))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to release seats",
			zap.Error(err),
			zap.String("trip_id", id.String()),
			zap.Int("seats", seats),
		)
		return nil, fmt.Errorf("release %d seats on trip %s: %w", seats, id.String(), err)
	}

	return trip, nil
}

func (r *tripRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.TripStatus) (bool, error) {
	query := `UPDATE trips SET status = $3, updated_at = NOW() WHERE id = $1 AND status = $2`

	result, err := database.Conn(ctx, r.db).Exec(ctx, query, id, from, to)
	if err != nil {
		r.log.Error("Failed to update trip status",
			zap.Error(err),
			zap.String("trip_id", id.String()),
			zap.String("from", string(from)),
			zap.String("to", string(to)),
		)
		return false, fmt.Errorf("update trip %s status to %s: %w", id.String(), string(to), err)
	}

	return result.RowsAffected() == 1, nil
}

func (r *tripRepository) FindCandidates(ctx context.Context, filter entity.CandidateFilter) ([]*entity.Candidate, error) {
	query := `
		SELECT t.id, t.driver_id, t.vehicle_id, t.route_id, t.origin, t.destination, t.fare, t.departure_time,
		       t.total_seats, t.available_seats, t.status, t.created_at, t.updated_at,
		       v.vehicle_type, v.comfort_level,
		       COALESCE(dr.avg_rating, 0)::float8 AS avg_rating,
		       COALESCE(bc.booking_count, 0) AS booking_count
		FROM trips t
		LEFT JOIN vehicles v ON v.id = t.vehicle_id
		LEFT JOIN (
			SELECT driver_id, AVG(rating) AS avg_rating FROM ratings GROUP BY driver_id
		) dr ON dr.driver_id = t.driver_id
		LEFT JOIN (
			SELECT trip_id, COUNT(*) AS booking_count FROM bookings GROUP BY trip_id
		) bc ON bc.trip_id = t.id
		WHERE t.status = 'scheduled'
		  AND t.departure_time > NOW()
		  AND t.available_seats > 0
		  AND ($1::text = '' OR t.origin ILIKE '%' || $1 || '%')
		  AND ($2::text = '' OR t.destination ILIKE '%' || $2 || '%')
		  AND t.fare >= $3 AND t.fare <= $4
		ORDER BY avg_rating DESC, booking_count DESC, t.departure_time ASC, t.id ASC
		LIMIT $5
	`

	rows, err := database.Conn(ctx, r.db).Query(ctx, query,
		filter.Origin,
		filter.Destination,
		filter.FareMin,
		filter.FareMax,
		filter.Limit,
	)
	if err != nil {
		r.log.Error("Failed to find candidate trips",
			zap.Error(err),
			zap.String("origin", filter.Origin),
			zap.String("destination", filter.Destination),
		)
		return nil, fmt.Errorf("find candidate trips: %w", err)
	}
	defer rows.Close()

	var candidates []*entity.Candidate
	for rows.Next() {
		var c entity.Candidate
		err := rows.Scan(
			&c.ID,
			&c.DriverID,
			&c.VehicleID,
			&c.RouteID,
			&c.Origin,
			&c.Destination,
			&c.Fare,
			&c.DepartureTime,
			&c.TotalSeats,
			&c.AvailableSeats,
			&c.Status,
			&c.CreatedAt,
			&c.UpdatedAt,
			&c.VehicleType,
			&c.ComfortLevel,
			&c.AvgRating,
			&c.BookingCount,
		)
		if err != nil {
			r.log.Error("Failed to scan candidate row", zap.Error(err))
			return nil, fmt.Errorf("scan candidate row: %w", err)
		}
		candidates = append(candidates, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate candidate rows: %w", err)
	}

	return candidates, nil
}
