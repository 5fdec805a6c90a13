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

type RatingRepository interface {
	// Create returns ErrDuplicate when the passenger already rated the trip.
	Create(ctx context.Context, rating *entity.Rating) error
	FindByPassengerAndTrip(ctx context.Context, passengerID, tripID uuid.UUID) (*entity.Rating, error)
	FindByDriver(ctx context.Context, driverID uuid.UUID) ([]*entity.Rating, error)
	FindByTrip(ctx context.Context, tripID uuid.UUID) ([]*entity.Rating, error)

	// Business queries
	DriverStats(ctx context.Context, driverID uuid.UUID) (*entity.DriverRatingStats, error)
}

const ratingColumns = `id, passenger_id, driver_id, trip_id, rating, comfort_rating, punctuality_rating,
		review_text, created_at`

type ratingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewRatingRepository(db database.PgxIface, log *zap.Logger) RatingRepository {
	return &ratingRepository{
		db:  db,
		log: log.With(zap.String("repository", "rating")),
	}
}

func scanRating(row pgx.Row) (*entity.Rating, error) {
	var rating entity.Rating
	err := row.Scan(
		&rating.ID,
		&rating.PassengerID,
		&rating.DriverID,
		&rating.TripID,
		&rating.Rating,
		&rating.ComfortRating,
		&rating.PunctualityRating,
		&rating.ReviewText,
		&rating.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

func (r *ratingRepository) Create(ctx context.Context, rating *entity.Rating) error {
	query := `
		INSERT INTO ratings (` + ratingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := database.Conn(ctx, r.db).Exec(ctx, query,
		rating.ID,
		rating.PassengerID,
		rating.DriverID,
		rating.TripID,
		rating.Rating,
		rating.ComfortRating,
		rating.PunctualityRating,
		rating.ReviewText,
		rating.CreatedAt,
	)
	if database.IsUniqueViolation(err) {
		return ErrDuplicate
	}
	if err != nil {
		r.log.Error("Failed to create rating",
			zap.Error(err),
			zap.String("passenger_id", rating.PassengerID.String()),
			zap.String("trip_id", rating.TripID.String()),
		)
		return fmt.Errorf("create rating for trip %s by passenger %s: %w",
			rating.TripID.String(), rating.PassengerID.String(), err)
	}

	return nil
}

func (r *ratingRepository) FindByPassengerAndTrip(ctx context.Context, passengerID, tripID uuid.UUID) (*entity.Rating, error) {
	query := `SELECT ` + ratingColumns + ` FROM ratings WHERE passenger_id = $1 AND trip_id = $2`

	rating, err := scanRating(database.Conn(ctx, r.db).QueryRow(ctx, query, passengerID, tripID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find rating",
			zap.Error(err),
			zap.String("passenger_id", passengerID.String()),
			zap.String("trip_id", tripID.String()),
		)
		return nil, fmt.Errorf("find rating of %s on trip %s: %w", passengerID.String(), tripID.String(), err)
	}

	return rating, nil
}

func (r *ratingRepository) FindByDriver(ctx context.Context, driverID uuid.UUID) ([]*entity.Rating, error) {
	query := `SELECT ` + ratingColumns + ` FROM ratings WHERE driver_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, driverID)
}

func (r *ratingRepository) FindByTrip(ctx context.Context, tripID uuid.UUID) ([]*entity.Rating, error) {
	query := `SELECT ` + ratingColumns + ` FROM ratings WHERE trip_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, tripID)
}

func (r *ratingRepository) list(ctx context.Context, query string, id uuid.UUID) ([]*entity.Rating, error) {
	rows, err := database.Conn(ctx, r.db).Query(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to list ratings", zap.Error(err), zap.String("id", id.String()))
		return nil, fmt.Errorf("list ratings for %s: %w", id.String(), err)
	}
	defer rows.Close()

	var ratings []*entity.Rating
	for rows.Next() {
		rating, err := scanRating(rows)
		if err != nil {
			r.log.Error("Failed to scan rating row", zap.Error(err))
			return nil, fmt.Errorf("scan rating row: %w", err)
		}
		ratings = append(ratings, rating)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rating rows: %w", err)
	}

	return ratings, nil
}

func (r *ratingRepository) DriverStats(ctx context.Context, driverID uuid.UUID) (*entity.DriverRatingStats, error) {
	query := `SELECT COALESCE(AVG(rating), 0)::float8, COUNT(*) FROM ratings WHERE driver_id = $1`

	var stats entity.DriverRatingStats
	err := database.Conn(ctx, r.db).QueryRow(ctx, query, driverID).Scan(&stats.Average, &stats.Total)
	if err != nil {
		r.log.Error("Failed to get driver rating stats",
			zap.Error(err),
			zap.String("driver_id", driverID.String()),
		)
		return nil, fmt.Errorf("get rating stats for driver %s: %w", driverID.String(), err)
	}

	return &stats, nil
}
