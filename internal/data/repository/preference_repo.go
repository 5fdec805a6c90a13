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

type PreferenceRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Preference, error)
}

type preferenceRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPreferenceRepository(db database.PgxIface, log *zap.Logger) PreferenceRepository {
	return &preferenceRepository{
		db:  db,
		log: log.With(zap.String("repository", "preference")),
	}
}

// FindByUserID reads the recommendation settings kept on the user record.
func (r *preferenceRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Preference, error) {
	query := `SELECT id, fare_range_min, fare_range_max, preferred_routes FROM users WHERE id = $1`

	var pref entity.Preference
	err := database.Conn(ctx, r.db).QueryRow(ctx, query, userID).Scan(
		&pref.UserID,
		&pref.FareRangeMin,
		&pref.FareRangeMax,
		&pref.PreferredRoutes,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find user preference",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find preference of user %s: %w", userID.String(), err)
	}

	return &pref, nil
}
