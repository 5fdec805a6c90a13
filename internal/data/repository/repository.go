package repository

import (
	"context"
	"errors"

	"github.com/bvggies/recommendersystem/pkg/database"

	"go.uber.org/zap"
)

// ErrDuplicate is returned when an insert hits a uniqueness rule
// (one active booking per passenger and trip, one rating per passenger and trip).
var ErrDuplicate = errors.New("duplicate record")

// Transactor runs fn as one unit of work. Repository calls made with the
// context handed to fn take part in it.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type Repository struct {
	Tx           Transactor
	Trip         TripRepository
	Booking      BookingRepository
	Rating       RatingRepository
	Preference   PreferenceRepository
	Notification NotificationRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Tx:           database.NewTxManager(db, log),
		Trip:         NewTripRepository(db, log),
		Booking:      NewBookingRepository(db, log),
		Rating:       NewRatingRepository(db, log),
		Preference:   NewPreferenceRepository(db, log),
		Notification: NewNotificationRepository(db, log),
	}
}
