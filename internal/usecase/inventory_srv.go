package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/bvggies/recommendersystem/internal/data/entity"
	"github.com/bvggies/recommendersystem/internal/data/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// InventoryService is the only writer of a trip's available seat count.
type InventoryService interface {
	// Reserve checks and decrements seats in one atomic step.
	Reserve(ctx context.Context, tripID uuid.UUID, seats int) (*entity.Trip, error)
	// Release gives seats back, never past the trip's total.
	Release(ctx context.Context, tripID uuid.UUID, seats int) (*entity.Trip, error)
}

type inventoryService struct {
	trips repository.TripRepository
	now   func() time.Time
	log   *zap.Logger
}

func NewInventoryService(trips repository.TripRepository, log *zap.Logger) InventoryService {
	return &inventoryService{
		trips: trips,
		now:   time.Now,
		log:   log.With(zap.String("service", "inventory")),
	}
}

func (s *inventoryService) Reserve(ctx context.Context, tripID uuid.UUID, seats int) (*entity.Trip, error) {
	if seats < 1 {
		return nil, ErrInvalidSeats
	}

	trip, err := s.trips.ReserveSeats(ctx, tripID, seats)
	if err != nil {
		return nil, fmt.Errorf("reserve seats: %w", err)
	}
	if trip != nil {
		s.log.Debug("Seats reserved",
			zap.String("trip_id", tripID.String()),
			zap.Int("seats", seats),
			zap.Int("available", trip.AvailableSeats),
		)
		return trip, nil
	}

	// The guarded update matched nothing; read the trip only to explain why.
	current, err := s.trips.FindByID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("classify failed reservation: %w", err)
	}

	switch {
	case current == nil:
		return nil, ErrTripNotBookable
	case !current.Bookable(s.now()):
		return nil, ErrTripNotBookable
	default:
		s.log.Warn("Reservation rejected",
			zap.String("trip_id", tripID.String()),
			zap.Int("requested", seats),
			zap.Int("available", current.AvailableSeats),
		)
		return nil, ErrInsufficientSeats
	}
}

func (s *inventoryService) Release(ctx context.Context, tripID uuid.UUID, seats int) (*entity.Trip, error) {
	if seats < 1 {
		return nil, ErrInvalidSeats
	}

	trip, err := s.trips.ReleaseSeats(ctx, tripID, seats)
	if err != nil {
		return nil, fmt.Errorf("release seats: %w", err)
	}
	if trip == nil {
		return nil, ErrTripNotFound
	}

	s.log.Debug("Seats released",
		zap.String("trip_id", tripID.String()),
		zap.Int("seats", seats),
		zap.Int("available", trip.AvailableSeats),
	)
	return trip, nil
}
