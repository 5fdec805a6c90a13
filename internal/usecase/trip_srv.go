package usecase

import (
	"context"
	"fmt"

	"github.com/bvggies/recommendersystem/internal/data/entity"
	"github.com/bvggies/recommendersystem/internal/data/repository"
	"github.com/bvggies/recommendersystem/internal/dto/request"
	"github.com/bvggies/recommendersystem/internal/dto/response"
	"github.com/bvggies/recommendersystem/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TripService interface {
	// UpdateStatus advances a trip. Completing a trip completes its confirmed bookings.
	UpdateStatus(ctx context.Context, actorID uuid.UUID, role entity.UserRole, tripID string, req *request.UpdateTripStatusRequest) (*response.TripStatusResponse, error)
}

type tripService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewTripService(repo *repository.Repository, log *zap.Logger) TripService {
	return &tripService{
		repo: repo,
		log:  log.With(zap.String("service", "trip")),
	}
}

func (s *tripService) UpdateStatus(ctx context.Context, actorID uuid.UUID, role entity.UserRole, tripID string, req *request.UpdateTripStatusRequest) (*response.TripStatusResponse, error) {
	id, err := uuid.Parse(tripID)
	if err != nil {
		return nil, ErrTripNotFound
	}
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, ErrValidation.WithMessage(utils.FormatValidationErrors(errs))
	}
	next := entity.TripStatus(req.Status)

	var (
		updated   *entity.Trip
		completed int64
	)
	err = s.repo.Tx.WithinTx(ctx, func(ctx context.Context) error {
		trip, err := s.repo.Trip.FindByID(ctx, id)
		if err != nil {
			return fmt.Errorf("find trip: %w", err)
		}
		if trip == nil {
			return ErrTripNotFound
		}
		if role != entity.RoleAdmin && trip.DriverID != actorID {
			return ErrNotTripDriver
		}
		if !trip.Status.CanTransitionTo(next) {
			return ErrInvalidTripTransition
		}

		ok, err := s.repo.Trip.UpdateStatus(ctx, id, trip.Status, next)
		if err != nil {
			return fmt.Errorf("update trip status: %w", err)
		}
		if !ok {
			// moved by someone else since the read
			return ErrInvalidTripTransition
		}

		if next == entity.TripStatusCompleted {
			completed, err = s.repo.Booking.CompleteByTrip(ctx, id)
			if err != nil {
				return fmt.Errorf("complete bookings: %w", err)
			}
		}

		trip.Status = next
		updated = trip
		return nil
	})
	if err != nil {
		s.log.Warn("Trip status update rejected",
			zap.Error(err),
			zap.String("trip_id", tripID),
			zap.String("status", req.Status),
		)
		return nil, err
	}

	s.log.Info("Trip status updated",
		zap.String("trip_id", tripID),
		zap.String("status", string(next)),
		zap.Int64("completed_bookings", completed),
	)

	return &response.TripStatusResponse{
		Trip:              response.TripToResponse(updated),
		CompletedBookings: completed,
	}, nil
}
