package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bvggies/recommendersystem/internal/data/entity"
	"github.com/bvggies/recommendersystem/internal/data/repository"
	"github.com/bvggies/recommendersystem/internal/dto/request"
	"github.com/bvggies/recommendersystem/internal/dto/response"
	"github.com/bvggies/recommendersystem/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type RatingService interface {
	SubmitRating(ctx context.Context, passengerID uuid.UUID, req *request.CreateRatingRequest) (*response.RatingResponse, error)
	GetDriverRatings(ctx context.Context, driverID string) (*response.DriverRatingsResponse, error)
	GetTripRatings(ctx context.Context, tripID string) (*response.TripRatingsResponse, error)
}

type ratingService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewRatingService(repo *repository.Repository, log *zap.Logger) RatingService {
	return &ratingService{
		repo: repo,
		log:  log.With(zap.String("service", "rating")),
	}
}

func (s *ratingService) SubmitRating(ctx context.Context, passengerID uuid.UUID, req *request.CreateRatingRequest) (*response.RatingResponse, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidScore
	}
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Submit rating validation failed", zap.Any("errors", errs))
		return nil, ErrValidation.WithMessage(utils.FormatValidationErrors(errs))
	}

	tripID, err := uuid.Parse(req.TripID)
	if err != nil {
		return nil, ErrValidation.WithMessage("trip_id: Must be a valid UUID")
	}
	driverID, err := uuid.Parse(req.DriverID)
	if err != nil {
		return nil, ErrValidation.WithMessage("driver_id: Must be a valid UUID")
	}

	trip, err := s.repo.Trip.FindByID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("find trip: %w", err)
	}
	// An unknown trip cannot have a completed booking.
	if trip == nil {
		return nil, ErrNotEligible
	}
	if trip.DriverID != driverID {
		return nil, ErrDriverMismatch
	}

	completed, err := s.repo.Booking.HasCompleted(ctx, passengerID, tripID)
	if err != nil {
		return nil, fmt.Errorf("check completed booking: %w", err)
	}
	if !completed {
		s.log.Warn("Rating rejected, no completed booking",
			zap.String("passenger_id", passengerID.String()),
			zap.String("trip_id", tripID.String()),
		)
		return nil, ErrNotEligible
	}

	existing, err := s.repo.Rating.FindByPassengerAndTrip(ctx, passengerID, tripID)
	if err != nil {
		return nil, fmt.Errorf("check existing rating: %w", err)
	}
	if existing != nil {
		return nil, ErrAlreadyRated
	}

	rating := &entity.Rating{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		PassengerID:       passengerID,
		DriverID:          driverID,
		TripID:            tripID,
		Rating:            req.Rating,
		ComfortRating:     req.ComfortRating,
		PunctualityRating: req.PunctualityRating,
		ReviewText:        req.ReviewText,
	}

	// the unique index settles a concurrent submit for the same pair
	if err := s.repo.Rating.Create(ctx, rating); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadyRated
		}
		s.log.Error("Failed to create rating", zap.Error(err))
		return nil, fmt.Errorf("create rating: %w", err)
	}

	s.log.Info("Rating submitted",
		zap.String("rating_id", rating.ID.String()),
		zap.String("trip_id", tripID.String()),
		zap.Int("rating", rating.Rating),
	)

	resp := response.RatingToResponse(rating)
	return &resp, nil
}

func (s *ratingService) GetDriverRatings(ctx context.Context, driverID string) (*response.DriverRatingsResponse, error) {
	id, err := uuid.Parse(driverID)
	if err != nil {
		return nil, ErrValidation.WithMessage("Invalid driver ID")
	}

	ratings, err := s.repo.Rating.FindByDriver(ctx, id)
	if err != nil {
		s.log.Error("Failed to get driver ratings", zap.Error(err), zap.String("driver_id", driverID))
		return nil, fmt.Errorf("get driver ratings: %w", err)
	}

	stats, err := s.repo.Rating.DriverStats(ctx, id)
	if err != nil {
		s.log.Error("Failed to get driver rating stats", zap.Error(err), zap.String("driver_id", driverID))
		return nil, fmt.Errorf("get driver rating stats: %w", err)
	}

	return &response.DriverRatingsResponse{
		Ratings:       response.RatingsToResponse(ratings),
		AverageRating: stats.Average,
		TotalRatings:  stats.Total,
	}, nil
}

func (s *ratingService) GetTripRatings(ctx context.Context, tripID string) (*response.TripRatingsResponse, error) {
	id, err := uuid.Parse(tripID)
	if err != nil {
		return nil, ErrValidation.WithMessage("Invalid trip ID")
	}

	ratings, err := s.repo.Rating.FindByTrip(ctx, id)
	if err != nil {
		s.log.Error("Failed to get trip ratings", zap.Error(err), zap.String("trip_id", tripID))
		return nil, fmt.Errorf("get trip ratings: %w", err)
	}

	return &response.TripRatingsResponse{Ratings: response.RatingsToResponse(ratings)}, nil
}
