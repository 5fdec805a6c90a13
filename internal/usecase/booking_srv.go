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

type BookingService interface {
	CreateBooking(ctx context.Context, passengerID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	CancelBooking(ctx context.Context, passengerID uuid.UUID, bookingID string) (*response.BookingResponse, error)
	GetMyBookings(ctx context.Context, passengerID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingDetailResponse], error)
}

type bookingService struct {
	repo      *repository.Repository
	inventory InventoryService
	notify    *dispatcher
	log       *zap.Logger
}

func NewBookingService(repo *repository.Repository, inventory InventoryService, notify *dispatcher, log *zap.Logger) BookingService {
	return &bookingService{
		repo:      repo,
		inventory: inventory,
		notify:    notify,
		log:       log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, passengerID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	seats := req.SeatCount()
	if seats < 1 {
		return nil, ErrInvalidSeats
	}
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, ErrValidation.WithMessage(utils.FormatValidationErrors(errs))
	}

	tripID, err := uuid.Parse(req.TripID)
	if err != nil {
		return nil, ErrValidation.WithMessage("trip_id: Must be a valid UUID")
	}

	trip, err := s.repo.Trip.FindByID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("find trip: %w", err)
	}
	if trip == nil {
		return nil, ErrTripNotBookable
	}

	if trip.DriverID == passengerID {
		s.log.Warn("Self booking rejected",
			zap.String("passenger_id", passengerID.String()),
			zap.String("trip_id", tripID.String()),
		)
		return nil, ErrSelfBooking
	}

	existing, err := s.repo.Booking.FindActiveByPassengerAndTrip(ctx, passengerID, tripID)
	if err != nil {
		return nil, fmt.Errorf("check existing booking: %w", err)
	}
	if existing != nil {
		return nil, ErrDuplicateBooking
	}

	now := time.Now()
	booking := &entity.Booking{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		PassengerID: passengerID,
		TripID:      tripID,
		SeatsBooked: seats,
		Status:      entity.BookingStatusConfirmed,
	}

	// Reserve and insert commit together; a failed insert rolls the reservation back.
	err = s.repo.Tx.WithinTx(ctx, func(ctx context.Context) error {
		updated, err := s.inventory.Reserve(ctx, tripID, seats)
		if err != nil {
			return err
		}
		trip = updated

		if err := s.repo.Booking.Create(ctx, booking); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return ErrDuplicateBooking
			}
			return fmt.Errorf("create booking: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("passenger_id", passengerID.String()),
		zap.String("trip_id", tripID.String()),
		zap.Int("seats", seats),
		zap.Int("available_seats", trip.AvailableSeats),
	)

	s.notify.dispatch(ctx, bookingNotification(trip, booking))

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, passengerID uuid.UUID, bookingID string) (*response.BookingResponse, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, ErrBookingNotFound
	}

	var cancelled *entity.Booking
	err = s.repo.Tx.WithinTx(ctx, func(ctx context.Context) error {
		booking, err := s.repo.Booking.FindByID(ctx, id)
		if err != nil {
			return fmt.Errorf("find booking: %w", err)
		}
		if booking == nil {
			return ErrBookingNotFound
		}
		if booking.PassengerID != passengerID {
			return ErrNotBookingOwner
		}
		if err := checkCancellable(booking.Status); err != nil {
			return err
		}

		// Only the caller that flips confirmed -> cancelled releases seats.
		ok, err := s.repo.Booking.UpdateStatus(ctx, id, entity.BookingStatusConfirmed, entity.BookingStatusCancelled)
		if err != nil {
			return fmt.Errorf("cancel booking: %w", err)
		}
		if !ok {
			current, err := s.repo.Booking.FindByID(ctx, id)
			if err != nil {
				return fmt.Errorf("reload booking: %w", err)
			}
			if current == nil {
				return ErrBookingNotFound
			}
			if err := checkCancellable(current.Status); err != nil {
				return err
			}
			return ErrInvalidTransition
		}

		if _, err := s.inventory.Release(ctx, booking.TripID, booking.SeatsBooked); err != nil {
			return err
		}

		booking.Status = entity.BookingStatusCancelled
		cancelled = booking
		return nil
	})
	if err != nil {
		s.log.Warn("Cancel booking rejected",
			zap.Error(err),
			zap.String("booking_id", bookingID),
			zap.String("passenger_id", passengerID.String()),
		)
		return nil, err
	}

	s.log.Info("Booking cancelled",
		zap.String("booking_id", cancelled.ID.String()),
		zap.String("trip_id", cancelled.TripID.String()),
		zap.Int("seats_released", cancelled.SeatsBooked),
	)

	resp := response.BookingToResponse(cancelled)
	return &resp, nil
}

func checkCancellable(status entity.BookingStatus) error {
	if status == entity.BookingStatusCancelled {
		return ErrAlreadyCancelled
	}
	if !status.CanTransitionTo(entity.BookingStatusCancelled) {
		return ErrInvalidTransition
	}
	return nil
}

func (s *bookingService) GetMyBookings(ctx context.Context, passengerID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingDetailResponse], error) {
	limit := req.Limit()
	offset := req.Offset()

	bookings, err := s.repo.Booking.FindByPassenger(ctx, passengerID, limit, offset)
	if err != nil {
		s.log.Error("Failed to get passenger bookings",
			zap.Error(err),
			zap.String("passenger_id", passengerID.String()),
			zap.Int("page", req.Page),
			zap.Int("per_page", req.PerPage),
		)
		return nil, fmt.Errorf("get passenger bookings: %w", err)
	}

	total, err := s.repo.Booking.CountByPassenger(ctx, passengerID)
	if err != nil {
		s.log.Error("Failed to count passenger bookings", zap.Error(err))
		return nil, fmt.Errorf("count passenger bookings: %w", err)
	}

	data := make([]response.BookingDetailResponse, len(bookings))
	for i, b := range bookings {
		data[i] = response.BookingDetailToResponse(b)
	}

	return response.NewPaginatedResponse(data, req.Page, limit, total), nil
}
