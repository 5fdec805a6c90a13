package usecase

import "github.com/bvggies/recommendersystem/pkg/apperror"

var (
	ErrValidation = apperror.New(apperror.KindValidation, "validation", "Validation failed")

	// TripInventory
	ErrTripNotFound      = apperror.New(apperror.KindNotFound, "trip_not_found", "Trip not found")
	ErrTripNotBookable   = apperror.New(apperror.KindNotFound, "trip_not_bookable", "Trip not found or not available")
	ErrInsufficientSeats = apperror.New(apperror.KindConflict, "insufficient_seats", "Not enough seats available")
	ErrInvalidSeats      = apperror.New(apperror.KindValidation, "invalid_seats", "Seats must be at least 1")

	// BookingLifecycle
	ErrDuplicateBooking  = apperror.New(apperror.KindConflict, "duplicate_booking", "You have already booked this trip")
	ErrSelfBooking       = apperror.New(apperror.KindAuthorization, "self_booking", "Cannot book your own trip")
	ErrBookingNotFound   = apperror.New(apperror.KindNotFound, "booking_not_found", "Booking not found")
	ErrNotBookingOwner   = apperror.New(apperror.KindAuthorization, "not_owner", "Booking not found")
	ErrAlreadyCancelled  = apperror.New(apperror.KindConflict, "already_cancelled", "Booking already cancelled")
	ErrInvalidTransition = apperror.New(apperror.KindConflict, "invalid_transition", "Booking can no longer be changed")

	// RatingGate
	ErrInvalidScore   = apperror.New(apperror.KindValidation, "invalid_score", "Rating must be between 1 and 5")
	ErrNotEligible    = apperror.New(apperror.KindAuthorization, "not_eligible", "You can only rate trips you have completed")
	ErrAlreadyRated   = apperror.New(apperror.KindConflict, "already_rated", "You have already rated this trip")
	ErrDriverMismatch = apperror.New(apperror.KindValidation, "driver_mismatch", "Driver does not match the trip")

	// Trip status
	ErrNotTripDriver         = apperror.New(apperror.KindAuthorization, "not_trip_driver", "Not authorized to update this trip")
	ErrInvalidTripTransition = apperror.New(apperror.KindConflict, "invalid_trip_transition", "Trip cannot move to that status")
)
