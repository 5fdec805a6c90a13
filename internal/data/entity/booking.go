package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

// CanTransitionTo reports whether a booking in status s may move to next.
// Only confirmed bookings move; cancelled and completed are terminal.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	return s == BookingStatusConfirmed &&
		(next == BookingStatusCancelled || next == BookingStatusCompleted)
}

// Active reports whether the booking still holds seats on its trip.
func (s BookingStatus) Active() bool {
	return s != BookingStatusCancelled
}

type Booking struct {
	BaseNoDelete
	PassengerID uuid.UUID     `db:"passenger_id"`
	TripID      uuid.UUID     `db:"trip_id"`
	SeatsBooked int           `db:"seats_booked"`
	Status      BookingStatus `db:"booking_status"`
}

// BookingDetail is a booking joined with the trip fields shown to its passenger.
type BookingDetail struct {
	Booking
	DriverID      uuid.UUID  `db:"driver_id"`
	Origin        string     `db:"origin"`
	Destination   string     `db:"destination"`
	Fare          float64    `db:"fare"`
	DepartureTime time.Time  `db:"departure_time"`
	TripStatus    TripStatus `db:"trip_status"`
	VehicleType   *string    `db:"vehicle_type"`
}

// BookingHistory is one completed booking as described to the ranker.
type BookingHistory struct {
	RouteID     *uuid.UUID `db:"route_id"`
	Origin      string     `db:"origin"`
	Destination string     `db:"destination"`
	Fare        float64    `db:"fare"`
	VehicleType *string    `db:"vehicle_type"`
	Rating      *int       `db:"rating"`
}
