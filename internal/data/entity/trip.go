package entity

import (
	"time"

	"github.com/google/uuid"
)

type TripStatus string

const (
	TripStatusScheduled  TripStatus = "scheduled"
	TripStatusInProgress TripStatus = "in-progress"
	TripStatusCompleted  TripStatus = "completed"
	TripStatusCancelled  TripStatus = "cancelled"
)

var tripTransitions = map[TripStatus][]TripStatus{
	TripStatusScheduled:  {TripStatusInProgress, TripStatusCompleted, TripStatusCancelled},
	TripStatusInProgress: {TripStatusCompleted, TripStatusCancelled},
}

func (s TripStatus) Valid() bool {
	switch s {
	case TripStatusScheduled, TripStatusInProgress, TripStatusCompleted, TripStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether a trip in status s may move to next.
func (s TripStatus) CanTransitionTo(next TripStatus) bool {
	for _, allowed := range tripTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Trip struct {
	BaseNoDelete
	DriverID       uuid.UUID  `db:"driver_id"`
	VehicleID      *uuid.UUID `db:"vehicle_id"`
	RouteID        *uuid.UUID `db:"route_id"`
	Origin         string     `db:"origin"`
	Destination    string     `db:"destination"`
	Fare           float64    `db:"fare"`
	DepartureTime  time.Time  `db:"departure_time"`
	TotalSeats     int        `db:"total_seats"` // immutable after creation
	AvailableSeats int        `db:"available_seats"`
	Status         TripStatus `db:"status"`
}

// Bookable reports whether seats on the trip can still be reserved at now.
func (t *Trip) Bookable(now time.Time) bool {
	return t.Status == TripStatusScheduled && t.DepartureTime.After(now)
}
