package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTripStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from, to TripStatus
		want     bool
	}{
		{TripStatusScheduled, TripStatusInProgress, true},
		{TripStatusScheduled, TripStatusCompleted, true},
		{TripStatusScheduled, TripStatusCancelled, true},
		{TripStatusInProgress, TripStatusCompleted, true},
		{TripStatusInProgress, TripStatusCancelled, true},
		{TripStatusInProgress, TripStatusScheduled, false},
		{TripStatusCompleted, TripStatusCancelled, false},
		{TripStatusCancelled, TripStatusScheduled, false},
		{TripStatusScheduled, TripStatusScheduled, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestBookingStatus_CanTransitionTo(t *testing.T) {
	assert.True(t, BookingStatusConfirmed.CanTransitionTo(BookingStatusCancelled))
	assert.True(t, BookingStatusConfirmed.CanTransitionTo(BookingStatusCompleted))
	assert.False(t, BookingStatusCancelled.CanTransitionTo(BookingStatusConfirmed))
	assert.False(t, BookingStatusCancelled.CanTransitionTo(BookingStatusCompleted))
	assert.False(t, BookingStatusCompleted.CanTransitionTo(BookingStatusCancelled))
	assert.False(t, BookingStatusConfirmed.CanTransitionTo(BookingStatusConfirmed))
}

func TestTrip_Bookable(t *testing.T) {
	now := time.Now()

	trip := &Trip{Status: TripStatusScheduled, DepartureTime: now.Add(time.Hour)}
	assert.True(t, trip.Bookable(now))

	trip.DepartureTime = now.Add(-time.Minute)
	assert.False(t, trip.Bookable(now), "departed trip")

	trip.DepartureTime = now.Add(time.Hour)
	trip.Status = TripStatusInProgress
	assert.False(t, trip.Bookable(now), "trip no longer scheduled")
}
