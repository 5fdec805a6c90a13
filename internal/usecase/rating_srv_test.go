package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/bvggies/recommendersystem/internal/data/entity"
	"github.com/bvggies/recommendersystem/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// completedTrip books a seat for passenger and completes the trip.
func (f *fixture) completedTrip(t *testing.T, passenger uuid.UUID) *entity.Trip {
	t.Helper()
	ctx := context.Background()
	trip := f.seedTrip(t, 4, 40, 2*time.Hour)
	_, err := f.svc.Booking.CreateBooking(ctx, passenger, &request.CreateBookingRequest{TripID: trip.ID.String()})
	require.NoError(t, err)
	resp, err := f.svc.Trip.UpdateStatus(ctx, trip.DriverID, entity.RoleDriver, trip.ID.String(),
		&request.UpdateTripStatusRequest{Status: string(entity.TripStatusCompleted)})
	require.NoError(t, err)
	require.Equal(t, int64(1), resp.CompletedBookings)
	return trip
}

func TestSubmitRating_Success(t *testing.T) {
	f := newFixture(t, Externals{})
	passenger := uuid.New()
	trip := f.completedTrip(t, passenger)
	review := "Smooth ride"

	resp, err := f.svc.Rating.SubmitRating(context.Background(), passenger, &request.CreateRatingRequest{
		TripID:        trip.ID.String(),
		DriverID:      trip.DriverID.String(),
		Rating:        4,
		ComfortRating: intPtr(5),
		ReviewText:    &review,
	})
	require.NoError(t, err)
	assert.Equal(t, 4, resp.Rating)
	assert.Equal(t, 5, *resp.ComfortRating)
	assert.Nil(t, resp.PunctualityRating)
	assert.Equal(t, review, *resp.ReviewText)
}

func TestSubmitRating_Gate(t *testing.T) {
	f := newFixture(t, Externals{})
	ctx := context.Background()
	passenger := uuid.New()
	completed := f.completedTrip(t, passenger)

	confirmedOnly := f.seedTrip(t, 4, 40, 2*time.Hour)
	_, err := f.svc.Booking.CreateBooking(ctx, passenger, &request.CreateBookingRequest{TripID: confirmedOnly.ID.String()})
	require.NoError(t, err)

	tests := []struct {
		name      string
		passenger uuid.UUID
		req       request.CreateRatingRequest
		want      error
	}{
		{
			name:      "score too high",
			passenger: passenger,
			req:       request.CreateRatingRequest{TripID: completed.ID.String(), DriverID: completed.DriverID.String(), Rating: 6},
			want:      ErrInvalidScore,
		},
		{
			name:      "score missing",
			passenger: passenger,
			req:       request.CreateRatingRequest{TripID: completed.ID.String(), DriverID: completed.DriverID.String()},
			want:      ErrInvalidScore,
		},
		{
			name:      "comfort out of range",
			passenger: passenger,
			req:       request.CreateRatingRequest{TripID: completed.ID.String(), DriverID: completed.DriverID.String(), Rating: 3, ComfortRating: intPtr(9)},
			want:      ErrValidation,
		},
		{
			name:      "unknown trip",
			passenger: passenger,
			req:       request.CreateRatingRequest{TripID: uuid.NewString(), DriverID: completed.DriverID.String(), Rating: 3},
			want:      ErrNotEligible,
		},
		{
			name:      "wrong driver",
			passenger: passenger,
			req:       request.CreateRatingRequest{TripID: completed.ID.String(), DriverID: uuid.NewString(), Rating: 3},
			want:      ErrDriverMismatch,
		},
		{
			name:      "booking not completed",
			passenger: passenger,
			req:       request.CreateRatingRequest{TripID: confirmedOnly.ID.String(), DriverID: confirmedOnly.DriverID.String(), Rating: 3},
			want:      ErrNotEligible,
		},
		{
			name:      "never booked",
			passenger: uuid.New(),
			req:       request.CreateRatingRequest{TripID: completed.ID.String(), DriverID: completed.DriverID.String(), Rating: 3},
			want:      ErrNotEligible,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Rating.SubmitRating(ctx, tt.passenger, &tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSubmitRating_OncePerTrip(t *testing.T) {
	f := newFixture(t, Externals{})
	ctx := context.Background()
	passenger := uuid.New()
	trip := f.completedTrip(t, passenger)
	req := &request.CreateRatingRequest{TripID: trip.ID.String(), DriverID: trip.DriverID.String(), Rating: 5}

	_, err := f.svc.Rating.SubmitRating(ctx, passenger, req)
	require.NoError(t, err)

	_, err = f.svc.Rating.SubmitRating(ctx, passenger, req)
	assert.ErrorIs(t, err, ErrAlreadyRated)
}

func TestGetDriverRatings_IncludesStats(t *testing.T) {
	f := newFixture(t, Externals{})
	ctx := context.Background()

	first, second := uuid.New(), uuid.New()
	tripA := f.completedTrip(t, first)
	_, err := f.svc.Rating.SubmitRating(ctx, first, &request.CreateRatingRequest{
		TripID: tripA.ID.String(), DriverID: tripA.DriverID.String(), Rating: 5,
	})
	require.NoError(t, err)

	// second passenger on a different trip of the same driver
	tripB := f.seedDriverTrip(t, tripA.DriverID, 4, 40, 2*time.Hour)
	_, err = f.svc.Booking.CreateBooking(ctx, second, &request.CreateBookingRequest{TripID: tripB.ID.String()})
	require.NoError(t, err)
	_, err = f.svc.Trip.UpdateStatus(ctx, tripB.DriverID, entity.RoleDriver, tripB.ID.String(),
		&request.UpdateTripStatusRequest{Status: string(entity.TripStatusCompleted)})
	require.NoError(t, err)
	_, err = f.svc.Rating.SubmitRating(ctx, second, &request.CreateRatingRequest{
		TripID: tripB.ID.String(), DriverID: tripB.DriverID.String(), Rating: 2,
	})
	require.NoError(t, err)

	resp, err := f.svc.Rating.GetDriverRatings(ctx, tripA.DriverID.String())
	require.NoError(t, err)
	assert.Len(t, resp.Ratings, 2)
	assert.Equal(t, int64(2), resp.TotalRatings)
	assert.InDelta(t, 3.5, resp.AverageRating, 0.001)

	tripRatings, err := f.svc.Rating.GetTripRatings(ctx, tripB.ID.String())
	require.NoError(t, err)
	require.Len(t, tripRatings.Ratings, 1)
	assert.Equal(t, 2, tripRatings.Ratings[0].Rating)

	_, err = f.svc.Rating.GetDriverRatings(ctx, "nope")
	assert.ErrorIs(t, err, ErrValidation)
}
