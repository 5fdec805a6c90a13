package response

import (
	"time"

	"github.com/bvggies/recommendersystem/internal/data/entity"
)

type BookingResponse struct {
	ID          string               `json:"id"`
	PassengerID string               `json:"passenger_id"`
	TripID      string               `json:"trip_id"`
	SeatsBooked int                  `json:"seats_booked"`
	Status      entity.BookingStatus `json:"booking_status"`
	CreatedAt   time.Time            `json:"created_at"`
}

type BookingDetailResponse struct {
	BookingResponse
	DriverID      string            `json:"driver_id"`
	Origin        string            `json:"origin"`
	Destination   string            `json:"destination"`
	Fare          float64           `json:"fare"`
	DepartureTime time.Time         `json:"departure_time"`
	TripStatus    entity.TripStatus `json:"trip_status"`
	VehicleType   *string           `json:"vehicle_type,omitempty"`
}

// Helper converters
func BookingToResponse(b *entity.Booking) BookingResponse {
	return BookingResponse{
		ID:          b.ID.String(),
		PassengerID: b.PassengerID.String(),
		TripID:      b.TripID.String(),
		SeatsBooked: b.SeatsBooked,
		Status:      b.Status,
		CreatedAt:   b.CreatedAt,
	}
}

func BookingDetailToResponse(d *entity.BookingDetail) BookingDetailResponse {
	return BookingDetailResponse{
		BookingResponse: BookingToResponse(&d.Booking),
		DriverID:        d.DriverID.String(),
		Origin:          d.Origin,
		Destination:     d.Destination,
		Fare:            d.Fare,
		DepartureTime:   d.DepartureTime,
		TripStatus:      d.TripStatus,
		VehicleType:     d.VehicleType,
	}
}
