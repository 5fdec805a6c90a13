package response

import (
	"time"

	"github.com/bvggies/recommendersystem/internal/data/entity"
)

type TripResponse struct {
	ID             string            `json:"id"`
	DriverID       string            `json:"driver_id"`
	VehicleID      *string           `json:"vehicle_id,omitempty"`
	RouteID        *string           `json:"route_id,omitempty"`
	Origin         string            `json:"origin"`
	Destination    string            `json:"destination"`
	Fare           float64           `json:"fare"`
	DepartureTime  time.Time         `json:"departure_time"`
	TotalSeats     int               `json:"total_seats"`
	AvailableSeats int               `json:"available_seats"`
	Status         entity.TripStatus `json:"status"`
}

type TripStatusResponse struct {
	Trip              TripResponse `json:"trip"`
	CompletedBookings int64        `json:"completed_bookings"`
}

// Helper converter
func TripToResponse(trip *entity.Trip) TripResponse {
	resp := TripResponse{
		ID:             trip.ID.String(),
		DriverID:       trip.DriverID.String(),
		Origin:         trip.Origin,
		Destination:    trip.Destination,
		Fare:           trip.Fare,
		DepartureTime:  trip.DepartureTime,
		TotalSeats:     trip.TotalSeats,
		AvailableSeats: trip.AvailableSeats,
		Status:         trip.Status,
	}
	if trip.VehicleID != nil {
		id := trip.VehicleID.String()
		resp.VehicleID = &id
	}
	if trip.RouteID != nil {
		id := trip.RouteID.String()
		resp.RouteID = &id
	}
	return resp
}
