package request

type CreateBookingRequest struct {
	TripID string `json:"trip_id" validate:"required,uuid"`
	Seats  *int   `json:"seats,omitempty" validate:"omitempty,min=1,max=100"`
}

// SeatCount defaults to a single seat when the client omits it.
func (r CreateBookingRequest) SeatCount() int {
	if r.Seats == nil {
		return 1
	}
	return *r.Seats
}
