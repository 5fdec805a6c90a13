package entity

// Candidate is a bookable trip annotated with the signals used for ranking.
type Candidate struct {
	Trip
	VehicleType  *string `db:"vehicle_type"`
	ComfortLevel *string `db:"comfort_level"`
	AvgRating    float64 `db:"avg_rating"`
	BookingCount int64   `db:"booking_count"`
}

type CandidateFilter struct {
	Origin      string
	Destination string
	FareMin     float64
	FareMax     float64
	Limit       int
}
