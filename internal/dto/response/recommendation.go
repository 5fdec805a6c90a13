package response

import "github.com/bvggies/recommendersystem/internal/data/entity"

type RecommendedTrip struct {
	TripResponse
	VehicleType  *string `json:"vehicle_type,omitempty"`
	ComfortLevel *string `json:"comfort_level,omitempty"`
	AvgRating    float64 `json:"avg_rating"`
	BookingCount int64   `json:"booking_count"`
}

type FareRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type UserPreferences struct {
	FareRange       FareRange `json:"fare_range"`
	PreferredRoutes []string  `json:"preferred_routes"`
}

type RecommendationResponse struct {
	Recommendations []RecommendedTrip `json:"recommendations"`
	UserPreferences UserPreferences   `json:"user_preferences"`
	Reranked        bool              `json:"reranked"`
}

// Helper converter
func CandidateToResponse(c *entity.Candidate) RecommendedTrip {
	return RecommendedTrip{
		TripResponse: TripToResponse(&c.Trip),
		VehicleType:  c.VehicleType,
		ComfortLevel: c.ComfortLevel,
		AvgRating:    c.AvgRating,
		BookingCount: c.BookingCount,
	}
}
