package response

import (
	"time"

	"github.com/bvggies/recommendersystem/internal/data/entity"
)

type RatingResponse struct {
	ID                string    `json:"id"`
	PassengerID       string    `json:"passenger_id"`
	DriverID          string    `json:"driver_id"`
	TripID            string    `json:"trip_id"`
	Rating            int       `json:"rating"`
	ComfortRating     *int      `json:"comfort_rating,omitempty"`
	PunctualityRating *int      `json:"punctuality_rating,omitempty"`
	ReviewText        *string   `json:"review_text,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

type DriverRatingsResponse struct {
	Ratings       []RatingResponse `json:"ratings"`
	AverageRating float64          `json:"average_rating"`
	TotalRatings  int64            `json:"total_ratings"`
}

type TripRatingsResponse struct {
	Ratings []RatingResponse `json:"ratings"`
}

// Helper converters
func RatingToResponse(r *entity.Rating) RatingResponse {
	return RatingResponse{
		ID:                r.ID.String(),
		PassengerID:       r.PassengerID.String(),
		DriverID:          r.DriverID.String(),
		TripID:            r.TripID.String(),
		Rating:            r.Rating,
		ComfortRating:     r.ComfortRating,
		PunctualityRating: r.PunctualityRating,
		ReviewText:        r.ReviewText,
		CreatedAt:         r.CreatedAt,
	}
}

func RatingsToResponse(ratings []*entity.Rating) []RatingResponse {
	out := make([]RatingResponse, len(ratings))
	for i, r := range ratings {
		out[i] = RatingToResponse(r)
	}
	return out
}
