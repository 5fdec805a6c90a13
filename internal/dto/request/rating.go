package request

type CreateRatingRequest struct {
	TripID            string  `json:"trip_id" validate:"required,uuid"`
	DriverID          string  `json:"driver_id" validate:"required,uuid"`
	Rating            int     `json:"rating" validate:"required,min=1,max=5"`
	ComfortRating     *int    `json:"comfort_rating,omitempty" validate:"omitempty,min=1,max=5"`
	PunctualityRating *int    `json:"punctuality_rating,omitempty" validate:"omitempty,min=1,max=5"`
	ReviewText        *string `json:"review_text,omitempty" validate:"omitempty,max=1000"`
}
