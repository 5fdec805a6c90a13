package entity

import (
	"github.com/google/uuid"
)

type Rating struct {
	BaseSimple
	PassengerID       uuid.UUID `db:"passenger_id"`
	DriverID          uuid.UUID `db:"driver_id"`
	TripID            uuid.UUID `db:"trip_id"`
	Rating            int       `db:"rating"` // 1-5
	ComfortRating     *int      `db:"comfort_rating"`
	PunctualityRating *int      `db:"punctuality_rating"`
	ReviewText        *string   `db:"review_text"`
}

type DriverRatingStats struct {
	Average float64
	Total   int64
}
