package adaptor

import (
	"github.com/bvggies/recommendersystem/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Booking        *BookingHandler
	Rating         *RatingHandler
	Recommendation *RecommendationHandler
	Trip           *TripHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Booking:        NewBookingHandler(service.Booking, log),
		Rating:         NewRatingHandler(service.Rating, log),
		Recommendation: NewRecommendationHandler(service.Recommendation, log),
		Trip:           NewTripHandler(service.Trip, log),
	}
}
