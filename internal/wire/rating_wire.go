package wire

import (
	"github.com/bvggies/recommendersystem/internal/adaptor"
	"github.com/bvggies/recommendersystem/pkg/middleware"
	"github.com/bvggies/recommendersystem/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireRating(
	r chi.Router,
	ratingHandler *adaptor.RatingHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	r.Route("/api/ratings", func(r chi.Router) {
		// ==================== PUBLIC ROUTES ====================
		r.Get("/driver/{driverId}", ratingHandler.GetDriverRatings)
		r.Get("/trip/{tripId}", ratingHandler.GetTripRatings)

		// ==================== PROTECTED ROUTES (require auth) ====================
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(config.JWT.Secret, log))

			// POST /api/ratings - Rate the driver of a completed trip
			r.Post("/", ratingHandler.SubmitRating)
		})
	})
}
