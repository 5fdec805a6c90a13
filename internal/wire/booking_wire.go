package wire

import (
	"github.com/bvggies/recommendersystem/internal/adaptor"
	"github.com/bvggies/recommendersystem/pkg/middleware"
	"github.com/bvggies/recommendersystem/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Route("/api/bookings", func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT.Secret, log))

		// POST /api/bookings - Book seats on a trip
		r.Post("/", bookingHandler.CreateBooking)

		// GET /api/bookings/my-bookings - Passenger's own bookings, newest first
		r.Get("/my-bookings", bookingHandler.GetMyBookings)

		// PUT /api/bookings/{id}/cancel - Cancel own booking and release its seats
		r.Put("/{id}/cancel", bookingHandler.CancelBooking)
	})
}
