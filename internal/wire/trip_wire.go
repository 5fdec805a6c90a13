package wire

import (
	"github.com/bvggies/recommendersystem/internal/adaptor"
	"github.com/bvggies/recommendersystem/internal/data/entity"
	"github.com/bvggies/recommendersystem/pkg/middleware"
	"github.com/bvggies/recommendersystem/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireTrip(
	r chi.Router,
	tripHandler *adaptor.TripHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== DRIVER / ADMIN ROUTES ====================
	r.Route("/api/trips", func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT.Secret, log))
		r.Use(middleware.RequireRole(log, string(entity.RoleDriver), string(entity.RoleAdmin)))

		// PUT /api/trips/{id}/status - Advance the trip; completion completes its bookings
		r.Put("/{id}/status", tripHandler.UpdateStatus)
	})
}
