package wire

import (
	"github.com/bvggies/recommendersystem/internal/adaptor"
	"github.com/bvggies/recommendersystem/pkg/middleware"
	"github.com/bvggies/recommendersystem/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireRecommendation(
	r chi.Router,
	recommendationHandler *adaptor.RecommendationHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT.Secret, log))

		// GET /api/recommendations?origin=&destination=&limit=
		r.Get("/api/recommendations", recommendationHandler.GetRecommendations)
	})
}
