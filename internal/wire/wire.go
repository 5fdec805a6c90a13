package wire

import (
	"net/http"

	"github.com/bvggies/recommendersystem/internal/adaptor"
	"github.com/bvggies/recommendersystem/internal/data/repository"
	"github.com/bvggies/recommendersystem/internal/usecase"
	"github.com/bvggies/recommendersystem/pkg/middleware"
	"github.com/bvggies/recommendersystem/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired router and the services behind it.
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring builds services, handlers and routes on top of repo.
func Wiring(repo *repository.Repository, ext usecase.Externals, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(repo, ext, config, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, config, logger)

	return &App{
		Router:  router,
		Service: service,
	}
}

func setupRouter(handler *adaptor.Handler, config *utils.Config, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.App.CORSOrigins...))

	// Apply routes
	wireBooking(r, handler.Booking, config, logger)
	wireRating(r, handler.Rating, config, logger)
	wireRecommendation(r, handler.Recommendation, config, logger)
	wireTrip(r, handler.Trip, config, logger)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseSuccess(w, "OK", map[string]string{"status": "healthy"})
	})

	return r
}
