package adaptor

import (
	"encoding/json"
	"net/http"

	"github.com/bvggies/recommendersystem/internal/dto/request"
	"github.com/bvggies/recommendersystem/internal/usecase"
	"github.com/bvggies/recommendersystem/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type RatingHandler struct {
	service usecase.RatingService
	log     *zap.Logger
}

func NewRatingHandler(service usecase.RatingService, log *zap.Logger) *RatingHandler {
	return &RatingHandler{
		service: service,
		log:     log.With(zap.String("handler", "rating")),
	}
}

// SubmitRating handles POST /api/ratings (protected)
func (h *RatingHandler) SubmitRating(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateRatingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	rating, err := h.service.SubmitRating(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "submit rating")
		return
	}

	utils.ResponseCreated(w, "Rating submitted successfully", rating)
}

// GetDriverRatings handles GET /api/ratings/driver/{driverId} (public)
func (h *RatingHandler) GetDriverRatings(w http.ResponseWriter, r *http.Request) {
	ratings, err := h.service.GetDriverRatings(r.Context(), chi.URLParam(r, "driverId"))
	if err != nil {
		handleServiceError(w, h.log, err, "get driver ratings")
		return
	}

	utils.ResponseSuccess(w, "success", ratings)
}

// GetTripRatings handles GET /api/ratings/trip/{tripId} (public)
func (h *RatingHandler) GetTripRatings(w http.ResponseWriter, r *http.Request) {
	ratings, err := h.service.GetTripRatings(r.Context(), chi.URLParam(r, "tripId"))
	if err != nil {
		handleServiceError(w, h.log, err, "get trip ratings")
		return
	}

	utils.ResponseSuccess(w, "success", ratings)
}
