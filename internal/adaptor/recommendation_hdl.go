package adaptor

import (
	"net/http"

	"github.com/bvggies/recommendersystem/internal/dto/request"
	"github.com/bvggies/recommendersystem/internal/usecase"
	"github.com/bvggies/recommendersystem/pkg/utils"

	"go.uber.org/zap"
)

type RecommendationHandler struct {
	service usecase.RecommendationService
	log     *zap.Logger
}

func NewRecommendationHandler(service usecase.RecommendationService, log *zap.Logger) *RecommendationHandler {
	return &RecommendationHandler{
		service: service,
		log:     log.With(zap.String("handler", "recommendation")),
	}
}

// GetRecommendations handles GET /api/recommendations (protected)
func (h *RecommendationHandler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	query := r.URL.Query()
	req := &request.RecommendationRequest{
		Origin:      query.Get("origin"),
		Destination: query.Get("destination"),
		Limit:       utils.ParseInt(query.Get("limit"), 0),
	}

	recommendations, err := h.service.Recommend(r.Context(), userID, req)
	if err != nil {
		handleServiceError(w, h.log, err, "get recommendations")
		return
	}

	utils.ResponseSuccess(w, "success", recommendations)
}
