package adaptor

import (
	"encoding/json"
	"net/http"

	"github.com/bvggies/recommendersystem/internal/data/entity"
	"github.com/bvggies/recommendersystem/internal/dto/request"
	"github.com/bvggies/recommendersystem/internal/usecase"
	"github.com/bvggies/recommendersystem/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type TripHandler struct {
	service usecase.TripService
	log     *zap.Logger
}

func NewTripHandler(service usecase.TripService, log *zap.Logger) *TripHandler {
	return &TripHandler{
		service: service,
		log:     log.With(zap.String("handler", "trip")),
	}
}

// UpdateStatus handles PUT /api/trips/{id}/status (driver or admin)
func (h *TripHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}
	role, _ := utils.GetRoleFromContext(r.Context())

	var req request.UpdateTripStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	trip, err := h.service.UpdateStatus(r.Context(), userID, entity.UserRole(role), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update trip status")
		return
	}

	utils.ResponseSuccess(w, "Trip status updated successfully", trip)
}
