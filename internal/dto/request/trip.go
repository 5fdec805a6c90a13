package request

type UpdateTripStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=scheduled in-progress completed cancelled"`
}
