package request

// RecommendationRequest filters candidates; a zero Limit falls back to the configured default.
type RecommendationRequest struct {
	Origin      string `json:"origin" validate:"max=100"`
	Destination string `json:"destination" validate:"max=100"`
	Limit       int    `json:"limit" validate:"min=0"`
}
