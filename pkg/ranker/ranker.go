// Package ranker asks an OpenAI-compatible chat completions endpoint to
// reorder recommendation candidates.
package ranker

import (
	"context"
	"time"

	"github.com/bvggies/recommendersystem/pkg/apperror"
)

// ErrUnavailable wraps every failure of the ranking call.
var ErrUnavailable = apperror.New(apperror.KindExternal, "ranker_unavailable", "Ranking service unavailable")

type Candidate struct {
	ID          string    `json:"id"`
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	Fare        float64   `json:"fare"`
	Rating      float64   `json:"rating"`
	VehicleType string    `json:"vehicle_type,omitempty"`
	Departure   time.Time `json:"departure_time"`
}

type HistoryEntry struct {
	Origin      string  `json:"origin"`
	Destination string  `json:"destination"`
	Fare        float64 `json:"fare"`
	VehicleType string  `json:"vehicle_type,omitempty"`
	Rating      *int    `json:"rating,omitempty"`
}

type Request struct {
	PassengerID     string
	FareMin         float64
	FareMax         float64
	PreferredRoutes []string
	History         []HistoryEntry
	Candidates      []Candidate
}

// Ranker returns candidate ids, best first. The result is untrusted: it may
// name unknown ids or leave candidates out.
type Ranker interface {
	Rank(ctx context.Context, req *Request) ([]string, error)
}
