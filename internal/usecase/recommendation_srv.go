package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/bvggies/recommendersystem/internal/data/entity"
	"github.com/bvggies/recommendersystem/internal/data/repository"
	"github.com/bvggies/recommendersystem/internal/dto/request"
	"github.com/bvggies/recommendersystem/internal/dto/response"
	"github.com/bvggies/recommendersystem/pkg/apperror"
	"github.com/bvggies/recommendersystem/pkg/ranker"
	"github.com/bvggies/recommendersystem/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type RecommendationService interface {
	Recommend(ctx context.Context, passengerID uuid.UUID, req *request.RecommendationRequest) (*response.RecommendationResponse, error)
}

type recommendationService struct {
	repo      *repository.Repository
	ranker    ranker.Ranker // nil disables re-ranking
	rankerCfg utils.RankerConfig
	cfg       utils.RecommendConfig
	log       *zap.Logger
}

func NewRecommendationService(repo *repository.Repository, r ranker.Ranker, config *utils.Config, log *zap.Logger) RecommendationService {
	return &recommendationService{
		repo:      repo,
		ranker:    r,
		rankerCfg: config.Ranker,
		cfg:       config.Recommend,
		log:       log.With(zap.String("service", "recommendation")),
	}
}

func (s *recommendationService) Recommend(ctx context.Context, passengerID uuid.UUID, req *request.RecommendationRequest) (*response.RecommendationResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Recommendation request validation failed", zap.Any("errors", errs))
		return nil, ErrValidation.WithMessage(utils.FormatValidationErrors(errs))
	}

	limit := req.Limit
	if limit < 1 {
		limit = s.cfg.DefaultLimit
	}
	limit = utils.ClampInt(limit, 1, s.cfg.MaxLimit)

	var (
		pref    *entity.Preference
		history []*entity.BookingHistory
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		pref, err = s.repo.Preference.FindByUserID(gctx, passengerID)
		if err != nil {
			return fmt.Errorf("load preferences: %w", err)
		}
		return nil
	})
	if s.ranker != nil {
		g.Go(func() error {
			var err error
			history, err = s.repo.Booking.FindHistory(gctx, passengerID, s.rankerCfg.HistorySize)
			if err != nil {
				// history only enriches the ranker prompt
				s.log.Warn("Failed to load booking history", zap.Error(err))
				history = nil
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.log.Error("Failed to load passenger context", zap.Error(err), zap.String("passenger_id", passengerID.String()))
		return nil, err
	}

	fareMin, fareMax, routes := s.preferences(pref)

	candidates, err := s.repo.Trip.FindCandidates(ctx, entity.CandidateFilter{
		Origin:      req.Origin,
		Destination: req.Destination,
		FareMin:     fareMin,
		FareMax:     fareMax,
		Limit:       s.cfg.MaxCandidates,
	})
	if err != nil {
		s.log.Error("Failed to query candidates", zap.Error(err))
		return nil, fmt.Errorf("query candidates: %w", err)
	}

	sortDefault(candidates)

	ranked, reranked := candidates, false
	if s.ranker != nil && len(candidates) > 1 {
		ids, err := s.rerank(ctx, &ranker.Request{
			PassengerID:     passengerID.String(),
			FareMin:         fareMin,
			FareMax:         fareMax,
			PreferredRoutes: routes,
			History:         toHistory(history),
			Candidates:      toRankerCandidates(candidates, s.rankerCfg.TopN),
		})
		if err != nil {
			s.log.Warn("Re-ranking unavailable, using default order",
				zap.Error(err),
				zap.String("kind", string(apperror.KindExternal)),
				zap.String("passenger_id", passengerID.String()),
			)
		} else {
			ranked, reranked = mergeRanking(candidates, ids)
		}
	}

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	out := make([]response.RecommendedTrip, len(ranked))
	for i, c := range ranked {
		out[i] = response.CandidateToResponse(c)
	}

	return &response.RecommendationResponse{
		Recommendations: out,
		UserPreferences: response.UserPreferences{
			FareRange:       response.FareRange{Min: fareMin, Max: fareMax},
			PreferredRoutes: routes,
		},
		Reranked: reranked,
	}, nil
}

func (s *recommendationService) preferences(pref *entity.Preference) (float64, float64, []string) {
	fareMin, fareMax := s.cfg.DefaultFareMin, s.cfg.DefaultFareMax
	routes := []string{}
	if pref == nil {
		return fareMin, fareMax, routes
	}
	if pref.FareRangeMin != nil {
		fareMin = *pref.FareRangeMin
	}
	if pref.FareRangeMax != nil {
		fareMax = *pref.FareRangeMax
	}
	if pref.PreferredRoutes != nil {
		routes = pref.PreferredRoutes
	}
	return fareMin, fareMax, routes
}

// rerank bounds the ranker call independently of the ranker implementation.
func (s *recommendationService) rerank(ctx context.Context, req *ranker.Request) ([]string, error) {
	timeout := s.rankerCfg.Timeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		ids []string
		err error
	}
	done := make(chan result, 1)
	go func() {
		ids, err := s.ranker.Rank(ctx, req)
		done <- result{ids: ids, err: err}
	}()

	select {
	case res := <-done:
		return res.ids, res.err
	case <-ctx.Done():
		return nil, ranker.ErrUnavailable.Wrap(ctx.Err())
	}
}

// sortDefault orders by driver rating, then popularity, then earliest departure.
// Trip id closes the chain so the order is total.
func sortDefault(candidates []*entity.Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.AvgRating != b.AvgRating {
			return a.AvgRating > b.AvgRating
		}
		if a.BookingCount != b.BookingCount {
			return a.BookingCount > b.BookingCount
		}
		if !a.DepartureTime.Equal(b.DepartureTime) {
			return a.DepartureTime.Before(b.DepartureTime)
		}
		return a.ID.String() < b.ID.String()
	})
}

// mergeRanking puts the ranker's valid ids first, in its order, and the rest
// of candidates after them in their current order. Unknown and repeated ids
// are dropped, so the result always holds exactly the input set.
func mergeRanking(candidates []*entity.Candidate, ids []string) ([]*entity.Candidate, bool) {
	byID := make(map[uuid.UUID]*entity.Candidate, len(candidates))
	for _, c := range candidates {
		byID[c.ID] = c
	}

	merged := make([]*entity.Candidate, 0, len(candidates))
	placed := make(map[uuid.UUID]bool, len(candidates))
	for _, raw := range ids {
		id, err := uuid.Parse(raw)
		if err != nil {
			continue
		}
		c, ok := byID[id]
		if !ok || placed[id] {
			continue
		}
		placed[id] = true
		merged = append(merged, c)
	}
	if len(merged) == 0 {
		return candidates, false
	}

	for _, c := range candidates {
		if !placed[c.ID] {
			merged = append(merged, c)
		}
	}
	return merged, true
}

func toRankerCandidates(candidates []*entity.Candidate, topN int) []ranker.Candidate {
	if topN > 0 && len(candidates) > topN {
		candidates = candidates[:topN]
	}
	out := make([]ranker.Candidate, len(candidates))
	for i, c := range candidates {
		out[i] = ranker.Candidate{
			ID:          c.ID.String(),
			Origin:      c.Origin,
			Destination: c.Destination,
			Fare:        c.Fare,
			Rating:      c.AvgRating,
			Departure:   c.DepartureTime,
		}
		if c.VehicleType != nil {
			out[i].VehicleType = *c.VehicleType
		}
	}
	return out
}

func toHistory(history []*entity.BookingHistory) []ranker.HistoryEntry {
	out := make([]ranker.HistoryEntry, len(history))
	for i, h := range history {
		out[i] = ranker.HistoryEntry{
			Origin:      h.Origin,
			Destination: h.Destination,
			Fare:        h.Fare,
			Rating:      h.Rating,
		}
		if h.VehicleType != nil {
			out[i].VehicleType = *h.VehicleType
		}
	}
	return out
}
