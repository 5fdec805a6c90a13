package memory

import (
	"context"
	"sort"

	"github.com/bvggies/recommendersystem/internal/data/entity"
	"github.com/bvggies/recommendersystem/internal/data/repository"

	"github.com/google/uuid"
)

type ratingRepository struct {
	s *Store
}

func (r *ratingRepository) Create(ctx context.Context, rating *entity.Rating) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := pairKey{rating.PassengerID, rating.TripID}
	if _, taken := r.s.ratingByPair[key]; taken {
		return repository.ErrDuplicate
	}

	cp := *rating
	r.s.ratings[rating.ID] = &cp
	r.s.ratingByPair[key] = rating.ID

	record(ctx, func() {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
		delete(r.s.ratings, rating.ID)
		delete(r.s.ratingByPair, key)
	})
	return nil
}

func (r *ratingRepository) FindByPassengerAndTrip(ctx context.Context, passengerID, tripID uuid.UUID) (*entity.Rating, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	id, ok := r.s.ratingByPair[pairKey{passengerID, tripID}]
	if !ok {
		return nil, nil
	}
	cp := *r.s.ratings[id]
	return &cp, nil
}

func (r *ratingRepository) FindByDriver(ctx context.Context, driverID uuid.UUID) ([]*entity.Rating, error) {
	return r.filter(func(rt *entity.Rating) bool { return rt.DriverID == driverID }), nil
}

func (r *ratingRepository) FindByTrip(ctx context.Context, tripID uuid.UUID) ([]*entity.Rating, error) {
	return r.filter(func(rt *entity.Rating) bool { return rt.TripID == tripID }), nil
}

func (r *ratingRepository) filter(match func(*entity.Rating) bool) []*entity.Rating {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []*entity.Rating
	for _, rt := range r.s.ratings {
		if match(rt) {
			cp := *rt
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *ratingRepository) DriverStats(ctx context.Context, driverID uuid.UUID) (*entity.DriverRatingStats, error) {
	ratings, _ := r.FindByDriver(ctx, driverID)

	stats := &entity.DriverRatingStats{Total: int64(len(ratings))}
	if len(ratings) == 0 {
		return stats, nil
	}
	sum := 0
	for _, rt := range ratings {
		sum += rt.Rating
	}
	stats.Average = float64(sum) / float64(len(ratings))
	return stats, nil
}
