package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/bvggies/recommendersystem/internal/data/entity"
	"github.com/bvggies/recommendersystem/pkg/utils"

	"github.com/google/uuid"
)

type tripRepository struct {
	s *Store
}

func (r *tripRepository) Create(ctx context.Context, trip *entity.Trip) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.trips[trip.ID]; exists {
		return fmt.Errorf("create trip %s: already exists", trip.ID.String())
	}
	r.s.trips[trip.ID] = &tripSlot{trip: *trip}

	record(ctx, func() {
		r.s.mu.Lock()
		delete(r.s.trips, trip.ID)
		r.s.mu.Unlock()
	})
	return nil
}

func (r *tripRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Trip, error) {
	trip, ok := r.s.snapshot(id)
	if !ok {
		return nil, nil
	}
	return &trip, nil
}

func (r *tripRepository) ReserveSeats(ctx context.Context, id uuid.UUID, seats int) (*entity.Trip, error) {
	slot := r.s.slot(id)
	if slot == nil {
		return nil, nil
	}

	slot.mu.Lock()
	defer slot.mu.Unlock()

	if !slot.trip.Bookable(r.s.now()) || slot.trip.AvailableSeats < seats {
		return nil, nil
	}
	slot.trip.AvailableSeats -= seats
	slot.trip.UpdatedAt = r.s.now()

	record(ctx, func() {
		slot.mu.Lock()
		slot.trip.AvailableSeats += seats
		slot.mu.Unlock()
	})

	trip := slot.trip
	return &trip, nil
}

func (r *tripRepository) ReleaseSeats(ctx context.Context, id uuid.UUID, seats int) (*entity.Trip, error) {
	slot := r.s.slot(id)
	if slot == nil {
		return nil, nil
	}

	slot.mu.Lock()
	defer slot.mu.Unlock()

	before := slot.trip.AvailableSeats
	slot.trip.AvailableSeats = min(before+seats, slot.trip.TotalSeats)
	slot.trip.UpdatedAt = r.s.now()
	released := slot.trip.AvailableSeats - before

	record(ctx, func() {
		slot.mu.Lock()
		slot.trip.AvailableSeats -= released
		slot.mu.Unlock()
	})

	trip := slot.trip
	return &trip, nil
}

func (r *tripRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.TripStatus) (bool, error) {
	slot := r.s.slot(id)
	if slot == nil {
		return false, nil
	}

	slot.mu.Lock()
	defer slot.mu.Unlock()

	if slot.trip.Status != from {
		return false, nil
	}
	slot.trip.Status = to
	slot.trip.UpdatedAt = r.s.now()

	record(ctx, func() {
		slot.mu.Lock()
		slot.trip.Status = from
		slot.mu.Unlock()
	})
	return true, nil
}

func (r *tripRepository) FindCandidates(ctx context.Context, filter entity.CandidateFilter) ([]*entity.Candidate, error) {
	r.s.mu.RLock()
	ids := make([]uuid.UUID, 0, len(r.s.trips))
	for id := range r.s.trips {
		ids = append(ids, id)
	}

	ratingSum := make(map[uuid.UUID]int)
	ratingCount := make(map[uuid.UUID]int)
	for _, rating := range r.s.ratings {
		ratingSum[rating.DriverID] += rating.Rating
		ratingCount[rating.DriverID]++
	}
	bookingCount := make(map[uuid.UUID]int64)
	for _, b := range r.s.bookings {
		bookingCount[b.TripID]++
	}
	vehicles := make(map[uuid.UUID]Vehicle, len(r.s.vehicles))
	for id, v := range r.s.vehicles {
		vehicles[id] = v
	}
	r.s.mu.RUnlock()

	now := r.s.now()
	var candidates []*entity.Candidate
	for _, id := range ids {
		trip, ok := r.s.snapshot(id)
		if !ok || !trip.Bookable(now) || trip.AvailableSeats <= 0 {
			continue
		}
		if !utils.ContainsFold(trip.Origin, filter.Origin) || !utils.ContainsFold(trip.Destination, filter.Destination) {
			continue
		}
		if trip.Fare < filter.FareMin || trip.Fare > filter.FareMax {
			continue
		}

		c := &entity.Candidate{Trip: trip, BookingCount: bookingCount[id]}
		if n := ratingCount[trip.DriverID]; n > 0 {
			c.AvgRating = float64(ratingSum[trip.DriverID]) / float64(n)
		}
		if trip.VehicleID != nil {
			if v, ok := vehicles[*trip.VehicleID]; ok {
				vehicleType, comfort := v.Type, v.ComfortLevel
				c.VehicleType, c.ComfortLevel = &vehicleType, &comfort
			}
		}
		candidates = append(candidates, c)
	}

	sort.Slice(candidates, func(i, j int) bool {
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

	if filter.Limit > 0 && len(candidates) > filter.Limit {
		candidates = candidates[:filter.Limit]
	}
	return candidates, nil
}
