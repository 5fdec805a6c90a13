package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/bvggies/recommendersystem/internal/data/entity"
	"github.com/bvggies/recommendersystem/internal/data/repository"

	"github.com/google/uuid"
)

type bookingRepository struct {
	s *Store
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.bookings[booking.ID]; exists {
		return fmt.Errorf("create booking %s: already exists", booking.ID.String())
	}
	key := pairKey{booking.PassengerID, booking.TripID}
	if booking.Status.Active() {
		if _, taken := r.s.activeBooking[key]; taken {
			return repository.ErrDuplicate
		}
		r.s.activeBooking[key] = booking.ID
	}

	cp := *booking
	r.s.bookings[booking.ID] = &cp

	record(ctx, func() {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
		delete(r.s.bookings, booking.ID)
		if r.s.activeBooking[key] == booking.ID {
			delete(r.s.activeBooking, key)
		}
	})
	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	b, ok := r.s.bookings[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (r *bookingRepository) FindActiveByPassengerAndTrip(ctx context.Context, passengerID, tripID uuid.UUID) (*entity.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	id, ok := r.s.activeBooking[pairKey{passengerID, tripID}]
	if !ok {
		return nil, nil
	}
	cp := *r.s.bookings[id]
	return &cp, nil
}

func (r *bookingRepository) passengerBookings(passengerID uuid.UUID) []entity.Booking {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []entity.Booking
	for _, b := range r.s.bookings {
		if b.PassengerID == passengerID {
			out = append(out, *b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out
}

func (r *bookingRepository) FindByPassenger(ctx context.Context, passengerID uuid.UUID, limit, offset int) ([]*entity.BookingDetail, error) {
	bookings := r.passengerBookings(passengerID)
	if offset < 0 || offset >= len(bookings) {
		return nil, nil
	}
	bookings = bookings[offset:]
	if limit > 0 && len(bookings) > limit {
		bookings = bookings[:limit]
	}

	details := make([]*entity.BookingDetail, 0, len(bookings))
	for _, b := range bookings {
		trip, ok := r.s.snapshot(b.TripID)
		if !ok {
			continue
		}
		details = append(details, &entity.BookingDetail{
			Booking:       b,
			DriverID:      trip.DriverID,
			Origin:        trip.Origin,
			Destination:   trip.Destination,
			Fare:          trip.Fare,
			DepartureTime: trip.DepartureTime,
			TripStatus:    trip.Status,
			VehicleType:   r.vehicleType(trip.VehicleID),
		})
	}
	return details, nil
}

func (r *bookingRepository) vehicleType(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	v, ok := r.s.vehicles[*id]
	if !ok {
		return nil
	}
	vehicleType := v.Type
	return &vehicleType
}

func (r *bookingRepository) CountByPassenger(ctx context.Context, passengerID uuid.UUID) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var count int64
	for _, b := range r.s.bookings {
		if b.PassengerID == passengerID {
			count++
		}
	}
	return count, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.BookingStatus) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	b, ok := r.s.bookings[id]
	if !ok || b.Status != from {
		return false, nil
	}
	r.setStatus(b, to)

	record(ctx, func() {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
		r.setStatus(b, from)
	})
	return true, nil
}

// setStatus keeps the active index in step with the status. Callers hold s.mu.
func (r *bookingRepository) setStatus(b *entity.Booking, status entity.BookingStatus) {
	key := pairKey{b.PassengerID, b.TripID}
	b.Status = status
	b.UpdatedAt = r.s.now()
	if status.Active() {
		r.s.activeBooking[key] = b.ID
	} else if r.s.activeBooking[key] == b.ID {
		delete(r.s.activeBooking, key)
	}
}

func (r *bookingRepository) CompleteByTrip(ctx context.Context, tripID uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var completed []*entity.Booking
	for _, b := range r.s.bookings {
		if b.TripID == tripID && b.Status == entity.BookingStatusConfirmed {
			r.setStatus(b, entity.BookingStatusCompleted)
			completed = append(completed, b)
		}
	}

	record(ctx, func() {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
		for _, b := range completed {
			r.setStatus(b, entity.BookingStatusConfirmed)
		}
	})
	return int64(len(completed)), nil
}

func (r *bookingRepository) HasCompleted(ctx context.Context, passengerID, tripID uuid.UUID) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, b := range r.s.bookings {
		if b.PassengerID == passengerID && b.TripID == tripID && b.Status == entity.BookingStatusCompleted {
			return true, nil
		}
	}
	return false, nil
}

func (r *bookingRepository) FindHistory(ctx context.Context, passengerID uuid.UUID, limit int) ([]*entity.BookingHistory, error) {
	var history []*entity.BookingHistory
	for _, b := range r.passengerBookings(passengerID) {
		if b.Status != entity.BookingStatusCompleted {
			continue
		}
		trip, ok := r.s.snapshot(b.TripID)
		if !ok {
			continue
		}

		h := &entity.BookingHistory{
			RouteID:     trip.RouteID,
			Origin:      trip.Origin,
			Destination: trip.Destination,
			Fare:        trip.Fare,
			VehicleType: r.vehicleType(trip.VehicleID),
		}
		r.s.mu.RLock()
		if id, ok := r.s.ratingByPair[pairKey{passengerID, b.TripID}]; ok {
			score := r.s.ratings[id].Rating
			h.Rating = &score
		}
		r.s.mu.RUnlock()

		history = append(history, h)
		if limit > 0 && len(history) == limit {
			break
		}
	}
	return history, nil
}
