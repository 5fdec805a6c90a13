// Package memory keeps every repository in process memory. It backs
// STORAGE_DRIVER=memory and serves as the test double for the services.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/bvggies/recommendersystem/internal/data/entity"
	"github.com/bvggies/recommendersystem/internal/data/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type pairKey struct {
	passengerID uuid.UUID
	tripID      uuid.UUID
}

// tripSlot serializes seat mutations of one trip.
type tripSlot struct {
	mu   sync.Mutex
	trip entity.Trip
}

type Vehicle struct {
	ID           uuid.UUID
	Type         string
	ComfortLevel string
}

type Store struct {
	// mu guards the maps below; trip rows are additionally guarded by their slot.
	mu            sync.RWMutex
	trips         map[uuid.UUID]*tripSlot
	vehicles      map[uuid.UUID]Vehicle
	bookings      map[uuid.UUID]*entity.Booking
	activeBooking map[pairKey]uuid.UUID
	ratings       map[uuid.UUID]*entity.Rating
	ratingByPair  map[pairKey]uuid.UUID
	preferences   map[uuid.UUID]*entity.Preference
	notifications []*entity.Notification

	now func() time.Time
	log *zap.Logger
}

type Option func(*Store)

// WithClock replaces time.Now, which decides whether a trip has departed.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func NewStore(log *zap.Logger, opts ...Option) *Store {
	s := &Store{
		trips:         make(map[uuid.UUID]*tripSlot),
		vehicles:      make(map[uuid.UUID]Vehicle),
		bookings:      make(map[uuid.UUID]*entity.Booking),
		activeBooking: make(map[pairKey]uuid.UUID),
		ratings:       make(map[uuid.UUID]*entity.Rating),
		ratingByPair:  make(map[pairKey]uuid.UUID),
		preferences:   make(map[uuid.UUID]*entity.Preference),
		now:           time.Now,
		log:           log.With(zap.String("repository", "memory")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewRepository exposes the store through the repository interfaces.
func NewRepository(s *Store) *repository.Repository {
	return &repository.Repository{
		Tx:           &transactor{log: s.log},
		Trip:         &tripRepository{s: s},
		Booking:      &bookingRepository{s: s},
		Rating:       &ratingRepository{s: s},
		Preference:   &preferenceRepository{s: s},
		Notification: &notificationRepository{s: s},
	}
}

func (s *Store) AddVehicle(v Vehicle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vehicles[v.ID] = v
}

func (s *Store) SetPreference(p *entity.Preference) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *p
	s.preferences[p.UserID] = &cp
}

// Notifications returns a copy of every stored notification.
func (s *Store) Notifications() []*entity.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*entity.Notification, len(s.notifications))
	for i, n := range s.notifications {
		cp := *n
		out[i] = &cp
	}
	return out
}

func (s *Store) slot(id uuid.UUID) *tripSlot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.trips[id]
}

// snapshot reads a trip under its slot lock.
func (s *Store) snapshot(id uuid.UUID) (entity.Trip, bool) {
	slot := s.slot(id)
	if slot == nil {
		return entity.Trip{}, false
	}
	slot.mu.Lock()
	defer slot.mu.Unlock()
	return slot.trip, true
}

// ==================== UNIT OF WORK ====================

type journalKey struct{}

// journal collects undo steps of the running unit of work.
type journal struct {
	mu    sync.Mutex
	steps []func()
}

func record(ctx context.Context, undo func()) {
	if j, ok := ctx.Value(journalKey{}).(*journal); ok {
		j.mu.Lock()
		j.steps = append(j.steps, undo)
		j.mu.Unlock()
	}
}

func (j *journal) rollback() {
	j.mu.Lock()
	defer j.mu.Unlock()
	for i := len(j.steps) - 1; i >= 0; i-- {
		j.steps[i]()
	}
	j.steps = nil
}

// transactor gives all-or-nothing writes by replaying undo steps on failure.
// Concurrent readers may observe writes of a unit that later rolls back.
type transactor struct {
	log *zap.Logger
}

func (t *transactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if _, ok := ctx.Value(journalKey{}).(*journal); ok {
		return fn(ctx)
	}

	j := &journal{}
	defer func() {
		if p := recover(); p != nil {
			j.rollback()
			panic(p)
		}
	}()

	if err := fn(context.WithValue(ctx, journalKey{}, j)); err != nil {
		j.rollback()
		t.log.Debug("Unit of work rolled back", zap.Error(err))
		return err
	}
	return nil
}
