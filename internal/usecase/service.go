package usecase

import (
	"github.com/bvggies/recommendersystem/internal/data/repository"
	"github.com/bvggies/recommendersystem/pkg/ranker"
	"github.com/bvggies/recommendersystem/pkg/utils"

	"go.uber.org/zap"
)

// Externals are the optional collaborators chosen at startup.
type Externals struct {
	Ranker   ranker.Ranker // nil disables re-ranking
	Notifier Notifier      // nil stores notifications through the repository
}

type Service struct {
	Inventory      InventoryService
	Booking        BookingService
	Rating         RatingService
	Recommendation RecommendationService
	Trip           TripService

	notify *dispatcher
}

func NewService(repo *repository.Repository, ext Externals, config *utils.Config, log *zap.Logger) *Service {
	notifier := ext.Notifier
	if notifier == nil {
		notifier = NewRepositoryNotifier(repo.Notification)
	}
	notify := newDispatcher(notifier, config.App.NotifyTimeout, log)
	inventory := NewInventoryService(repo.Trip, log)

	return &Service{
		Inventory:      inventory,
		Booking:        NewBookingService(repo, inventory, notify, log),
		Rating:         NewRatingService(repo, log),
		Recommendation: NewRecommendationService(repo, ext.Ranker, config, log),
		Trip:           NewTripService(repo, log),
		notify:         notify,
	}
}

// Wait blocks until in-flight notifications are delivered or timed out.
func (s *Service) Wait() {
	s.notify.wait()
}
