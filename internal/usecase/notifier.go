package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bvggies/recommendersystem/internal/data/entity"
	"github.com/bvggies/recommendersystem/internal/data/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const RoutingKeyBookingCreated = "booking.created"

// Notifier delivers a notification to its user. Delivery is best effort.
type Notifier interface {
	Notify(ctx context.Context, n *entity.Notification) error
}

// EventPublisher is satisfied by rabbitmq.Publisher.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

type repositoryNotifier struct {
	repo repository.NotificationRepository
}

// NewRepositoryNotifier stores notifications in the notifications table.
func NewRepositoryNotifier(repo repository.NotificationRepository) Notifier {
	return &repositoryNotifier{repo: repo}
}

func (n *repositoryNotifier) Notify(ctx context.Context, notification *entity.Notification) error {
	return n.repo.Create(ctx, notification)
}

type BookingCreatedEvent struct {
	NotificationID string    `json:"notification_id"`
	UserID         string    `json:"user_id"`
	Type           string    `json:"notification_type"`
	Title          string    `json:"title"`
	Message        string    `json:"message"`
	BookingID      string    `json:"booking_id,omitempty"`
	TripID         string    `json:"trip_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

type eventNotifier struct {
	pub EventPublisher
}

// NewEventNotifier publishes notifications to the message broker.
func NewEventNotifier(pub EventPublisher) Notifier {
	return &eventNotifier{pub: pub}
}

func (n *eventNotifier) Notify(ctx context.Context, notification *entity.Notification) error {
	event := BookingCreatedEvent{
		NotificationID: notification.ID.String(),
		UserID:         notification.UserID.String(),
		Type:           string(notification.Type),
		Title:          notification.Title,
		Message:        notification.Message,
		CreatedAt:      notification.CreatedAt,
	}
	if notification.BookingID != nil {
		event.BookingID = notification.BookingID.String()
	}
	if notification.TripID != nil {
		event.TripID = notification.TripID.String()
	}
	return n.pub.Publish(ctx, RoutingKeyBookingCreated, event)
}

func bookingNotification(trip *entity.Trip, booking *entity.Booking) *entity.Notification {
	bookingID, tripID := booking.ID, trip.ID
	return &entity.Notification{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		UserID:     trip.DriverID,
		Type:       entity.NotificationTypeBooking,
		Title:      "New Booking",
		Message:    fmt.Sprintf("New booking for %d seat(s) on your trip", booking.SeatsBooked),
		BookingID:  &bookingID,
		TripID:     &tripID,
	}
}

// dispatcher sends notifications off the request path after the booking committed.
type dispatcher struct {
	notifier Notifier
	timeout  time.Duration
	wg       sync.WaitGroup
	log      *zap.Logger
}

func newDispatcher(notifier Notifier, timeout time.Duration, log *zap.Logger) *dispatcher {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &dispatcher{
		notifier: notifier,
		timeout:  timeout,
		log:      log.With(zap.String("component", "notifier")),
	}
}

func (d *dispatcher) dispatch(ctx context.Context, n *entity.Notification) {
	// detached so the notification outlives the HTTP request
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.timeout)

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer cancel()

		if err := d.notifier.Notify(ctx, n); err != nil {
			d.log.Warn("Failed to deliver notification",
				zap.Error(err),
				zap.String("user_id", n.UserID.String()),
				zap.String("type", string(n.Type)),
			)
		}
	}()
}

func (d *dispatcher) wait() {
	d.wg.Wait()
}
