package entity

import "github.com/google/uuid"

type NotificationType string

const NotificationTypeBooking NotificationType = "booking"

type Notification struct {
	BaseSimple
	UserID    uuid.UUID        `db:"user_id"`
	Type      NotificationType `db:"notification_type"`
	Title     string           `db:"title"`
	Message   string           `db:"message"`
	BookingID *uuid.UUID       `db:"booking_id"`
	TripID    *uuid.UUID       `db:"trip_id"`
}
