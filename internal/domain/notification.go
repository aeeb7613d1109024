package domain

import "time"

// NotificationChannel names the delivery channel for a notification.
type NotificationChannel string

const (
	NotificationChannelInApp NotificationChannel = "in_app"
	NotificationChannelEmail NotificationChannel = "email"
)

// Notification is a persisted message for a user about a disruption event.
type Notification struct {
	ID           string
	UserID       string
	DisruptionID string
	Channel      NotificationChannel
	Payload      string
	SentAt       *time.Time
	IsRead       bool
	CreatedAt    time.Time
}
