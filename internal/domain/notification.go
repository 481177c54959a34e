package domain

import (
	"context"
	"time"
)

const (
	NotificationSuccess = "success"
	NotificationFailure = "failure"

	NotificationTitleProfile = "Perfil"
)

// Notification is the single outbound event of a submit attempt.
type Notification struct {
	Variant   string    `json:"variant"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

type Notifier interface {
	Notify(n Notification)
}

type NotificationStore interface {
	Append(ctx context.Context, n Notification) error
	Latest(ctx context.Context, limit int64) ([]Notification, error)
}
