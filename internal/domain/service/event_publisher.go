package service

import (
	"context"
	"time"
)

// ConfirmationRequestedEvent asks the mail worker to deliver a confirmation link.
type ConfirmationRequestedEvent struct {
	RequestID  string    `json:"request_id,omitempty"` // For distributed tracing
	EventID    string    `json:"event_id"`
	UserID     int64     `json:"user_id"`
	Email      string    `json:"email"`
	UniqueTag  string    `json:"unique_tag"`
	ConfirmURL string    `json:"confirm_url"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// EventPublisher defines the interface for publishing account events to a message queue
type EventPublisher interface {
	// PublishConfirmationRequested hands a confirmation link over for delivery
	PublishConfirmationRequested(ctx context.Context, event *ConfirmationRequestedEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
