package service

import (
	"context"
	"time"
)

// AccountEventType names what happened to an account.
type AccountEventType string

const (
	AccountEventRegistered AccountEventType = "account.registered"
)

// AccountEvent is published after an account-level state change. It never
// carries credentials.
type AccountEvent struct {
	RequestID  string           `json:"request_id,omitempty"` // For distributed tracing
	Type       AccountEventType `json:"type"`
	Subject    string           `json:"subject"`
	Role       string           `json:"role"`
	OccurredAt time.Time        `json:"occurred_at"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishAccountEvent publishes a single account event.
	PublishAccountEvent(ctx context.Context, event *AccountEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
