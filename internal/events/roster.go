// Package events defines roster change payloads and their delivery to Kafka.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event types emitted on roster changes.
const (
	TypeSignedUp     = "participant.signed_up"
	TypeUnregistered = "participant.unregistered"
)

// RosterChanged is emitted after a participant joins or leaves an activity.
type RosterChanged struct {
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	Activity   string    `json:"activity"`
	Email      string    `json:"email"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewRosterChanged stamps a fresh event id.
func NewRosterChanged(eventType, activity, email string, at time.Time) RosterChanged {
	return RosterChanged{
		EventID:    uuid.NewString(),
		EventType:  eventType,
		Activity:   activity,
		Email:      email,
		OccurredAt: at.UTC(),
	}
}

// Publisher delivers roster events downstream.
type Publisher interface {
	Publish(ctx context.Context, evt RosterChanged) error
}

// NoopPublisher drops every event.
type NoopPublisher struct{}

// Publish performs no action.
func (NoopPublisher) Publish(context.Context, RosterChanged) error { return nil }
