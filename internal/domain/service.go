// Package domain defines the business logic for the activity sign-up service.
package domain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"example.com/signup/internal/events"
	"example.com/signup/internal/observability"
)

var (
	// ErrActivityNotFound is returned when no activity carries the requested name.
	ErrActivityNotFound = errors.New("activity not found")
	// ErrAlreadyRegistered is returned when the email is already on the roster.
	ErrAlreadyRegistered = errors.New("participant already signed up")
	// ErrNotRegistered is returned when unregistering an email that is not on the roster.
	ErrNotRegistered = errors.New("participant not signed up")
	// ErrEmailRequired rejects an empty participant identifier. Any other string is
	// accepted verbatim, whitespace included.
	ErrEmailRequired = errors.New("email is required")
)

// Directory captures the roster store. Implementations must perform AddParticipant and
// RemoveParticipant as a single check-then-mutate step and report the sentinel errors above.
type Directory interface {
	List(ctx context.Context) (map[string]Activity, error)
	AddParticipant(ctx context.Context, name, email string) (Activity, error)
	RemoveParticipant(ctx context.Context, name, email string) (Activity, error)
}

// Service orchestrates roster changes.
type Service struct {
	directory Directory
	publisher events.Publisher
	logger    *zap.Logger
	now       func() time.Time
}

// Option configures optional behaviour for the Service.
type Option func(*Service)

// WithPublisher sets the sink for roster change events.
func WithPublisher(p events.Publisher) Option {
	return func(s *Service) {
		if p != nil {
			s.publisher = p
		}
	}
}

// WithLogger overrides the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the time source used to stamp events.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService constructs a Service.
func NewService(directory Directory, opts ...Option) *Service {
	s := &Service{
		directory: directory,
		publisher: events.NoopPublisher{},
		logger:    zap.NewNop(),
		now:       func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListActivities returns a snapshot of every activity keyed by name.
func (s *Service) ListActivities(ctx context.Context) (map[string]Activity, error) {
	return s.directory.List(ctx)
}

// Signup adds email to the named activity and returns a confirmation message.
func (s *Service) Signup(ctx context.Context, name, email string) (string, error) {
	if email == "" {
		return "", ErrEmailRequired
	}

	activity, err := s.directory.AddParticipant(ctx, name, email)
	if err != nil {
		observability.RecordSignup(outcome(err))
		return "", fmt.Errorf("signup %q for %q: %w", email, name, err)
	}
	observability.RecordSignup("ok")
	observability.RecordRosterSize(activity.Name, len(activity.Participants))

	s.publish(ctx, events.TypeSignedUp, name, email)
	return fmt.Sprintf("Signed up %s for %s", email, name), nil
}

// Unregister removes email from the named activity and returns a confirmation message.
func (s *Service) Unregister(ctx context.Context, name, email string) (string, error) {
	if email == "" {
		return "", ErrEmailRequired
	}

	activity, err := s.directory.RemoveParticipant(ctx, name, email)
	if err != nil {
		observability.RecordUnregistration(outcome(err))
		return "", fmt.Errorf("unregister %q from %q: %w", email, name, err)
	}
	observability.RecordUnregistration("ok")
	observability.RecordRosterSize(activity.Name, len(activity.Participants))

	s.publish(ctx, events.TypeUnregistered, name, email)
	return fmt.Sprintf("Unregistered %s from %s", email, name), nil
}

// publish never fails the caller; the roster change has already been applied.
func (s *Service) publish(ctx context.Context, eventType, name, email string) {
	evt := events.NewRosterChanged(eventType, name, email, s.now())
	if err := s.publisher.Publish(ctx, evt); err != nil {
		s.logger.Warn("roster event publish failed",
			zap.String("event_type", eventType),
			zap.String("activity", name),
			zap.String("event_id", evt.EventID),
			zap.Error(err),
		)
	}
}

func outcome(err error) string {
	switch {
	case errors.Is(err, ErrActivityNotFound):
		return "not_found"
	case errors.Is(err, ErrAlreadyRegistered):
		return "already_registered"
	case errors.Is(err, ErrNotRegistered):
		return "not_registered"
	default:
		return "error"
	}
}
