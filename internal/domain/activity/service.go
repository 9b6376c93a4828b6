package activity

import (
	"context"
	"time"

	"github.com/example/startup-analytics/internal/infrastructure/kafka"
	"github.com/google/uuid"
)

// Publisher delivers an event envelope to the activity topic.
type Publisher interface {
	Publish(ctx context.Context, key string, event any) error
}

// Service handles the write side of the activity log. Entries are published
// as events and appended by the projector, never written directly.
type Service struct {
	publisher Publisher
}

// NewService creates a new activity service
func NewService(publisher Publisher) *Service {
	return &Service{publisher: publisher}
}

// Log validates an entry and publishes an ActivityLogged event for it.
func (s *Service) Log(ctx context.Context, userID string, t Type, description, metadata string) (*Activity, error) {
	a := Activity{
		ID:          uuid.New().String(),
		UserID:      userID,
		Type:        t,
		Description: description,
		Metadata:    metadata,
		CreatedAt:   time.Now().UTC(),
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}

	event, err := kafka.NewEvent(a.UserID, AggregateType, EventActivityLogged, ActivityLogged{
		ActivityID:  a.ID,
		UserID:      a.UserID,
		Type:        a.Type,
		Description: a.Description,
		Metadata:    a.Metadata,
		CreatedAt:   a.CreatedAt,
	})
	if err != nil {
		return nil, err
	}

	if err := s.publisher.Publish(ctx, a.UserID, event); err != nil {
		return nil, err
	}
	return &a, nil
}
