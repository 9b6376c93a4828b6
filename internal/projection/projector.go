package projection

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/example/startup-analytics/internal/domain/activity"
	"github.com/example/startup-analytics/internal/infrastructure/kafka"
	"github.com/example/startup-analytics/internal/infrastructure/store"
	"github.com/example/startup-analytics/internal/logger"
)

type Projector struct {
	activities store.ActivityStoreInterface
	log        *logger.Logger
}

func NewProjector(activities store.ActivityStoreInterface, log *logger.Logger) *Projector {
	return &Projector{
		activities: activities,
		log:        log.With("component", "Projector"),
	}
}

// HandleEvent is a kafka.MessageHandler. Redelivered events are skipped by
// activity ID.
func (p *Projector) HandleEvent(ctx context.Context, key, value []byte) error {
	var event kafka.Event
	if err := json.Unmarshal(value, &event); err != nil {
		return fmt.Errorf("decode event envelope: %w", err)
	}

	p.log.Debug("received event", "event_type", event.EventType, "aggregate_type", event.AggregateType, "event_id", event.ID)

	switch event.AggregateType {
	case activity.AggregateType:
		return p.handleActivityEvent(ctx, event)
	}

	return nil
}

func (p *Projector) handleActivityEvent(ctx context.Context, event kafka.Event) error {
	switch event.EventType {
	case activity.EventActivityLogged:
		var e activity.ActivityLogged
		if err := json.Unmarshal(event.Data, &e); err != nil {
			return err
		}
		a := e.ToActivity()
		if err := a.Validate(); err != nil {
			// A malformed entry will never become valid; drop it.
			p.log.Warn("dropping invalid activity", "activity_id", a.ID, "error", err)
			return nil
		}
		if a.ID == "" {
			a.ID = event.ID
		}
		if a.CreatedAt.IsZero() {
			a.CreatedAt = event.Timestamp
		}

		inserted, err := p.activities.Append(ctx, a)
		if err != nil {
			return fmt.Errorf("append activity %s: %w", a.ID, err)
		}
		if !inserted {
			p.log.Debug("duplicate activity skipped", "activity_id", a.ID)
		}
	}
	return nil
}
