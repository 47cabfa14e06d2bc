package events

import (
	"time"

	"github.com/spec-kit/lifecycle-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventCampaignStateChanged EventType = "campaign_state_changed"
	EventOrderStateChanged    EventType = "order_state_changed"
	EventCampaignStalled      EventType = "campaign_stalled"
	EventCampaignEndingSoon   EventType = "campaign_ending_soon"
	EventOrderOverdue         EventType = "order_overdue"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID         string            `json:"id"`
	Type       EventType         `json:"type"`
	EntityType domain.EntityType `json:"entity_type"`
	EntityID   string            `json:"entity_id"`
	ActorID    *string           `json:"actor_id,omitempty"`
	Timestamp  time.Time         `json:"timestamp"`
	Payload    interface{}       `json:"payload"`
}

// StateChangedPayload payload.
type StateChangedPayload struct {
	OldState  string                      `json:"old_state"`
	NewState  string                      `json:"new_state"`
	Automatic bool                        `json:"automatic"`
	Targets   []domain.NotificationTarget `json:"targets,omitempty"`
	Comment   string                      `json:"comment,omitempty"`
}

// WarningPayload payload for stalled/ending-soon/overdue events.
type WarningPayload struct {
	Title    string                      `json:"title"`
	Message  string                      `json:"message"`
	Severity domain.NotificationSeverity `json:"severity"`
	Targets  []domain.NotificationTarget `json:"targets,omitempty"`
}
