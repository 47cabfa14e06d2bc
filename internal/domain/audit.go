package domain

import "time"

// EntityType distinguishes which lifecycle a record belongs to.
type EntityType string

const (
	EntityTypeCampaign EntityType = "campaign"
	EntityTypeOrder    EntityType = "order"
)

// StateChangeRecord is an immutable audit trail entry for one transition.
type StateChangeRecord struct {
	ID            string
	EntityType    EntityType
	EntityID      string
	PreviousState string
	NewState      string
	ActorID       *string
	Comment       string
	CreatedAt     time.Time
}
