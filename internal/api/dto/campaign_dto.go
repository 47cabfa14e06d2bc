package dto

import (
	"time"

	"github.com/spec-kit/lifecycle-service/internal/domain"
)

// CreateCampaignRequest payload.
type CreateCampaignRequest struct {
	Name        string     `json:"name"`
	ClientID    string     `json:"client_id"`
	Description string     `json:"description"`
	Budget      *float64   `json:"budget"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	Conditions  []string   `json:"conditions"`
}

// UpdateCampaignRequest payload for editable fields.
type UpdateCampaignRequest struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	Budget      *float64   `json:"budget"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	Conditions  []string   `json:"conditions"`
}

// ChangeStateRequest payload for manual transitions.
type ChangeStateRequest struct {
	State   string `json:"state"`
	Comment string `json:"comment"`
}

// CampaignResponse response.
type CampaignResponse struct {
	ID             string               `json:"id"`
	Name           string               `json:"name"`
	ClientID       string               `json:"client_id"`
	Description    string               `json:"description"`
	Budget         *float64             `json:"budget"`
	State          domain.CampaignState `json:"state"`
	StateEnteredAt time.Time            `json:"state_entered_at"`
	StartDate      *time.Time           `json:"start_date"`
	EndDate        *time.Time           `json:"end_date"`
	ActualStartAt  *time.Time           `json:"actual_start_at"`
	ActualEndAt    *time.Time           `json:"actual_end_at"`
	Conditions     []string             `json:"conditions"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

// NewCampaignResponse maps a domain campaign.
func NewCampaignResponse(c *domain.Campaign) CampaignResponse {
	return CampaignResponse{
		ID:             c.ID,
		Name:           c.Name,
		ClientID:       c.ClientID,
		Description:    c.Description,
		Budget:         c.Budget,
		State:          c.State,
		StateEnteredAt: c.StateEnteredAt,
		StartDate:      c.StartDate,
		EndDate:        c.EndDate,
		ActualStartAt:  c.ActualStartAt,
		ActualEndAt:    c.ActualEndAt,
		Conditions:     c.Conditions,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

// StateDefinitionResponse exposes one state table entry.
type StateDefinitionResponse struct {
	Name                  string   `json:"name"`
	Next                  string   `json:"next,omitempty"`
	AutoTransition        bool     `json:"auto_transition"`
	EstimatedDurationDays *int     `json:"estimated_duration_days"`
	NotificationTargets   []string `json:"notification_targets"`
	RequiredPreconditions []string `json:"required_preconditions"`
	Checklist             []string `json:"checklist"`
}

// StateChangeResponse exposes one audit entry.
type StateChangeResponse struct {
	ID            string    `json:"id"`
	PreviousState string    `json:"previous_state"`
	NewState      string    `json:"new_state"`
	ActorID       *string   `json:"actor_id"`
	Comment       string    `json:"comment,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewStateChangeResponses maps audit records.
func NewStateChangeResponses(records []domain.StateChangeRecord) []StateChangeResponse {
	out := make([]StateChangeResponse, 0, len(records))
	for _, record := range records {
		out = append(out, StateChangeResponse{
			ID:            record.ID,
			PreviousState: record.PreviousState,
			NewState:      record.NewState,
			ActorID:       record.ActorID,
			Comment:       record.Comment,
			CreatedAt:     record.CreatedAt,
		})
	}
	return out
}
