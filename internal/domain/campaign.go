package domain

import "time"

// CampaignState enumerates lifecycle states for advertising campaigns.
type CampaignState string

const (
	CampaignStateDraft      CampaignState = "borrador"
	CampaignStateReview     CampaignState = "revision"
	CampaignStateApproved   CampaignState = "aprobada"
	CampaignStateProduction CampaignState = "produccion"
	CampaignStateLive       CampaignState = "live"
	CampaignStateFinished   CampaignState = "finalizada"
	CampaignStatePaused     CampaignState = "pausada"
	CampaignStateCancelled  CampaignState = "cancelada"
)

// Campaign is the aggregate for an advertising campaign.
type Campaign struct {
	ID             string
	Name           string
	ClientID       string
	Description    string
	Budget         *float64
	State          CampaignState
	StateEnteredAt time.Time
	StartDate      *time.Time
	EndDate        *time.Time
	ActualStartAt  *time.Time
	ActualEndAt    *time.Time
	Conditions     []string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// HasCondition reports whether a named precondition tag is set on the campaign.
func (c *Campaign) HasCondition(name string) bool {
	for _, cond := range c.Conditions {
		if cond == name {
			return true
		}
	}
	return false
}
