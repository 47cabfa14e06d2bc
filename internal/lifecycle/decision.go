package lifecycle

import "github.com/spec-kit/lifecycle-service/internal/domain"

// NotificationDraft describes a notification the persister should record.
type NotificationDraft struct {
	Title    string
	Message  string
	Severity domain.NotificationSeverity
	Targets  []domain.NotificationTarget
}

// CampaignDecision is the outcome of evaluating one campaign.
//
// NewState is nil when no transition applies. Notification accompanies the
// transition; Warnings are standalone and may co-occur with a transition.
type CampaignDecision struct {
	NewState     *domain.CampaignState
	Notification *NotificationDraft
	Warnings     []NotificationDraft
}

// Transitioned reports whether the decision carries a state change.
func (d CampaignDecision) Transitioned() bool {
	return d.NewState != nil
}

// OrderDecision is the outcome of evaluating one order.
type OrderDecision struct {
	NewState     *domain.OrderState
	Notification *NotificationDraft
	Warnings     []NotificationDraft
}

// Transitioned reports whether the decision carries a state change.
func (d OrderDecision) Transitioned() bool {
	return d.NewState != nil
}
