package lifecycle

import (
	"fmt"
	"time"

	"github.com/spec-kit/lifecycle-service/internal/domain"
)

const (
	stalledReviewDays = 7
	endingSoonMinDays = 1
	endingSoonMaxDays = 3
)

// EvaluateCampaign decides whether a campaign should transition and which
// notifications to emit, given the current time. Pure: no I/O, no hidden
// state, so evaluating the same snapshot twice yields the same decision.
//
// Rules fire in fixed priority order and at most one transition applies per
// pass. Missing dates make a rule inapplicable, never an error.
func EvaluateCampaign(c domain.Campaign, now time.Time) CampaignDecision {
	decision := CampaignDecision{}

	def, ok := CampaignStates.Definition(c.State)
	if ok && !def.Terminal() {
		switch {
		case durationElapsed(def.AutoTransition, def.EstimatedDurationDays, c.StateEnteredAt, now):
			decision.NewState = &def.Next
		case c.State == domain.CampaignStateProduction && c.StartDate != nil && !startOfDay(*c.StartDate).After(startOfDay(now)):
			next := domain.CampaignStateLive
			decision.NewState = &next
		case c.State == domain.CampaignStateLive && c.EndDate != nil && beforeToday(*c.EndDate, now):
			next := domain.CampaignStateFinished
			decision.NewState = &next
		}
	}

	if decision.NewState != nil {
		decision.Notification = TransitionDraft(CampaignStates, c.State, *decision.NewState, c.Name)
	}

	if c.State == domain.CampaignStateReview && !c.UpdatedAt.IsZero() && daysBetween(c.UpdatedAt, now) > stalledReviewDays {
		decision.Warnings = append(decision.Warnings, NotificationDraft{
			Title:    "Revision estancada",
			Message:  fmt.Sprintf("La campaña %q lleva mas de %d dias en revision sin cambios", c.Name, stalledReviewDays),
			Severity: domain.SeverityWarning,
			Targets:  []domain.NotificationTarget{domain.TargetManager},
		})
	}

	if c.State == domain.CampaignStateLive && c.EndDate != nil {
		remaining := daysBetween(now, *c.EndDate)
		if remaining >= endingSoonMinDays && remaining <= endingSoonMaxDays {
			decision.Warnings = append(decision.Warnings, NotificationDraft{
				Title:    "Campaña proxima a finalizar",
				Message:  fmt.Sprintf("La campaña %q finaliza en %d dia(s)", c.Name, remaining),
				Severity: domain.SeverityInfo,
				Targets:  []domain.NotificationTarget{domain.TargetTeam, domain.TargetManager},
			})
		}
	}

	return decision
}

// durationElapsed implements time-in-state advancement: auto states with an
// estimated duration advance once that many whole days have passed since the
// state was entered. A zero entry timestamp means insufficient data.
func durationElapsed(auto bool, durationDays *int, enteredAt, now time.Time) bool {
	if !auto || durationDays == nil || enteredAt.IsZero() {
		return false
	}
	return daysBetween(enteredAt, now) >= *durationDays
}

// TransitionDraft builds the notification accompanying entry into a state,
// addressed to the target state's notification targets. Nil when the state
// defines no targets.
func TransitionDraft[S ~string](table *Table[S], from, to S, entityName string) *NotificationDraft {
	def, ok := table.Definition(to)
	if !ok || len(def.NotificationTargets) == 0 {
		return nil
	}
	return &NotificationDraft{
		Title:    fmt.Sprintf("Estado actualizado: %s", to),
		Message:  fmt.Sprintf("%q paso de %s a %s", entityName, from, to),
		Severity: domain.SeverityInfo,
		Targets:  def.NotificationTargets,
	}
}
