package lifecycle

import (
	"fmt"
	"time"

	"github.com/spec-kit/lifecycle-service/internal/domain"
)

// EvaluateOrder decides whether an order should transition and which
// notification to emit, given the current time. Pure, like EvaluateCampaign.
//
// Overdue detection runs first and overrides every other rule: an order that
// is not yet delivered, billed, closed or cancelled, and whose estimated
// delivery date lies strictly in the past, is forced to atrasada no matter
// which state it is in.
func EvaluateOrder(o domain.Order, now time.Time) OrderDecision {
	decision := OrderDecision{}

	if _, done := orderCompletionStates[o.State]; !done && o.State != domain.OrderStateOverdue {
		if o.EstimatedDeliveryDate != nil && beforeToday(*o.EstimatedDeliveryDate, now) {
			overdue := domain.OrderStateOverdue
			decision.NewState = &overdue
			decision.Notification = &NotificationDraft{
				Title:    "Orden atrasada",
				Message:  fmt.Sprintf("La orden %s supero su fecha estimada de entrega (%s)", o.ExternalKey, o.EstimatedDeliveryDate.Format("2006-01-02")),
				Severity: domain.SeverityCritical,
				Targets:  overdueTargets(),
			}
			return decision
		}
	}

	def, ok := OrderStates.Definition(o.State)
	if ok && !def.Terminal() && durationElapsed(def.AutoTransition, def.EstimatedDurationDays, o.StateEnteredAt, now) {
		decision.NewState = &def.Next
		decision.Notification = TransitionDraft(OrderStates, o.State, def.Next, o.ExternalKey)
	}

	return decision
}

func overdueTargets() []domain.NotificationTarget {
	def, ok := OrderStates.Definition(domain.OrderStateOverdue)
	if !ok {
		return nil
	}
	return def.NotificationTargets
}
