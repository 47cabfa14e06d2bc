package lifecycle

import (
	"testing"
	"time"

	"github.com/spec-kit/lifecycle-service/internal/domain"
)

var orderNow = time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

func TestEvaluateOrderOverdueForcesState(t *testing.T) {
	pastDue := orderNow.AddDate(0, 0, -1)
	for _, state := range []domain.OrderState{
		domain.OrderStateRequested,
		domain.OrderStateReview,
		domain.OrderStateApproved,
		domain.OrderStateProduction,
		domain.OrderStateQuality,
		domain.OrderStateShipping,
		domain.OrderStatePaused,
	} {
		t.Run(string(state), func(t *testing.T) {
			o := domain.Order{
				ExternalKey:           "ORD-TEST01",
				State:                 state,
				StateEnteredAt:        orderNow.AddDate(0, 0, -1),
				EstimatedDeliveryDate: &pastDue,
			}
			decision := EvaluateOrder(o, orderNow)
			if !decision.Transitioned() || *decision.NewState != domain.OrderStateOverdue {
				t.Fatalf("state %s with past due date must go atrasada, got %+v", state, decision.NewState)
			}
			if decision.Notification == nil || decision.Notification.Severity != domain.SeverityCritical {
				t.Fatalf("overdue notification must be critical")
			}
		})
	}
}

func TestEvaluateOrderOverdueTakesPriorityOverDuration(t *testing.T) {
	pastDue := orderNow.AddDate(0, 0, -2)
	o := domain.Order{
		ExternalKey:           "ORD-TEST02",
		State:                 domain.OrderStateProduction,
		StateEnteredAt:        orderNow.AddDate(0, 0, -6),
		EstimatedDeliveryDate: &pastDue,
	}

	decision := EvaluateOrder(o, orderNow)
	if *decision.NewState != domain.OrderStateOverdue {
		t.Fatalf("overdue must override duration advancement, got %s", *decision.NewState)
	}
}

func TestEvaluateOrderCompletionStatesExemptFromOverdue(t *testing.T) {
	pastDue := orderNow.AddDate(0, 0, -10)
	for _, state := range []domain.OrderState{
		domain.OrderStateDelivered,
		domain.OrderStateBilling,
		domain.OrderStateClosed,
		domain.OrderStateCancelled,
	} {
		o := domain.Order{
			ExternalKey:           "ORD-TEST03",
			State:                 state,
			EstimatedDeliveryDate: &pastDue,
		}
		if decision := EvaluateOrder(o, orderNow); decision.Transitioned() {
			t.Fatalf("state %s is exempt from overdue detection", state)
		}
	}
}

func TestEvaluateOrderAlreadyOverdueStays(t *testing.T) {
	pastDue := orderNow.AddDate(0, 0, -10)
	o := domain.Order{
		ExternalKey:           "ORD-TEST04",
		State:                 domain.OrderStateOverdue,
		StateEnteredAt:        orderNow.AddDate(0, 0, -5),
		EstimatedDeliveryDate: &pastDue,
	}

	if decision := EvaluateOrder(o, orderNow); decision.Transitioned() {
		t.Fatalf("an order already atrasada must not re-trigger the rule")
	}
}

func TestEvaluateOrderDueTodayNotOverdue(t *testing.T) {
	dueToday := orderNow
	o := domain.Order{
		ExternalKey:           "ORD-TEST05",
		State:                 domain.OrderStateShipping,
		StateEnteredAt:        orderNow,
		EstimatedDeliveryDate: &dueToday,
	}

	if decision := EvaluateOrder(o, orderNow); decision.Transitioned() {
		t.Fatalf("an order due today is not yet overdue")
	}
}

func TestEvaluateOrderNoDeliveryDateSkipsOverdue(t *testing.T) {
	o := domain.Order{
		ExternalKey:    "ORD-TEST06",
		State:          domain.OrderStateProduction,
		StateEnteredAt: orderNow.AddDate(0, 0, -5),
	}

	decision := EvaluateOrder(o, orderNow)
	if !decision.Transitioned() || *decision.NewState != domain.OrderStateQuality {
		t.Fatalf("without a delivery date only the duration rule applies, got %+v", decision.NewState)
	}
}

func TestEvaluateOrderDurationAdvancement(t *testing.T) {
	cases := []struct {
		name    string
		state   domain.OrderState
		daysAgo int
		next    *domain.OrderState
	}{
		{"approved after one day", domain.OrderStateApproved, 1, statePtr(domain.OrderStateProduction)},
		{"production after five days", domain.OrderStateProduction, 5, statePtr(domain.OrderStateQuality)},
		{"production after four days stays", domain.OrderStateProduction, 4, nil},
		{"quality after two days", domain.OrderStateQuality, 2, statePtr(domain.OrderStateShipping)},
		{"shipping after three days", domain.OrderStateShipping, 3, statePtr(domain.OrderStateDelivered)},
		{"requested never auto advances", domain.OrderStateRequested, 30, nil},
		{"review never auto advances", domain.OrderStateReview, 30, nil},
		{"overdue has no timer", domain.OrderStateOverdue, 30, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			o := domain.Order{
				ExternalKey:    "ORD-TEST07",
				State:          tc.state,
				StateEnteredAt: orderNow.AddDate(0, 0, -tc.daysAgo),
			}
			decision := EvaluateOrder(o, orderNow)
			if tc.next == nil {
				if decision.Transitioned() {
					t.Fatalf("state %s must not advance, got %s", tc.state, *decision.NewState)
				}
				return
			}
			if !decision.Transitioned() || *decision.NewState != *tc.next {
				t.Fatalf("state %s: expected %s, got %+v", tc.state, *tc.next, decision.NewState)
			}
		})
	}
}

func TestEvaluateOrderZeroEntryTimestampIsNoop(t *testing.T) {
	o := domain.Order{
		ExternalKey: "ORD-TEST08",
		State:       domain.OrderStateProduction,
	}

	if decision := EvaluateOrder(o, orderNow); decision.Transitioned() {
		t.Fatalf("missing entry timestamp means insufficient data, not a transition")
	}
}

func statePtr(s domain.OrderState) *domain.OrderState { return &s }
