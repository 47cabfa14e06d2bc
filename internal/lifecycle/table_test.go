package lifecycle

import (
	"testing"

	"github.com/spec-kit/lifecycle-service/internal/domain"
)

func TestCampaignTableValidates(t *testing.T) {
	if err := CampaignStates.Validate(); err != nil {
		t.Fatalf("campaign table invalid: %v", err)
	}
}

func TestOrderTableValidates(t *testing.T) {
	if err := OrderStates.Validate(); err != nil {
		t.Fatalf("order table invalid: %v", err)
	}
}

func TestValidateRejectsDanglingNext(t *testing.T) {
	table := NewTable(
		StateDefinition[domain.CampaignState]{Name: "a", Next: "missing"},
	)
	if err := table.Validate(); err == nil {
		t.Fatalf("expected validation error for dangling next state")
	}
}

func TestDefinitionUnknownState(t *testing.T) {
	if _, ok := CampaignStates.Definition("inexistente"); ok {
		t.Fatalf("expected unknown state lookup to report false")
	}
}

func TestTerminalStates(t *testing.T) {
	cases := []struct {
		name     string
		state    domain.OrderState
		terminal bool
	}{
		{"closed is terminal", domain.OrderStateClosed, true},
		{"cancelled is terminal", domain.OrderStateCancelled, true},
		{"overdue resolves to delivered", domain.OrderStateOverdue, false},
		{"shipping continues", domain.OrderStateShipping, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			def, ok := OrderStates.Definition(tc.state)
			if !ok {
				t.Fatalf("state %s not defined", tc.state)
			}
			if def.Terminal() != tc.terminal {
				t.Fatalf("state %s: terminal=%v, want %v", tc.state, def.Terminal(), tc.terminal)
			}
		})
	}
}

func TestStatesPreservesDeclarationOrder(t *testing.T) {
	defs := CampaignStates.States()
	if len(defs) != 8 {
		t.Fatalf("expected 8 campaign states, got %d", len(defs))
	}
	if defs[0].Name != domain.CampaignStateDraft {
		t.Fatalf("expected draft first, got %s", defs[0].Name)
	}
	if defs[len(defs)-1].Name != domain.CampaignStateCancelled {
		t.Fatalf("expected cancelled last, got %s", defs[len(defs)-1].Name)
	}
}

func TestExceptionStatesAllowOffPathEntry(t *testing.T) {
	for _, state := range []domain.CampaignState{domain.CampaignStatePaused, domain.CampaignStateCancelled} {
		def, ok := CampaignStates.Definition(state)
		if !ok || !def.AutoTransition {
			t.Fatalf("expected %s to permit off-path entry", state)
		}
	}
	for _, state := range []domain.OrderState{domain.OrderStateOverdue, domain.OrderStatePaused, domain.OrderStateCancelled} {
		def, ok := OrderStates.Definition(state)
		if !ok || !def.AutoTransition {
			t.Fatalf("expected %s to permit off-path entry", state)
		}
	}
}
