package lifecycle

import (
	"testing"
	"time"

	"github.com/spec-kit/lifecycle-service/internal/domain"
)

var campaignNow = time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

func datePtr(t time.Time) *time.Time { return &t }

func TestEvaluateCampaignDurationElapsed(t *testing.T) {
	c := domain.Campaign{
		Name:           "Lanzamiento Verano",
		State:          domain.CampaignStateApproved,
		StateEnteredAt: campaignNow.AddDate(0, 0, -2),
		UpdatedAt:      campaignNow.AddDate(0, 0, -1),
	}

	decision := EvaluateCampaign(c, campaignNow)
	if !decision.Transitioned() {
		t.Fatalf("expected transition after estimated duration elapsed")
	}
	if *decision.NewState != domain.CampaignStateProduction {
		t.Fatalf("expected produccion, got %s", *decision.NewState)
	}
	if decision.Notification == nil {
		t.Fatalf("expected a transition notification")
	}
}

func TestEvaluateCampaignDurationNotYetElapsed(t *testing.T) {
	c := domain.Campaign{
		Name:           "Lanzamiento Verano",
		State:          domain.CampaignStateApproved,
		StateEnteredAt: campaignNow.AddDate(0, 0, -1),
		UpdatedAt:      campaignNow,
	}

	if decision := EvaluateCampaign(c, campaignNow); decision.Transitioned() {
		t.Fatalf("expected no transition one day into a two day state")
	}
}

func TestEvaluateCampaignGoesLiveOnStartDate(t *testing.T) {
	cases := []struct {
		name  string
		start time.Time
		want  bool
	}{
		{"start date yesterday", campaignNow.AddDate(0, 0, -1), true},
		{"start date today", campaignNow, true},
		{"start date today earlier hour", time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), true},
		{"start date tomorrow", campaignNow.AddDate(0, 0, 1), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := domain.Campaign{
				Name:           "Pauta Digital",
				State:          domain.CampaignStateProduction,
				StateEnteredAt: campaignNow.AddDate(0, 0, -10),
				UpdatedAt:      campaignNow,
				StartDate:      datePtr(tc.start),
			}
			decision := EvaluateCampaign(c, campaignNow)
			if decision.Transitioned() != tc.want {
				t.Fatalf("transitioned=%v, want %v", decision.Transitioned(), tc.want)
			}
			if tc.want && *decision.NewState != domain.CampaignStateLive {
				t.Fatalf("expected live, got %s", *decision.NewState)
			}
		})
	}
}

func TestEvaluateCampaignFinishesAfterEndDate(t *testing.T) {
	c := domain.Campaign{
		Name:           "Pauta Digital",
		State:          domain.CampaignStateLive,
		StateEnteredAt: campaignNow.AddDate(0, 0, -30),
		UpdatedAt:      campaignNow,
		EndDate:        datePtr(campaignNow.AddDate(0, 0, -1)),
	}

	decision := EvaluateCampaign(c, campaignNow)
	if !decision.Transitioned() || *decision.NewState != domain.CampaignStateFinished {
		t.Fatalf("expected finalizada, got %+v", decision.NewState)
	}
}

func TestEvaluateCampaignEndDateTodayStaysLive(t *testing.T) {
	c := domain.Campaign{
		Name:      "Pauta Digital",
		State:     domain.CampaignStateLive,
		UpdatedAt: campaignNow,
		EndDate:   datePtr(campaignNow),
	}

	if decision := EvaluateCampaign(c, campaignNow); decision.Transitioned() {
		t.Fatalf("campaign ending today must stay live until tomorrow")
	}
}

func TestEvaluateCampaignMissingDatesIsNoop(t *testing.T) {
	cases := []struct {
		name  string
		state domain.CampaignState
	}{
		{"production without start date", domain.CampaignStateProduction},
		{"live without end date", domain.CampaignStateLive},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := domain.Campaign{
				Name:      "Sin Fechas",
				State:     tc.state,
				UpdatedAt: campaignNow,
			}
			if decision := EvaluateCampaign(c, campaignNow); decision.Transitioned() {
				t.Fatalf("missing dates must make the rule inapplicable")
			}
		})
	}
}

func TestEvaluateCampaignStalledReview(t *testing.T) {
	c := domain.Campaign{
		Name:           "Brief Olvidado",
		State:          domain.CampaignStateReview,
		StateEnteredAt: campaignNow.AddDate(0, 0, -8),
		UpdatedAt:      campaignNow.AddDate(0, 0, -8),
	}

	decision := EvaluateCampaign(c, campaignNow)
	if decision.Transitioned() {
		t.Fatalf("stalled review warns, it does not transition")
	}
	if len(decision.Warnings) != 1 {
		t.Fatalf("expected one warning, got %d", len(decision.Warnings))
	}
	warning := decision.Warnings[0]
	if warning.Severity != domain.SeverityWarning {
		t.Fatalf("expected warning severity, got %s", warning.Severity)
	}
	if len(warning.Targets) != 1 || warning.Targets[0] != domain.TargetManager {
		t.Fatalf("stalled review must notify the manager, got %v", warning.Targets)
	}
}

func TestEvaluateCampaignReviewAtBoundaryNoWarning(t *testing.T) {
	c := domain.Campaign{
		Name:      "Brief Reciente",
		State:     domain.CampaignStateReview,
		UpdatedAt: campaignNow.AddDate(0, 0, -7),
	}

	if decision := EvaluateCampaign(c, campaignNow); len(decision.Warnings) != 0 {
		t.Fatalf("exactly seven days is not stalled yet")
	}
}

func TestEvaluateCampaignEndingSoon(t *testing.T) {
	cases := []struct {
		name string
		end  time.Time
		want int
	}{
		{"ends tomorrow", campaignNow.AddDate(0, 0, 1), 1},
		{"ends in three days", campaignNow.AddDate(0, 0, 3), 1},
		{"ends in four days", campaignNow.AddDate(0, 0, 4), 0},
		{"ends today", campaignNow, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := domain.Campaign{
				Name:      "Cierre Proximo",
				State:     domain.CampaignStateLive,
				UpdatedAt: campaignNow,
				EndDate:   datePtr(tc.end),
			}
			decision := EvaluateCampaign(c, campaignNow)
			if len(decision.Warnings) != tc.want {
				t.Fatalf("warnings=%d, want %d", len(decision.Warnings), tc.want)
			}
			if tc.want == 1 && decision.Warnings[0].Severity != domain.SeverityInfo {
				t.Fatalf("ending soon is informational, got %s", decision.Warnings[0].Severity)
			}
		})
	}
}

func TestEvaluateCampaignTerminalStatesNeverAdvance(t *testing.T) {
	for _, state := range []domain.CampaignState{
		domain.CampaignStateFinished,
		domain.CampaignStatePaused,
		domain.CampaignStateCancelled,
	} {
		c := domain.Campaign{
			Name:           "Detenida",
			State:          state,
			StateEnteredAt: campaignNow.AddDate(0, 0, -100),
			UpdatedAt:      campaignNow,
			StartDate:      datePtr(campaignNow.AddDate(0, 0, -50)),
			EndDate:        datePtr(campaignNow.AddDate(0, 0, -20)),
		}
		if decision := EvaluateCampaign(c, campaignNow); decision.Transitioned() {
			t.Fatalf("state %s must not auto advance", state)
		}
	}
}

func TestEvaluateCampaignIsPure(t *testing.T) {
	c := domain.Campaign{
		Name:           "Determinista",
		State:          domain.CampaignStateApproved,
		StateEnteredAt: campaignNow.AddDate(0, 0, -3),
		UpdatedAt:      campaignNow.AddDate(0, 0, -3),
	}

	first := EvaluateCampaign(c, campaignNow)
	second := EvaluateCampaign(c, campaignNow)
	if *first.NewState != *second.NewState {
		t.Fatalf("same snapshot must yield same decision: %s vs %s", *first.NewState, *second.NewState)
	}
	if c.State != domain.CampaignStateApproved {
		t.Fatalf("evaluation must not mutate the campaign")
	}
}
