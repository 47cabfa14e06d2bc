package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/lifecycle-service/internal/domain"
	"github.com/spec-kit/lifecycle-service/internal/events"
	"github.com/spec-kit/lifecycle-service/internal/lifecycle"
	"github.com/spec-kit/lifecycle-service/internal/repository"
	apperrors "github.com/spec-kit/lifecycle-service/pkg/util"
)

// AdvanceResult reports the outcome of persisting one automatic transition.
// Err is non-nil when the write failed; the entity was still returned with its
// intended state and the write is retried on the next read.
type AdvanceResult struct {
	EntityID string
	From     string
	To       string
	Err      error
}

// CampaignService coordinates campaign workflows: CRUD, the automatic
// advancement pass on listing, and manual transitions.
type CampaignService struct {
	campaigns     repository.CampaignRepository
	clients       repository.ClientRepository
	stateChanges  repository.StateChangeRepository
	notifications repository.NotificationRepository
	dispatcher    events.Dispatcher
	clock         lifecycle.Clock
	logger        *zap.Logger
}

// CampaignDependencies bundles collaborators for campaign service.
type CampaignDependencies struct {
	CampaignRepo     repository.CampaignRepository
	ClientRepo       repository.ClientRepository
	StateChangeRepo  repository.StateChangeRepository
	NotificationRepo repository.NotificationRepository
	Dispatcher       events.Dispatcher
	Clock            lifecycle.Clock
	Logger           *zap.Logger
}

// CampaignCreateInput describes campaign creation payload.
type CampaignCreateInput struct {
	Name        string
	ClientID    string
	Description string
	Budget      *float64
	StartDate   *time.Time
	EndDate     *time.Time
	Conditions  []string
}

// NewCampaignService constructs the service.
func NewCampaignService(deps CampaignDependencies) *CampaignService {
	clock := deps.Clock
	if clock == nil {
		clock = lifecycle.SystemClock{}
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CampaignService{
		campaigns:     deps.CampaignRepo,
		clients:       deps.ClientRepo,
		stateChanges:  deps.StateChangeRepo,
		notifications: deps.NotificationRepo,
		dispatcher:    deps.Dispatcher,
		clock:         clock,
		logger:        logger,
	}
}

// CreateCampaign creates a campaign in the initial draft state.
func (s *CampaignService) CreateCampaign(ctx context.Context, input CampaignCreateInput) (*domain.Campaign, error) {
	if input.Name == "" {
		return nil, apperrors.NewValidationError("campaign name required", nil)
	}
	client, err := s.clients.GetByID(ctx, input.ClientID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if !client.IsActive {
		return nil, apperrors.NewValidationError("client inactive", map[string]any{"client_id": client.ID})
	}
	if input.StartDate != nil && input.EndDate != nil && input.EndDate.Before(*input.StartDate) {
		return nil, apperrors.NewValidationError("end date before start date", nil)
	}

	campaign := &domain.Campaign{
		Name:        input.Name,
		ClientID:    input.ClientID,
		Description: input.Description,
		Budget:      input.Budget,
		State:       domain.CampaignStateDraft,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Conditions:  input.Conditions,
	}
	if err := s.campaigns.Create(ctx, campaign); err != nil {
		return nil, apperrors.MapError(err)
	}
	return campaign, nil
}

// GetCampaign fetches a campaign by id.
func (s *CampaignService) GetCampaign(ctx context.Context, id string) (*domain.Campaign, error) {
	campaign, err := s.campaigns.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return campaign, nil
}

// UpdateCampaign patches editable fields (not state).
func (s *CampaignService) UpdateCampaign(ctx context.Context, campaign *domain.Campaign) error {
	if err := s.campaigns.Update(ctx, campaign); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

// ListCampaigns returns campaigns matching the filter, running the automatic
// advancement pass over the fetched rows. Returned rows always carry the
// intended post-transition state, even when the write behind one of them
// failed; such failures show up in the result slice and are retried on the
// next read.
func (s *CampaignService) ListCampaigns(ctx context.Context, filter repository.CampaignFilter) ([]domain.Campaign, []AdvanceResult, error) {
	rows, err := s.campaigns.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, nil, apperrors.MapError(err)
	}

	now := s.clock.Now()
	var results []AdvanceResult
	for i := range rows {
		decision := lifecycle.EvaluateCampaign(rows[i], now)

		for _, warning := range decision.Warnings {
			s.recordNotification(ctx, warning, domain.EntityTypeCampaign, rows[i].ID)
			s.publishWarning(ctx, warningEventType(warning), domain.EntityTypeCampaign, rows[i].ID, warning)
		}

		if !decision.Transitioned() {
			continue
		}

		from := rows[i].State
		s.applyTransition(&rows[i], *decision.NewState, now)

		result := AdvanceResult{EntityID: rows[i].ID, From: string(from), To: string(rows[i].State)}
		if err := s.persistTransition(ctx, &rows[i], from, decision.Notification, now); err != nil {
			s.logger.Warn("campaign transition not persisted",
				zap.String("campaign_id", rows[i].ID),
				zap.String("from", string(from)),
				zap.String("to", string(rows[i].State)),
				zap.Error(err))
			result.Err = err
		}
		results = append(results, result)
	}
	return rows, results, nil
}

// ChangeState performs a user-triggered transition.
//
// The target must be the current state's defined successor, or a state whose
// definition permits off-path entry (pausing, cancelling). Unknown or
// disallowed targets fail validation before any write; write failures are
// surfaced, unlike in the automatic pass.
func (s *CampaignService) ChangeState(ctx context.Context, actor *domain.User, campaignID string, target domain.CampaignState, comment string) (*domain.Campaign, error) {
	targetDef, ok := lifecycle.CampaignStates.Definition(target)
	if !ok {
		return nil, apperrors.NewValidationError("unknown campaign state", map[string]any{"state": string(target)})
	}

	campaign, err := s.campaigns.GetByID(ctx, campaignID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if campaign.State == target {
		return nil, apperrors.NewValidationError("campaign already in requested state", map[string]any{"state": string(target)})
	}

	currentDef, _ := lifecycle.CampaignStates.Definition(campaign.State)
	if target != currentDef.Next && !targetDef.AutoTransition {
		return nil, apperrors.NewValidationError("transition not permitted", map[string]any{
			"from": string(campaign.State),
			"to":   string(target),
		})
	}
	for _, condition := range targetDef.RequiredPreconditions {
		if !campaign.HasCondition(condition) {
			return nil, apperrors.NewValidationError("precondition not met", map[string]any{"condition": condition})
		}
	}

	now := s.clock.Now()
	from := campaign.State
	s.applyTransition(campaign, target, now)

	patch := campaignPatch(campaign, now)
	if err := s.campaigns.UpdateState(ctx, campaign.ID, patch); err != nil {
		return nil, apperrors.NewPersistenceError(err)
	}

	var actorID *string
	if actor != nil {
		actorID = &actor.ID
	}
	s.appendAudit(ctx, campaign.ID, from, target, actorID, comment)

	if draft := lifecycle.TransitionDraft(lifecycle.CampaignStates, from, target, campaign.Name); draft != nil {
		s.recordNotification(ctx, *draft, domain.EntityTypeCampaign, campaign.ID)
	}
	s.publishStateChange(ctx, domain.EntityTypeCampaign, campaign.ID, string(from), string(target), actorID, false, targetDef.NotificationTargets, comment)

	return campaign, nil
}

// History lists the audit trail for a campaign.
func (s *CampaignService) History(ctx context.Context, campaignID string, limit, offset int) ([]domain.StateChangeRecord, error) {
	records, err := s.stateChanges.ListByEntity(ctx, domain.EntityTypeCampaign, campaignID, limit, offset)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return records, nil
}

// applyTransition mutates the in-memory campaign for the new state, stamping
// the state-specific timestamps.
func (s *CampaignService) applyTransition(campaign *domain.Campaign, target domain.CampaignState, now time.Time) {
	campaign.State = target
	campaign.StateEnteredAt = now
	campaign.UpdatedAt = now
	switch target {
	case domain.CampaignStateLive:
		if campaign.ActualStartAt == nil {
			campaign.ActualStartAt = &now
		}
	case domain.CampaignStateFinished:
		if campaign.ActualEndAt == nil {
			campaign.ActualEndAt = &now
		}
	}
}

// persistTransition writes the state patch, the audit entry and the
// transition notification. Used by the automatic pass only; errors are
// returned for collection, never propagated.
func (s *CampaignService) persistTransition(ctx context.Context, campaign *domain.Campaign, from domain.CampaignState, draft *lifecycle.NotificationDraft, now time.Time) error {
	if err := s.campaigns.UpdateState(ctx, campaign.ID, campaignPatch(campaign, now)); err != nil {
		return err
	}
	s.appendAudit(ctx, campaign.ID, from, campaign.State, nil, "auto")
	if draft != nil {
		s.recordNotification(ctx, *draft, domain.EntityTypeCampaign, campaign.ID)
	}
	targetDef, _ := lifecycle.CampaignStates.Definition(campaign.State)
	s.publishStateChange(ctx, domain.EntityTypeCampaign, campaign.ID, string(from), string(campaign.State), nil, true, targetDef.NotificationTargets, "")
	return nil
}

func campaignPatch(campaign *domain.Campaign, now time.Time) repository.StatePatch {
	return repository.StatePatch{
		NewState:       string(campaign.State),
		StateEnteredAt: campaign.StateEnteredAt,
		UpdatedAt:      now,
		ActualStartAt:  campaign.ActualStartAt,
		ActualEndAt:    campaign.ActualEndAt,
	}
}

func (s *CampaignService) appendAudit(ctx context.Context, campaignID string, from, to domain.CampaignState, actorID *string, comment string) {
	record := &domain.StateChangeRecord{
		EntityType:    domain.EntityTypeCampaign,
		EntityID:      campaignID,
		PreviousState: string(from),
		NewState:      string(to),
		ActorID:       actorID,
		Comment:       comment,
	}
	if err := s.stateChanges.Create(ctx, record); err != nil {
		s.logger.Warn("audit record not persisted", zap.String("campaign_id", campaignID), zap.Error(err))
	}
}

func (s *CampaignService) recordNotification(ctx context.Context, draft lifecycle.NotificationDraft, entityType domain.EntityType, entityID string) {
	notification := &domain.Notification{
		Title:      draft.Title,
		Message:    draft.Message,
		Severity:   draft.Severity,
		Targets:    draft.Targets,
		EntityType: entityType,
		EntityID:   entityID,
	}
	if err := s.notifications.Create(ctx, notification); err != nil {
		s.logger.Warn("notification not persisted", zap.String("entity_id", entityID), zap.Error(err))
	}
}

func (s *CampaignService) publishStateChange(ctx context.Context, entityType domain.EntityType, entityID, from, to string, actorID *string, automatic bool, targets []domain.NotificationTarget, comment string) {
	if s.dispatcher == nil {
		return
	}
	eventType := events.EventCampaignStateChanged
	if entityType == domain.EntityTypeOrder {
		eventType = events.EventOrderStateChanged
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		EntityType: entityType,
		EntityID:   entityID,
		ActorID:    actorID,
		Timestamp:  s.clock.Now(),
		Payload: events.StateChangedPayload{
			OldState:  from,
			NewState:  to,
			Automatic: automatic,
			Targets:   targets,
			Comment:   comment,
		},
	})
}

func (s *CampaignService) publishWarning(ctx context.Context, eventType events.EventType, entityType domain.EntityType, entityID string, draft lifecycle.NotificationDraft) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		EntityType: entityType,
		EntityID:   entityID,
		Timestamp:  s.clock.Now(),
		Payload: events.WarningPayload{
			Title:    draft.Title,
			Message:  draft.Message,
			Severity: draft.Severity,
			Targets:  draft.Targets,
		},
	})
}

func warningEventType(draft lifecycle.NotificationDraft) events.EventType {
	if draft.Severity == domain.SeverityWarning {
		return events.EventCampaignStalled
	}
	return events.EventCampaignEndingSoon
}
