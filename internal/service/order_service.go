package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/lifecycle-service/internal/domain"
	"github.com/spec-kit/lifecycle-service/internal/events"
	"github.com/spec-kit/lifecycle-service/internal/lifecycle"
	"github.com/spec-kit/lifecycle-service/internal/repository"
	apperrors "github.com/spec-kit/lifecycle-service/pkg/util"
)

// OrderService coordinates order workflows: CRUD, the automatic advancement
// pass on listing (overdue detection included), and manual transitions.
type OrderService struct {
	orders        repository.OrderRepository
	campaigns     repository.CampaignRepository
	providers     repository.ProviderRepository
	stateChanges  repository.StateChangeRepository
	notifications repository.NotificationRepository
	dispatcher    events.Dispatcher
	clock         lifecycle.Clock
	logger        *zap.Logger
}

// OrderDependencies bundles collaborators for order service.
type OrderDependencies struct {
	OrderRepo        repository.OrderRepository
	CampaignRepo     repository.CampaignRepository
	ProviderRepo     repository.ProviderRepository
	StateChangeRepo  repository.StateChangeRepository
	NotificationRepo repository.NotificationRepository
	Dispatcher       events.Dispatcher
	Clock            lifecycle.Clock
	Logger           *zap.Logger
}

// OrderCreateInput describes order creation payload.
type OrderCreateInput struct {
	CampaignID            string
	ProviderID            *string
	Description           string
	Amount                *float64
	EstimatedDeliveryDate *time.Time
	Conditions            []string
}

// NewOrderService constructs the service.
func NewOrderService(deps OrderDependencies) *OrderService {
	clock := deps.Clock
	if clock == nil {
		clock = lifecycle.SystemClock{}
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderService{
		orders:        deps.OrderRepo,
		campaigns:     deps.CampaignRepo,
		providers:     deps.ProviderRepo,
		stateChanges:  deps.StateChangeRepo,
		notifications: deps.NotificationRepo,
		dispatcher:    deps.Dispatcher,
		clock:         clock,
		logger:        logger,
	}
}

// CreateOrder creates an order in the initial requested state.
func (s *OrderService) CreateOrder(ctx context.Context, input OrderCreateInput) (*domain.Order, error) {
	if strings.TrimSpace(input.Description) == "" {
		return nil, apperrors.NewValidationError("order description required", nil)
	}
	if _, err := s.campaigns.GetByID(ctx, input.CampaignID); err != nil {
		return nil, apperrors.MapError(err)
	}
	if input.ProviderID != nil {
		provider, err := s.providers.GetByID(ctx, *input.ProviderID)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		if !provider.IsActive {
			return nil, apperrors.NewValidationError("provider inactive", map[string]any{"provider_id": provider.ID})
		}
	}

	order := &domain.Order{
		ExternalKey:           generateOrderKey(),
		CampaignID:            input.CampaignID,
		ProviderID:            input.ProviderID,
		Description:           strings.TrimSpace(input.Description),
		Amount:                input.Amount,
		State:                 domain.OrderStateRequested,
		EstimatedDeliveryDate: input.EstimatedDeliveryDate,
		Conditions:            input.Conditions,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, apperrors.MapError(err)
	}
	return order, nil
}

// GetOrder fetches an order by id.
func (s *OrderService) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return order, nil
}

// GetOrderByKey fetches an order by its external key.
func (s *OrderService) GetOrderByKey(ctx context.Context, key string) (*domain.Order, error) {
	order, err := s.orders.GetByExternalKey(ctx, key)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return order, nil
}

// UpdateOrder patches editable fields (not state).
func (s *OrderService) UpdateOrder(ctx context.Context, order *domain.Order) error {
	if err := s.orders.Update(ctx, order); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

// ListOrders returns orders matching the filter, running the automatic
// advancement pass over the fetched rows. Overdue detection takes priority
// over every other rule. Per-entity persistence failures are collected, not
// propagated, and the returned rows show the intended state.
func (s *OrderService) ListOrders(ctx context.Context, filter repository.OrderFilter) ([]domain.Order, []AdvanceResult, error) {
	rows, err := s.orders.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, nil, apperrors.MapError(err)
	}

	now := s.clock.Now()
	var results []AdvanceResult
	for i := range rows {
		decision := lifecycle.EvaluateOrder(rows[i], now)
		if !decision.Transitioned() {
			continue
		}

		from := rows[i].State
		s.applyTransition(&rows[i], *decision.NewState, now)

		result := AdvanceResult{EntityID: rows[i].ID, From: string(from), To: string(rows[i].State)}
		if err := s.persistTransition(ctx, &rows[i], from, decision.Notification, now); err != nil {
			s.logger.Warn("order transition not persisted",
				zap.String("order_id", rows[i].ID),
				zap.String("from", string(from)),
				zap.String("to", string(rows[i].State)),
				zap.Error(err))
			result.Err = err
		}
		results = append(results, result)
	}
	return rows, results, nil
}

// ChangeState performs a user-triggered transition, with the same target
// validation as campaigns.
func (s *OrderService) ChangeState(ctx context.Context, actor *domain.User, orderID string, target domain.OrderState, comment string) (*domain.Order, error) {
	targetDef, ok := lifecycle.OrderStates.Definition(target)
	if !ok {
		return nil, apperrors.NewValidationError("unknown order state", map[string]any{"state": string(target)})
	}

	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if order.State == target {
		return nil, apperrors.NewValidationError("order already in requested state", map[string]any{"state": string(target)})
	}

	currentDef, _ := lifecycle.OrderStates.Definition(order.State)
	if target != currentDef.Next && !targetDef.AutoTransition {
		return nil, apperrors.NewValidationError("transition not permitted", map[string]any{
			"from": string(order.State),
			"to":   string(target),
		})
	}
	for _, condition := range targetDef.RequiredPreconditions {
		if !order.HasCondition(condition) {
			return nil, apperrors.NewValidationError("precondition not met", map[string]any{"condition": condition})
		}
	}

	now := s.clock.Now()
	from := order.State
	s.applyTransition(order, target, now)

	if err := s.orders.UpdateState(ctx, order.ID, orderPatch(order, now)); err != nil {
		return nil, apperrors.NewPersistenceError(err)
	}

	var actorID *string
	if actor != nil {
		actorID = &actor.ID
	}
	s.appendAudit(ctx, order.ID, from, target, actorID, comment)

	if draft := lifecycle.TransitionDraft(lifecycle.OrderStates, from, target, order.ExternalKey); draft != nil {
		s.recordNotification(ctx, *draft, order.ID)
	}
	s.publishStateChange(ctx, order.ID, string(from), string(target), actorID, false, targetDef.NotificationTargets, comment)

	return order, nil
}

// History lists the audit trail for an order.
func (s *OrderService) History(ctx context.Context, orderID string, limit, offset int) ([]domain.StateChangeRecord, error) {
	records, err := s.stateChanges.ListByEntity(ctx, domain.EntityTypeOrder, orderID, limit, offset)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return records, nil
}

func (s *OrderService) applyTransition(order *domain.Order, target domain.OrderState, now time.Time) {
	order.State = target
	order.StateEnteredAt = now
	order.UpdatedAt = now
	switch target {
	case domain.OrderStateDelivered:
		if order.DeliveredAt == nil {
			order.DeliveredAt = &now
		}
	case domain.OrderStateClosed:
		if order.ClosedAt == nil {
			order.ClosedAt = &now
		}
	}
}

func (s *OrderService) persistTransition(ctx context.Context, order *domain.Order, from domain.OrderState, draft *lifecycle.NotificationDraft, now time.Time) error {
	if err := s.orders.UpdateState(ctx, order.ID, orderPatch(order, now)); err != nil {
		return err
	}
	s.appendAudit(ctx, order.ID, from, order.State, nil, "auto")
	if draft != nil {
		s.recordNotification(ctx, *draft, order.ID)
	}
	targetDef, _ := lifecycle.OrderStates.Definition(order.State)
	if order.State == domain.OrderStateOverdue {
		s.publishOverdue(ctx, order.ID, draft)
	} else {
		s.publishStateChange(ctx, order.ID, string(from), string(order.State), nil, true, targetDef.NotificationTargets, "")
	}
	return nil
}

func orderPatch(order *domain.Order, now time.Time) repository.StatePatch {
	return repository.StatePatch{
		NewState:       string(order.State),
		StateEnteredAt: order.StateEnteredAt,
		UpdatedAt:      now,
		DeliveredAt:    order.DeliveredAt,
		ClosedAt:       order.ClosedAt,
	}
}

func (s *OrderService) appendAudit(ctx context.Context, orderID string, from, to domain.OrderState, actorID *string, comment string) {
	record := &domain.StateChangeRecord{
		EntityType:    domain.EntityTypeOrder,
		EntityID:      orderID,
		PreviousState: string(from),
		NewState:      string(to),
		ActorID:       actorID,
		Comment:       comment,
	}
	if err := s.stateChanges.Create(ctx, record); err != nil {
		s.logger.Warn("audit record not persisted", zap.String("order_id", orderID), zap.Error(err))
	}
}

func (s *OrderService) recordNotification(ctx context.Context, draft lifecycle.NotificationDraft, orderID string) {
	notification := &domain.Notification{
		Title:      draft.Title,
		Message:    draft.Message,
		Severity:   draft.Severity,
		Targets:    draft.Targets,
		EntityType: domain.EntityTypeOrder,
		EntityID:   orderID,
	}
	if err := s.notifications.Create(ctx, notification); err != nil {
		s.logger.Warn("notification not persisted", zap.String("order_id", orderID), zap.Error(err))
	}
}

func (s *OrderService) publishStateChange(ctx context.Context, orderID, from, to string, actorID *string, automatic bool, targets []domain.NotificationTarget, comment string) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:         uuid.NewString(),
		Type:       events.EventOrderStateChanged,
		EntityType: domain.EntityTypeOrder,
		EntityID:   orderID,
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

func (s *OrderService) publishOverdue(ctx context.Context, orderID string, draft *lifecycle.NotificationDraft) {
	if s.dispatcher == nil || draft == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:         uuid.NewString(),
		Type:       events.EventOrderOverdue,
		EntityType: domain.EntityTypeOrder,
		EntityID:   orderID,
		Timestamp:  s.clock.Now(),
		Payload: events.WarningPayload{
			Title:    draft.Title,
			Message:  draft.Message,
			Severity: draft.Severity,
			Targets:  draft.Targets,
		},
	})
}

func generateOrderKey() string {
	return "ORD-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}
