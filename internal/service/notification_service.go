package service

import (
	"context"
	"strings"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/lifecycle-service/internal/config"
	"github.com/spec-kit/lifecycle-service/internal/domain"
	"github.com/spec-kit/lifecycle-service/internal/events"
	"github.com/spec-kit/lifecycle-service/internal/persistence"
)

// NotificationService reacts to lifecycle events: it drives the email/webhook
// delivery stubs and keeps per-target unread counters in Redis.
type NotificationService struct {
	dispatcher events.Dispatcher
	redis      *persistence.Redis
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, redis *persistence.Redis, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		redis:      redis,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventCampaignStateChanged, n.handleStateChanged)
	n.dispatcher.Subscribe(events.EventOrderStateChanged, n.handleStateChanged)
	n.dispatcher.Subscribe(events.EventCampaignStalled, n.handleWarning)
	n.dispatcher.Subscribe(events.EventCampaignEndingSoon, n.handleWarning)
	n.dispatcher.Subscribe(events.EventOrderOverdue, n.handleWarning)
}

func (n *NotificationService) handleStateChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("StateChanged",
		zap.String("entity_type", string(event.EntityType)),
		zap.String("entity_id", event.EntityID),
		zap.Any("payload", event.Payload))
	if payload, ok := event.Payload.(events.StateChangedPayload); ok {
		n.bumpUnreadCounters(ctx, payload.Targets)
	}
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleWarning(ctx context.Context, event events.Event) error {
	n.logger.Info("LifecycleWarning",
		zap.String("event_type", string(event.Type)),
		zap.String("entity_id", event.EntityID),
		zap.Any("payload", event.Payload))
	if payload, ok := event.Payload.(events.WarningPayload); ok {
		n.bumpUnreadCounters(ctx, payload.Targets)
	}
	n.sendEmailNotificationStub(ctx, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

// bumpUnreadCounters increments notifications:unread:<target> per target.
// Best effort: a redis outage never fails the event handler.
func (n *NotificationService) bumpUnreadCounters(ctx context.Context, targets []domain.NotificationTarget) {
	if n.redis == nil || n.redis.Client == nil {
		return
	}
	for _, target := range targets {
		if err := n.redis.Client.Incr(ctx, "notifications:unread:"+string(target)).Err(); err != nil {
			n.logger.Debug("unread counter not incremented", zap.String("target", string(target)), zap.Error(err))
		}
	}
}

// UnreadCount reads the unread counter for a target role.
func (n *NotificationService) UnreadCount(ctx context.Context, target domain.NotificationTarget) (int64, error) {
	if n.redis == nil || n.redis.Client == nil {
		return 0, nil
	}
	count, err := n.redis.Client.Get(ctx, "notifications:unread:"+string(target)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return count, err
}

// MarkRead resets the unread counter for a target role.
func (n *NotificationService) MarkRead(ctx context.Context, target domain.NotificationTarget) error {
	if n.redis == nil || n.redis.Client == nil {
		return nil
	}
	return n.redis.Client.Del(ctx, "notifications:unread:"+string(target)).Err()
}

func (n *NotificationService) sendEmailNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("entity_id", event.EntityID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("entity_id", event.EntityID),
		zap.String("event_type", string(event.Type)))
}
