package dto

import (
	"time"

	"github.com/spec-kit/lifecycle-service/internal/domain"
)

// CreateOrderRequest payload.
type CreateOrderRequest struct {
	CampaignID            string     `json:"campaign_id"`
	ProviderID            *string    `json:"provider_id"`
	Description           string     `json:"description"`
	Amount                *float64   `json:"amount"`
	EstimatedDeliveryDate *time.Time `json:"estimated_delivery_date"`
	Conditions            []string   `json:"conditions"`
}

// UpdateOrderRequest payload for editable fields.
type UpdateOrderRequest struct {
	ProviderID            *string    `json:"provider_id"`
	Description           *string    `json:"description"`
	Amount                *float64   `json:"amount"`
	EstimatedDeliveryDate *time.Time `json:"estimated_delivery_date"`
	Conditions            []string   `json:"conditions"`
}

// OrderResponse response.
type OrderResponse struct {
	ID                    string            `json:"id"`
	ExternalKey           string            `json:"external_key"`
	CampaignID            string            `json:"campaign_id"`
	ProviderID            *string           `json:"provider_id"`
	Description           string            `json:"description"`
	Amount                *float64          `json:"amount"`
	State                 domain.OrderState `json:"state"`
	StateEnteredAt        time.Time         `json:"state_entered_at"`
	EstimatedDeliveryDate *time.Time        `json:"estimated_delivery_date"`
	DeliveredAt           *time.Time        `json:"delivered_at"`
	ClosedAt              *time.Time        `json:"closed_at"`
	Conditions            []string          `json:"conditions"`
	CreatedAt             time.Time         `json:"created_at"`
	UpdatedAt             time.Time         `json:"updated_at"`
}

// NewOrderResponse maps a domain order.
func NewOrderResponse(o *domain.Order) OrderResponse {
	return OrderResponse{
		ID:                    o.ID,
		ExternalKey:           o.ExternalKey,
		CampaignID:            o.CampaignID,
		ProviderID:            o.ProviderID,
		Description:           o.Description,
		Amount:                o.Amount,
		State:                 o.State,
		StateEnteredAt:        o.StateEnteredAt,
		EstimatedDeliveryDate: o.EstimatedDeliveryDate,
		DeliveredAt:           o.DeliveredAt,
		ClosedAt:              o.ClosedAt,
		Conditions:            o.Conditions,
		CreatedAt:             o.CreatedAt,
		UpdatedAt:             o.UpdatedAt,
	}
}

// NotificationResponse exposes a notification record.
type NotificationResponse struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	Severity   string    `json:"severity"`
	Targets    []string  `json:"targets"`
	EntityType string    `json:"entity_type"`
	EntityID   string    `json:"entity_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewNotificationResponses maps notification records.
func NewNotificationResponses(notifications []domain.Notification) []NotificationResponse {
	out := make([]NotificationResponse, 0, len(notifications))
	for _, notification := range notifications {
		targets := make([]string, 0, len(notification.Targets))
		for _, target := range notification.Targets {
			targets = append(targets, string(target))
		}
		out = append(out, NotificationResponse{
			ID:         notification.ID,
			Title:      notification.Title,
			Message:    notification.Message,
			Severity:   string(notification.Severity),
			Targets:    targets,
			EntityType: string(notification.EntityType),
			EntityID:   notification.EntityID,
			CreatedAt:  notification.CreatedAt,
		})
	}
	return out
}
