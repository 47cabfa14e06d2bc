package domain

import "time"

// OrderState enumerates lifecycle states for advertising orders.
type OrderState string

const (
	OrderStateRequested  OrderState = "solicitada"
	OrderStateReview     OrderState = "revision"
	OrderStateApproved   OrderState = "aprobada"
	OrderStateProduction OrderState = "produccion"
	OrderStateQuality    OrderState = "calidad"
	OrderStateShipping   OrderState = "envio"
	OrderStateDelivered  OrderState = "entregada"
	OrderStateBilling    OrderState = "facturacion"
	OrderStateClosed     OrderState = "cerrada"
	OrderStateOverdue    OrderState = "atrasada"
	OrderStatePaused     OrderState = "pausada"
	OrderStateCancelled  OrderState = "cancelada"
)

// Order is the aggregate for a production order placed under a campaign.
type Order struct {
	ID                    string
	ExternalKey           string
	CampaignID            string
	ProviderID            *string
	Description           string
	Amount                *float64
	State                 OrderState
	StateEnteredAt        time.Time
	EstimatedDeliveryDate *time.Time
	DeliveredAt           *time.Time
	ClosedAt              *time.Time
	Conditions            []string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// HasCondition reports whether a named precondition tag is set on the order.
func (o *Order) HasCondition(name string) bool {
	for _, cond := range o.Conditions {
		if cond == name {
			return true
		}
	}
	return false
}
