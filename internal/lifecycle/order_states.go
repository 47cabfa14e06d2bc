package lifecycle

import "github.com/spec-kit/lifecycle-service/internal/domain"

// OrderStates is the authoritative state table for order lifecycles.
var OrderStates = NewTable(
	StateDefinition[domain.OrderState]{
		Name:                domain.OrderStateRequested,
		Next:                domain.OrderStateReview,
		NotificationTargets: []domain.NotificationTarget{domain.TargetManager},
		Checklist: []string{
			"Registrar detalle de la orden",
			"Adjuntar especificaciones tecnicas",
		},
	},
	StateDefinition[domain.OrderState]{
		Name:                domain.OrderStateReview,
		Next:                domain.OrderStateApproved,
		NotificationTargets: []domain.NotificationTarget{domain.TargetManager},
		Checklist: []string{
			"Validar especificaciones con el equipo",
			"Cotizar con proveedores",
		},
	},
	StateDefinition[domain.OrderState]{
		Name:                  domain.OrderStateApproved,
		Next:                  domain.OrderStateProduction,
		AutoTransition:        true,
		EstimatedDurationDays: days(1),
		NotificationTargets:   []domain.NotificationTarget{domain.TargetClient},
		RequiredPreconditions: []string{"presupuesto_aprobado"},
		Checklist: []string{
			"Emitir orden de compra",
		},
	},
	StateDefinition[domain.OrderState]{
		Name:                  domain.OrderStateProduction,
		Next:                  domain.OrderStateQuality,
		AutoTransition:        true,
		EstimatedDurationDays: days(5),
		NotificationTargets:   []domain.NotificationTarget{domain.TargetProvider, domain.TargetTeam},
		RequiredPreconditions: []string{"materiales_listos"},
		Checklist: []string{
			"Confirmar inicio con el proveedor",
			"Supervisar avance de produccion",
		},
	},
	StateDefinition[domain.OrderState]{
		Name:                  domain.OrderStateQuality,
		Next:                  domain.OrderStateShipping,
		AutoTransition:        true,
		EstimatedDurationDays: days(2),
		NotificationTargets:   []domain.NotificationTarget{domain.TargetTeam},
		Checklist: []string{
			"Inspeccionar muestras",
			"Aprobar control de calidad",
		},
	},
	StateDefinition[domain.OrderState]{
		Name:                  domain.OrderStateShipping,
		Next:                  domain.OrderStateDelivered,
		AutoTransition:        true,
		EstimatedDurationDays: days(3),
		NotificationTargets:   []domain.NotificationTarget{domain.TargetClient, domain.TargetProvider},
		Checklist: []string{
			"Coordinar logistica de entrega",
		},
	},
	StateDefinition[domain.OrderState]{
		Name:                domain.OrderStateDelivered,
		Next:                domain.OrderStateBilling,
		NotificationTargets: []domain.NotificationTarget{domain.TargetClient, domain.TargetManager},
		Checklist: []string{
			"Obtener conformidad del cliente",
		},
	},
	StateDefinition[domain.OrderState]{
		Name:                domain.OrderStateBilling,
		Next:                domain.OrderStateClosed,
		NotificationTargets: []domain.NotificationTarget{domain.TargetManager},
		Checklist: []string{
			"Emitir factura",
			"Registrar pago",
		},
	},
	StateDefinition[domain.OrderState]{
		Name:                domain.OrderStateClosed,
		NotificationTargets: []domain.NotificationTarget{domain.TargetManager},
	},
	StateDefinition[domain.OrderState]{
		Name:                domain.OrderStateOverdue,
		Next:                domain.OrderStateDelivered,
		AutoTransition:      true,
		NotificationTargets: []domain.NotificationTarget{domain.TargetManager, domain.TargetTeam, domain.TargetProvider},
	},
	StateDefinition[domain.OrderState]{
		Name:                domain.OrderStatePaused,
		AutoTransition:      true,
		NotificationTargets: []domain.NotificationTarget{domain.TargetManager},
	},
	StateDefinition[domain.OrderState]{
		Name:                domain.OrderStateCancelled,
		AutoTransition:      true,
		NotificationTargets: []domain.NotificationTarget{domain.TargetManager, domain.TargetClient},
	},
)

// orderCompletionStates are exempt from overdue detection.
var orderCompletionStates = map[domain.OrderState]struct{}{
	domain.OrderStateDelivered: {},
	domain.OrderStateBilling:   {},
	domain.OrderStateClosed:    {},
	domain.OrderStateCancelled: {},
}
