package lifecycle

import "github.com/spec-kit/lifecycle-service/internal/domain"

// CampaignStates is the authoritative state table for campaign lifecycles.
var CampaignStates = NewTable(
	StateDefinition[domain.CampaignState]{
		Name: domain.CampaignStateDraft,
		Next: domain.CampaignStateReview,
		Checklist: []string{
			"Registrar brief del cliente",
			"Definir objetivos y piezas",
			"Estimar presupuesto preliminar",
		},
	},
	StateDefinition[domain.CampaignState]{
		Name:                  domain.CampaignStateReview,
		Next:                  domain.CampaignStateApproved,
		NotificationTargets:   []domain.NotificationTarget{domain.TargetManager},
		RequiredPreconditions: []string{"brief_completo"},
		Checklist: []string{
			"Revisar brief con el gerente de cuenta",
			"Validar alcance con el cliente",
		},
	},
	StateDefinition[domain.CampaignState]{
		Name:                  domain.CampaignStateApproved,
		Next:                  domain.CampaignStateProduction,
		AutoTransition:        true,
		EstimatedDurationDays: days(2),
		NotificationTargets:   []domain.NotificationTarget{domain.TargetClient, domain.TargetTeam},
		RequiredPreconditions: []string{"presupuesto_aprobado"},
		Checklist: []string{
			"Confirmar orden de compra del cliente",
			"Agendar kickoff de produccion",
		},
	},
	StateDefinition[domain.CampaignState]{
		Name:                domain.CampaignStateProduction,
		Next:                domain.CampaignStateLive,
		AutoTransition:      true,
		NotificationTargets: []domain.NotificationTarget{domain.TargetTeam},
		Checklist: []string{
			"Producir piezas creativas",
			"Reservar espacios con proveedores",
			"Aprobar artes finales",
		},
	},
	StateDefinition[domain.CampaignState]{
		Name:                domain.CampaignStateLive,
		Next:                domain.CampaignStateFinished,
		AutoTransition:      true,
		NotificationTargets: []domain.NotificationTarget{domain.TargetTeam, domain.TargetManager},
		Checklist: []string{
			"Monitorear pauta publicada",
			"Reportar avances al cliente",
		},
	},
	StateDefinition[domain.CampaignState]{
		Name:                domain.CampaignStateFinished,
		NotificationTargets: []domain.NotificationTarget{domain.TargetClient, domain.TargetManager},
		Checklist: []string{
			"Preparar informe de cierre",
			"Archivar materiales",
		},
	},
	StateDefinition[domain.CampaignState]{
		Name:                domain.CampaignStatePaused,
		AutoTransition:      true,
		NotificationTargets: []domain.NotificationTarget{domain.TargetManager, domain.TargetClient},
	},
	StateDefinition[domain.CampaignState]{
		Name:                domain.CampaignStateCancelled,
		AutoTransition:      true,
		NotificationTargets: []domain.NotificationTarget{domain.TargetManager, domain.TargetClient},
	},
)
