package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/lifecycle-service/internal/domain"
)

// CampaignFilter captures listing parameters.
type CampaignFilter struct {
	ClientID    *string
	States      []domain.CampaignState
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Limit       int
	Offset      int
}

// StatePatch carries the fields the persister writes on a transition.
type StatePatch struct {
	NewState       string
	StateEnteredAt time.Time
	UpdatedAt      time.Time
	ActualStartAt  *time.Time
	ActualEndAt    *time.Time
	DeliveredAt    *time.Time
	ClosedAt       *time.Time
}

// CampaignRepository encapsulates campaign persistence.
type CampaignRepository interface {
	Create(ctx context.Context, campaign *domain.Campaign) error
	Update(ctx context.Context, campaign *domain.Campaign) error
	UpdateState(ctx context.Context, id string, patch StatePatch) error
	GetByID(ctx context.Context, id string) (*domain.Campaign, error)
	ListWithFilter(ctx context.Context, filter CampaignFilter) ([]domain.Campaign, error)
}

type campaignRepository struct {
	pool *pgxpool.Pool
}

// NewCampaignRepository instantiates repository.
func NewCampaignRepository(pool *pgxpool.Pool) CampaignRepository {
	return &campaignRepository{pool: pool}
}

const campaignColumns = `id, name, client_id, description, budget, state, state_entered_at,
               start_date, end_date, actual_start_at, actual_end_at, conditions, created_at, updated_at`

func (r *campaignRepository) Create(ctx context.Context, campaign *domain.Campaign) error {
	const query = `
        INSERT INTO campaigns (name, client_id, description, budget, state, state_entered_at, start_date, end_date, conditions)
        VALUES ($1,$2,$3,$4,$5,NOW(),$6,$7,$8)
        RETURNING id, state_entered_at, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		campaign.Name,
		campaign.ClientID,
		campaign.Description,
		campaign.Budget,
		campaign.State,
		campaign.StartDate,
		campaign.EndDate,
		campaign.Conditions,
	).Scan(&campaign.ID, &campaign.StateEnteredAt, &campaign.CreatedAt, &campaign.UpdatedAt)
}

func (r *campaignRepository) Update(ctx context.Context, campaign *domain.Campaign) error {
	const query = `
        UPDATE campaigns SET name=$1, description=$2, budget=$3, start_date=$4, end_date=$5,
            conditions=$6, updated_at=NOW()
        WHERE id=$7`
	cmd, err := r.pool.Exec(ctx, query,
		campaign.Name,
		campaign.Description,
		campaign.Budget,
		campaign.StartDate,
		campaign.EndDate,
		campaign.Conditions,
		campaign.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *campaignRepository) UpdateState(ctx context.Context, id string, patch StatePatch) error {
	const query = `
        UPDATE campaigns SET state=$1, state_entered_at=$2, updated_at=$3,
            actual_start_at=COALESCE($4, actual_start_at),
            actual_end_at=COALESCE($5, actual_end_at)
        WHERE id=$6`
	cmd, err := r.pool.Exec(ctx, query,
		patch.NewState,
		patch.StateEnteredAt,
		patch.UpdatedAt,
		patch.ActualStartAt,
		patch.ActualEndAt,
		id,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *campaignRepository) GetByID(ctx context.Context, id string) (*domain.Campaign, error) {
	query := fmt.Sprintf(`SELECT %s FROM campaigns WHERE id=$1`, campaignColumns)
	var campaign domain.Campaign
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&campaign.ID,
		&campaign.Name,
		&campaign.ClientID,
		&campaign.Description,
		&campaign.Budget,
		&campaign.State,
		&campaign.StateEnteredAt,
		&campaign.StartDate,
		&campaign.EndDate,
		&campaign.ActualStartAt,
		&campaign.ActualEndAt,
		&campaign.Conditions,
		&campaign.CreatedAt,
		&campaign.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &campaign, nil
}

func (r *campaignRepository) ListWithFilter(ctx context.Context, filter CampaignFilter) ([]domain.Campaign, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.ClientID != nil {
		args = append(args, *filter.ClientID)
		clauses = append(clauses, fmt.Sprintf("client_id=$%d", len(args)))
	}
	if len(filter.States) > 0 {
		placeholders := make([]string, len(filter.States))
		for i, state := range filter.States {
			args = append(args, state)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("state IN (%s)", strings.Join(placeholders, ",")))
	}
	if filter.CreatedFrom != nil {
		args = append(args, *filter.CreatedFrom)
		clauses = append(clauses, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if filter.CreatedTo != nil {
		args = append(args, *filter.CreatedTo)
		clauses = append(clauses, fmt.Sprintf("created_at <= $%d", len(args)))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`SELECT %s FROM campaigns WHERE %s ORDER BY updated_at DESC LIMIT %d OFFSET %d`,
		campaignColumns, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Campaign
	for rows.Next() {
		var campaign domain.Campaign
		if err := rows.Scan(
			&campaign.ID,
			&campaign.Name,
			&campaign.ClientID,
			&campaign.Description,
			&campaign.Budget,
			&campaign.State,
			&campaign.StateEnteredAt,
			&campaign.StartDate,
			&campaign.EndDate,
			&campaign.ActualStartAt,
			&campaign.ActualEndAt,
			&campaign.Conditions,
			&campaign.CreatedAt,
			&campaign.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, campaign)
	}
	return result, rows.Err()
}
