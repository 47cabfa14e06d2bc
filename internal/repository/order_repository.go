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

// OrderFilter captures listing parameters.
type OrderFilter struct {
	CampaignID  *string
	ProviderID  *string
	States      []domain.OrderState
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Limit       int
	Offset      int
}

// OrderRepository encapsulates order persistence.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	Update(ctx context.Context, order *domain.Order) error
	UpdateState(ctx context.Context, id string, patch StatePatch) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	GetByExternalKey(ctx context.Context, key string) (*domain.Order, error)
	ListWithFilter(ctx context.Context, filter OrderFilter) ([]domain.Order, error)
}

type orderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository instantiates repository.
func NewOrderRepository(pool *pgxpool.Pool) OrderRepository {
	return &orderRepository{pool: pool}
}

const orderColumns = `id, external_key, campaign_id, provider_id, description, amount, state, state_entered_at,
               estimated_delivery_date, delivered_at, closed_at, conditions, created_at, updated_at`

func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	const query = `
        INSERT INTO orders (external_key, campaign_id, provider_id, description, amount, state, state_entered_at, estimated_delivery_date, conditions)
        VALUES ($1,$2,$3,$4,$5,$6,NOW(),$7,$8)
        RETURNING id, state_entered_at, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		order.ExternalKey,
		order.CampaignID,
		order.ProviderID,
		order.Description,
		order.Amount,
		order.State,
		order.EstimatedDeliveryDate,
		order.Conditions,
	).Scan(&order.ID, &order.StateEnteredAt, &order.CreatedAt, &order.UpdatedAt)
}

func (r *orderRepository) Update(ctx context.Context, order *domain.Order) error {
	const query = `
        UPDATE orders SET provider_id=$1, description=$2, amount=$3, estimated_delivery_date=$4,
            conditions=$5, updated_at=NOW()
        WHERE id=$6`
	cmd, err := r.pool.Exec(ctx, query,
		order.ProviderID,
		order.Description,
		order.Amount,
		order.EstimatedDeliveryDate,
		order.Conditions,
		order.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *orderRepository) UpdateState(ctx context.Context, id string, patch StatePatch) error {
	const query = `
        UPDATE orders SET state=$1, state_entered_at=$2, updated_at=$3,
            delivered_at=COALESCE($4, delivered_at),
            closed_at=COALESCE($5, closed_at)
        WHERE id=$6`
	cmd, err := r.pool.Exec(ctx, query,
		patch.NewState,
		patch.StateEnteredAt,
		patch.UpdatedAt,
		patch.DeliveredAt,
		patch.ClosedAt,
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

func (r *orderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE id=$1`, orderColumns)
	return r.fetchSingle(ctx, query, id)
}

func (r *orderRepository) GetByExternalKey(ctx context.Context, key string) (*domain.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE external_key=$1`, orderColumns)
	return r.fetchSingle(ctx, query, key)
}

func (r *orderRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Order, error) {
	var order domain.Order
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&order.ID,
		&order.ExternalKey,
		&order.CampaignID,
		&order.ProviderID,
		&order.Description,
		&order.Amount,
		&order.State,
		&order.StateEnteredAt,
		&order.EstimatedDeliveryDate,
		&order.DeliveredAt,
		&order.ClosedAt,
		&order.Conditions,
		&order.CreatedAt,
		&order.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) ListWithFilter(ctx context.Context, filter OrderFilter) ([]domain.Order, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.CampaignID != nil {
		args = append(args, *filter.CampaignID)
		clauses = append(clauses, fmt.Sprintf("campaign_id=$%d", len(args)))
	}
	if filter.ProviderID != nil {
		args = append(args, *filter.ProviderID)
		clauses = append(clauses, fmt.Sprintf("provider_id=$%d", len(args)))
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

	query := fmt.Sprintf(`SELECT %s FROM orders WHERE %s ORDER BY updated_at DESC LIMIT %d OFFSET %d`,
		orderColumns, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Order
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(
			&order.ID,
			&order.ExternalKey,
			&order.CampaignID,
			&order.ProviderID,
			&order.Description,
			&order.Amount,
			&order.State,
			&order.StateEnteredAt,
			&order.EstimatedDeliveryDate,
			&order.DeliveredAt,
			&order.ClosedAt,
			&order.Conditions,
			&order.CreatedAt,
			&order.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, order)
	}
	return result, rows.Err()
}
