package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/lifecycle-service/internal/domain"
)

// StateChangeRepository stores append-only audit entries.
type StateChangeRepository interface {
	Create(ctx context.Context, record *domain.StateChangeRecord) error
	ListByEntity(ctx context.Context, entityType domain.EntityType, entityID string, limit, offset int) ([]domain.StateChangeRecord, error)
}

type stateChangeRepository struct {
	pool *pgxpool.Pool
}

// NewStateChangeRepository builds repository.
func NewStateChangeRepository(pool *pgxpool.Pool) StateChangeRepository {
	return &stateChangeRepository{pool: pool}
}

func (r *stateChangeRepository) Create(ctx context.Context, record *domain.StateChangeRecord) error {
	const query = `
        INSERT INTO state_changes (entity_type, entity_id, previous_state, new_state, actor_id, comment)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		record.EntityType,
		record.EntityID,
		record.PreviousState,
		record.NewState,
		record.ActorID,
		record.Comment,
	).Scan(&record.ID, &record.CreatedAt)
}

func (r *stateChangeRepository) ListByEntity(ctx context.Context, entityType domain.EntityType, entityID string, limit, offset int) ([]domain.StateChangeRecord, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
        SELECT id, entity_type, entity_id, previous_state, new_state, actor_id, comment, created_at
        FROM state_changes WHERE entity_type=$1 AND entity_id=$2
        ORDER BY created_at ASC LIMIT $3 OFFSET $4`
	rows, err := r.pool.Query(ctx, query, entityType, entityID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.StateChangeRecord
	for rows.Next() {
		var record domain.StateChangeRecord
		if err := rows.Scan(
			&record.ID,
			&record.EntityType,
			&record.EntityID,
			&record.PreviousState,
			&record.NewState,
			&record.ActorID,
			&record.Comment,
			&record.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, record)
	}
	return result, rows.Err()
}
