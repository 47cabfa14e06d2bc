package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/lifecycle-service/internal/domain"
)

// NotificationRepository stores append-only notification records.
type NotificationRepository interface {
	Create(ctx context.Context, notification *domain.Notification) error
	ListRecent(ctx context.Context, limit, offset int) ([]domain.Notification, error)
	ListByEntity(ctx context.Context, entityType domain.EntityType, entityID string, limit int) ([]domain.Notification, error)
}

type notificationRepository struct {
	pool *pgxpool.Pool
}

// NewNotificationRepository builds repository.
func NewNotificationRepository(pool *pgxpool.Pool) NotificationRepository {
	return &notificationRepository{pool: pool}
}

func (r *notificationRepository) Create(ctx context.Context, notification *domain.Notification) error {
	const query = `
        INSERT INTO notifications (title, message, severity, targets, entity_type, entity_id)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at`
	targets := make([]string, 0, len(notification.Targets))
	for _, target := range notification.Targets {
		targets = append(targets, string(target))
	}
	return r.pool.QueryRow(ctx, query,
		notification.Title,
		notification.Message,
		notification.Severity,
		targets,
		notification.EntityType,
		notification.EntityID,
	).Scan(&notification.ID, &notification.CreatedAt)
}

func (r *notificationRepository) ListRecent(ctx context.Context, limit, offset int) ([]domain.Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
        SELECT id, title, message, severity, targets, entity_type, entity_id, created_at
        FROM notifications ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanNotifications(rows)
}

func (r *notificationRepository) ListByEntity(ctx context.Context, entityType domain.EntityType, entityID string, limit int) ([]domain.Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	const query = `
        SELECT id, title, message, severity, targets, entity_type, entity_id, created_at
        FROM notifications WHERE entity_type=$1 AND entity_id=$2
        ORDER BY created_at DESC LIMIT $3`
	rows, err := r.pool.Query(ctx, query, entityType, entityID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanNotifications(rows)
}

func scanNotifications(rows pgx.Rows) ([]domain.Notification, error) {
	var result []domain.Notification
	for rows.Next() {
		var notification domain.Notification
		var targets []string
		if err := rows.Scan(
			&notification.ID,
			&notification.Title,
			&notification.Message,
			&notification.Severity,
			&targets,
			&notification.EntityType,
			&notification.EntityID,
			&notification.CreatedAt,
		); err != nil {
			return nil, err
		}
		for _, target := range targets {
			notification.Targets = append(notification.Targets, domain.NotificationTarget(target))
		}
		result = append(result, notification)
	}
	return result, rows.Err()
}
