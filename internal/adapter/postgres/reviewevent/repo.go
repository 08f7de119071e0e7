// Package reviewevent implements the governance audit trail using PostgreSQL.
package reviewevent

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/civic-topics-backend/internal/adapter/postgres"
	"github.com/heartmarshall/civic-topics-backend/internal/domain"
)

// Repo provides review event persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new review event repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const insertSQL = `
INSERT INTO topic_review_events (id, topic_id, user_id, action, automated, confidence, reason)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING created_at`

const listByTopicSQL = `
SELECT id, topic_id, user_id, action, automated, confidence, reason, created_at
FROM topic_review_events
WHERE topic_id = $1
ORDER BY created_at, id`

// Create appends a review event.
func (r *Repo) Create(ctx context.Context, e *domain.ReviewEvent) (*domain.ReviewEvent, error) {
	if !e.Action.IsValid() {
		return nil, domain.NewValidationError("action", "invalid value")
	}
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}

	err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, insertSQL,
		e.ID, e.TopicID, e.UserID, string(e.Action), e.Automated, e.Confidence, e.Reason,
	).Scan(&e.CreatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "topic_review_event", e.TopicID)
	}
	return e, nil
}

// ListByTopic returns a topic's review history, oldest first.
func (r *Repo) ListByTopic(ctx context.Context, topicID uuid.UUID) ([]domain.ReviewEvent, error) {
	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, listByTopicSQL, topicID)
	if err != nil {
		return nil, fmt.Errorf("list review events: %w", err)
	}

	events, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.ReviewEvent, error) {
		var (
			e      domain.ReviewEvent
			action string
		)
		err := row.Scan(&e.ID, &e.TopicID, &e.UserID, &action, &e.Automated, &e.Confidence, &e.Reason, &e.CreatedAt)
		e.Action = domain.ReviewAction(action)
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("list review events: %w", err)
	}
	return events, nil
}

// ReviewedTopics returns the subset of ids that have at least one review event.
func (r *Repo) ReviewedTopics(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]bool, error) {
	out := make(map[uuid.UUID]bool, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	q := postgres.Builder().
		Select("DISTINCT topic_id").
		From("topic_review_events").
		Where(squirrel.Eq{"topic_id": ids})

	rows, err := postgres.Query(ctx, r.pool, q)
	if err != nil {
		return nil, fmt.Errorf("reviewed topics: %w", err)
	}

	found, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, fmt.Errorf("reviewed topics: %w", err)
	}
	for _, id := range found {
		out[id] = true
	}
	return out, nil
}
