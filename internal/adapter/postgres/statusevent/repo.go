// Package statusevent implements the append-only lifecycle status event
// ledger using PostgreSQL.
package statusevent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/civic-topics-backend/internal/adapter/postgres"
	"github.com/heartmarshall/civic-topics-backend/internal/domain"
)

// Repo provides status event persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new status event repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const insertSQL = `
INSERT INTO topic_status_events
    (id, topic_id, lifecycle_status, evidence_type, occurred_at, source_ref, notes)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (topic_id, evidence_type, lifecycle_status, occurred_at) DO NOTHING`

const listByTopicSQL = `
SELECT id, topic_id, lifecycle_status, evidence_type, occurred_at, source_ref, notes, created_at
FROM topic_status_events
WHERE topic_id = $1
ORDER BY occurred_at, created_at, id`

// InsertIfAbsent appends e unless an event with the same natural key already
// exists. Returns true when a row was written.
func (r *Repo) InsertIfAbsent(ctx context.Context, e domain.StatusEvent) (bool, error) {
	if err := e.Validate(); err != nil {
		return false, err
	}
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}

	var ref []byte
	if e.SourceRef != nil {
		b, err := json.Marshal(e.SourceRef)
		if err != nil {
			return false, fmt.Errorf("status event marshal source_ref: %w", err)
		}
		ref = b
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, insertSQL,
		e.ID, e.TopicID, string(e.LifecycleStatus), string(e.EvidenceType),
		domain.StorageTime(e.OccurredAt), ref, e.Notes,
	)
	if err != nil {
		return false, postgres.MapError(err, "topic_status_event", e.TopicID)
	}
	return tag.RowsAffected() > 0, nil
}

// ListByTopic returns a topic's status events in chronological order.
func (r *Repo) ListByTopic(ctx context.Context, topicID uuid.UUID) ([]domain.StatusEvent, error) {
	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, listByTopicSQL, topicID)
	if err != nil {
		return nil, fmt.Errorf("list status events: %w", err)
	}

	events, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.StatusEvent, error) {
		var (
			e                  domain.StatusEvent
			lifecycle, evidence string
			ref                []byte
		)
		if err := row.Scan(&e.ID, &e.TopicID, &lifecycle, &evidence, &e.OccurredAt, &ref, &e.Notes, &e.CreatedAt); err != nil {
			return e, err
		}
		e.LifecycleStatus = domain.LifecycleStatus(lifecycle)
		e.EvidenceType = domain.EvidenceType(evidence)
		if len(ref) > 0 {
			if err := json.Unmarshal(ref, &e.SourceRef); err != nil {
				return e, fmt.Errorf("status event %s source_ref: %w", e.ID, err)
			}
		}
		return e, nil
	})
	if err != nil {
		return nil, fmt.Errorf("list status events: %w", err)
	}
	return events, nil
}
