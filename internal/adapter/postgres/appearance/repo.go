// Package appearance implements the appearance ledger and agenda item links
// using PostgreSQL. It owns topic_appearances and agenda_item_topics.
package appearance

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/civic-topics-backend/internal/adapter/postgres"
	"github.com/heartmarshall/civic-topics-backend/internal/domain"
)

// Repo provides appearance and link persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new appearance repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Raw SQL
// ---------------------------------------------------------------------------

const listByTopicSQL = `
SELECT
    a.id, a.topic_id, a.meeting_id, a.agenda_item_id, a.appeared_at, a.body_name,
    a.evidence_type, a.source_ref, a.created_at,
    ai.id, ai.meeting_id, ai.number, ai.title, ai.summary, ai.recommended_action, ai.created_at
FROM topic_appearances a
LEFT JOIN agenda_items ai ON ai.id = a.agenda_item_id
WHERE a.topic_id = $1
ORDER BY a.appeared_at, a.created_at, a.id`

const insertAppearanceSQL = `
INSERT INTO topic_appearances
    (id, topic_id, meeting_id, agenda_item_id, appeared_at, body_name, evidence_type, source_ref)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (topic_id, agenda_item_id) WHERE agenda_item_id IS NOT NULL DO NOTHING`

const deleteByTopicSQL = `DELETE FROM topic_appearances WHERE topic_id = $1`

const linkSQL = `
INSERT INTO agenda_item_topics (agenda_item_id, topic_id)
VALUES ($1, $2)
ON CONFLICT DO NOTHING`

const linkedItemsSQL = `
SELECT ai.id, ai.meeting_id, ai.number, ai.title, ai.summary, ai.recommended_action, ai.created_at
FROM agenda_item_topics ait
JOIN agenda_items ai ON ai.id = ait.agenda_item_id
WHERE ait.topic_id = $1
ORDER BY ai.created_at DESC, ai.id DESC
LIMIT $2`

const topicIDsByMeetingSQL = `
SELECT DISTINCT ait.topic_id
FROM agenda_item_topics ait
JOIN agenda_items ai ON ai.id = ait.agenda_item_id
WHERE ai.meeting_id = $1`

const topicIDsByAgendaItemSQL = `SELECT topic_id FROM agenda_item_topics WHERE agenda_item_id = $1`

// Links already present under the target are dropped; the rest move.
const dropDuplicateLinksSQL = `
DELETE FROM agenda_item_topics src
USING agenda_item_topics dst
WHERE src.topic_id = $1
  AND dst.topic_id = $2
  AND dst.agenda_item_id = src.agenda_item_id`

const moveLinksSQL = `UPDATE agenda_item_topics SET topic_id = $2 WHERE topic_id = $1`

// An appearance is a duplicate when the target already has one for the same
// agenda item or, without an agenda item, the same meeting, time and evidence.
const dropDuplicateAppearancesSQL = `
DELETE FROM topic_appearances src
USING topic_appearances dst
WHERE src.topic_id = $1
  AND dst.topic_id = $2
  AND (
        (src.agenda_item_id IS NOT NULL AND dst.agenda_item_id = src.agenda_item_id)
     OR (src.agenda_item_id IS NULL AND dst.agenda_item_id IS NULL
         AND dst.meeting_id = src.meeting_id
         AND dst.appeared_at = src.appeared_at
         AND dst.evidence_type = src.evidence_type)
  )`

const moveAppearancesSQL = `UPDATE topic_appearances SET topic_id = $2 WHERE topic_id = $1`

// ---------------------------------------------------------------------------
// Appearances
// ---------------------------------------------------------------------------

// ListByTopic returns a topic's appearances in chronological order, each with
// its linked agenda item when one exists.
func (r *Repo) ListByTopic(ctx context.Context, topicID uuid.UUID) ([]domain.TopicAppearance, error) {
	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, listByTopicSQL, topicID)
	if err != nil {
		return nil, fmt.Errorf("list appearances: %w", err)
	}

	out, err := pgx.CollectRows(rows, scanAppearance)
	if err != nil {
		return nil, fmt.Errorf("list appearances: %w", err)
	}
	return out, nil
}

// Create records an appearance. An appearance for an agenda item already in
// the ledger is skipped and created is false.
func (r *Repo) Create(ctx context.Context, a domain.TopicAppearance) (created bool, err error) {
	if err := a.Validate(); err != nil {
		return false, err
	}
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}

	ref, err := json.Marshal(sourceRefOrEmpty(a.SourceRef))
	if err != nil {
		return false, fmt.Errorf("appearance marshal source_ref: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, insertAppearanceSQL,
		a.ID, a.TopicID, a.MeetingID, a.AgendaItemID, domain.StorageTime(a.AppearedAt),
		a.BodyName, string(a.EvidenceType), ref,
	)
	if err != nil {
		return false, postgres.MapError(err, "topic_appearance", a.TopicID)
	}
	return tag.RowsAffected() > 0, nil
}

// DeleteByTopic removes every appearance of a topic.
func (r *Repo) DeleteByTopic(ctx context.Context, topicID uuid.UUID) (int, error) {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, deleteByTopicSQL, topicID)
	if err != nil {
		return 0, postgres.MapError(err, "topic_appearance", topicID)
	}
	return int(tag.RowsAffected()), nil
}

// MoveAppearances reassigns appearances from one topic to another, dropping
// those the target already has.
func (r *Repo) MoveAppearances(ctx context.Context, from, to uuid.UUID) (moved, dropped int, err error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, dropDuplicateAppearancesSQL, from, to)
	if err != nil {
		return 0, 0, postgres.MapError(err, "topic_appearance", from)
	}
	dropped = int(tag.RowsAffected())

	tag, err = q.Exec(ctx, moveAppearancesSQL, from, to)
	if err != nil {
		return 0, dropped, postgres.MapError(err, "topic_appearance", from)
	}
	return int(tag.RowsAffected()), dropped, nil
}

// ---------------------------------------------------------------------------
// Agenda item links
// ---------------------------------------------------------------------------

// Link connects an agenda item to a topic. Returns false if already linked.
func (r *Repo) Link(ctx context.Context, agendaItemID int64, topicID uuid.UUID) (bool, error) {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, linkSQL, agendaItemID, topicID)
	if err != nil {
		return false, postgres.MapError(err, "agenda_item_topic", agendaItemID)
	}
	return tag.RowsAffected() > 0, nil
}

// LinkedAgendaItems returns up to limit agenda items linked to a topic,
// newest first.
func (r *Repo) LinkedAgendaItems(ctx context.Context, topicID uuid.UUID, limit int) ([]domain.AgendaItem, error) {
	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, linkedItemsSQL, topicID, limit)
	if err != nil {
		return nil, fmt.Errorf("linked agenda items: %w", err)
	}

	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.AgendaItem, error) {
		var it domain.AgendaItem
		err := row.Scan(&it.ID, &it.MeetingID, &it.Number, &it.Title, &it.Summary, &it.RecommendedAction, &it.CreatedAt)
		return it, err
	})
	if err != nil {
		return nil, fmt.Errorf("linked agenda items: %w", err)
	}
	return items, nil
}

// TopicIDsByMeeting returns the topics linked to any agenda item of a meeting.
func (r *Repo) TopicIDsByMeeting(ctx context.Context, meetingID int64) ([]uuid.UUID, error) {
	return r.topicIDs(ctx, topicIDsByMeetingSQL, meetingID)
}

// TopicIDsByAgendaItem returns the topics linked to an agenda item.
func (r *Repo) TopicIDsByAgendaItem(ctx context.Context, agendaItemID int64) ([]uuid.UUID, error) {
	return r.topicIDs(ctx, topicIDsByAgendaItemSQL, agendaItemID)
}

func (r *Repo) topicIDs(ctx context.Context, sql string, id int64) ([]uuid.UUID, error) {
	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, sql, id)
	if err != nil {
		return nil, fmt.Errorf("linked topic ids: %w", err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, fmt.Errorf("linked topic ids: %w", err)
	}
	return ids, nil
}

// MoveLinks reassigns agenda item links from one topic to another, dropping
// links the target already has.
func (r *Repo) MoveLinks(ctx context.Context, from, to uuid.UUID) (moved, dropped int, err error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, dropDuplicateLinksSQL, from, to)
	if err != nil {
		return 0, 0, postgres.MapError(err, "agenda_item_topic", from)
	}
	dropped = int(tag.RowsAffected())

	tag, err = q.Exec(ctx, moveLinksSQL, from, to)
	if err != nil {
		return 0, dropped, postgres.MapError(err, "agenda_item_topic", from)
	}
	return int(tag.RowsAffected()), dropped, nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

func scanAppearance(row pgx.CollectableRow) (domain.TopicAppearance, error) {
	var (
		a        domain.TopicAppearance
		evidence string
		ref      []byte

		itemID, itemMeeting            *int64
		number, title, summary, action *string
		itemCreated                    *time.Time
	)

	err := row.Scan(
		&a.ID, &a.TopicID, &a.MeetingID, &a.AgendaItemID, &a.AppearedAt, &a.BodyName,
		&evidence, &ref, &a.CreatedAt,
		&itemID, &itemMeeting, &number, &title, &summary, &action, &itemCreated,
	)
	if err != nil {
		return a, err
	}

	a.EvidenceType = domain.AppearanceEvidence(evidence)
	if len(ref) > 0 {
		if err := json.Unmarshal(ref, &a.SourceRef); err != nil {
			return a, fmt.Errorf("appearance %s source_ref: %w", a.ID, err)
		}
	}

	if itemID != nil {
		a.AgendaItem = &domain.AgendaItem{
			ID:                *itemID,
			MeetingID:         deref(itemMeeting),
			Number:            deref(number),
			Title:             deref(title),
			Summary:           deref(summary),
			RecommendedAction: deref(action),
		}
		if itemCreated != nil {
			a.AgendaItem.CreatedAt = *itemCreated
		}
	}
	return a, nil
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

func sourceRefOrEmpty(ref map[string]any) map[string]any {
	if ref == nil {
		return map[string]any{}
	}
	return ref
}
