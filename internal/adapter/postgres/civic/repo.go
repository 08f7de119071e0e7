// Package civic reads the scraped meeting, agenda item and motion records.
// The topic engine never writes these tables.
package civic

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/civic-topics-backend/internal/adapter/postgres"
	"github.com/heartmarshall/civic-topics-backend/internal/domain"
)

// Repo provides read access to civic records.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new civic records repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const getMeetingSQL = `SELECT id, body_name, starts_at, created_at FROM meetings WHERE id = $1`

const agendaItemColumns = `id, meeting_id, number, title, summary, recommended_action, created_at`

const getAgendaItemSQL = `SELECT ` + agendaItemColumns + ` FROM agenda_items WHERE id = $1`

const listAgendaItemsSQL = `SELECT ` + agendaItemColumns + ` FROM agenda_items WHERE meeting_id = $1 ORDER BY order_index, id`

const getMotionSQL = `
SELECT mo.id, mo.meeting_id, mo.agenda_item_id, mo.outcome, mo.description, m.starts_at
FROM motions mo
JOIN meetings m ON m.id = mo.meeting_id
WHERE mo.id = $1`

const linkedItemsSQL = `
SELECT m.id, m.body_name, m.starts_at, m.created_at,
       ai.id, ai.meeting_id, ai.number, ai.title, ai.summary, ai.recommended_action, ai.created_at
FROM agenda_item_topics ait
JOIN agenda_items ai ON ai.id = ait.agenda_item_id
JOIN meetings m ON m.id = ai.meeting_id
WHERE ait.topic_id = $1
ORDER BY m.starts_at ASC NULLS LAST, ai.id`

// GetMeeting returns a meeting by id.
func (r *Repo) GetMeeting(ctx context.Context, id int64) (*domain.Meeting, error) {
	var m domain.Meeting
	err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, getMeetingSQL, id).
		Scan(&m.ID, &m.BodyName, &m.StartsAt, &m.CreatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "meeting", id)
	}
	return &m, nil
}

// GetAgendaItem returns an agenda item by id.
func (r *Repo) GetAgendaItem(ctx context.Context, id int64) (*domain.AgendaItem, error) {
	it, err := scanAgendaItem(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, getAgendaItemSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "agenda_item", id)
	}
	return &it, nil
}

// ListAgendaItems returns a meeting's agenda items in agenda order.
func (r *Repo) ListAgendaItems(ctx context.Context, meetingID int64) ([]domain.AgendaItem, error) {
	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, listAgendaItemsSQL, meetingID)
	if err != nil {
		return nil, fmt.Errorf("list agenda items: %w", err)
	}

	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.AgendaItem, error) {
		return scanAgendaItem(row)
	})
	if err != nil {
		return nil, fmt.Errorf("list agenda items: %w", err)
	}
	return items, nil
}

// GetMotion returns a motion with its meeting's start time.
func (r *Repo) GetMotion(ctx context.Context, id int64) (*domain.Motion, error) {
	var mo domain.Motion
	err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, getMotionSQL, id).
		Scan(&mo.ID, &mo.MeetingID, &mo.AgendaItemID, &mo.Outcome, &mo.Description, &mo.MeetingStartsAt)
	if err != nil {
		return nil, postgres.MapError(err, "motion", id)
	}
	return &mo, nil
}

// ResolvedMotions returns motions on agenda items linked to topicID whose
// outcome is in domain.ResolvedOutcomes, ordered by meeting start. Motions
// without a meeting start sort first.
func (r *Repo) ResolvedMotions(ctx context.Context, topicID uuid.UUID) ([]domain.Motion, error) {
	outcomes := make([]string, len(domain.ResolvedOutcomes))
	for i, o := range domain.ResolvedOutcomes {
		outcomes[i] = strings.ToLower(o)
	}

	q := postgres.Builder().
		Select("mo.id", "mo.meeting_id", "mo.agenda_item_id", "mo.outcome", "mo.description", "m.starts_at").
		From("motions mo").
		Join("meetings m ON m.id = mo.meeting_id").
		Join("agenda_item_topics ait ON ait.agenda_item_id = mo.agenda_item_id").
		Where(squirrel.Eq{"ait.topic_id": topicID}).
		Where(squirrel.Eq{"lower(trim(mo.outcome))": outcomes}).
		OrderBy("m.starts_at ASC NULLS FIRST", "mo.id")

	rows, err := postgres.Query(ctx, r.pool, q)
	if err != nil {
		return nil, fmt.Errorf("resolved motions: %w", err)
	}

	motions, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Motion, error) {
		var mo domain.Motion
		err := row.Scan(&mo.ID, &mo.MeetingID, &mo.AgendaItemID, &mo.Outcome, &mo.Description, &mo.MeetingStartsAt)
		return mo, err
	})
	if err != nil {
		return nil, fmt.Errorf("resolved motions: %w", err)
	}
	return motions, nil
}

// LinkedItems returns every agenda item linked to topicID with its meeting.
func (r *Repo) LinkedItems(ctx context.Context, topicID uuid.UUID) ([]domain.ScheduledItem, error) {
	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, linkedItemsSQL, topicID)
	if err != nil {
		return nil, fmt.Errorf("linked items: %w", err)
	}

	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.ScheduledItem, error) {
		var (
			s  domain.ScheduledItem
			m  = &s.Meeting
			it = &s.Item
		)
		err := row.Scan(
			&m.ID, &m.BodyName, &m.StartsAt, &m.CreatedAt,
			&it.ID, &it.MeetingID, &it.Number, &it.Title, &it.Summary, &it.RecommendedAction, &it.CreatedAt,
		)
		return s, err
	})
	if err != nil {
		return nil, fmt.Errorf("linked items: %w", err)
	}
	return items, nil
}

func scanAgendaItem(row pgx.Row) (domain.AgendaItem, error) {
	var it domain.AgendaItem
	err := row.Scan(&it.ID, &it.MeetingID, &it.Number, &it.Title, &it.Summary, &it.RecommendedAction, &it.CreatedAt)
	return it, err
}
