// Package topic implements the Topic repository using PostgreSQL.
// It owns the topics and topic_aliases tables.
package topic

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/civic-topics-backend/internal/adapter/postgres"
	"github.com/heartmarshall/civic-topics-backend/internal/domain"
)

// Repo provides topic persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new topic repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const (
	defaultLimit = 50
	maxLimit     = 500
)

var topicColumns = []string{
	"t.id", "t.name", "t.canonical_name", "t.slug", "t.description",
	"t.status", "t.review_status", "t.lifecycle_status",
	"t.first_seen_at", "t.last_seen_at", "t.last_activity_at",
	"t.importance", "t.resident_impact_score", "t.resident_impact_overridden_at",
	"t.created_at", "t.updated_at",
}

var selectTopic = "SELECT " + strings.Join(topicColumns, ", ") + " FROM topics t"

// ---------------------------------------------------------------------------
// Raw SQL
// ---------------------------------------------------------------------------

var (
	getByIDSQL      = selectTopic + ` WHERE t.id = $1`
	lockByIDsSQL    = selectTopic + ` WHERE t.id = ANY($1::uuid[]) ORDER BY t.id FOR UPDATE`
	getBySlugSQL    = selectTopic + ` WHERE t.slug = $1`
	getByNameSQL    = selectTopic + ` WHERE lower(t.name) = lower($1)`
	getByAliasSQL   = selectTopic + ` JOIN topic_aliases a ON a.topic_id = t.id WHERE lower(a.name) = lower($1)`
	listProposedSQL = selectTopic + ` WHERE t.status = 'proposed' ORDER BY t.last_activity_at DESC NULLS LAST, t.created_at DESC LIMIT $1`
)

const listRefsSQL = `SELECT id, name FROM topics ORDER BY name`

const listIDsSQL = `SELECT id FROM topics ORDER BY created_at, id`

const namesByStatusSQL = `SELECT name FROM topics WHERE status = $1 ORDER BY name`

const countByStatusSQL = `SELECT count(*) FROM topics WHERE status = $1`

const slugTakenSQL = `SELECT EXISTS(SELECT 1 FROM topics WHERE slug = $1)`

const insertTopicSQL = `
INSERT INTO topics (id, name, canonical_name, slug, description, status, review_status, importance)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING created_at, updated_at`

const updateLifecycleSQL = `
UPDATE topics SET lifecycle_status = $2, updated_at = now()
WHERE id = $1`

const updateStatusSQL = `
UPDATE topics SET status = $2, review_status = $2, updated_at = now()
WHERE id = $1 AND (status <> $2 OR review_status IS DISTINCT FROM $2)`

const advanceActivitySQL = `
UPDATE topics SET last_activity_at = $2, updated_at = now()
WHERE id = $1 AND (last_activity_at IS NULL OR last_activity_at < $2)`

const updateResidentImpactSQL = `
UPDATE topics SET resident_impact_score = $2, resident_impact_overridden_at = $3, updated_at = now()
WHERE id = $1`

const deleteTopicSQL = `DELETE FROM topics WHERE id = $1`

const insertAliasSQL = `
INSERT INTO topic_aliases (id, topic_id, name)
VALUES ($1, $2, $3)
ON CONFLICT ((lower(name))) DO NOTHING
RETURNING created_at`

const reassignAliasesSQL = `UPDATE topic_aliases SET topic_id = $2 WHERE topic_id = $1`

const listAliasesSQL = `SELECT id, topic_id, name, created_at FROM topic_aliases WHERE topic_id = $1 ORDER BY name`

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a topic by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Topic, error) {
	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, getByIDSQL, id)
	t, err := scanTopic(row)
	if err != nil {
		return nil, postgres.MapError(err, "topic", id)
	}
	return t, nil
}

// LockForUpdate loads the given topics with row locks, in id order, and
// returns those that exist. Must run inside a transaction.
func (r *Repo) LockForUpdate(ctx context.Context, ids ...uuid.UUID) (map[uuid.UUID]*domain.Topic, error) {
	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, lockByIDsSQL, ids)
	if err != nil {
		return nil, fmt.Errorf("lock topics: %w", err)
	}
	defer rows.Close()

	out := make(map[uuid.UUID]*domain.Topic, len(ids))
	for rows.Next() {
		t, err := scanTopic(rows)
		if err != nil {
			return nil, fmt.Errorf("lock topics: %w", err)
		}
		out[t.ID] = t
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("lock topics: %w", err)
	}
	return out, nil
}

// GetBySlug returns a topic by its URL slug.
func (r *Repo) GetBySlug(ctx context.Context, slug string) (*domain.Topic, error) {
	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, getBySlugSQL, slug)
	t, err := scanTopic(row)
	if err != nil {
		return nil, postgres.MapError(err, "topic", slug)
	}
	return t, nil
}

// GetByName returns the topic whose name equals name, case-insensitively.
func (r *Repo) GetByName(ctx context.Context, name string) (*domain.Topic, error) {
	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, getByNameSQL, name)
	t, err := scanTopic(row)
	if err != nil {
		return nil, postgres.MapError(err, "topic", name)
	}
	return t, nil
}

// GetByAlias returns the topic owning an alias equal to name.
func (r *Repo) GetByAlias(ctx context.Context, name string) (*domain.Topic, error) {
	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, getByAliasSQL, name)
	t, err := scanTopic(row)
	if err != nil {
		return nil, postgres.MapError(err, "topic_alias", name)
	}
	return t, nil
}

// ListRefs returns id and name of every topic for similarity scans.
func (r *Repo) ListRefs(ctx context.Context) ([]domain.TopicRef, error) {
	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, listRefsSQL)
	if err != nil {
		return nil, fmt.Errorf("list topic refs: %w", err)
	}

	refs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.TopicRef, error) {
		var ref domain.TopicRef
		err := row.Scan(&ref.ID, &ref.Name)
		return ref, err
	})
	if err != nil {
		return nil, fmt.Errorf("list topic refs: %w", err)
	}
	return refs, nil
}

// ListIDs returns every topic id, oldest first.
func (r *Repo) ListIDs(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, listIDsSQL)
	if err != nil {
		return nil, fmt.Errorf("list topic ids: %w", err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, fmt.Errorf("list topic ids: %w", err)
	}
	return ids, nil
}

// NamesByStatus returns the names of every topic in status, sorted.
func (r *Repo) NamesByStatus(ctx context.Context, status domain.TopicStatus) ([]string, error) {
	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, namesByStatusSQL, string(status))
	if err != nil {
		return nil, fmt.Errorf("topic names: %w", err)
	}

	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("topic names: %w", err)
	}
	return names, nil
}

// ListProposed returns up to limit proposed topics, most recently active first.
func (r *Repo) ListProposed(ctx context.Context, limit int) ([]*domain.Topic, error) {
	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, listProposedSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("list proposed topics: %w", err)
	}
	defer rows.Close()

	return scanTopics(rows)
}

// List returns topics matching filter ordered by last activity.
func (r *Repo) List(ctx context.Context, filter domain.TopicFilter) ([]*domain.Topic, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	q := postgres.Builder().
		Select(topicColumns...).
		From("topics t").
		OrderBy("t.last_activity_at DESC NULLS LAST", "t.name").
		Limit(uint64(limit))

	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}
	if filter.Status != nil {
		q = q.Where(squirrel.Eq{"t.status": string(*filter.Status)})
	}
	if filter.LifecycleStatus != nil {
		q = q.Where(squirrel.Eq{"t.lifecycle_status": string(*filter.LifecycleStatus)})
	}

	rows, err := postgres.Query(ctx, r.pool, q)
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	defer rows.Close()

	return scanTopics(rows)
}

// CountByStatus returns the number of topics in status.
func (r *Repo) CountByStatus(ctx context.Context, status domain.TopicStatus) (int, error) {
	var n int
	if err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, countByStatusSQL, string(status)).Scan(&n); err != nil {
		return 0, fmt.Errorf("count topics: %w", err)
	}
	return n, nil
}

// SlugTaken reports whether any topic already uses slug.
func (r *Repo) SlugTaken(ctx context.Context, slug string) (bool, error) {
	var taken bool
	if err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, slugTakenSQL, slug).Scan(&taken); err != nil {
		return false, fmt.Errorf("check slug %q: %w", slug, err)
	}
	return taken, nil
}

// ListAliases returns the aliases owned by a topic ordered by name.
func (r *Repo) ListAliases(ctx context.Context, topicID uuid.UUID) ([]domain.TopicAlias, error) {
	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, listAliasesSQL, topicID)
	if err != nil {
		return nil, fmt.Errorf("list aliases: %w", err)
	}

	aliases, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.TopicAlias, error) {
		var a domain.TopicAlias
		err := row.Scan(&a.ID, &a.TopicID, &a.Name, &a.CreatedAt)
		return a, err
	})
	if err != nil {
		return nil, fmt.Errorf("list aliases: %w", err)
	}
	return aliases, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new topic. A fresh id is assigned when t.ID is nil.
// Returns domain.ErrAlreadyExists when name, canonical name or slug collide.
func (r *Repo) Create(ctx context.Context, t *domain.Topic) (*domain.Topic, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	out := *t
	if out.ID == uuid.Nil {
		out.ID = uuid.New()
	}

	err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, insertTopicSQL,
		out.ID, out.Name, out.CanonicalName, out.Slug, out.Description,
		string(out.Status), statusPtr(out.ReviewStatus), out.Importance,
	).Scan(&out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "topic", out.Name)
	}
	return &out, nil
}

// UpdateLifecycle stores a derived lifecycle status.
func (r *Repo) UpdateLifecycle(ctx context.Context, id uuid.UUID, status domain.LifecycleStatus) error {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, updateLifecycleSQL, id, string(status))
	if err != nil {
		return postgres.MapError(err, "topic", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("topic %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// UpdateTemporal writes the non-nil fields of s.
func (r *Repo) UpdateTemporal(ctx context.Context, id uuid.UUID, s domain.TemporalSummary) error {
	if s.IsEmpty() {
		return nil
	}

	q := postgres.Builder().
		Update("topics").
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id})

	if s.FirstSeenAt != nil {
		q = q.Set("first_seen_at", *s.FirstSeenAt)
	}
	if s.LastSeenAt != nil {
		q = q.Set("last_seen_at", *s.LastSeenAt)
	}
	if s.LastActivityAt != nil {
		q = q.Set("last_activity_at", *s.LastActivityAt)
	}

	if _, err := postgres.Exec(ctx, r.pool, q); err != nil {
		return postgres.MapError(err, "topic", id)
	}
	return nil
}

// AdvanceLastActivity moves last_activity_at forward to at. It never moves
// it backwards. Returns whether the row changed.
func (r *Repo) AdvanceLastActivity(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, advanceActivitySQL, id, at)
	if err != nil {
		return false, postgres.MapError(err, "topic", id)
	}
	return tag.RowsAffected() > 0, nil
}

// UpdateStatus sets status and review_status together. Returns false when
// the topic was already in that status.
func (r *Repo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.TopicStatus) (bool, error) {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, updateStatusSQL, id, string(status))
	if err != nil {
		return false, postgres.MapError(err, "topic", id)
	}
	return tag.RowsAffected() > 0, nil
}

// UpdateResidentImpact stores score. overriddenAt is set for administrator
// overrides and nil for automated scores.
func (r *Repo) UpdateResidentImpact(ctx context.Context, id uuid.UUID, score int, overriddenAt *time.Time) error {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, updateResidentImpactSQL, id, score, overriddenAt)
	if err != nil {
		return postgres.MapError(err, "topic", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("topic %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// Delete removes a topic. Aliases, links, appearances and events cascade.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, deleteTopicSQL, id)
	if err != nil {
		return postgres.MapError(err, "topic", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("topic %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// CreateAlias adds an alias under topicID.
// Returns domain.ErrAlreadyExists when the alias name is taken. A taken name
// does not abort the surrounding transaction.
func (r *Repo) CreateAlias(ctx context.Context, topicID uuid.UUID, name string) (*domain.TopicAlias, error) {
	a := domain.TopicAlias{ID: uuid.New(), TopicID: topicID, Name: name}
	err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, insertAliasSQL, a.ID, topicID, name).Scan(&a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("topic_alias %s: %w", name, domain.ErrAlreadyExists)
	}
	if err != nil {
		return nil, postgres.MapError(err, "topic_alias", name)
	}
	return &a, nil
}

// ReassignAliases moves every alias of from to to.
func (r *Repo) ReassignAliases(ctx context.Context, from, to uuid.UUID) (int, error) {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, reassignAliasesSQL, from, to)
	if err != nil {
		return 0, postgres.MapError(err, "topic_alias", from)
	}
	return int(tag.RowsAffected()), nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

func scanTopics(rows pgx.Rows) ([]*domain.Topic, error) {
	result := []*domain.Topic{}
	for rows.Next() {
		t, err := scanTopic(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func scanTopic(row pgx.Row) (*domain.Topic, error) {
	var (
		t         domain.Topic
		status    string
		review    *string
		lifecycle *string
	)

	err := row.Scan(
		&t.ID, &t.Name, &t.CanonicalName, &t.Slug, &t.Description,
		&status, &review, &lifecycle,
		&t.FirstSeenAt, &t.LastSeenAt, &t.LastActivityAt,
		&t.Importance, &t.ResidentImpactScore, &t.ResidentImpactOverriddenAt,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.Status = domain.TopicStatus(status)
	if review != nil {
		rs := domain.TopicStatus(*review)
		t.ReviewStatus = &rs
	}
	if lifecycle != nil {
		ls := domain.LifecycleStatus(*lifecycle)
		t.LifecycleStatus = &ls
	}
	return &t, nil
}

func statusPtr(s *domain.TopicStatus) *string {
	if s == nil {
		return nil
	}
	v := string(*s)
	return &v
}
