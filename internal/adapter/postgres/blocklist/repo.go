// Package blocklist implements the topic blocklist repository.
package blocklist

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/civic-topics-backend/internal/adapter/postgres"
	"github.com/heartmarshall/civic-topics-backend/internal/domain"
)

// Repo provides blocklist persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new blocklist repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const containsSQL = `SELECT EXISTS(SELECT 1 FROM topic_blocklists WHERE lower(name) = lower($1))`

const addSQL = `
INSERT INTO topic_blocklists (id, name, reason)
VALUES ($1, $2, $3)
ON CONFLICT ((lower(name))) DO NOTHING
RETURNING id, name, reason, created_at`

const getSQL = `SELECT id, name, reason, created_at FROM topic_blocklists WHERE lower(name) = lower($1)`

const removeSQL = `DELETE FROM topic_blocklists WHERE lower(name) = lower($1)`

const listSQL = `SELECT id, name, reason, created_at FROM topic_blocklists ORDER BY name`

// Contains reports whether name is blocklisted (case-insensitive).
func (r *Repo) Contains(ctx context.Context, name string) (bool, error) {
	var ok bool
	if err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, containsSQL, name).Scan(&ok); err != nil {
		return false, fmt.Errorf("check blocklist %q: %w", name, err)
	}
	return ok, nil
}

// Add inserts name. Adding an existing name returns the stored entry and
// created=false.
func (r *Repo) Add(ctx context.Context, name string, reason *string) (entry *domain.BlocklistEntry, created bool, err error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	e, err := scanEntry(q.QueryRow(ctx, addSQL, uuid.New(), name, reason))
	if err == nil {
		return e, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, postgres.MapError(err, "topic_blocklist", name)
	}

	e, err = scanEntry(q.QueryRow(ctx, getSQL, name))
	if err != nil {
		return nil, false, postgres.MapError(err, "topic_blocklist", name)
	}
	return e, false, nil
}

// Remove deletes name. Returns domain.ErrNotFound when it was not listed.
func (r *Repo) Remove(ctx context.Context, name string) error {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, removeSQL, name)
	if err != nil {
		return postgres.MapError(err, "topic_blocklist", name)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("topic_blocklist %s: %w", name, domain.ErrNotFound)
	}
	return nil
}

// List returns all entries ordered by name.
func (r *Repo) List(ctx context.Context) ([]domain.BlocklistEntry, error) {
	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, listSQL)
	if err != nil {
		return nil, fmt.Errorf("list blocklist: %w", err)
	}

	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.BlocklistEntry, error) {
		e, err := scanEntry(row)
		if err != nil {
			return domain.BlocklistEntry{}, err
		}
		return *e, nil
	})
	if err != nil {
		return nil, fmt.Errorf("list blocklist: %w", err)
	}
	return entries, nil
}

func scanEntry(row pgx.Row) (*domain.BlocklistEntry, error) {
	var e domain.BlocklistEntry
	if err := row.Scan(&e.ID, &e.Name, &e.Reason, &e.CreatedAt); err != nil {
		return nil, err
	}
	return &e, nil
}
