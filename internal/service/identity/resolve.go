package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/google/uuid"

	"github.com/heartmarshall/civic-topics-backend/internal/domain"
)

const maxSlugSuffix = 1000

// Resolve maps a raw name to a canonical topic, creating one when nothing
// matches. Steps, first hit wins: blocklist, exact name, exact alias,
// trigram similarity above the threshold (recorded as a new alias), create.
//
// The whole lookup runs in one transaction holding an advisory lock on the
// normalized name, so concurrent resolutions of the same name yield one
// topic. A lost race on a unique index is retried.
func (s *Service) Resolve(ctx context.Context, rawName string) (Resolution, error) {
	name := domain.NormalizeName(rawName)
	if name == "" {
		return Resolution{Match: MatchNone}, nil
	}

	var (
		res Resolution
		err error
	)
	for attempt := 1; attempt <= s.cfg.MaxAttempts; attempt++ {
		err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
			var resolveErr error
			res, resolveErr = s.resolve(txCtx, name)
			return resolveErr
		})
		if err == nil {
			break
		}
		if !errors.Is(err, domain.ErrAlreadyExists) {
			return Resolution{}, err
		}
		s.log.WarnContext(ctx, "resolve conflict, retrying",
			slog.String("name", name),
			slog.Int("attempt", attempt),
		)
	}
	if err != nil {
		return Resolution{}, fmt.Errorf("resolve %q: %w", name, err)
	}

	if res.Match != MatchExact && res.Match != MatchAlias {
		attrs := []any{slog.String("name", name), slog.String("match", string(res.Match))}
		if res.Topic != nil {
			attrs = append(attrs, slog.String("topic_id", res.Topic.ID.String()))
		}
		if res.Match == MatchFuzzy {
			attrs = append(attrs, slog.Float64("score", res.Score))
		}
		s.log.InfoContext(ctx, "topic name resolved", attrs...)
	}
	return res, nil
}

func (s *Service) resolve(ctx context.Context, name string) (Resolution, error) {
	if err := s.tx.Lock(ctx, LockNamespace, name); err != nil {
		return Resolution{}, err
	}

	blocked, err := s.blocklist.Contains(ctx, name)
	if err != nil {
		return Resolution{}, fmt.Errorf("check blocklist: %w", err)
	}
	if blocked {
		return Resolution{Name: name, Match: MatchBlocked}, nil
	}

	if t, err := s.topics.GetByName(ctx, name); err == nil {
		return Resolution{Name: name, Match: MatchExact, Topic: t, Score: 1}, nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return Resolution{}, fmt.Errorf("lookup by name: %w", err)
	}

	if t, err := s.topics.GetByAlias(ctx, name); err == nil {
		return Resolution{Name: name, Match: MatchAlias, Topic: t, Score: 1}, nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return Resolution{}, fmt.Errorf("lookup by alias: %w", err)
	}

	refs, err := s.topics.ListRefs(ctx)
	if err != nil {
		return Resolution{}, fmt.Errorf("list topics: %w", err)
	}
	if best := domain.RankSimilar(name, refs, s.cfg.SimilarityThreshold, 1, uuid.Nil); len(best) > 0 {
		t, err := s.topics.GetByID(ctx, best[0].Topic.ID)
		if err != nil {
			return Resolution{}, fmt.Errorf("load similar topic: %w", err)
		}
		if _, err := s.topics.CreateAlias(ctx, t.ID, name); err != nil && !errors.Is(err, domain.ErrAlreadyExists) {
			return Resolution{}, fmt.Errorf("create alias: %w", err)
		}
		return Resolution{Name: name, Match: MatchFuzzy, Topic: t, Score: best[0].Score}, nil
	}

	t, err := domain.NewTopic(name, domain.DefaultTopicStatus)
	if err != nil {
		return Resolution{}, err
	}
	if t.Slug, err = s.freeSlug(ctx, t.Slug); err != nil {
		return Resolution{}, err
	}
	created, err := s.topics.Create(ctx, t)
	if err != nil {
		return Resolution{}, fmt.Errorf("create topic: %w", err)
	}
	return Resolution{Name: name, Match: MatchCreated, Topic: created}, nil
}

// freeSlug returns base, or base with the smallest numeric suffix (-2, -3, ...)
// that no topic uses yet.
func (s *Service) freeSlug(ctx context.Context, base string) (string, error) {
	candidate := base
	for n := 2; n <= maxSlugSuffix; n++ {
		taken, err := s.topics.SlugTaken(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("check slug: %w", err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = base + "-" + strconv.Itoa(n)
	}
	return "", fmt.Errorf("slug %q: %w", base, domain.ErrConflict)
}
