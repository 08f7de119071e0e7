// Package identity maps raw topic names to canonical topics.
package identity

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/civic-topics-backend/internal/domain"
)

type topicRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Topic, error)
	GetByName(ctx context.Context, name string) (*domain.Topic, error)
	GetByAlias(ctx context.Context, name string) (*domain.Topic, error)
	ListRefs(ctx context.Context) ([]domain.TopicRef, error)
	SlugTaken(ctx context.Context, slug string) (bool, error)
	Create(ctx context.Context, t *domain.Topic) (*domain.Topic, error)
	CreateAlias(ctx context.Context, topicID uuid.UUID, name string) (*domain.TopicAlias, error)
}

type blocklist interface {
	Contains(ctx context.Context, name string) (bool, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
	Lock(ctx context.Context, namespace, key string) error
}

// Config tunes the resolver.
type Config struct {
	SimilarityThreshold float64
	MaxAttempts         int
}

// LockNamespace scopes the advisory lock taken per normalized name.
const LockNamespace = "topic-name"

// Service resolves raw names to topics.
type Service struct {
	topics    topicRepo
	blocklist blocklist
	tx        txManager
	cfg       Config
	log       *slog.Logger
}

// NewService creates a new identity resolver.
func NewService(
	log *slog.Logger,
	topics topicRepo,
	blocklist blocklist,
	tx txManager,
	cfg Config,
) *Service {
	if cfg.SimilarityThreshold <= 0 {
		cfg.SimilarityThreshold = domain.IdentitySimilarityThreshold
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}
	return &Service{
		topics:    topics,
		blocklist: blocklist,
		tx:        tx,
		cfg:       cfg,
		log:       log.With("service", "identity"),
	}
}

// Match describes how a name was resolved.
type Match string

const (
	MatchNone    Match = "none"
	MatchBlocked Match = "blocked"
	MatchExact   Match = "exact"
	MatchAlias   Match = "alias"
	MatchFuzzy   Match = "fuzzy"
	MatchCreated Match = "created"
)

// Resolution is the outcome of Resolve. Topic is nil for MatchNone and
// MatchBlocked.
type Resolution struct {
	Name  string
	Match Match
	Topic *domain.Topic
	Score float64
}
