// Package topic provides operator-facing topic management: manual review,
// blocklist administration, resident impact scores and queries.
package topic

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/civic-topics-backend/internal/domain"
	"github.com/heartmarshall/civic-topics-backend/internal/service/governance"
)

type topicRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Topic, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Topic, error)
	List(ctx context.Context, filter domain.TopicFilter) ([]*domain.Topic, error)
	ListAliases(ctx context.Context, topicID uuid.UUID) ([]domain.TopicAlias, error)
	NamesByStatus(ctx context.Context, status domain.TopicStatus) ([]string, error)
	LockForUpdate(ctx context.Context, ids ...uuid.UUID) (map[uuid.UUID]*domain.Topic, error)
	UpdateResidentImpact(ctx context.Context, id uuid.UUID, score int, overriddenAt *time.Time) error
}

type blocklistRepo interface {
	Add(ctx context.Context, name string, reason *string) (*domain.BlocklistEntry, bool, error)
	Remove(ctx context.Context, name string) error
	List(ctx context.Context) ([]domain.BlocklistEntry, error)
}

type governor interface {
	Apply(ctx context.Context, topicID uuid.UUID, action domain.ReviewAction, r governance.Review) (bool, error)
	Merge(ctx context.Context, sourceID, targetID uuid.UUID, r governance.Review) (governance.MergeResult, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// BlocklistSimilarity is the score above which already-blocked topic names
// join the blocklist alongside a manually blocked topic.
const BlocklistSimilarity = 0.8

// Service provides topic management operations.
type Service struct {
	topics     topicRepo
	blocklist  blocklistRepo
	governance governor
	tx         txManager
	now        func() time.Time
	log        *slog.Logger
}

// NewService creates a new Topic service.
func NewService(
	log *slog.Logger,
	topics topicRepo,
	blocklist blocklistRepo,
	governance governor,
	tx txManager,
) *Service {
	return &Service{
		topics:     topics,
		blocklist:  blocklist,
		governance: governance,
		tx:         tx,
		now:        time.Now,
		log:        log.With("service", "topic"),
	}
}

// trimOrNil trims whitespace. Returns nil if result is empty.
func trimOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
