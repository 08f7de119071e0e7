// Package triage runs automated governance over proposed topics: it asks
// the classifier for merge, approve and block decisions and applies those
// that clear their confidence thresholds.
package triage

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/civic-topics-backend/internal/domain"
	"github.com/heartmarshall/civic-topics-backend/internal/service/governance"
)

type topicRepo interface {
	ListProposed(ctx context.Context, limit int) ([]*domain.Topic, error)
	ListRefs(ctx context.Context) ([]domain.TopicRef, error)
	GetByName(ctx context.Context, name string) (*domain.Topic, error)
}

type linkRepo interface {
	LinkedAgendaItems(ctx context.Context, topicID uuid.UUID, limit int) ([]domain.AgendaItem, error)
}

type reviewRepo interface {
	ReviewedTopics(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]bool, error)
}

type classifier interface {
	Triage(ctx context.Context, req domain.TriageRequest) (*domain.TriageResponse, error)
}

type governor interface {
	Apply(ctx context.Context, topicID uuid.UUID, action domain.ReviewAction, r governance.Review) (bool, error)
	Merge(ctx context.Context, sourceID, targetID uuid.UUID, r governance.Review) (governance.MergeResult, error)
}

// Config shapes the classifier context.
type Config struct {
	SimilarityThreshold float64
	MaxSimilar          int
	AgendaItemSample    int
}

// Service runs triage batches.
type Service struct {
	topics     topicRepo
	links      linkRepo
	reviews    reviewRepo
	classifier classifier
	governance governor
	cfg        Config
	log        *slog.Logger
}

// NewService creates a new triage service.
func NewService(
	log *slog.Logger,
	topics topicRepo,
	links linkRepo,
	reviews reviewRepo,
	classifier classifier,
	governance governor,
	cfg Config,
) *Service {
	if cfg.SimilarityThreshold <= 0 {
		cfg.SimilarityThreshold = domain.TriageSimilarityThreshold
	}
	if cfg.MaxSimilar <= 0 {
		cfg.MaxSimilar = 8
	}
	if cfg.AgendaItemSample <= 0 {
		cfg.AgendaItemSample = 5
	}
	return &Service{
		topics:     topics,
		links:      links,
		reviews:    reviews,
		classifier: classifier,
		governance: governance,
		cfg:        cfg,
		log:        log.With("service", "triage"),
	}
}
