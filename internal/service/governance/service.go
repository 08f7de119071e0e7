// Package governance applies review decisions to topics: status transitions
// and merges, each with its review event.
package governance

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/civic-topics-backend/internal/domain"
	"github.com/heartmarshall/civic-topics-backend/pkg/ctxutil"
)

type topicRepo interface {
	LockForUpdate(ctx context.Context, ids ...uuid.UUID) (map[uuid.UUID]*domain.Topic, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.TopicStatus) (bool, error)
	CreateAlias(ctx context.Context, topicID uuid.UUID, name string) (*domain.TopicAlias, error)
	ReassignAliases(ctx context.Context, from, to uuid.UUID) (int, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type linkRepo interface {
	MoveLinks(ctx context.Context, from, to uuid.UUID) (moved, dropped int, err error)
	MoveAppearances(ctx context.Context, from, to uuid.UUID) (moved, dropped int, err error)
}

type reviewRepo interface {
	Create(ctx context.Context, e *domain.ReviewEvent) (*domain.ReviewEvent, error)
}

type enqueuer interface {
	Enqueue(ctx context.Context, task domain.Task) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service applies governance decisions.
type Service struct {
	topics  topicRepo
	links   linkRepo
	reviews reviewRepo
	queue   enqueuer
	tx      txManager
	log     *slog.Logger
}

// NewService creates a new governance service.
func NewService(
	log *slog.Logger,
	topics topicRepo,
	links linkRepo,
	reviews reviewRepo,
	queue enqueuer,
	tx txManager,
) *Service {
	return &Service{
		topics:  topics,
		links:   links,
		reviews: reviews,
		queue:   queue,
		tx:      tx,
		log:     log.With("service", "governance"),
	}
}

// Review describes who made a decision and why. A manual review without a
// UserID takes the acting user from the context.
type Review struct {
	Automated  bool
	Confidence *float64
	Reason     string
	UserID     *uuid.UUID
}

func (r Review) event(ctx context.Context, topicID uuid.UUID, action domain.ReviewAction) *domain.ReviewEvent {
	e := &domain.ReviewEvent{
		TopicID:    topicID,
		UserID:     r.UserID,
		Action:     action,
		Automated:  r.Automated,
		Confidence: r.Confidence,
		Reason:     r.Reason,
	}
	if e.UserID == nil {
		if id, ok := ctxutil.UserIDFromCtx(ctx); ok {
			e.UserID = &id
		}
	}
	return e
}

// enqueue publishes a follow-up task. Failures are logged; the decision that
// caused them is already committed.
func (s *Service) enqueue(ctx context.Context, typ domain.TaskType, args any) {
	task, err := domain.NewTask(typ, args)
	if err == nil {
		err = s.queue.Enqueue(ctx, task)
	}
	if err != nil {
		s.log.WarnContext(ctx, "enqueue follow-up failed",
			slog.String("task_type", typ.String()),
			slog.String("error", err.Error()),
		)
	}
}
