// Package continuity derives topic lifecycle status from the appearance
// ledger and motion outcomes, and records the evidence as status events.
package continuity

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/civic-topics-backend/internal/domain"
)

type topicRepo interface {
	LockForUpdate(ctx context.Context, ids ...uuid.UUID) (map[uuid.UUID]*domain.Topic, error)
	ListIDs(ctx context.Context) ([]uuid.UUID, error)
	UpdateLifecycle(ctx context.Context, id uuid.UUID, status domain.LifecycleStatus) error
	UpdateTemporal(ctx context.Context, id uuid.UUID, s domain.TemporalSummary) error
	AdvanceLastActivity(ctx context.Context, id uuid.UUID, at time.Time) (bool, error)
}

type appearanceRepo interface {
	ListByTopic(ctx context.Context, topicID uuid.UUID) ([]domain.TopicAppearance, error)
	Create(ctx context.Context, a domain.TopicAppearance) (bool, error)
	DeleteByTopic(ctx context.Context, topicID uuid.UUID) (int, error)
	TopicIDsByMeeting(ctx context.Context, meetingID int64) ([]uuid.UUID, error)
	TopicIDsByAgendaItem(ctx context.Context, agendaItemID int64) ([]uuid.UUID, error)
}

type civicRepo interface {
	GetMotion(ctx context.Context, id int64) (*domain.Motion, error)
	ResolvedMotions(ctx context.Context, topicID uuid.UUID) ([]domain.Motion, error)
	LinkedItems(ctx context.Context, topicID uuid.UUID) ([]domain.ScheduledItem, error)
}

type eventRepo interface {
	InsertIfAbsent(ctx context.Context, e domain.StatusEvent) (bool, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Config holds the lifecycle rules and the fan-out used for meeting-wide
// updates.
type Config struct {
	Rules              Rules
	MeetingConcurrency int
}

// Service runs the continuity engine against storage.
type Service struct {
	topics      topicRepo
	appearances appearanceRepo
	civic       civicRepo
	events      eventRepo
	tx          txManager
	cfg         Config
	now         func() time.Time
	log         *slog.Logger
}

// NewService creates a new continuity service.
func NewService(
	log *slog.Logger,
	topics topicRepo,
	appearances appearanceRepo,
	civic civicRepo,
	events eventRepo,
	tx txManager,
	cfg Config,
) *Service {
	if cfg.MeetingConcurrency <= 0 {
		cfg.MeetingConcurrency = 1
	}
	return &Service{
		topics:      topics,
		appearances: appearances,
		civic:       civic,
		events:      events,
		tx:          tx,
		cfg:         cfg,
		now:         time.Now,
		log:         log.With("service", "continuity"),
	}
}

// Result summarizes one recompute.
type Result struct {
	TopicID       uuid.UUID
	Status        domain.LifecycleStatus
	Changed       bool
	EventsWritten int
}
