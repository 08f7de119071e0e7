package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/civic-topics-backend/internal/domain"
	"github.com/heartmarshall/civic-topics-backend/internal/service/continuity"
	"github.com/heartmarshall/civic-topics-backend/internal/service/extraction"
	"github.com/heartmarshall/civic-topics-backend/internal/service/triage"
)

type continuityService interface {
	Recompute(ctx context.Context, topicID uuid.UUID) (continuity.Result, error)
	ByMeeting(ctx context.Context, meetingID int64) ([]continuity.Result, error)
	Backfill(ctx context.Context, topicID *uuid.UUID) (continuity.BackfillResult, error)
	MotionRecorded(ctx context.Context, motionID int64) ([]uuid.UUID, error)
}

type extractionService interface {
	Extract(ctx context.Context, meetingID int64) (extraction.Result, error)
}

type triageService interface {
	Run(ctx context.Context, opts triage.Options) (triage.Report, error)
}

type scheduler interface {
	Enqueue(ctx context.Context, task domain.Task) error
	EnqueueIn(ctx context.Context, task domain.Task, delay time.Duration) error
}

// AutoTriage configures the triage run that follows topic extraction.
type AutoTriage struct {
	MaxTopics  int
	Thresholds triage.Thresholds
	Delay      time.Duration
}

// Handlers turns queued tasks into service calls.
type Handlers struct {
	continuity continuityService
	extraction extractionService
	triage     triageService
	queue      scheduler
	auto       AutoTriage
	log        *slog.Logger
}

// NewHandlers creates the task handlers.
func NewHandlers(
	log *slog.Logger,
	continuity continuityService,
	extraction extractionService,
	triage triageService,
	queue scheduler,
	auto AutoTriage,
) *Handlers {
	return &Handlers{
		continuity: continuity,
		extraction: extraction,
		triage:     triage,
		queue:      queue,
		auto:       auto,
		log:        log.With("component", "handlers"),
	}
}

// Register installs every handler on w.
func (h *Handlers) Register(w *Worker) {
	w.Handle(domain.TaskUpdateContinuity, h.UpdateContinuity)
	w.Handle(domain.TaskExtractTopics, h.ExtractTopics)
	w.Handle(domain.TaskAutoTriage, h.AutoTriage)
	w.Handle(domain.TaskMotionRecorded, h.MotionRecorded)
	w.Handle(domain.TaskBackfillContinuity, h.BackfillContinuity)
}

// ---------------------------------------------------------------------------
// Continuity
// ---------------------------------------------------------------------------

// UpdateContinuity recomputes one topic, or every topic linked to a meeting.
func (h *Handlers) UpdateContinuity(ctx context.Context, task domain.Task) error {
	var args domain.ContinuityArgs
	if err := task.Decode(&args); err != nil {
		return domain.NewValidationError("args", err.Error())
	}

	switch {
	case args.TopicID != nil:
		if _, err := h.continuity.Recompute(ctx, *args.TopicID); err != nil {
			return fmt.Errorf("recompute topic %s: %w", *args.TopicID, err)
		}
	case args.MeetingID != nil:
		results, err := h.continuity.ByMeeting(ctx, *args.MeetingID)
		if err != nil {
			return fmt.Errorf("recompute meeting %d: %w", *args.MeetingID, err)
		}
		h.log.InfoContext(ctx, "meeting topics recomputed",
			slog.Int64("meeting_id", *args.MeetingID),
			slog.Int("topics", len(results)),
		)
	default:
		return domain.NewValidationError("args", "topic_id or meeting_id required")
	}
	return nil
}

// BackfillContinuity rebuilds appearances for one topic or all of them.
func (h *Handlers) BackfillContinuity(ctx context.Context, task domain.Task) error {
	var args domain.BackfillArgs
	if err := task.Decode(&args); err != nil {
		return domain.NewValidationError("args", err.Error())
	}

	res, err := h.continuity.Backfill(ctx, args.TopicID)
	if err != nil {
		return fmt.Errorf("backfill: %w", err)
	}

	h.log.InfoContext(ctx, "continuity backfilled",
		slog.Int("topics", res.Topics),
		slog.Int("appearances", res.Appearances),
		slog.Int("failed", res.Failed),
	)
	return nil
}

// MotionRecorded advances activity on the motion's topics and queues their
// continuity updates.
func (h *Handlers) MotionRecorded(ctx context.Context, task domain.Task) error {
	var args domain.MotionArgs
	if err := task.Decode(&args); err != nil {
		return domain.NewValidationError("args", err.Error())
	}

	ids, err := h.continuity.MotionRecorded(ctx, args.MotionID)
	if err != nil {
		return fmt.Errorf("motion %d: %w", args.MotionID, err)
	}

	for _, id := range ids {
		h.enqueueContinuity(ctx, id)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Extraction + triage
// ---------------------------------------------------------------------------

// ExtractTopics tags a meeting's agenda items, then queues continuity
// updates for the touched topics and a delayed auto triage.
func (h *Handlers) ExtractTopics(ctx context.Context, task domain.Task) error {
	var args domain.ExtractArgs
	if err := task.Decode(&args); err != nil {
		return domain.NewValidationError("args", err.Error())
	}

	res, err := h.extraction.Extract(ctx, args.MeetingID)
	if err != nil {
		return fmt.Errorf("extract meeting %d: %w", args.MeetingID, err)
	}

	for _, id := range res.TopicIDs {
		h.enqueueContinuity(ctx, id)
	}
	if len(res.TopicIDs) == 0 {
		return nil
	}

	t, err := domain.NewTask(domain.TaskAutoTriage, domain.AutoTriageArgs{})
	if err != nil {
		return err
	}
	if err := h.queue.EnqueueIn(ctx, t, h.auto.Delay); err != nil {
		h.log.WarnContext(ctx, "schedule auto triage", slog.String("error", err.Error()))
	}
	return nil
}

// AutoTriage runs triage with apply on. It does nothing when no topics are
// awaiting review.
func (h *Handlers) AutoTriage(ctx context.Context, _ domain.Task) error {
	rep, err := h.triage.Run(ctx, triage.Options{
		Apply:      true,
		MaxTopics:  h.auto.MaxTopics,
		Thresholds: h.auto.Thresholds,
	})
	if err != nil {
		return fmt.Errorf("auto triage: %w", err)
	}

	if rep.Topics > 0 {
		h.log.InfoContext(ctx, "auto triage finished",
			slog.Int("topics", rep.Topics),
			slog.Int("merged", rep.Merged),
			slog.Int("approved", rep.Approved),
			slog.Int("blocked", rep.Blocked),
			slog.Int("skipped", rep.Skipped),
		)
	}
	return nil
}

func (h *Handlers) enqueueContinuity(ctx context.Context, topicID uuid.UUID) {
	t, err := domain.NewTask(domain.TaskUpdateContinuity, domain.ContinuityArgs{TopicID: &topicID})
	if err == nil {
		err = h.queue.Enqueue(ctx, t)
	}
	if err != nil {
		h.log.WarnContext(ctx, "enqueue continuity update",
			slog.String("topic_id", topicID.String()),
			slog.String("error", err.Error()),
		)
	}
}
