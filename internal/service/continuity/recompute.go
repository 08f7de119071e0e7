package continuity

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/civic-topics-backend/internal/domain"
)

// Recompute derives and persists the lifecycle of one topic. The topic row
// is locked for the duration, so concurrent recomputes of the same topic
// serialize. Running it twice with no new data writes nothing new.
func (s *Service) Recompute(ctx context.Context, topicID uuid.UUID) (Result, error) {
	res := Result{TopicID: topicID}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		locked, err := s.topics.LockForUpdate(txCtx, topicID)
		if err != nil {
			return fmt.Errorf("lock topic: %w", err)
		}
		topic, ok := locked[topicID]
		if !ok {
			return fmt.Errorf("topic %s: %w", topicID, domain.ErrNotFound)
		}

		apps, err := s.appearances.ListByTopic(txCtx, topicID)
		if err != nil {
			return fmt.Errorf("load appearances: %w", err)
		}
		resolutions, err := s.civic.ResolvedMotions(txCtx, topicID)
		if err != nil {
			return fmt.Errorf("load resolutions: %w", err)
		}

		d := Derive(*topic, History{Appearances: apps, Resolutions: resolutions}, s.now(), s.cfg.Rules)
		res.Status, res.Changed = d.Status, d.Changed

		if d.Changed {
			if err := s.topics.UpdateLifecycle(txCtx, topicID, d.Status); err != nil {
				return fmt.Errorf("update lifecycle: %w", err)
			}
		}

		for _, e := range d.Events {
			inserted, err := s.events.InsertIfAbsent(txCtx, e)
			if err != nil {
				return fmt.Errorf("record %s event: %w", e.EvidenceType, err)
			}
			if inserted {
				res.EventsWritten++
			}
		}

		if !d.Temporal.IsEmpty() {
			if err := s.topics.UpdateTemporal(txCtx, topicID, d.Temporal); err != nil {
				return fmt.Errorf("update temporal: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return Result{TopicID: topicID}, err
	}

	if res.Changed || res.EventsWritten > 0 {
		s.log.InfoContext(ctx, "continuity updated",
			slog.String("topic_id", topicID.String()),
			slog.String("status", res.Status.String()),
			slog.Bool("changed", res.Changed),
			slog.Int("events", res.EventsWritten),
		)
	}
	return res, nil
}

// ByMeeting recomputes every topic linked to an agenda item of the meeting.
// Per-topic failures are logged and do not fail the batch.
func (s *Service) ByMeeting(ctx context.Context, meetingID int64) ([]Result, error) {
	ids, err := s.appearances.TopicIDsByMeeting(ctx, meetingID)
	if err != nil {
		return nil, fmt.Errorf("meeting %d topics: %w", meetingID, err)
	}
	return s.recomputeAll(ctx, ids), nil
}

// recomputeAll runs Recompute over ids with bounded concurrency. Results of
// failed topics are omitted.
func (s *Service) recomputeAll(ctx context.Context, ids []uuid.UUID) []Result {
	results := make([]*Result, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.MeetingConcurrency)
	for i, id := range ids {
		g.Go(func() error {
			res, err := s.Recompute(gctx, id)
			if err != nil {
				s.log.ErrorContext(gctx, "continuity update failed",
					slog.String("topic_id", id.String()),
					slog.String("error", err.Error()),
				)
				return nil
			}
			results[i] = &res
			return nil
		})
	}
	_ = g.Wait()

	out := make([]Result, 0, len(ids))
	for _, r := range results {
		if r != nil {
			out = append(out, *r)
		}
	}
	return out
}
