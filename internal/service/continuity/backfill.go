package continuity

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/civic-topics-backend/internal/domain"
)

// BackfillResult reports a backfill run.
type BackfillResult struct {
	Topics      int
	Appearances int
	Failed      int
}

// Backfill rebuilds the appearance ledger from agenda item links and then
// recomputes continuity. With a nil topicID every topic is rebuilt and
// per-topic failures are logged and counted rather than returned.
func (s *Service) Backfill(ctx context.Context, topicID *uuid.UUID) (BackfillResult, error) {
	if topicID != nil {
		n, err := s.backfillTopic(ctx, *topicID)
		if err != nil {
			return BackfillResult{}, err
		}
		return BackfillResult{Topics: 1, Appearances: n}, nil
	}

	ids, err := s.topics.ListIDs(ctx)
	if err != nil {
		return BackfillResult{}, fmt.Errorf("list topics: %w", err)
	}

	var res BackfillResult
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		n, err := s.backfillTopic(ctx, id)
		if err != nil {
			res.Failed++
			s.log.ErrorContext(ctx, "backfill failed",
				slog.String("topic_id", id.String()),
				slog.String("error", err.Error()),
			)
			continue
		}
		res.Topics++
		res.Appearances += n
	}

	s.log.InfoContext(ctx, "backfill complete",
		slog.Int("topics", res.Topics),
		slog.Int("appearances", res.Appearances),
		slog.Int("failed", res.Failed),
	)
	return res, nil
}

func (s *Service) backfillTopic(ctx context.Context, topicID uuid.UUID) (int, error) {
	var created int
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.appearances.DeleteByTopic(txCtx, topicID); err != nil {
			return fmt.Errorf("clear appearances: %w", err)
		}

		items, err := s.civic.LinkedItems(txCtx, topicID)
		if err != nil {
			return fmt.Errorf("linked items: %w", err)
		}
		for _, si := range items {
			ok, err := s.appearances.Create(txCtx, domain.AppearanceFromAgendaItem(topicID, si.Meeting, si.Item))
			if err != nil {
				return fmt.Errorf("agenda item %d: %w", si.Item.ID, err)
			}
			if ok {
				created++
			}
		}

		_, err = s.Recompute(txCtx, topicID)
		return err
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}
