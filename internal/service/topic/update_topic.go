package topic

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/civic-topics-backend/internal/domain"
)

// UpdateResidentImpactFromAI stores a classifier-provided resident impact
// score. It is a silent no-op while an administrator override is recent.
// Returns whether the score was written.
func (s *Service) UpdateResidentImpactFromAI(ctx context.Context, topicID uuid.UUID, score int) (bool, error) {
	if verr := domain.ValidateResidentImpactScore(score); verr != nil {
		return false, verr
	}

	written := false
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		locked, err := s.topics.LockForUpdate(txCtx, topicID)
		if err != nil {
			return fmt.Errorf("lock topic: %w", err)
		}
		topic, ok := locked[topicID]
		if !ok {
			return fmt.Errorf("topic %s: %w", topicID, domain.ErrNotFound)
		}
		if topic.ResidentImpactLocked(s.now()) {
			return nil
		}

		if err := s.topics.UpdateResidentImpact(txCtx, topicID, score, topic.ResidentImpactOverriddenAt); err != nil {
			return fmt.Errorf("update resident impact: %w", err)
		}
		written = true
		return nil
	})
	if err != nil {
		return false, err
	}

	if !written {
		s.log.InfoContext(ctx, "resident impact override still in effect",
			slog.String("topic_id", topicID.String()),
		)
	}
	return written, nil
}

// OverrideResidentImpact stores an administrator's resident impact score
// and starts the override window.
func (s *Service) OverrideResidentImpact(ctx context.Context, topicID uuid.UUID, score int) error {
	if verr := domain.ValidateResidentImpactScore(score); verr != nil {
		return verr
	}

	now := domain.StorageTime(s.now())
	if err := s.topics.UpdateResidentImpact(ctx, topicID, score, &now); err != nil {
		return fmt.Errorf("override resident impact: %w", err)
	}

	s.log.InfoContext(ctx, "resident impact overridden",
		slog.String("topic_id", topicID.String()),
		slog.Int("score", score),
	)
	return nil
}
