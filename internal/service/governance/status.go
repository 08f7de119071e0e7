package governance

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/civic-topics-backend/internal/domain"
)

// TargetStatus returns the governance status a review action moves a topic
// to. Merges have no target status.
func TargetStatus(action domain.ReviewAction) (domain.TopicStatus, bool) {
	switch action {
	case domain.ReviewApproved, domain.ReviewUnblocked:
		return domain.TopicStatusApproved, true
	case domain.ReviewBlocked:
		return domain.TopicStatusBlocked, true
	case domain.ReviewNeedsReview:
		return domain.TopicStatusProposed, true
	}
	return "", false
}

// Apply moves a topic to the status implied by action and records the
// review event. A topic already in that status is left untouched and no
// event is written; changed is false. Approvals enqueue description
// generation after commit.
func (s *Service) Apply(ctx context.Context, topicID uuid.UUID, action domain.ReviewAction, r Review) (changed bool, err error) {
	status, ok := TargetStatus(action)
	if !ok {
		return false, domain.NewValidationError("action", "not a status transition")
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		locked, err := s.topics.LockForUpdate(txCtx, topicID)
		if err != nil {
			return fmt.Errorf("lock topic: %w", err)
		}
		if _, ok := locked[topicID]; !ok {
			return fmt.Errorf("topic %s: %w", topicID, domain.ErrNotFound)
		}

		changed, err = s.topics.UpdateStatus(txCtx, topicID, status)
		if err != nil {
			return fmt.Errorf("update status: %w", err)
		}
		if !changed {
			return nil
		}

		if _, err := s.reviews.Create(txCtx, r.event(txCtx, topicID, action)); err != nil {
			return fmt.Errorf("record review: %w", err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	if !changed {
		return false, nil
	}

	s.log.InfoContext(ctx, "topic reviewed",
		slog.String("topic_id", topicID.String()),
		slog.String("action", action.String()),
		slog.Bool("automated", r.Automated),
	)

	if status == domain.TopicStatusApproved {
		s.enqueue(ctx, domain.TaskGenerateDescription, domain.DescriptionArgs{TopicID: topicID})
	}
	return true, nil
}
