package governance

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/civic-topics-backend/internal/domain"
)

// MergeResult reports what a merge moved.
type MergeResult struct {
	Merged             bool
	AliasesMoved       int
	LinksMoved         int
	LinksDropped       int
	AppearancesMoved   int
	AppearancesDropped int
}

// Merge folds source into target in one transaction: the source name becomes
// an alias of target, source aliases, links and appearances move to target
// (dropping ones target already has), source is deleted and a merged review
// event is recorded against target.
//
// Both rows are locked in id order. A missing source is a no-op, so
// replaying a merge is safe. Any failure, including an alias name collision
// (domain.ErrAlreadyExists), rolls the whole merge back.
func (s *Service) Merge(ctx context.Context, sourceID, targetID uuid.UUID, r Review) (MergeResult, error) {
	if sourceID == targetID {
		return MergeResult{}, domain.NewValidationError("target_id", "cannot merge a topic into itself")
	}

	var res MergeResult
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		locked, err := s.topics.LockForUpdate(txCtx, sourceID, targetID)
		if err != nil {
			return fmt.Errorf("lock topics: %w", err)
		}
		target, ok := locked[targetID]
		if !ok {
			return fmt.Errorf("merge target %s: %w", targetID, domain.ErrNotFound)
		}
		source, ok := locked[sourceID]
		if !ok {
			return nil
		}

		if _, err := s.topics.CreateAlias(txCtx, target.ID, source.Name); err != nil {
			return fmt.Errorf("alias %q: %w", source.Name, err)
		}
		if res.AliasesMoved, err = s.topics.ReassignAliases(txCtx, source.ID, target.ID); err != nil {
			return fmt.Errorf("reassign aliases: %w", err)
		}
		if res.LinksMoved, res.LinksDropped, err = s.links.MoveLinks(txCtx, source.ID, target.ID); err != nil {
			return fmt.Errorf("move links: %w", err)
		}
		if res.AppearancesMoved, res.AppearancesDropped, err = s.links.MoveAppearances(txCtx, source.ID, target.ID); err != nil {
			return fmt.Errorf("move appearances: %w", err)
		}
		if err := s.topics.Delete(txCtx, source.ID); err != nil {
			return fmt.Errorf("delete source: %w", err)
		}
		if _, err := s.reviews.Create(txCtx, r.event(txCtx, target.ID, domain.ReviewMerged)); err != nil {
			return fmt.Errorf("record review: %w", err)
		}

		res.Merged = true
		return nil
	})
	if err != nil {
		return MergeResult{}, err
	}
	if !res.Merged {
		return res, nil
	}

	s.log.InfoContext(ctx, "topics merged",
		slog.String("source_id", sourceID.String()),
		slog.String("target_id", targetID.String()),
		slog.Int("links_moved", res.LinksMoved),
		slog.Int("appearances_moved", res.AppearancesMoved),
		slog.Bool("automated", r.Automated),
	)

	s.enqueue(ctx, domain.TaskUpdateContinuity, domain.ContinuityArgs{TopicID: &targetID})
	return res, nil
}
