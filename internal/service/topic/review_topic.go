package topic

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/civic-topics-backend/internal/domain"
	"github.com/heartmarshall/civic-topics-backend/internal/service/governance"
)

// Review applies a manual governance action to a topic. It returns whether
// the topic's status changed; repeating an action is a no-op.
func (s *Service) Review(ctx context.Context, input ReviewInput) (bool, error) {
	if err := input.Validate(); err != nil {
		return false, err
	}

	topic, err := s.topics.GetByID(ctx, input.TopicID)
	if err != nil {
		return false, fmt.Errorf("get topic: %w", err)
	}

	changed, err := s.governance.Apply(ctx, topic.ID, input.Action, manual(input.Reason))
	if err != nil {
		return false, fmt.Errorf("review topic: %w", err)
	}

	s.log.InfoContext(ctx, "topic reviewed",
		slog.String("topic_id", topic.ID.String()),
		slog.String("action", input.Action.String()),
		slog.Bool("changed", changed),
	)

	if input.Action == domain.ReviewBlocked {
		s.expandBlocklist(ctx, topic.Name)
	}
	return changed, nil
}

// Merge folds the source topic into the target.
func (s *Service) Merge(ctx context.Context, input MergeInput) (governance.MergeResult, error) {
	if err := input.Validate(); err != nil {
		return governance.MergeResult{}, err
	}

	res, err := s.governance.Merge(ctx, input.SourceID, input.TargetID, manual(input.Reason))
	if err != nil {
		return governance.MergeResult{}, fmt.Errorf("merge topic: %w", err)
	}
	return res, nil
}

// expandBlocklist adds a blocked topic's name to the blocklist together with
// the names of already-blocked topics that look like it. Failures are logged.
func (s *Service) expandBlocklist(ctx context.Context, name string) {
	normalized := domain.NormalizeName(name)
	if normalized == "" {
		return
	}

	reason := "blocked topic: " + normalized
	names := []string{normalized}

	blocked, err := s.topics.NamesByStatus(ctx, domain.TopicStatusBlocked)
	if err != nil {
		s.log.WarnContext(ctx, "blocklist expansion: list blocked topics",
			slog.String("name", normalized),
			slog.String("error", err.Error()),
		)
	}
	for _, other := range blocked {
		other = domain.NormalizeName(other)
		if other == "" || other == normalized {
			continue
		}
		if domain.TrigramSimilarity(normalized, other) > BlocklistSimilarity {
			names = append(names, other)
		}
	}

	for _, n := range names {
		if _, _, err := s.blocklist.Add(ctx, n, &reason); err != nil {
			s.log.WarnContext(ctx, "blocklist expansion: add name",
				slog.String("name", n),
				slog.String("error", err.Error()),
			)
		}
	}
}

func manual(reason *string) governance.Review {
	r := governance.Review{}
	if v := trimOrNil(reason); v != nil {
		r.Reason = *v
	}
	return r
}
