package topic

import (
	"context"
	"fmt"

	"github.com/heartmarshall/civic-topics-backend/internal/domain"
)

// ListTopics returns topics matching the input filters, most recently
// active first.
func (s *Service) ListTopics(ctx context.Context, input ListTopicsInput) ([]*domain.Topic, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	topics, err := s.topics.List(ctx, domain.TopicFilter{
		Status:          input.Status,
		LifecycleStatus: input.LifecycleStatus,
		Limit:           input.Limit,
		Offset:          input.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	return topics, nil
}
