package topic

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/civic-topics-backend/internal/domain"
)

// GetTopic returns a single topic by ID.
func (s *Service) GetTopic(ctx context.Context, topicID uuid.UUID) (*domain.Topic, error) {
	if topicID == uuid.Nil {
		return nil, domain.NewValidationError("topic_id", "required")
	}

	topic, err := s.topics.GetByID(ctx, topicID)
	if err != nil {
		return nil, fmt.Errorf("get topic: %w", err)
	}
	return topic, nil
}

// GetTopicBySlug returns a single topic by its URL slug.
func (s *Service) GetTopicBySlug(ctx context.Context, slug string) (*domain.Topic, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, domain.NewValidationError("slug", "required")
	}

	topic, err := s.topics.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("get topic by slug: %w", err)
	}
	return topic, nil
}

// Aliases returns the alternate names owned by a topic.
func (s *Service) Aliases(ctx context.Context, topicID uuid.UUID) ([]domain.TopicAlias, error) {
	aliases, err := s.topics.ListAliases(ctx, topicID)
	if err != nil {
		return nil, fmt.Errorf("list aliases: %w", err)
	}
	return aliases, nil
}
