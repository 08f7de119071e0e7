package topic

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/civic-topics-backend/internal/domain"
)

// AddToBlocklist blocks a name from ever becoming a topic. Adding a name
// that is already blocked returns the existing entry.
func (s *Service) AddToBlocklist(ctx context.Context, name string, reason *string) (*domain.BlocklistEntry, error) {
	normalized := domain.NormalizeName(name)
	if normalized == "" {
		return nil, domain.NewValidationError("name", "required")
	}

	entry, created, err := s.blocklist.Add(ctx, normalized, trimOrNil(reason))
	if err != nil {
		return nil, fmt.Errorf("add to blocklist: %w", err)
	}

	if created {
		s.log.InfoContext(ctx, "name blocklisted", slog.String("name", normalized))
	}
	return entry, nil
}

// RemoveFromBlocklist unblocks a name. Returns domain.ErrNotFound when the
// name is not on the blocklist.
func (s *Service) RemoveFromBlocklist(ctx context.Context, name string) error {
	normalized := domain.NormalizeName(name)
	if normalized == "" {
		return domain.NewValidationError("name", "required")
	}

	if err := s.blocklist.Remove(ctx, normalized); err != nil {
		return fmt.Errorf("remove from blocklist: %w", err)
	}

	s.log.InfoContext(ctx, "name unblocklisted", slog.String("name", normalized))
	return nil
}

// ListBlocklist returns every blocklisted name.
func (s *Service) ListBlocklist(ctx context.Context) ([]domain.BlocklistEntry, error) {
	entries, err := s.blocklist.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list blocklist: %w", err)
	}
	return entries, nil
}
