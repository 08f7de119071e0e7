// Package extraction tags a meeting's agenda items with topics: it asks the
// classifier for topic names, resolves them to canonical topics, and records
// the links and appearances.
package extraction

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/civic-topics-backend/internal/domain"
	"github.com/heartmarshall/civic-topics-backend/internal/service/identity"
)

type civicRepo interface {
	GetMeeting(ctx context.Context, id int64) (*domain.Meeting, error)
	ListAgendaItems(ctx context.Context, meetingID int64) ([]domain.AgendaItem, error)
}

type topicRepo interface {
	NamesByStatus(ctx context.Context, status domain.TopicStatus) ([]string, error)
}

type linkRepo interface {
	Link(ctx context.Context, agendaItemID int64, topicID uuid.UUID) (bool, error)
	Create(ctx context.Context, a domain.TopicAppearance) (bool, error)
}

type resolver interface {
	Resolve(ctx context.Context, rawName string) (identity.Resolution, error)
}

type classifier interface {
	ExtractTopics(ctx context.Context, req domain.ExtractionRequest) (*domain.ExtractionResponse, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service runs topic extraction for meetings.
type Service struct {
	civic      civicRepo
	topics     topicRepo
	links      linkRepo
	resolver   resolver
	classifier classifier
	tx         txManager
	log        *slog.Logger
}

// NewService creates a new extraction service.
func NewService(
	log *slog.Logger,
	civic civicRepo,
	topics topicRepo,
	links linkRepo,
	resolver resolver,
	classifier classifier,
	tx txManager,
) *Service {
	return &Service{
		civic:      civic,
		topics:     topics,
		links:      links,
		resolver:   resolver,
		classifier: classifier,
		tx:         tx,
		log:        log.With("service", "extraction"),
	}
}

// Result reports an extraction run. TopicIDs lists every topic linked to an
// agenda item of the meeting by this run, in first-seen order.
type Result struct {
	Classified  int
	Skipped     int
	Links       int
	Appearances int
	TopicIDs    []uuid.UUID
}

// Extract classifies the meeting's agenda items and links the resulting
// topics. Rerunning it for the same meeting creates no duplicate links or
// appearances. Follow-up tasks are the caller's concern.
func (s *Service) Extract(ctx context.Context, meetingID int64) (Result, error) {
	meeting, err := s.civic.GetMeeting(ctx, meetingID)
	if err != nil {
		return Result{}, fmt.Errorf("meeting %d: %w", meetingID, err)
	}

	items, err := s.civic.ListAgendaItems(ctx, meetingID)
	if err != nil {
		return Result{}, fmt.Errorf("meeting %d agenda: %w", meetingID, err)
	}
	if len(items) == 0 {
		s.log.InfoContext(ctx, "no agenda items to tag", slog.Int64("meeting_id", meetingID))
		return Result{}, nil
	}

	existing, err := s.topics.NamesByStatus(ctx, domain.TopicStatusApproved)
	if err != nil {
		return Result{}, fmt.Errorf("approved topics: %w", err)
	}

	req := domain.ExtractionRequest{
		BodyName:       meeting.BodyName,
		Items:          make([]domain.ExtractionItem, 0, len(items)),
		ExistingTopics: existing,
	}
	byID := make(map[int64]domain.AgendaItem, len(items))
	for _, it := range items {
		req.Items = append(req.Items, domain.ExtractionItem{ID: it.ID, Title: it.Title, Summary: it.Summary})
		byID[it.ID] = it
	}

	resp, err := s.classifier.ExtractTopics(ctx, req)
	if err != nil {
		return Result{}, fmt.Errorf("extract topics for meeting %d: %w", meetingID, err)
	}

	var (
		res  Result
		seen = make(map[uuid.UUID]bool)
	)
	for _, c := range resp.Items {
		item, ok := byID[c.ID]
		if !ok {
			s.log.WarnContext(ctx, "classifier returned unknown agenda item",
				slog.Int64("meeting_id", meetingID),
				slog.Int64("agenda_item_id", c.ID),
			)
			continue
		}
		res.Classified++

		if c.LowConfidence() {
			s.log.WarnContext(ctx, "low-confidence topic classification",
				slog.Int64("agenda_item_id", c.ID),
				slog.Float64("confidence", *c.Confidence),
				slog.String("category", c.Category),
				slog.Any("tags", c.Tags),
			)
		}
		if c.Skip() {
			res.Skipped++
			continue
		}

		for _, tag := range c.Tags {
			if strings.TrimSpace(tag) == "" {
				continue
			}
			r, err := s.resolver.Resolve(ctx, tag)
			if err != nil {
				return res, fmt.Errorf("resolve %q: %w", tag, err)
			}
			if r.Topic == nil {
				continue
			}

			linked, recorded, err := s.attach(ctx, r.Topic.ID, *meeting, item)
			if err != nil {
				return res, err
			}
			if linked {
				res.Links++
			}
			if recorded {
				res.Appearances++
			}
			if !seen[r.Topic.ID] {
				seen[r.Topic.ID] = true
				res.TopicIDs = append(res.TopicIDs, r.Topic.ID)
			}
		}
	}

	s.log.InfoContext(ctx, "meeting tagged",
		slog.Int64("meeting_id", meetingID),
		slog.Int("classified", res.Classified),
		slog.Int("skipped", res.Skipped),
		slog.Int("links", res.Links),
		slog.Int("topics", len(res.TopicIDs)),
	)
	return res, nil
}

// attach links the agenda item to the topic and records its appearance.
func (s *Service) attach(ctx context.Context, topicID uuid.UUID, meeting domain.Meeting, item domain.AgendaItem) (linked, recorded bool, err error) {
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if linked, err = s.links.Link(txCtx, item.ID, topicID); err != nil {
			return fmt.Errorf("link agenda item %d: %w", item.ID, err)
		}
		if recorded, err = s.links.Create(txCtx, domain.AppearanceFromAgendaItem(topicID, meeting, item)); err != nil {
			return fmt.Errorf("record appearance for agenda item %d: %w", item.ID, err)
		}
		return nil
	})
	return linked, recorded, err
}
