package triage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/civic-topics-backend/internal/domain"
	"github.com/heartmarshall/civic-topics-backend/internal/service/governance"
)

// Options controls one triage run.
type Options struct {
	// Apply writes decisions. Without it the run only reports suggestions.
	Apply      bool
	MaxTopics  int
	Thresholds Thresholds
}

// Report summarizes a triage run.
type Report struct {
	Topics   int
	Response *domain.TriageResponse
	Applied  bool
	Merged   int
	Approved int
	Blocked  int
	Skipped  int
}

// Run triages up to MaxTopics proposed topics. A classifier failure aborts
// the run before anything is written. Each applied decision commits on its
// own; a merge rejected by an alias collision is skipped and the run goes
// on.
func (s *Service) Run(ctx context.Context, opts Options) (Report, error) {
	if err := opts.Thresholds.Validate(); err != nil {
		return Report{}, err
	}
	if opts.MaxTopics <= 0 {
		return Report{}, domain.NewValidationError("max_topics", "must be positive")
	}

	topics, err := s.topics.ListProposed(ctx, opts.MaxTopics)
	if err != nil {
		return Report{}, fmt.Errorf("list proposed: %w", err)
	}
	if len(topics) == 0 {
		return Report{}, nil
	}

	req, err := s.buildRequest(ctx, topics)
	if err != nil {
		return Report{}, err
	}

	resp, err := s.classifier.Triage(ctx, req)
	if err != nil {
		return Report{}, fmt.Errorf("triage classifier: %w", err)
	}
	if err := resp.Validate(); err != nil {
		return Report{}, fmt.Errorf("triage classifier: %w", err)
	}

	rep := Report{Topics: len(topics), Response: resp}
	s.log.InfoContext(ctx, "triage suggestions",
		slog.Int("topics", len(topics)),
		slog.Int("merges", len(resp.MergeMap)),
		slog.Int("approvals", len(resp.Approvals)),
		slog.Int("blocks", len(resp.Blocks)),
	)
	if !opts.Apply {
		return rep, nil
	}

	rep.Applied = true
	if err := s.applyMerges(ctx, resp.MergeMap, opts.Thresholds, &rep); err != nil {
		return rep, err
	}
	if err := s.applyApprovals(ctx, resp.Approvals, opts.Thresholds, &rep); err != nil {
		return rep, err
	}
	if err := s.applyBlocks(ctx, resp.Blocks, opts.Thresholds, &rep); err != nil {
		return rep, err
	}

	s.log.InfoContext(ctx, "triage applied",
		slog.Int("merged", rep.Merged),
		slog.Int("approved", rep.Approved),
		slog.Int("blocked", rep.Blocked),
		slog.Int("skipped", rep.Skipped),
	)
	return rep, nil
}

// ---------------------------------------------------------------------------
// Classifier context
// ---------------------------------------------------------------------------

func (s *Service) buildRequest(ctx context.Context, topics []*domain.Topic) (domain.TriageRequest, error) {
	refs, err := s.topics.ListRefs(ctx)
	if err != nil {
		return domain.TriageRequest{}, fmt.Errorf("list topic refs: %w", err)
	}

	req := domain.TriageRequest{
		ProceduralKeywords:  domain.ProceduralKeywords,
		SimilarityThreshold: s.cfg.SimilarityThreshold,
		Topics:              make([]domain.TriageTopic, 0, len(topics)),
	}

	for _, t := range topics {
		items, err := s.links.LinkedAgendaItems(ctx, t.ID, s.cfg.AgendaItemSample)
		if err != nil {
			return domain.TriageRequest{}, fmt.Errorf("agenda items for %s: %w", t.ID, err)
		}

		tt := domain.TriageTopic{
			ID:              t.ID,
			Name:            t.Name,
			CanonicalName:   t.CanonicalName,
			LifecycleStatus: t.Lifecycle(),
			Status:          t.Status,
			LastActivityAt:  t.LastActivityAt,
			AgendaItems:     make([]domain.TriageAgendaItem, 0, len(items)),
		}
		for _, it := range items {
			tt.AgendaItems = append(tt.AgendaItems, domain.TriageAgendaItem{ID: it.ID, Title: it.Title, Summary: it.Summary})
		}
		req.Topics = append(req.Topics, tt)

		matches := domain.RankSimilar(t.Name, refs, s.cfg.SimilarityThreshold, s.cfg.MaxSimilar, t.ID)
		if len(matches) == 0 {
			continue
		}
		c := domain.SimilarityCandidate{TopicID: t.ID, TopicName: t.Name}
		for _, m := range matches {
			c.Similar = append(c.Similar, domain.SimilarTopic{ID: m.Topic.ID, Name: m.Topic.Name})
		}
		req.SimilarityCandidates = append(req.SimilarityCandidates, c)
	}
	return req, nil
}

// ---------------------------------------------------------------------------
// Application
// ---------------------------------------------------------------------------

func (s *Service) applyMerges(ctx context.Context, merges []domain.MergeDecision, th Thresholds, rep *Report) error {
	for _, m := range merges {
		if !clears(m.Confidence, th.Merge) || strings.TrimSpace(m.Canonical) == "" || len(m.Aliases) == 0 {
			rep.Skipped++
			continue
		}
		target, err := s.lookup(ctx, m.Canonical)
		if err != nil {
			return err
		}
		if target == nil {
			rep.Skipped++
			continue
		}

		for _, alias := range m.Aliases {
			source, err := s.lookup(ctx, alias)
			if err != nil {
				return err
			}
			if source == nil || source.ID == target.ID {
				rep.Skipped++
				continue
			}

			res, err := s.governance.Merge(ctx, source.ID, target.ID, automated(m.Confidence, "Auto-merge via triage tool", m.Rationale))
			if errors.Is(err, domain.ErrAlreadyExists) {
				s.log.WarnContext(ctx, "triage merge rejected",
					slog.String("source", source.Name),
					slog.String("target", target.Name),
					slog.String("error", err.Error()),
				)
				rep.Skipped++
				continue
			}
			if err != nil {
				return fmt.Errorf("merge %q into %q: %w", source.Name, target.Name, err)
			}
			if res.Merged {
				rep.Merged++
			}
		}
	}
	return nil
}

func (s *Service) applyApprovals(ctx context.Context, approvals []domain.TopicDecision, th Thresholds, rep *Report) error {
	type pending struct {
		topic    *domain.Topic
		decision domain.TopicDecision
	}

	var (
		queue []pending
		ids   []uuid.UUID
	)
	for _, d := range approvals {
		t, err := s.lookup(ctx, d.Topic)
		if err != nil {
			return err
		}
		if t == nil || t.Status == domain.TopicStatusApproved {
			rep.Skipped++
			continue
		}
		queue = append(queue, pending{topic: t, decision: d})
		ids = append(ids, t.ID)
	}
	if len(queue) == 0 {
		return nil
	}

	reviewed, err := s.reviews.ReviewedTopics(ctx, ids)
	if err != nil {
		return fmt.Errorf("review history: %w", err)
	}

	for _, p := range queue {
		threshold := th.ApproveNovel
		if reviewed[p.topic.ID] {
			threshold = th.Approve
		}
		if !clears(p.decision.Confidence, threshold) {
			rep.Skipped++
			continue
		}

		ok, err := s.decide(ctx, p.topic, domain.ReviewApproved,
			automated(p.decision.Confidence, "Auto-approve via triage tool", p.decision.Rationale))
		if err != nil {
			return err
		}
		if ok {
			rep.Approved++
		} else {
			rep.Skipped++
		}
	}
	return nil
}

func (s *Service) applyBlocks(ctx context.Context, blocks []domain.TopicDecision, th Thresholds, rep *Report) error {
	for _, d := range blocks {
		if !clears(d.Confidence, th.Block) {
			rep.Skipped++
			continue
		}
		t, err := s.lookup(ctx, d.Topic)
		if err != nil {
			return err
		}
		if t == nil || t.Status == domain.TopicStatusBlocked {
			rep.Skipped++
			continue
		}

		ok, err := s.decide(ctx, t, domain.ReviewBlocked,
			automated(d.Confidence, "Auto-block via triage tool", d.Rationale))
		if err != nil {
			return err
		}
		if ok {
			rep.Blocked++
		} else {
			rep.Skipped++
		}
	}
	return nil
}

// decide applies a status decision. A topic deleted since lookup counts as
// not applied.
func (s *Service) decide(ctx context.Context, t *domain.Topic, action domain.ReviewAction, r governance.Review) (bool, error) {
	changed, err := s.governance.Apply(ctx, t.ID, action, r)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%s %q: %w", action, t.Name, err)
	}
	return changed, nil
}

// lookup finds a topic by the classifier's spelling of its name. A name
// that matches no topic returns nil.
func (s *Service) lookup(ctx context.Context, name string) (*domain.Topic, error) {
	normalized := domain.NormalizeName(name)
	if normalized == "" {
		return nil, nil
	}
	t, err := s.topics.GetByName(ctx, normalized)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup %q: %w", normalized, err)
	}
	return t, nil
}

func automated(confidence float64, base, rationale string) governance.Review {
	reason := base
	if r := strings.TrimSpace(rationale); r != "" {
		reason = base + ": " + r
	}
	return governance.Review{Automated: true, Confidence: &confidence, Reason: reason}
}
