package config

import (
	"fmt"
	"time"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Identity.validate(); err != nil {
		return fmt.Errorf("identity: %w", err)
	}
	if err := c.Continuity.validate(); err != nil {
		return fmt.Errorf("continuity: %w", err)
	}
	if err := c.Triage.validate(); err != nil {
		return fmt.Errorf("triage: %w", err)
	}
	if err := c.Worker.validate(); err != nil {
		return fmt.Errorf("worker: %w", err)
	}
	if c.Classifier.RequestsPerMinute <= 0 {
		return fmt.Errorf("classifier: requests_per_minute must be > 0 (got %d)", c.Classifier.RequestsPerMinute)
	}
	return nil
}

func (i *IdentityConfig) validate() error {
	if err := unitInterval("similarity_threshold", i.SimilarityThreshold); err != nil {
		return err
	}
	if i.MaxResolveAttempts <= 0 {
		return fmt.Errorf("max_resolve_attempts must be > 0 (got %d)", i.MaxResolveAttempts)
	}
	return nil
}

func (c *ContinuityConfig) validate() error {
	if c.ActivityWindowMonths <= 0 {
		return fmt.Errorf("activity_window_months must be > 0 (got %d)", c.ActivityWindowMonths)
	}
	if c.DisappearanceWindowMonths <= 0 {
		return fmt.Errorf("disappearance_window_months must be > 0 (got %d)", c.DisappearanceWindowMonths)
	}
	if c.CooldownMonths <= 0 {
		return fmt.Errorf("cooldown_months must be > 0 (got %d)", c.CooldownMonths)
	}
	if c.MeetingConcurrency <= 0 {
		return fmt.Errorf("meeting_concurrency must be > 0 (got %d)", c.MeetingConcurrency)
	}

	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	c.Location = loc

	return nil
}

func (t *TriageConfig) validate() error {
	for name, v := range map[string]float64{
		"block_threshold":         t.BlockThreshold,
		"merge_threshold":         t.MergeThreshold,
		"approve_threshold":       t.ApproveThreshold,
		"approve_novel_threshold": t.ApproveNovelThreshold,
		"similarity_threshold":    t.SimilarityThreshold,
	} {
		if err := unitInterval(name, v); err != nil {
			return err
		}
	}
	if t.MaxTopics <= 0 || t.AutoMaxTopics <= 0 {
		return fmt.Errorf("max_topics and auto_max_topics must be > 0 (got %d, %d)", t.MaxTopics, t.AutoMaxTopics)
	}
	if t.MaxSimilar <= 0 {
		return fmt.Errorf("max_similar must be > 0 (got %d)", t.MaxSimilar)
	}
	if t.AgendaItemSample < 0 {
		return fmt.Errorf("agenda_item_sample must be >= 0 (got %d)", t.AgendaItemSample)
	}
	if t.AutoDelay < 0 {
		return fmt.Errorf("auto_delay must be >= 0 (got %v)", t.AutoDelay)
	}
	return nil
}

func (w *WorkerConfig) validate() error {
	if w.Concurrency <= 0 {
		return fmt.Errorf("concurrency must be > 0 (got %d)", w.Concurrency)
	}
	if w.PollTimeout <= 0 {
		return fmt.Errorf("poll_timeout must be > 0 (got %v)", w.PollTimeout)
	}
	if w.MaxAttempts <= 0 {
		return fmt.Errorf("max_attempts must be > 0 (got %d)", w.MaxAttempts)
	}
	return nil
}

func unitInterval(name string, v float64) error {
	if v < 0 || v > 1 {
		return fmt.Errorf("%s must be within [0, 1] (got %v)", name, v)
	}
	return nil
}
