package domain

import (
	"time"

	"github.com/google/uuid"
)

// TopicStatus is the governance state of a topic.
type TopicStatus string

const (
	TopicStatusProposed TopicStatus = "proposed"
	TopicStatusApproved TopicStatus = "approved"
	TopicStatusBlocked  TopicStatus = "blocked"
)

// DefaultTopicStatus is assigned to every topic created by the identity
// resolver. Publication happens through triage or manual review.
const DefaultTopicStatus = TopicStatusProposed

func (s TopicStatus) String() string { return string(s) }

func (s TopicStatus) IsValid() bool {
	switch s {
	case TopicStatusProposed, TopicStatusApproved, TopicStatusBlocked:
		return true
	}
	return false
}

// LifecycleStatus describes a topic's current engagement with government.
type LifecycleStatus string

const (
	LifecycleActive    LifecycleStatus = "active"
	LifecycleDormant   LifecycleStatus = "dormant"
	LifecycleResolved  LifecycleStatus = "resolved"
	LifecycleRecurring LifecycleStatus = "recurring"
)

func (s LifecycleStatus) String() string { return string(s) }

func (s LifecycleStatus) IsValid() bool {
	switch s {
	case LifecycleActive, LifecycleDormant, LifecycleResolved, LifecycleRecurring:
		return true
	}
	return false
}

// ResidentImpactLockWindow is how long an administrator's resident impact
// score suppresses automated updates.
const ResidentImpactLockWindow = 180 * 24 * time.Hour

// Topic is a canonical, deduplicated civic concern.
type Topic struct {
	ID            uuid.UUID
	Name          string
	CanonicalName string
	Slug          string
	Description   *string

	Status          TopicStatus
	ReviewStatus    *TopicStatus
	LifecycleStatus *LifecycleStatus

	FirstSeenAt    *time.Time
	LastSeenAt     *time.Time
	LastActivityAt *time.Time

	Importance                 int
	ResidentImpactScore        *int
	ResidentImpactOverriddenAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewTopic builds an unsaved topic from a raw name. Name, canonical name and
// slug are all derived from the normalized name.
func NewTopic(rawName string, status TopicStatus) (*Topic, error) {
	name := NormalizeName(rawName)
	t := &Topic{
		Name:          name,
		CanonicalName: name,
		Slug:          Slugify(name),
		Status:        status,
		ReviewStatus:  &status,
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate checks enum and range invariants before any persistence attempt.
func (t *Topic) Validate() error {
	var errs []FieldError

	if t.Name == "" {
		errs = append(errs, FieldError{Field: "name", Message: "required"})
	}
	if t.Name != NormalizeName(t.Name) {
		errs = append(errs, FieldError{Field: "name", Message: "must be normalized"})
	}
	if !t.Status.IsValid() {
		errs = append(errs, FieldError{Field: "status", Message: "invalid value"})
	}
	if t.ReviewStatus != nil && !t.ReviewStatus.IsValid() {
		errs = append(errs, FieldError{Field: "review_status", Message: "invalid value"})
	}
	if t.LifecycleStatus != nil && !t.LifecycleStatus.IsValid() {
		errs = append(errs, FieldError{Field: "lifecycle_status", Message: "invalid value"})
	}
	if t.Importance < 0 || t.Importance > 10 {
		errs = append(errs, FieldError{Field: "importance", Message: "must be between 0 and 10"})
	}
	if t.ResidentImpactScore != nil {
		if err := ValidateResidentImpactScore(*t.ResidentImpactScore); err != nil {
			errs = append(errs, err.Errors...)
		}
	}

	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}

// ValidateResidentImpactScore rejects scores outside 1..5.
func ValidateResidentImpactScore(score int) *ValidationError {
	if score < 1 || score > 5 {
		return NewValidationError("resident_impact_score", "must be between 1 and 5")
	}
	return nil
}

// Lifecycle returns the stored lifecycle status, or "" before the first
// continuity run.
func (t *Topic) Lifecycle() LifecycleStatus {
	if t.LifecycleStatus == nil {
		return ""
	}
	return *t.LifecycleStatus
}

// ResidentImpactLocked reports whether an administrator override is still
// inside the lock window at now.
func (t *Topic) ResidentImpactLocked(now time.Time) bool {
	if t.ResidentImpactOverriddenAt == nil {
		return false
	}
	return t.ResidentImpactOverriddenAt.After(now.Add(-ResidentImpactLockWindow))
}

// Ref returns the similarity-scan projection of the topic.
func (t *Topic) Ref() TopicRef {
	return TopicRef{ID: t.ID, Name: t.Name}
}

// TopicFilter narrows topic listings. Zero values mean "any".
type TopicFilter struct {
	Status          *TopicStatus
	LifecycleStatus *LifecycleStatus
	Limit           int
	Offset          int
}

// TemporalSummary holds the cached seen/activity timestamps of a topic.
// Nil fields are left untouched on update.
type TemporalSummary struct {
	FirstSeenAt    *time.Time
	LastSeenAt     *time.Time
	LastActivityAt *time.Time
}

// IsEmpty reports whether the summary carries no changes.
func (s TemporalSummary) IsEmpty() bool {
	return s.FirstSeenAt == nil && s.LastSeenAt == nil && s.LastActivityAt == nil
}

// TopicAlias is an alternate normalized name owned by a topic.
type TopicAlias struct {
	ID        uuid.UUID
	TopicID   uuid.UUID
	Name      string
	CreatedAt time.Time
}

// BlocklistEntry is a normalized name that must never become a topic.
type BlocklistEntry struct {
	ID        uuid.UUID
	Name      string
	Reason    *string
	CreatedAt time.Time
}
