package domain

import (
	"time"

	"github.com/google/uuid"
)

// EvidenceType names the signal that justified a status event.
type EvidenceType string

const (
	EvidenceMotionOutcome        EvidenceType = "motion_outcome"
	EvidenceAgendaRecurrence     EvidenceType = "agenda_recurrence"
	EvidenceDeferralSignal       EvidenceType = "deferral_signal"
	EvidenceDisappearanceSignal  EvidenceType = "disappearance_signal"
	EvidenceCrossBodyProgression EvidenceType = "cross_body_progression"
	EvidenceRulesEngineUpdate    EvidenceType = "rules_engine_update"
)

func (e EvidenceType) String() string { return string(e) }

func (e EvidenceType) IsValid() bool {
	switch e {
	case EvidenceMotionOutcome, EvidenceAgendaRecurrence, EvidenceDeferralSignal,
		EvidenceDisappearanceSignal, EvidenceCrossBodyProgression, EvidenceRulesEngineUpdate:
		return true
	}
	return false
}

// ExplainsTransition reports whether an event of this type can account for
// a lifecycle transition. Deferral and cross-body signals only annotate.
func (e EvidenceType) ExplainsTransition() bool {
	return e != EvidenceCrossBodyProgression && e != EvidenceDeferralSignal
}

// StatusEvent is an append-only audit entry written by the continuity engine.
type StatusEvent struct {
	ID              uuid.UUID
	TopicID         uuid.UUID
	LifecycleStatus LifecycleStatus
	EvidenceType    EvidenceType
	OccurredAt      time.Time
	SourceRef       map[string]any
	Notes           *string
	CreatedAt       time.Time
}

// StatusEventKey is the natural key that makes status events idempotent.
type StatusEventKey struct {
	TopicID         uuid.UUID
	EvidenceType    EvidenceType
	LifecycleStatus LifecycleStatus
	OccurredAt      time.Time
}

// Key returns the event's natural key with OccurredAt normalized to UTC
// microseconds (the storage precision).
func (e StatusEvent) Key() StatusEventKey {
	return StatusEventKey{
		TopicID:         e.TopicID,
		EvidenceType:    e.EvidenceType,
		LifecycleStatus: e.LifecycleStatus,
		OccurredAt:      StorageTime(e.OccurredAt),
	}
}

// Validate checks enums and required fields.
func (e StatusEvent) Validate() error {
	var errs []FieldError
	if e.TopicID == uuid.Nil {
		errs = append(errs, FieldError{Field: "topic_id", Message: "required"})
	}
	if !e.LifecycleStatus.IsValid() {
		errs = append(errs, FieldError{Field: "lifecycle_status", Message: "invalid value"})
	}
	if !e.EvidenceType.IsValid() {
		errs = append(errs, FieldError{Field: "evidence_type", Message: "invalid value"})
	}
	if e.OccurredAt.IsZero() {
		errs = append(errs, FieldError{Field: "occurred_at", Message: "required"})
	}
	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}

// StorageTime truncates t to the microsecond precision of timestamptz, in UTC.
func StorageTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

// ReviewAction is a governance action recorded against a topic.
type ReviewAction string

const (
	ReviewApproved    ReviewAction = "approved"
	ReviewBlocked     ReviewAction = "blocked"
	ReviewNeedsReview ReviewAction = "needs_review"
	ReviewUnblocked   ReviewAction = "unblocked"
	ReviewMerged      ReviewAction = "merged"
)

func (a ReviewAction) String() string { return string(a) }

func (a ReviewAction) IsValid() bool {
	switch a {
	case ReviewApproved, ReviewBlocked, ReviewNeedsReview, ReviewUnblocked, ReviewMerged:
		return true
	}
	return false
}

// ReviewEvent audits a governance action. Automated events carry the
// classifier confidence; manual ones carry the acting user.
type ReviewEvent struct {
	ID         uuid.UUID
	TopicID    uuid.UUID
	UserID     *uuid.UUID
	Action     ReviewAction
	Automated  bool
	Confidence *float64
	Reason     string
	CreatedAt  time.Time
}
