package topic

import (
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/civic-topics-backend/internal/domain"
)

// ReviewInput holds the parameters for a manual review action.
type ReviewInput struct {
	TopicID uuid.UUID
	Action  domain.ReviewAction
	Reason  *string
}

// Validate checks all fields and collects all errors.
func (i ReviewInput) Validate() error {
	var errs []domain.FieldError

	if i.TopicID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "topic_id", Message: "required"})
	}
	switch i.Action {
	case domain.ReviewApproved, domain.ReviewBlocked, domain.ReviewNeedsReview, domain.ReviewUnblocked:
	default:
		errs = append(errs, domain.FieldError{Field: "action", Message: "must be approved, blocked, needs_review or unblocked"})
	}
	if i.Reason != nil && len(strings.TrimSpace(*i.Reason)) > 1000 {
		errs = append(errs, domain.FieldError{Field: "reason", Message: "max 1000 characters"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// MergeInput holds the parameters for a manual merge.
type MergeInput struct {
	SourceID uuid.UUID
	TargetID uuid.UUID
	Reason   *string
}

// Validate checks all fields and collects all errors.
func (i MergeInput) Validate() error {
	var errs []domain.FieldError
	if i.SourceID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "source_id", Message: "required"})
	}
	if i.TargetID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "target_id", Message: "required"})
	}
	if i.SourceID != uuid.Nil && i.SourceID == i.TargetID {
		errs = append(errs, domain.FieldError{Field: "target_id", Message: "must differ from source_id"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ListTopicsInput narrows a topic listing.
type ListTopicsInput struct {
	Status          *domain.TopicStatus
	LifecycleStatus *domain.LifecycleStatus
	Limit           int
	Offset          int
}

// Validate checks all fields and collects all errors.
func (i ListTopicsInput) Validate() error {
	var errs []domain.FieldError
	if i.Status != nil && !i.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "invalid value"})
	}
	if i.LifecycleStatus != nil && !i.LifecycleStatus.IsValid() {
		errs = append(errs, domain.FieldError{Field: "lifecycle_status", Message: "invalid value"})
	}
	if i.Limit < 0 || i.Limit > 500 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be between 0 and 500"})
	}
	if i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must not be negative"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
