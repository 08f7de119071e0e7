package domain

import (
	"time"

	"github.com/google/uuid"
)

// AppearanceEvidence is the kind of record that evidenced an appearance.
type AppearanceEvidence string

const (
	AppearanceAgendaItem       AppearanceEvidence = "agenda_item"
	AppearanceMeetingMinutes   AppearanceEvidence = "meeting_minutes"
	AppearanceDocumentCitation AppearanceEvidence = "document_citation"
)

func (e AppearanceEvidence) String() string { return string(e) }

func (e AppearanceEvidence) IsValid() bool {
	switch e {
	case AppearanceAgendaItem, AppearanceMeetingMinutes, AppearanceDocumentCitation:
		return true
	}
	return false
}

// TopicAppearance is one evidenced occurrence of a topic at a meeting.
// Appearances are append-only; AppearedAt is the engine's temporal axis.
type TopicAppearance struct {
	ID           uuid.UUID
	TopicID      uuid.UUID
	MeetingID    int64
	AgendaItemID *int64
	AppearedAt   time.Time
	BodyName     string
	EvidenceType AppearanceEvidence
	SourceRef    map[string]any
	CreatedAt    time.Time

	// AgendaItem is loaded alongside the appearance when it is linked.
	AgendaItem *AgendaItem
}

// Validate checks required fields and the evidence enum.
func (a *TopicAppearance) Validate() error {
	var errs []FieldError
	if a.TopicID == uuid.Nil {
		errs = append(errs, FieldError{Field: "topic_id", Message: "required"})
	}
	if a.MeetingID == 0 {
		errs = append(errs, FieldError{Field: "meeting_id", Message: "required"})
	}
	if a.AppearedAt.IsZero() {
		errs = append(errs, FieldError{Field: "appeared_at", Message: "required"})
	}
	if !a.EvidenceType.IsValid() {
		errs = append(errs, FieldError{Field: "evidence_type", Message: "invalid value"})
	}
	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}

// AppearanceFromAgendaItem builds the agenda_item appearance for a link
// between topicID and item. The meeting start time is used when present,
// falling back to the agenda item's creation time.
func AppearanceFromAgendaItem(topicID uuid.UUID, meeting Meeting, item AgendaItem) TopicAppearance {
	appearedAt := item.CreatedAt
	if meeting.StartsAt != nil {
		appearedAt = *meeting.StartsAt
	}
	itemID := item.ID
	return TopicAppearance{
		TopicID:      topicID,
		MeetingID:    meeting.ID,
		AgendaItemID: &itemID,
		AppearedAt:   appearedAt,
		BodyName:     meeting.BodyName,
		EvidenceType: AppearanceAgendaItem,
		SourceRef: map[string]any{
			"agenda_item_id": item.ID,
			"number":         item.Number,
			"title":          item.Title,
		},
	}
}
