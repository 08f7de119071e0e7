package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Extraction categories whose items never produce topics.
var NonTopicCategories = []string{"Administrative", "Routine"}

// LowConfidenceExtraction is the score below which an extracted item is
// logged as suspect. It is still processed.
const LowConfidenceExtraction = 0.5

// ExtractionItem is one agenda item sent to the classifier for tagging.
type ExtractionItem struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Summary string `json:"summary,omitempty"`
}

// ExtractionRequest is the classifier input for one meeting.
type ExtractionRequest struct {
	BodyName       string           `json:"body_name"`
	Items          []ExtractionItem `json:"items"`
	ExistingTopics []string         `json:"existing_topics"`
}

// ItemClassification is the classifier's verdict for one agenda item.
type ItemClassification struct {
	ID          int64    `json:"id"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	Confidence  *float64 `json:"confidence,omitempty"`
	TopicWorthy *bool    `json:"topic_worthy,omitempty"`
}

// Skip reports whether the item must not reach the identity resolver.
// A missing topic_worthy flag counts as true.
func (c ItemClassification) Skip() bool {
	for _, cat := range NonTopicCategories {
		if strings.EqualFold(strings.TrimSpace(c.Category), cat) {
			return true
		}
	}
	return c.TopicWorthy != nil && !*c.TopicWorthy
}

// LowConfidence reports whether the classifier flagged weak confidence.
func (c ItemClassification) LowConfidence() bool {
	return c.Confidence != nil && *c.Confidence < LowConfidenceExtraction
}

// ExtractionResponse is `{"items": [...]}`.
type ExtractionResponse struct {
	Items []ItemClassification `json:"items"`
}

// ProceduralKeywords are phrases that mark meeting procedure rather than a
// civic topic. They are handed to the triage classifier as block hints.
var ProceduralKeywords = []string{
	"roberts rules",
	"call to order",
	"roll call",
	"adjourn",
	"agenda approval",
	"minutes",
	"proclamation",
	"pledge",
	"public comment",
	"consent agenda",
	"communications",
	"announcements",
}

// TriageAgendaItem is a sampled agenda item attached to a triage candidate.
type TriageAgendaItem struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Summary string `json:"summary,omitempty"`
}

// TriageTopic is one proposed topic in the triage payload.
type TriageTopic struct {
	ID              uuid.UUID          `json:"id"`
	Name            string             `json:"name"`
	CanonicalName   string             `json:"canonical_name"`
	LifecycleStatus LifecycleStatus    `json:"lifecycle_status,omitempty"`
	Status          TopicStatus        `json:"status"`
	LastActivityAt  *time.Time         `json:"last_activity_at,omitempty"`
	AgendaItems     []TriageAgendaItem `json:"agenda_items"`
}

// SimilarTopic is a similarity neighbour of a triage candidate.
type SimilarTopic struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// SimilarityCandidate pairs a proposed topic with its nearest neighbours.
type SimilarityCandidate struct {
	TopicID   uuid.UUID      `json:"topic_id"`
	TopicName string         `json:"topic_name"`
	Similar   []SimilarTopic `json:"similar"`
}

// TriageRequest is the classifier input for a triage batch.
type TriageRequest struct {
	ProceduralKeywords   []string              `json:"procedural_keywords"`
	SimilarityThreshold  float64               `json:"similarity_threshold"`
	Topics               []TriageTopic         `json:"topics"`
	SimilarityCandidates []SimilarityCandidate `json:"similarity_candidates"`
}

// MergeDecision folds Aliases into Canonical.
type MergeDecision struct {
	Canonical  string   `json:"canonical"`
	Aliases    []string `json:"aliases"`
	Rationale  string   `json:"rationale"`
	Confidence float64  `json:"confidence"`
}

// TopicDecision approves or blocks a single topic.
type TopicDecision struct {
	Topic      string  `json:"topic"`
	Rationale  string  `json:"rationale"`
	Confidence float64 `json:"confidence"`
}

// TriageResponse is `{"merge_map": [...], "approvals": [...], "blocks": [...]}`.
type TriageResponse struct {
	MergeMap  []MergeDecision `json:"merge_map"`
	Approvals []TopicDecision `json:"approvals"`
	Blocks    []TopicDecision `json:"blocks"`
}

// Validate rejects a response carrying a confidence outside [0, 1]. The
// whole response is refused so a batch is never applied in part.
func (r TriageResponse) Validate() error {
	check := func(kind string, i int, c float64) error {
		if c < 0 || c > 1 {
			return fmt.Errorf("%w: %s[%d] confidence %v out of range", ErrMalformedResponse, kind, i, c)
		}
		return nil
	}
	for i, m := range r.MergeMap {
		if err := check("merge_map", i, m.Confidence); err != nil {
			return err
		}
	}
	for i, d := range r.Approvals {
		if err := check("approvals", i, d.Confidence); err != nil {
			return err
		}
	}
	for i, d := range r.Blocks {
		if err := check("blocks", i, d.Confidence); err != nil {
			return err
		}
	}
	return nil
}
