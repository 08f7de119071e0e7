package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TaskType identifies a background task handled by the worker.
type TaskType string

const (
	TaskUpdateContinuity    TaskType = "update_continuity"
	TaskExtractTopics       TaskType = "extract_topics"
	TaskAutoTriage          TaskType = "auto_triage"
	TaskMotionRecorded      TaskType = "motion_recorded"
	TaskBackfillContinuity  TaskType = "backfill_continuity"
	TaskGenerateDescription TaskType = "generate_description"
)

// Queue names. Description generation is consumed outside this module.
const (
	QueueDefault      = "default"
	QueueDescriptions = "descriptions"
)

func (t TaskType) String() string { return string(t) }

func (t TaskType) IsValid() bool {
	switch t {
	case TaskUpdateContinuity, TaskExtractTopics, TaskAutoTriage,
		TaskMotionRecorded, TaskBackfillContinuity, TaskGenerateDescription:
		return true
	}
	return false
}

// Queue returns the queue a task of this type is routed to.
func (t TaskType) Queue() string {
	if t == TaskGenerateDescription {
		return QueueDescriptions
	}
	return QueueDefault
}

// Task is the queue envelope. Delivery is at-least-once.
type Task struct {
	ID         uuid.UUID       `json:"id"`
	Type       TaskType        `json:"type"`
	Args       json.RawMessage `json:"args"`
	Attempt    int             `json:"attempt"`
	EnqueuedAt time.Time       `json:"enqueued_at"`
}

// NewTask wraps args into a fresh envelope.
func NewTask(typ TaskType, args any) (Task, error) {
	if !typ.IsValid() {
		return Task{}, NewValidationError("type", "unknown task type")
	}
	raw, err := json.Marshal(args)
	if err != nil {
		return Task{}, fmt.Errorf("marshal %s args: %w", typ, err)
	}
	return Task{
		ID:         uuid.New(),
		Type:       typ,
		Args:       raw,
		EnqueuedAt: time.Now().UTC(),
	}, nil
}

// Decode unmarshals the task arguments into dst.
func (t Task) Decode(dst any) error {
	if len(t.Args) == 0 {
		return nil
	}
	if err := json.Unmarshal(t.Args, dst); err != nil {
		return fmt.Errorf("decode %s args: %w", t.Type, err)
	}
	return nil
}

// ContinuityArgs selects topics for a continuity update: a single topic, or
// every topic linked to a meeting.
type ContinuityArgs struct {
	TopicID   *uuid.UUID `json:"topic_id,omitempty"`
	MeetingID *int64     `json:"meeting_id,omitempty"`
}

// ExtractArgs requests topic extraction for one meeting.
type ExtractArgs struct {
	MeetingID int64 `json:"meeting_id"`
}

// MotionArgs announces a newly recorded motion.
type MotionArgs struct {
	MotionID int64 `json:"motion_id"`
}

// BackfillArgs rebuilds continuity for one topic, or all topics when nil.
type BackfillArgs struct {
	TopicID *uuid.UUID `json:"topic_id,omitempty"`
}

// DescriptionArgs asks the description generator to write a topic summary.
type DescriptionArgs struct {
	TopicID uuid.UUID `json:"topic_id"`
}

// AutoTriageArgs carries no fields; it exists for a uniform envelope.
type AutoTriageArgs struct{}
