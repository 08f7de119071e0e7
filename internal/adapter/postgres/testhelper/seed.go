package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/civic-topics-backend/internal/domain"
)

// UniqueName returns prefix plus a short random suffix made of letters, so the
// result survives name normalization unchanged.
func UniqueName(prefix string) string {
	const letters = "abcdefghijklmnopqrstuvwxyz"
	id := uuid.New()
	b := make([]byte, 8)
	for i := range b {
		b[i] = letters[int(id[i])%len(letters)]
	}
	return prefix + " " + string(b)
}

// SeedMeeting inserts a meeting. startsAt may be nil.
func SeedMeeting(t *testing.T, pool *pgxpool.Pool, body string, startsAt *time.Time) domain.Meeting {
	t.Helper()

	m := domain.Meeting{BodyName: body}
	if startsAt != nil {
		s := startsAt.UTC().Truncate(time.Microsecond)
		m.StartsAt = &s
	}

	err := pool.QueryRow(context.Background(),
		`INSERT INTO meetings (body_name, starts_at) VALUES ($1, $2) RETURNING id, created_at`,
		m.BodyName, m.StartsAt,
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedMeeting: %v", err)
	}
	return m
}

// SeedAgendaItem inserts an agenda item under meetingID.
func SeedAgendaItem(t *testing.T, pool *pgxpool.Pool, meetingID int64, title, summary, action string) domain.AgendaItem {
	t.Helper()

	item := domain.AgendaItem{
		MeetingID:         meetingID,
		Title:             title,
		Summary:           summary,
		RecommendedAction: action,
	}
	err := pool.QueryRow(context.Background(),
		`INSERT INTO agenda_items (meeting_id, number, title, summary, recommended_action)
		 VALUES ($1, '', $2, $3, $4) RETURNING id, created_at`,
		meetingID, title, summary, action,
	).Scan(&item.ID, &item.CreatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedAgendaItem: %v", err)
	}
	return item
}

// SeedMotion records a motion on an agenda item.
func SeedMotion(t *testing.T, pool *pgxpool.Pool, meetingID, agendaItemID int64, outcome string) domain.Motion {
	t.Helper()

	mo := domain.Motion{MeetingID: meetingID, AgendaItemID: &agendaItemID, Outcome: outcome}
	err := pool.QueryRow(context.Background(),
		`INSERT INTO motions (meeting_id, agenda_item_id, outcome) VALUES ($1, $2, $3) RETURNING id`,
		meetingID, agendaItemID, outcome,
	).Scan(&mo.ID)
	if err != nil {
		t.Fatalf("testhelper: SeedMotion: %v", err)
	}
	return mo
}

// SeedTopic inserts a topic with the given normalized name and status.
func SeedTopic(t *testing.T, pool *pgxpool.Pool, name string, status domain.TopicStatus) domain.Topic {
	t.Helper()

	topic, err := domain.NewTopic(name, status)
	if err != nil {
		t.Fatalf("testhelper: SeedTopic: %v", err)
	}
	topic.ID = uuid.New()

	err = pool.QueryRow(context.Background(),
		`INSERT INTO topics (id, name, canonical_name, slug, status, review_status)
		 VALUES ($1, $2, $3, $4, $5, $5) RETURNING created_at, updated_at`,
		topic.ID, topic.Name, topic.CanonicalName, topic.Slug, string(topic.Status),
	).Scan(&topic.CreatedAt, &topic.UpdatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedTopic insert: %v", err)
	}
	return *topic
}

// LinkAgendaItem links an agenda item to a topic.
func LinkAgendaItem(t *testing.T, pool *pgxpool.Pool, agendaItemID int64, topicID uuid.UUID) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`INSERT INTO agenda_item_topics (agenda_item_id, topic_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		agendaItemID, topicID,
	)
	if err != nil {
		t.Fatalf("testhelper: LinkAgendaItem: %v", err)
	}
}
