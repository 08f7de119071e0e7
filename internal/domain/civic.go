package domain

import (
	"strings"
	"time"
)

// Meeting is a scraped government meeting. Owned by the scraping pipeline.
type Meeting struct {
	ID        int64
	BodyName  string
	StartsAt  *time.Time
	CreatedAt time.Time
}

// AgendaItem is one item on a meeting agenda.
type AgendaItem struct {
	ID                int64
	MeetingID         int64
	Number            string
	Title             string
	Summary           string
	RecommendedAction string
	CreatedAt         time.Time
}

// Motion is a recorded vote outcome, optionally tied to an agenda item.
type Motion struct {
	ID              int64
	MeetingID       int64
	AgendaItemID    *int64
	Outcome         string
	Description     string
	MeetingStartsAt *time.Time
}

// ResolvedOutcomes is the motion outcome vocabulary that counts as
// resolution evidence (compared case-insensitively).
var ResolvedOutcomes = []string{
	"passed",
	"adopted",
	"approved",
	"accepted",
	"enacted",
	"carried",
}

// IsResolvedOutcome reports whether outcome is in ResolvedOutcomes.
func IsResolvedOutcome(outcome string) bool {
	o := strings.ToLower(strings.TrimSpace(outcome))
	for _, r := range ResolvedOutcomes {
		if o == r {
			return true
		}
	}
	return false
}

// ScheduledItem is an agenda item together with the meeting it belongs to.
type ScheduledItem struct {
	Meeting Meeting
	Item    AgendaItem
}
