package continuity

import (
	"sort"
	"strings"
	"time"

	"github.com/heartmarshall/civic-topics-backend/internal/domain"
)

// DeferralKeywords are matched, in this order, against the latest agenda
// item's text. The first hit is reported.
var DeferralKeywords = []string{"defer", "continue", "table", "postpone", "lay over"}

const (
	notesRulesEngine    = "Derived from continuity rules"
	notesDisappearance  = "No activity for over 12 months"
	notesDeferralPrefix = "Matched deferral keyword: "
)

// Rules holds the lifecycle windows. Months are calendar months evaluated
// in Location.
type Rules struct {
	ActivityWindowMonths      int
	DisappearanceWindowMonths int
	CooldownMonths            int
	Location                  *time.Location
}

// DefaultRules returns the standard windows: 6 months activity, 12 months
// disappearance, 6 months resolution cooldown, UTC.
func DefaultRules() Rules {
	return Rules{
		ActivityWindowMonths:      6,
		DisappearanceWindowMonths: 12,
		CooldownMonths:            6,
		Location:                  time.UTC,
	}
}

func (r Rules) loc() *time.Location {
	if r.Location == nil {
		return time.UTC
	}
	return r.Location
}

func (r Rules) addMonths(t time.Time, months int) time.Time {
	return t.In(r.loc()).AddDate(0, months, 0)
}

// History is everything the engine reads for one topic.
type History struct {
	Appearances []domain.TopicAppearance
	Resolutions []domain.Motion
}

// Derivation is the outcome of Derive.
type Derivation struct {
	Status   domain.LifecycleStatus
	Changed  bool
	Events   []domain.StatusEvent
	Temporal domain.TemporalSummary
}

// Derive computes a topic's lifecycle status, the signal events that
// explain it and the temporal fields that need updating. It is pure: the
// same topic, history and now always yield the same result.
//
// Appearances are sorted by appearance time and resolutions by meeting
// start; resolutions without a meeting start are ignored.
func Derive(topic domain.Topic, h History, now time.Time, rules Rules) Derivation {
	apps := sortedAppearances(h.Appearances)
	resolutions := datedResolutions(h.Resolutions)

	var latest *domain.TopicAppearance
	if len(apps) > 0 {
		latest = &apps[len(apps)-1]
	}
	var latestResolution *domain.Motion
	if len(resolutions) > 0 {
		latestResolution = &resolutions[len(resolutions)-1]
	}

	status := deriveStatus(latest, latestResolution, now, rules)
	d := Derivation{Status: status}

	stage := func(evidence domain.EvidenceType, lifecycle domain.LifecycleStatus, at time.Time, ref map[string]any, notes string) {
		e := domain.StatusEvent{
			TopicID:         topic.ID,
			LifecycleStatus: lifecycle,
			EvidenceType:    evidence,
			OccurredAt:      domain.StorageTime(at),
			SourceRef:       ref,
		}
		if notes != "" {
			e.Notes = &notes
		}
		d.Events = append(d.Events, e)
	}

	for _, m := range resolutions {
		stage(domain.EvidenceMotionOutcome, domain.LifecycleResolved, *m.MeetingStartsAt,
			map[string]any{"motion_id": m.ID, "outcome": m.Outcome}, "")
	}

	if status == domain.LifecycleRecurring && latestResolution != nil {
		stage(domain.EvidenceAgendaRecurrence, domain.LifecycleRecurring, latest.AppearedAt,
			map[string]any{"prior_resolution_date": domain.StorageTime(*latestResolution.MeetingStartsAt)}, "")
	}

	if latest != nil && latest.AgendaItem != nil {
		if kw, ok := matchDeferral(*latest.AgendaItem); ok {
			stage(domain.EvidenceDeferralSignal, status, latest.AppearedAt,
				map[string]any{"keyword": kw, "agenda_item_id": latest.AgendaItem.ID},
				notesDeferralPrefix+kw)
		}
	}

	if status == domain.LifecycleDormant && latest != nil && len(resolutions) == 0 &&
		latest.AppearedAt.Before(rules.addMonths(now, -rules.DisappearanceWindowMonths)) {
		stage(domain.EvidenceDisappearanceSignal, domain.LifecycleDormant,
			rules.addMonths(latest.AppearedAt, rules.DisappearanceWindowMonths),
			map[string]any{"last_seen": domain.StorageTime(latest.AppearedAt)},
			notesDisappearance)
	}

	currentBody := ""
	for _, a := range apps {
		body := strings.TrimSpace(a.BodyName)
		if body == "" {
			continue
		}
		if currentBody != "" && body != currentBody {
			stage(domain.EvidenceCrossBodyProgression, status, a.AppearedAt,
				map[string]any{"from": currentBody, "to": body, "appearance_id": a.ID}, "")
		}
		currentBody = body
	}

	d.Changed = topic.LifecycleStatus == nil || *topic.LifecycleStatus != status
	if d.Changed && !explained(d.Events, status) {
		stage(domain.EvidenceRulesEngineUpdate, status, now, nil, notesRulesEngine)
	}

	if len(apps) > 0 {
		d.Temporal = temporal(topic, apps[0].AppearedAt, latest.AppearedAt)
	}
	return d
}

func deriveStatus(latest *domain.TopicAppearance, resolution *domain.Motion, now time.Time, rules Rules) domain.LifecycleStatus {
	if latest == nil {
		return domain.LifecycleDormant
	}
	lastSeen := latest.AppearedAt

	if resolution != nil {
		resolvedAt := *resolution.MeetingStartsAt
		if !calendarDate(resolvedAt, rules.loc()).Before(calendarDate(lastSeen, rules.loc())) {
			return domain.LifecycleResolved
		}
		if lastSeen.After(rules.addMonths(resolvedAt, rules.CooldownMonths)) {
			return domain.LifecycleRecurring
		}
	}

	if lastSeen.After(rules.addMonths(now, -rules.ActivityWindowMonths)) {
		return domain.LifecycleActive
	}
	return domain.LifecycleDormant
}

// explained reports whether a staged event records status under an
// evidence type that can account for a transition.
func explained(events []domain.StatusEvent, status domain.LifecycleStatus) bool {
	for _, e := range events {
		if e.LifecycleStatus == status && e.EvidenceType.ExplainsTransition() {
			return true
		}
	}
	return false
}

func matchDeferral(item domain.AgendaItem) (string, bool) {
	text := strings.ToLower(strings.Join([]string{item.Title, item.RecommendedAction, item.Summary}, " "))
	for _, kw := range DeferralKeywords {
		if strings.Contains(text, kw) {
			return kw, true
		}
	}
	return "", false
}

func temporal(topic domain.Topic, first, last time.Time) domain.TemporalSummary {
	first = domain.StorageTime(first)
	last = domain.StorageTime(last)

	var s domain.TemporalSummary
	if topic.FirstSeenAt == nil || !topic.FirstSeenAt.Equal(first) {
		s.FirstSeenAt = &first
	}
	if topic.LastSeenAt == nil || !topic.LastSeenAt.Equal(last) {
		s.LastSeenAt = &last
	}
	if topic.LastActivityAt == nil || topic.LastActivityAt.Before(last) {
		s.LastActivityAt = &last
	}
	return s
}

// calendarDate truncates t to midnight of its day in loc.
func calendarDate(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

func sortedAppearances(in []domain.TopicAppearance) []domain.TopicAppearance {
	out := append([]domain.TopicAppearance(nil), in...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AppearedAt.Before(out[j].AppearedAt)
	})
	return out
}

func datedResolutions(in []domain.Motion) []domain.Motion {
	out := make([]domain.Motion, 0, len(in))
	for _, m := range in {
		if m.MeetingStartsAt != nil && domain.IsResolvedOutcome(m.Outcome) {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MeetingStartsAt.Before(*out[j].MeetingStartsAt)
	})
	return out
}
