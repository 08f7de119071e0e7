package continuity

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// MotionRecorded advances last activity of every topic linked to the
// motion's agenda item to the motion's meeting date. Motions without an
// agenda item or a dated meeting touch nothing. Returns the topics whose
// last activity moved.
func (s *Service) MotionRecorded(ctx context.Context, motionID int64) ([]uuid.UUID, error) {
	m, err := s.civic.GetMotion(ctx, motionID)
	if err != nil {
		return nil, fmt.Errorf("motion %d: %w", motionID, err)
	}
	if m.AgendaItemID == nil || m.MeetingStartsAt == nil {
		return nil, nil
	}

	ids, err := s.appearances.TopicIDsByAgendaItem(ctx, *m.AgendaItemID)
	if err != nil {
		return nil, fmt.Errorf("motion %d topics: %w", motionID, err)
	}

	var advanced []uuid.UUID
	for _, id := range ids {
		ok, err := s.topics.AdvanceLastActivity(ctx, id, *m.MeetingStartsAt)
		if err != nil {
			return advanced, fmt.Errorf("advance topic %s: %w", id, err)
		}
		if ok {
			advanced = append(advanced, id)
		}
	}

	if len(advanced) > 0 {
		s.log.InfoContext(ctx, "motion advanced topic activity",
			slog.Int64("motion_id", motionID),
			slog.Int("topics", len(advanced)),
		)
	}
	return advanced, nil
}
