package triage

import (
	"github.com/heartmarshall/civic-topics-backend/internal/domain"
)

// Thresholds are the minimum confidences at which each decision category is
// applied. ApproveNovel covers approvals of topics that have never been
// reviewed before.
type Thresholds struct {
	Block        float64
	Merge        float64
	Approve      float64
	ApproveNovel float64
}

// Validate rejects thresholds outside [0, 1].
func (t Thresholds) Validate() error {
	var errs []domain.FieldError
	check := func(field string, v float64) {
		if v < 0 || v > 1 {
			errs = append(errs, domain.FieldError{Field: field, Message: "must be between 0 and 1"})
		}
	}
	check("block", t.Block)
	check("merge", t.Merge)
	check("approve", t.Approve)
	check("approve_novel", t.ApproveNovel)
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// clears reports whether confidence meets threshold. Equal counts.
func clears(confidence, threshold float64) bool {
	return confidence >= threshold
}
