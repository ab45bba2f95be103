package dataprocessing

import (
	"time"

	"refdash/pkg/contracts/domain"
)

// NormalizeDate strips the time-of-day component and anchors the date in
// UTC. Workbook dates and the analysis clock can carry different
// locations; a shared location keeps every date difference a whole number
// of days.
func NormalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Process derives the per-row analysis fields for the given analysis date
// and returns a new slice; input rows are never mutated.
//
// "Day(s) in Current Activity" is the whole number of days between the
// analysis date and the last activity date. Rows without a last activity
// date keep HasDaysInActivity false and never satisfy a day threshold.
func Process(referrals []domain.Referral, analysisDate time.Time) []domain.Referral {
	analysisDate = NormalizeDate(analysisDate)

	out := make([]domain.Referral, len(referrals))
	for i, r := range referrals {
		if r.HasLastActivityDate() {
			last := NormalizeDate(r.LastActivityDate)
			r.DaysInActivity = int(analysisDate.Sub(last).Hours() / 24)
			r.HasDaysInActivity = true
		} else {
			r.DaysInActivity = 0
			r.HasDaysInActivity = false
		}
		out[i] = r
	}
	return out
}
