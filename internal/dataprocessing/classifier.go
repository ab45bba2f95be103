package dataprocessing

import (
	"strings"
	"time"

	"refdash/pkg/contracts/domain"
)

// Pending task values matched exactly by the day-threshold categories.
const (
	taskMTGBoxDelivery  = "MTG Box Delivery"
	taskNutritionAssess = "Nutritional assessment"
	taskSpeakToMember   = "Speak to Member"
	taskTARApproval     = "TAR Approval"
)

// Re-authorization windows per payer organization.
const (
	reauthWindowCCHPDays  = 11 * 7
	reauthWindowCCAHDays  = 15 * 7
	reauthWindowPHPMonths = 5
)

// cchpNutritionMinAgeDays is how old a CCHP referral must be before it is
// flagged for pending nutrition counseling.
const cchpNutritionMinAgeDays = 49

// Classify runs every category predicate over the processed rows and
// returns the per-category row sets in the fixed category order. A row may
// land in any number of categories; each category is an independent view.
func Classify(referrals []domain.Referral, analysisDate time.Time) []domain.CategoryResult {
	analysisDate = NormalizeDate(analysisDate)

	results := make([]domain.CategoryResult, 0, len(domain.Categories()))
	for _, category := range domain.Categories() {
		match := predicateFor(category.Key)
		var rows []domain.Referral
		for _, r := range referrals {
			if match(&r, analysisDate) {
				rows = append(rows, r)
			}
		}
		results = append(results, domain.CategoryResult{Category: category, Rows: rows})
	}
	return results
}

// predicate evaluates one row against one category.
type predicate func(r *domain.Referral, analysisDate time.Time) bool

func predicateFor(key domain.CategoryKey) predicate {
	switch key {
	case domain.CategoryInitialMTG:
		return matchInitialMTG
	case domain.CategoryOngoingMTG:
		return matchOngoingMTG
	case domain.CategoryNutritionAssessment:
		return matchNutritionAssessment
	case domain.CategorySpeakToMember:
		return matchSpeakToMember
	case domain.CategoryTARApproval:
		return matchTARApproval
	case domain.CategoryCCHPNutrition:
		return matchCCHPNutrition
	case domain.CategoryReauthPending:
		return matchReauthPending
	default:
		return func(*domain.Referral, time.Time) bool { return false }
	}
}

// matchInitialMTG flags referrals waiting four or more days for their
// first grocery box.
func matchInitialMTG(r *domain.Referral, _ time.Time) bool {
	return r.PendingTask == taskMTGBoxDelivery &&
		r.HasDaysInActivity && r.DaysInActivity >= 4 &&
		r.BoxesSent == 0
}

// matchOngoingMTG flags referrals waiting eight or more days for a
// follow-up box.
func matchOngoingMTG(r *domain.Referral, _ time.Time) bool {
	return r.PendingTask == taskMTGBoxDelivery &&
		r.HasDaysInActivity && r.DaysInActivity >= 8 &&
		r.BoxesSent != 0
}

func matchNutritionAssessment(r *domain.Referral, _ time.Time) bool {
	return r.PendingTask == taskNutritionAssess &&
		r.HasDaysInActivity && r.DaysInActivity >= 14
}

func matchSpeakToMember(r *domain.Referral, _ time.Time) bool {
	return r.PendingTask == taskSpeakToMember &&
		r.HasDaysInActivity && r.DaysInActivity >= 14
}

func matchTARApproval(r *domain.Referral, _ time.Time) bool {
	return r.PendingTask == taskTARApproval &&
		r.HasDaysInActivity && r.DaysInActivity >= 8
}

// matchCCHPNutrition flags CCHP referrals created at least 49 days ago
// that have completed at most one counseling session and are not
// discontinued.
func matchCCHPNutrition(r *domain.Referral, analysisDate time.Time) bool {
	if payerOrg(r) != "CCHP" {
		return false
	}
	if r.CreatedDate.IsZero() {
		return false
	}
	cutoff := analysisDate.AddDate(0, 0, -cchpNutritionMinAgeDays)
	if NormalizeDate(r.CreatedDate).After(cutoff) {
		return false
	}
	if r.CounselingSessions != 0 && r.CounselingSessions != 1 {
		return false
	}
	return !strings.Contains(strings.ToLower(r.PendingTask), "discontinued")
}

// matchReauthPending flags referrals whose re-authorization window has
// elapsed without a submission. The window depends on the payer: CCHP 11
// weeks, CCAH 15 weeks, PHP 5 calendar months.
func matchReauthPending(r *domain.Referral, analysisDate time.Time) bool {
	if strings.ToUpper(strings.TrimSpace(r.ReauthStatus)) != "NA" {
		return false
	}
	switch strings.ToLower(r.PendingTask) {
	case "services discontinued", "service discontinued":
		return false
	}
	if strings.ToLower(strings.TrimSpace(r.LastActivityCompleted)) == "reauthorization approved" {
		return false
	}
	if !r.HasStartDate() {
		return false
	}

	start := NormalizeDate(r.StartDate)
	switch payerOrg(r) {
	case "CCHP":
		return !analysisDate.Before(start.AddDate(0, 0, reauthWindowCCHPDays))
	case "CCAH":
		return !analysisDate.Before(start.AddDate(0, 0, reauthWindowCCAHDays))
	case "PHP":
		return !analysisDate.Before(addMonths(start, reauthWindowPHPMonths))
	}
	return false
}

// addMonths advances a date by calendar months, clamping to the last day
// of the target month. Jan 31 plus five months is Jun 30, not Jul 1.
func addMonths(t time.Time, months int) time.Time {
	first := time.Date(t.Year(), t.Month()+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	day := t.Day()
	if last := first.AddDate(0, 1, -1).Day(); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, t.Location())
}

func payerOrg(r *domain.Referral) string {
	return strings.ToUpper(strings.TrimSpace(r.PayerOrganization))
}
