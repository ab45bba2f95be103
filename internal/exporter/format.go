package exporter

import (
	"strconv"
	"time"

	"refdash/internal/dataprocessing"
	"refdash/pkg/contracts/domain"
)

const dateFormat = "2006-01-02"

// formatDate renders a workbook date cell; missing dates render empty.
func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateFormat)
}

// formatInt formats an int value for CSV and sheet output
func formatInt(i int) string {
	return strconv.Itoa(i)
}

// ReferralHeaders returns the column headers used on every referral sheet,
// matching the input workbook's column order.
func ReferralHeaders() []string {
	return dataprocessing.ExpectedColumns()
}

// ReferralRow renders a referral as one output row in header order.
func ReferralRow(r *domain.Referral) []string {
	days := ""
	if r.HasDaysInActivity {
		days = formatInt(r.DaysInActivity)
	}
	return []string{
		r.PayerOrganization,
		r.MemberID,
		r.ZipCode,
		r.County,
		formatDate(r.CreatedDate),
		formatDate(r.StartDate),
		formatDate(r.EndDate),
		r.ECMEnrollment,
		r.Condition,
		r.ServiceType,
		r.LastActivityCompleted,
		formatDate(r.LastActivityDate),
		r.PendingTask,
		days,
		formatDate(r.LastBoxDate),
		r.BoxType,
		formatInt(r.BoxesSent),
		r.OutreachWithin48Hours,
		r.OutreachAttempts,
		r.OutreachMethod,
		formatInt(r.CounselingSessions),
		r.NeedTARSubmission,
		r.TARSubmissionStatus,
		r.ClaimsSubmitted,
		r.OutstandingClaimsCHW,
		r.OutstandingClaimsMTG,
		r.OutstandingClaimsNutrition,
		r.ReadyForReauth,
		r.ReauthStatus,
	}
}

// SummaryHeaders returns the summary table headers.
func SummaryHeaders() []string {
	return []string{"Category", "Number of Referrals", "Definition"}
}

// SummaryRows renders the summary table in its fixed order.
func SummaryRows(summary []domain.SummaryRow) [][]string {
	rows := make([][]string, 0, len(summary))
	for _, s := range summary {
		rows = append(rows, []string{s.Category, formatInt(s.Referrals), s.Definition})
	}
	return rows
}
