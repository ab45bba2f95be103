package domain

import (
	"time"
)

// Referral represents a single tracked patient case record from the
// referral overview workbook. String fields hold the cell text as-is
// after trimming; date fields are zero when the cell was empty or could
// not be parsed.
type Referral struct {
	PayerOrganization          string    `json:"payer_organization"`
	MemberID                   string    `json:"member_id"`
	ZipCode                    string    `json:"zip_code"`
	County                     string    `json:"county"`
	CreatedDate                time.Time `json:"referral_created_date"`
	StartDate                  time.Time `json:"referral_start_date"`
	EndDate                    time.Time `json:"referral_end_date"`
	ECMEnrollment              string    `json:"ecm_enrollment"`
	Condition                  string    `json:"condition"`
	ServiceType                string    `json:"service_type"`
	LastActivityCompleted      string    `json:"last_activity_completed"`
	LastActivityDate           time.Time `json:"last_activity_date"`
	PendingTask                string    `json:"pending_task"`
	LastBoxDate                time.Time `json:"last_delivered_box_date"`
	BoxType                    string    `json:"box_type"`
	BoxesSent                  int       `json:"boxes_sent"`
	OutreachWithin48Hours      string    `json:"outreach_within_48_hours"`
	OutreachAttempts           string    `json:"outreach_attempts"`
	OutreachMethod             string    `json:"outreach_method"`
	CounselingSessions         int       `json:"counseling_sessions"`
	NeedTARSubmission          string    `json:"need_tar_submission"`
	TARSubmissionStatus        string    `json:"tar_submission_status"`
	ClaimsSubmitted            string    `json:"claims_submitted"`
	OutstandingClaimsCHW       string    `json:"outstanding_claims_chw"`
	OutstandingClaimsMTG       string    `json:"outstanding_claims_mtg"`
	OutstandingClaimsNutrition string    `json:"outstanding_claims_nutrition"`
	ReadyForReauth             string    `json:"ready_for_reauth"`
	ReauthStatus               string    `json:"reauth_status"`

	// DaysInActivity is derived from the analysis date and LastActivityDate
	// during processing. HasDaysInActivity is false when LastActivityDate is
	// missing; day-threshold predicates never match such rows.
	DaysInActivity    int  `json:"days_in_current_activity"`
	HasDaysInActivity bool `json:"has_days_in_current_activity"`
}

// HasLastActivityDate reports whether the row carries a usable last
// activity date.
func (r *Referral) HasLastActivityDate() bool {
	return !r.LastActivityDate.IsZero()
}

// HasStartDate reports whether the row carries a usable referral start date.
func (r *Referral) HasStartDate() bool {
	return !r.StartDate.IsZero()
}
