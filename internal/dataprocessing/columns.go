package dataprocessing

import (
	"fmt"
	"strings"
)

// Expected column headers of the referral overview workbook. Header cells
// are compared after trimming surrounding whitespace.
const (
	ColPayerOrganization          = "Payer Organization"
	ColMemberID                   = "Implify Member ID"
	ColZipCode                    = "Zip Code"
	ColCounty                     = "County"
	ColCreatedDate                = "Referral Created Date"
	ColStartDate                  = "Referral Start Date"
	ColEndDate                    = "Referral End Date"
	ColECMEnrollment              = "ECM Enrollment"
	ColCondition                  = "Condition"
	ColServiceType                = "Service Type"
	ColLastActivityCompleted      = "Last Activity Completed"
	ColLastActivityDate           = "Last Activity Date"
	ColPendingTask                = "Pending Task/ Next Task"
	ColDaysInActivity             = "Day(s) in Current Activity"
	ColLastBoxDate                = "Date of Last Delivered box"
	ColBoxType                    = "Box Type"
	ColBoxesSent                  = "Number of Grocery Boxes Successfully Sent"
	ColOutreachWithin48Hours      = "Outreach Attempt within 48 Hours of Referral"
	ColOutreachAttempts           = "Number of Outreach Attempts by GGH"
	ColOutreachMethod             = "Outreach Method"
	ColCounselingSessions         = "Number of Nutrition Counseling Sessions Completed"
	ColNeedTARSubmission          = "Need TAR Submission"
	ColTARSubmissionStatus        = "TAR Submission Status"
	ColClaimsSubmitted            = "Claims Submitted"
	ColOutstandingClaimsCHW       = "Outstanding Claims: CHW"
	ColOutstandingClaimsMTG       = "Outstanding Claims: MTG/MTM"
	ColOutstandingClaimsNutrition = "Outstanding Claims: Nutritional Counseling"
	ColReadyForReauth             = "Ready for Re-authorization"
	ColReauthStatus               = "Re-authorization Status"
)

// ExpectedColumns returns the full required header set in workbook order.
func ExpectedColumns() []string {
	return []string{
		ColPayerOrganization,
		ColMemberID,
		ColZipCode,
		ColCounty,
		ColCreatedDate,
		ColStartDate,
		ColEndDate,
		ColECMEnrollment,
		ColCondition,
		ColServiceType,
		ColLastActivityCompleted,
		ColLastActivityDate,
		ColPendingTask,
		ColDaysInActivity,
		ColLastBoxDate,
		ColBoxType,
		ColBoxesSent,
		ColOutreachWithin48Hours,
		ColOutreachAttempts,
		ColOutreachMethod,
		ColCounselingSessions,
		ColNeedTARSubmission,
		ColTARSubmissionStatus,
		ColClaimsSubmitted,
		ColOutstandingClaimsCHW,
		ColOutstandingClaimsMTG,
		ColOutstandingClaimsNutrition,
		ColReadyForReauth,
		ColReauthStatus,
	}
}

// MissingColumnsError reports which required columns are absent from the
// uploaded workbook. The message is shown to the user as-is.
type MissingColumnsError struct {
	Missing []string
}

// Error implements the error interface
func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf(
		"invalid column structure: the uploaded file does not have the expected column structure; missing columns: %s (the file must contain all %d required columns)",
		strings.Join(e.Missing, ", "), len(ExpectedColumns()))
}
