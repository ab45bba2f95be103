package dataprocessing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"refdash/pkg/contracts/domain"
)

var analysisDay = time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

func day(offset int) time.Time {
	return analysisDay.AddDate(0, 0, offset)
}

// classifyOneOn runs the full classifier over a single row and returns
// the set of category keys it matched for the given analysis date.
func classifyOneOn(t *testing.T, r domain.Referral, analysis time.Time) map[domain.CategoryKey]bool {
	t.Helper()
	results := Classify([]domain.Referral{r}, analysis)
	matched := make(map[domain.CategoryKey]bool)
	for _, cr := range results {
		if len(cr.Rows) > 0 {
			matched[cr.Category.Key] = true
		}
	}
	return matched
}

func classifyOne(t *testing.T, r domain.Referral) map[domain.CategoryKey]bool {
	t.Helper()
	return classifyOneOn(t, r, analysisDay)
}

func TestClassify_CategoryOrder(t *testing.T) {
	results := Classify(nil, analysisDay)
	require.Len(t, results, len(domain.Categories()))
	for i, category := range domain.Categories() {
		assert.Equal(t, category.Key, results[i].Category.Key)
		assert.Empty(t, results[i].Rows)
	}
}

func TestClassify_InitialMTGBox(t *testing.T) {
	tests := []struct {
		name    string
		row     domain.Referral
		matches bool
	}{
		{
			name: "four days no boxes",
			row: domain.Referral{
				PendingTask:       "MTG Box Delivery",
				DaysInActivity:    4,
				HasDaysInActivity: true,
				BoxesSent:         0,
			},
			matches: true,
		},
		{
			name: "three days is too recent",
			row: domain.Referral{
				PendingTask:       "MTG Box Delivery",
				DaysInActivity:    3,
				HasDaysInActivity: true,
			},
			matches: false,
		},
		{
			name: "boxes already sent",
			row: domain.Referral{
				PendingTask:       "MTG Box Delivery",
				DaysInActivity:    10,
				HasDaysInActivity: true,
				BoxesSent:         2,
			},
			matches: false,
		},
		{
			name: "missing last activity date",
			row: domain.Referral{
				PendingTask: "MTG Box Delivery",
			},
			matches: false,
		},
		{
			name: "different pending task",
			row: domain.Referral{
				PendingTask:       "Speak to Member",
				DaysInActivity:    30,
				HasDaysInActivity: true,
			},
			matches: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matched := classifyOne(t, tt.row)
			assert.Equal(t, tt.matches, matched[domain.CategoryInitialMTG])
		})
	}
}

func TestClassify_OngoingMTGBox(t *testing.T) {
	row := domain.Referral{
		PendingTask:       "MTG Box Delivery",
		DaysInActivity:    8,
		HasDaysInActivity: true,
		BoxesSent:         3,
	}
	assert.True(t, classifyOne(t, row)[domain.CategoryOngoingMTG])

	row.DaysInActivity = 7
	assert.False(t, classifyOne(t, row)[domain.CategoryOngoingMTG])

	row.DaysInActivity = 8
	row.BoxesSent = 0
	assert.False(t, classifyOne(t, row)[domain.CategoryOngoingMTG])
}

func TestClassify_DayThresholdCategories(t *testing.T) {
	tests := []struct {
		task     string
		key      domain.CategoryKey
		minDays  int
	}{
		{"Nutritional assessment", domain.CategoryNutritionAssessment, 14},
		{"Speak to Member", domain.CategorySpeakToMember, 14},
		{"TAR Approval", domain.CategoryTARApproval, 8},
	}

	for _, tt := range tests {
		t.Run(tt.task, func(t *testing.T) {
			row := domain.Referral{
				PendingTask:       tt.task,
				DaysInActivity:    tt.minDays,
				HasDaysInActivity: true,
			}
			assert.True(t, classifyOne(t, row)[tt.key], "at threshold")

			row.DaysInActivity = tt.minDays - 1
			assert.False(t, classifyOne(t, row)[tt.key], "below threshold")

			row.DaysInActivity = tt.minDays
			row.HasDaysInActivity = false
			assert.False(t, classifyOne(t, row)[tt.key], "missing activity date")
		})
	}
}

func TestClassify_CCHPNutrition(t *testing.T) {
	base := domain.Referral{
		PayerOrganization:  "CCHP",
		CreatedDate:        day(-49),
		PendingTask:        "Nutrition Counseling",
		CounselingSessions: 0,
	}

	t.Run("exactly 49 days old matches", func(t *testing.T) {
		assert.True(t, classifyOne(t, base)[domain.CategoryCCHPNutrition])
	})

	t.Run("one counseling session still matches", func(t *testing.T) {
		row := base
		row.CounselingSessions = 1
		assert.True(t, classifyOne(t, row)[domain.CategoryCCHPNutrition])
	})

	t.Run("two sessions excluded", func(t *testing.T) {
		row := base
		row.CounselingSessions = 2
		assert.False(t, classifyOne(t, row)[domain.CategoryCCHPNutrition])
	})

	t.Run("too recent", func(t *testing.T) {
		row := base
		row.CreatedDate = day(-48)
		assert.False(t, classifyOne(t, row)[domain.CategoryCCHPNutrition])
	})

	t.Run("non CCHP payer excluded", func(t *testing.T) {
		row := base
		row.PayerOrganization = "CCAH"
		assert.False(t, classifyOne(t, row)[domain.CategoryCCHPNutrition])
	})

	t.Run("payer matching is case and space insensitive", func(t *testing.T) {
		row := base
		row.PayerOrganization = "  cchp "
		assert.True(t, classifyOne(t, row)[domain.CategoryCCHPNutrition])
	})

	t.Run("discontinued task excluded", func(t *testing.T) {
		row := base
		row.PendingTask = "Services Discontinued"
		assert.False(t, classifyOne(t, row)[domain.CategoryCCHPNutrition])
	})

	t.Run("missing created date excluded", func(t *testing.T) {
		row := base
		row.CreatedDate = time.Time{}
		assert.False(t, classifyOne(t, row)[domain.CategoryCCHPNutrition])
	})
}

func TestClassify_ReauthPending(t *testing.T) {
	base := domain.Referral{
		ReauthStatus: "NA",
		PendingTask:  "MTG Box Delivery",
	}

	t.Run("CCHP window elapses after 77 days", func(t *testing.T) {
		row := base
		row.PayerOrganization = "CCHP"
		row.StartDate = day(-77)
		assert.True(t, classifyOne(t, row)[domain.CategoryReauthPending])

		row.StartDate = day(-76)
		assert.False(t, classifyOne(t, row)[domain.CategoryReauthPending])
	})

	t.Run("CCAH window elapses after 105 days", func(t *testing.T) {
		row := base
		row.PayerOrganization = "CCAH"
		row.StartDate = day(-105)
		assert.True(t, classifyOne(t, row)[domain.CategoryReauthPending])

		row.StartDate = day(-104)
		assert.False(t, classifyOne(t, row)[domain.CategoryReauthPending])
	})

	t.Run("PHP window is five calendar months", func(t *testing.T) {
		row := base
		row.PayerOrganization = "PHP"
		row.StartDate = analysisDay.AddDate(0, -5, 0)
		assert.True(t, classifyOne(t, row)[domain.CategoryReauthPending])

		row.StartDate = analysisDay.AddDate(0, -5, 1)
		assert.False(t, classifyOne(t, row)[domain.CategoryReauthPending])
	})

	t.Run("PHP window clamps end-of-month start dates", func(t *testing.T) {
		row := base
		row.PayerOrganization = "PHP"
		row.StartDate = time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)

		// Five months from Jan 31 lands on Jun 30, the last day of June.
		june30 := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
		assert.True(t, classifyOneOn(t, row, june30)[domain.CategoryReauthPending])
		assert.False(t, classifyOneOn(t, row, june30.AddDate(0, 0, -1))[domain.CategoryReauthPending])
	})

	t.Run("CCHP boundary holds with a zoned analysis clock", func(t *testing.T) {
		row := base
		row.PayerOrganization = "CCHP"
		row.StartDate = day(-77)

		zoned := time.Date(2026, 3, 15, 0, 0, 0, 0, time.FixedZone("UTC+9", 9*60*60))
		assert.True(t, classifyOneOn(t, row, zoned)[domain.CategoryReauthPending])
	})

	t.Run("submitted reauth excluded", func(t *testing.T) {
		row := base
		row.PayerOrganization = "CCHP"
		row.StartDate = day(-120)
		row.ReauthStatus = "Submitted"
		assert.False(t, classifyOne(t, row)[domain.CategoryReauthPending])
	})

	t.Run("discontinued services excluded", func(t *testing.T) {
		row := base
		row.PayerOrganization = "CCHP"
		row.StartDate = day(-120)
		row.PendingTask = "Services Discontinued"
		assert.False(t, classifyOne(t, row)[domain.CategoryReauthPending])
	})

	t.Run("already approved reauthorization excluded", func(t *testing.T) {
		row := base
		row.PayerOrganization = "CCHP"
		row.StartDate = day(-120)
		row.LastActivityCompleted = "Reauthorization Approved"
		assert.False(t, classifyOne(t, row)[domain.CategoryReauthPending])
	})

	t.Run("unknown payer never matches", func(t *testing.T) {
		row := base
		row.PayerOrganization = "Kaiser"
		row.StartDate = day(-400)
		assert.False(t, classifyOne(t, row)[domain.CategoryReauthPending])
	})

	t.Run("missing start date excluded", func(t *testing.T) {
		row := base
		row.PayerOrganization = "CCHP"
		assert.False(t, classifyOne(t, row)[domain.CategoryReauthPending])
	})
}

func TestClassify_RowCanMatchMultipleCategories(t *testing.T) {
	row := domain.Referral{
		PayerOrganization: "CCHP",
		PendingTask:       "MTG Box Delivery",
		StartDate:         day(-90),
		CreatedDate:       day(-90),
		DaysInActivity:    10,
		HasDaysInActivity: true,
		BoxesSent:         0,
		ReauthStatus:      "na",
	}

	matched := classifyOne(t, row)
	assert.True(t, matched[domain.CategoryInitialMTG])
	assert.True(t, matched[domain.CategoryReauthPending])
	assert.True(t, matched[domain.CategoryCCHPNutrition])
}
