package domain

// CategoryKey identifies a pending-task category.
type CategoryKey string

const (
	CategoryInitialMTG          CategoryKey = "initial_mtg"
	CategoryOngoingMTG          CategoryKey = "ongoing_mtg"
	CategoryNutritionAssessment CategoryKey = "nutrition_assessment"
	CategorySpeakToMember       CategoryKey = "speak_to_member"
	CategoryTARApproval         CategoryKey = "tar_approval"
	CategoryCCHPNutrition       CategoryKey = "cchp_nutrition"
	CategoryReauthPending       CategoryKey = "reauth_pending"
)

// Category describes one named filter bucket used for summary counting.
type Category struct {
	Key        CategoryKey `json:"key"`
	Label      string      `json:"label"`
	SheetName  string      `json:"sheet_name"`
	Definition string      `json:"definition"`
}

// categories holds the fixed category order used by the summary table,
// the workbook sheets, and the CSV output.
var categories = []Category{
	{
		Key:        CategoryInitialMTG,
		Label:      "INITIAL MTG box delivery",
		SheetName:  "Pending Initial MTG Box",
		Definition: "4 or more days pending delivery of initial box",
	},
	{
		Key:        CategoryOngoingMTG,
		Label:      "ONGOING MTG box delivery",
		SheetName:  "Pending Ongoing MTG Box",
		Definition: "8 or more days pending delivery of follow-up boxes",
	},
	{
		Key:        CategoryNutritionAssessment,
		Label:      "Nutritional assessment",
		SheetName:  "Pending Nutrition Assess",
		Definition: "14 or more days pending nutritional assessment",
	},
	{
		Key:        CategorySpeakToMember,
		Label:      "Speak to member",
		SheetName:  "Pending Speak to Member",
		Definition: "14 or more days pending speak to member status",
	},
	{
		Key:        CategoryTARApproval,
		Label:      "TAR approval",
		SheetName:  "Pending TAR Approval",
		Definition: "8 or more days pending TAR approval",
	},
	{
		Key:        CategoryCCHPNutrition,
		Label:      "Nutritional counseling",
		SheetName:  "Pending CCHP Nutrition",
		Definition: "9 weeks from referral start date for CCHP",
	},
	{
		Key:        CategoryReauthPending,
		Label:      "Reauth not submitted",
		SheetName:  "Pending Reauth NotSubm",
		Definition: "CCHP - 11 weeks (out of 12)\nCCAH - 15 weeks (out of 17)\nPHP - 5 months (out of 6)",
	},
}

// Categories returns the fixed, ordered list of categories.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// CategoryByKey looks up a category by its key.
func CategoryByKey(key CategoryKey) (Category, bool) {
	for _, c := range categories {
		if c.Key == key {
			return c, true
		}
	}
	return Category{}, false
}
