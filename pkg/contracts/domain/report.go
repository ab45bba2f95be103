package domain

import (
	"time"
)

// SummaryRow is one line of the pending tasks summary table.
type SummaryRow struct {
	Category  string `json:"category"`
	Referrals int    `json:"referrals"`
	// Definition is the human explanation shown next to the count.
	Definition string `json:"definition"`
}

// CategoryResult couples a category with the referrals that matched it.
// Rows keep the input order of the source workbook.
type CategoryResult struct {
	Category Category   `json:"category"`
	Rows     []Referral `json:"rows"`
}

// Count returns the number of matching referrals.
func (cr *CategoryResult) Count() int {
	return len(cr.Rows)
}

// Report is the full result of one analysis run: the processed rows, the
// per-category views over them, and the summary table. Categories are
// always present in the fixed Categories() order.
type Report struct {
	ID           string           `json:"id"`
	AnalysisDate time.Time        `json:"analysis_date"`
	GeneratedAt  time.Time        `json:"generated_at"`
	Referrals    []Referral       `json:"referrals"`
	Categories   []CategoryResult `json:"categories"`
	Summary      []SummaryRow     `json:"summary"`
}

// CategoryResult returns the result set for one category key.
func (r *Report) CategoryResult(key CategoryKey) (CategoryResult, bool) {
	for _, cr := range r.Categories {
		if cr.Category.Key == key {
			return cr, true
		}
	}
	return CategoryResult{}, false
}
