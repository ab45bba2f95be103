package dataprocessing

import (
	"refdash/pkg/contracts/domain"
)

// Summarize builds the pending tasks summary table from classified
// results, preserving the fixed category order. Each count equals the
// number of rows the category matched.
func Summarize(results []domain.CategoryResult) []domain.SummaryRow {
	rows := make([]domain.SummaryRow, 0, len(results))
	for _, cr := range results {
		rows = append(rows, domain.SummaryRow{
			Category:   cr.Category.Label,
			Referrals:  len(cr.Rows),
			Definition: cr.Category.Definition,
		})
	}
	return rows
}
