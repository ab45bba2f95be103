package exporter

import (
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"refdash/pkg/contracts/domain"
)

// Sheet names of the generated workbook.
const (
	SheetOverview = "Referral Overview"
	SheetSummary  = "Pending Tasks Summary"
)

// Fill colors matching the dashboard's styling.
const (
	headerFillColor = "CCE5FF"
	bannerFillColor = "FFF2CC"
)

// bannerTimeFormat renders the "Data is based on" timestamp.
const bannerTimeFormat = "2006-01-02 03:04 PM"

// maxColumnWidth caps auto-sized columns at Excel's limit.
const maxColumnWidth = 255

// workbookSheetOrder lists the category sheets in workbook tab order,
// which differs from the summary table's category order: the CCHP
// nutrition sheet sits directly after the summary.
var workbookSheetOrder = []domain.CategoryKey{
	domain.CategoryCCHPNutrition,
	domain.CategoryInitialMTG,
	domain.CategoryOngoingMTG,
	domain.CategoryNutritionAssessment,
	domain.CategorySpeakToMember,
	domain.CategoryTARApproval,
	domain.CategoryReauthPending,
}

// ExcelBuilder renders a report into a styled multi-sheet workbook.
type ExcelBuilder struct {
	logger *slog.Logger
}

// NewExcelBuilder creates a workbook builder.
func NewExcelBuilder(logger *slog.Logger) *ExcelBuilder {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExcelBuilder{logger: logger.With(slog.String("component", "excel_builder"))}
}

// Bytes builds the workbook and returns its serialized bytes.
func (b *ExcelBuilder) Bytes(report *domain.Report) ([]byte, error) {
	f, err := b.Build(report)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteFile builds the workbook and saves it to disk (used by the CLI).
func (b *ExcelBuilder) WriteFile(report *domain.Report, path string) error {
	f, err := b.Build(report)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// Build assembles the workbook: the full overview, the summary with its
// banner row, and one sheet per category, all styled.
func (b *ExcelBuilder) Build(report *domain.Report) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", SheetOverview); err != nil {
		return nil, fmt.Errorf("failed to name overview sheet: %w", err)
	}
	if err := b.writeReferralSheet(f, SheetOverview, report.Referrals); err != nil {
		return nil, err
	}

	if err := b.writeSummarySheet(f, report); err != nil {
		return nil, err
	}

	for _, key := range workbookSheetOrder {
		cr, ok := report.CategoryResult(key)
		if !ok {
			continue
		}
		if _, err := f.NewSheet(cr.Category.SheetName); err != nil {
			return nil, fmt.Errorf("failed to create sheet %q: %w", cr.Category.SheetName, err)
		}
		if err := b.writeReferralSheet(f, cr.Category.SheetName, cr.Rows); err != nil {
			return nil, err
		}
	}

	if idx, err := f.GetSheetIndex(SheetOverview); err == nil && idx >= 0 {
		f.SetActiveSheet(idx)
	}

	b.logger.Info("workbook built",
		slog.Int("referral_count", len(report.Referrals)),
		slog.Int("sheet_count", len(report.Categories)+2))
	return f, nil
}

// writeReferralSheet writes a header row plus referral rows and applies
// the standard styling (bold filled header, frozen header, autofilter,
// auto column widths).
func (b *ExcelBuilder) writeReferralSheet(f *excelize.File, sheet string, rows []domain.Referral) error {
	headers := ReferralHeaders()
	if err := setStringRow(f, sheet, 1, headers); err != nil {
		return err
	}
	for i, r := range rows {
		if err := setStringRow(f, sheet, i+2, ReferralRow(&r)); err != nil {
			return err
		}
	}

	widths := columnWidths(headers, referralCells(rows))
	return b.styleSheet(f, sheet, 1, len(headers), len(rows)+1, widths, true)
}

// writeSummarySheet writes the banner, a spacer row, the summary header,
// and the summary rows. The banner spans every summary column and shows
// the timestamp the data is based on.
func (b *ExcelBuilder) writeSummarySheet(f *excelize.File, report *domain.Report) error {
	if _, err := f.NewSheet(SheetSummary); err != nil {
		return fmt.Errorf("failed to create sheet %q: %w", SheetSummary, err)
	}

	headers := SummaryHeaders()
	records := SummaryRows(report.Summary)

	banner := "Data is based on: " + report.GeneratedAt.Format(bannerTimeFormat)
	if err := f.SetCellStr(SheetSummary, "A1", banner); err != nil {
		return err
	}
	endCol, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return err
	}
	if err := f.MergeCell(SheetSummary, "A1", endCol+"1"); err != nil {
		return err
	}

	if err := setStringRow(f, SheetSummary, 3, headers); err != nil {
		return err
	}
	for i, rec := range records {
		if err := setStringRow(f, SheetSummary, i+4, rec); err != nil {
			return err
		}
	}

	bannerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{bannerFillColor}, Pattern: 1},
	})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetSummary, "A1", endCol+"1", bannerStyle); err != nil {
		return err
	}

	widths := columnWidths(headers, records)
	// Autofilter stays off so the banner row is not treated as a header.
	return b.styleSheet(f, SheetSummary, 3, len(headers), len(records)+3, widths, false)
}

// styleSheet applies the shared sheet styling: a bold filled header row,
// frozen panes beneath row one, optional autofilter over the data range,
// and the computed column widths.
func (b *ExcelBuilder) styleSheet(f *excelize.File, sheet string, headerRow, cols, lastRow int, widths []float64, filter bool) error {
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{headerFillColor}, Pattern: 1},
	})
	if err != nil {
		return err
	}

	start, err := excelize.CoordinatesToCellName(1, headerRow)
	if err != nil {
		return err
	}
	end, err := excelize.CoordinatesToCellName(cols, headerRow)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, start, end, headerStyle); err != nil {
		return err
	}

	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return err
	}

	if filter {
		dataEnd, err := excelize.CoordinatesToCellName(cols, lastRow)
		if err != nil {
			return err
		}
		if err := f.AutoFilter(sheet, "A1:"+dataEnd, nil); err != nil {
			return err
		}
	}

	for i, width := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return err
		}
	}
	return nil
}

// setStringRow writes one row of string cells starting at column A.
func setStringRow(f *excelize.File, sheet string, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return f.SetSheetRow(sheet, cell, &cells)
}

// columnWidths sizes each column to its longest cell plus padding.
func columnWidths(headers []string, rows [][]string) []float64 {
	widths := make([]float64, len(headers))
	for i, h := range headers {
		widths[i] = float64(len(h) + 2)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				continue
			}
			if w := float64(len(cell) + 2); w > widths[i] {
				widths[i] = w
			}
		}
	}
	for i, w := range widths {
		if w > maxColumnWidth {
			widths[i] = maxColumnWidth
		}
	}
	return widths
}

// referralCells renders rows for width calculation.
func referralCells(rows []domain.Referral) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = ReferralRow(&r)
	}
	return out
}
