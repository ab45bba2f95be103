package dataprocessing

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"refdash/pkg/contracts/domain"
)

// Parser reads referral overview workbooks into domain records.
type Parser struct {
	logger *slog.Logger
}

// NewParser creates a workbook parser.
func NewParser(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{logger: logger.With(slog.String("component", "parser"))}
}

// ParseFile reads a referral overview workbook from disk.
func (p *Parser) ParseFile(filePath string) ([]domain.Referral, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()
	return p.parse(f)
}

// Parse reads a referral overview workbook from a stream (an upload body).
func (p *Parser) Parse(r io.Reader) ([]domain.Referral, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()
	return p.parse(f)
}

func (p *Parser) parse(f *excelize.File) ([]domain.Referral, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook contains no sheets")
	}
	sheetName := sheets[0]

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheetName, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheetName)
	}

	columnMap, err := mapColumns(rows[0])
	if err != nil {
		return nil, err
	}

	p.logger.Info("parsed workbook header",
		slog.String("sheet_name", sheetName),
		slog.Int("total_rows", len(rows)-1),
		slog.Int("columns", len(rows[0])))

	referrals := make([]domain.Referral, 0, len(rows)-1)
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		cell := func(col string) string {
			idx, ok := columnMap[col]
			if !ok || idx >= len(row) {
				return ""
			}
			return cleanText(row[idx])
		}

		referrals = append(referrals, domain.Referral{
			PayerOrganization:          cell(ColPayerOrganization),
			MemberID:                   cell(ColMemberID),
			ZipCode:                    cell(ColZipCode),
			County:                     cell(ColCounty),
			CreatedDate:                parseDate(cell(ColCreatedDate)),
			StartDate:                  parseDate(cell(ColStartDate)),
			EndDate:                    parseDate(cell(ColEndDate)),
			ECMEnrollment:              cell(ColECMEnrollment),
			Condition:                  cell(ColCondition),
			ServiceType:                cell(ColServiceType),
			LastActivityCompleted:      cell(ColLastActivityCompleted),
			LastActivityDate:           parseDate(cell(ColLastActivityDate)),
			PendingTask:                cell(ColPendingTask),
			LastBoxDate:                parseDate(cell(ColLastBoxDate)),
			BoxType:                    cell(ColBoxType),
			BoxesSent:                  parseCount(cell(ColBoxesSent)),
			OutreachWithin48Hours:      cell(ColOutreachWithin48Hours),
			OutreachAttempts:           cell(ColOutreachAttempts),
			OutreachMethod:             cell(ColOutreachMethod),
			CounselingSessions:         parseCount(cell(ColCounselingSessions)),
			NeedTARSubmission:          cell(ColNeedTARSubmission),
			TARSubmissionStatus:        cell(ColTARSubmissionStatus),
			ClaimsSubmitted:            cell(ColClaimsSubmitted),
			OutstandingClaimsCHW:       cell(ColOutstandingClaimsCHW),
			OutstandingClaimsMTG:       cell(ColOutstandingClaimsMTG),
			OutstandingClaimsNutrition: cell(ColOutstandingClaimsNutrition),
			ReadyForReauth:             cell(ColReadyForReauth),
			ReauthStatus:               cell(ColReauthStatus),
		})
	}

	p.logger.Info("workbook parsed", slog.Int("referral_count", len(referrals)))
	return referrals, nil
}

// mapColumns maps trimmed header names to column indexes and validates that
// every expected column is present. Extra columns are ignored.
func mapColumns(header []string) (map[string]int, error) {
	columnMap := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, exists := columnMap[name]; !exists {
			columnMap[name] = i
		}
	}

	var missing []string
	for _, col := range ExpectedColumns() {
		if _, ok := columnMap[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Missing: missing}
	}
	return columnMap, nil
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// cleanText trims whitespace and normalizes the placeholder strings that
// spreadsheet tools leave behind for missing values.
func cleanText(s string) string {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "nan", "nat", "n/a#", "#n/a":
		return ""
	}
	return s
}

// dateLayouts are tried in order when a cell is not an Excel date serial.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"01-02-06",
	"1/2/2006",
	"01/02/2006",
	"1/2/06",
	"2006/01/02",
	"Jan 2, 2006",
	time.RFC3339,
}

// parseDate converts a cell into a date, accepting common date formats and
// raw Excel serial numbers. Unparseable cells become the zero time, which
// downstream predicates treat as missing.
func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Truncate(24 * time.Hour)
		}
	}

	// Excel date serial (days since 1899-12-30)
	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial > 0 {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return t.Truncate(24 * time.Hour)
		}
	}

	return time.Time{}
}

// parseCount converts a numeric cell into an int, stripping thousands
// separators. Blank or malformed cells count as zero.
func parseCount(s string) int {
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, ",", "")
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return int(v)
	}
	return 0
}
