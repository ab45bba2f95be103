package dataprocessing

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// buildWorkbook writes a single-sheet workbook with the given header and
// rows and returns its bytes.
func buildWorkbook(t *testing.T, header []string, rows [][]string) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &header))
	for i, row := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cellRef, &row))
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return buf.Bytes()
}

// referralRow builds a complete 29-cell row with the given overrides keyed
// by column header.
func referralRow(overrides map[string]string) []string {
	cols := ExpectedColumns()
	row := make([]string, len(cols))
	for i, col := range cols {
		if v, ok := overrides[col]; ok {
			row[i] = v
		}
	}
	return row
}

func TestParser_Parse(t *testing.T) {
	data := buildWorkbook(t, ExpectedColumns(), [][]string{
		referralRow(map[string]string{
			ColPayerOrganization: "CCHP",
			ColMemberID:          "IMP-001",
			ColZipCode:           "95060",
			ColCounty:            "Santa Cruz",
			ColCreatedDate:       "2026-01-05",
			ColStartDate:         "2026-01-10",
			ColLastActivityDate:  "2026-02-01",
			ColPendingTask:       "MTG Box Delivery",
			ColBoxesSent:         "3",
			ColCounselingSessions: "1",
			ColReauthStatus:      "NA",
		}),
		referralRow(map[string]string{
			ColPayerOrganization: "PHP",
			ColMemberID:          "IMP-002",
			ColCreatedDate:       "nan",
			ColLastActivityDate:  "NaT",
			ColBoxesSent:         "1,024",
		}),
	})

	parser := NewParser(nil)
	referrals, err := parser.Parse(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, referrals, 2)

	first := referrals[0]
	assert.Equal(t, "CCHP", first.PayerOrganization)
	assert.Equal(t, "IMP-001", first.MemberID)
	assert.Equal(t, "Santa Cruz", first.County)
	assert.Equal(t, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), first.CreatedDate)
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), first.LastActivityDate)
	assert.Equal(t, "MTG Box Delivery", first.PendingTask)
	assert.Equal(t, 3, first.BoxesSent)
	assert.Equal(t, 1, first.CounselingSessions)
	assert.Equal(t, "NA", first.ReauthStatus)
	assert.False(t, first.HasDaysInActivity)

	second := referrals[1]
	assert.Equal(t, "PHP", second.PayerOrganization)
	assert.True(t, second.CreatedDate.IsZero(), "nan cell parses as missing date")
	assert.True(t, second.LastActivityDate.IsZero(), "NaT cell parses as missing date")
	assert.Equal(t, 1024, second.BoxesSent, "thousands separator stripped")
}

func TestParser_SkipsEmptyRows(t *testing.T) {
	data := buildWorkbook(t, ExpectedColumns(), [][]string{
		referralRow(map[string]string{ColMemberID: "IMP-001"}),
		referralRow(nil),
		referralRow(map[string]string{ColMemberID: "IMP-002"}),
	})

	parser := NewParser(nil)
	referrals, err := parser.Parse(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, referrals, 2)
	assert.Equal(t, "IMP-001", referrals[0].MemberID)
	assert.Equal(t, "IMP-002", referrals[1].MemberID)
}

func TestParser_MissingColumns(t *testing.T) {
	header := ExpectedColumns()[:27]
	data := buildWorkbook(t, header, [][]string{})

	parser := NewParser(nil)
	_, err := parser.Parse(bytes.NewReader(data))
	require.Error(t, err)

	var missingErr *MissingColumnsError
	require.ErrorAs(t, err, &missingErr)
	assert.ElementsMatch(t, []string{ColReadyForReauth, ColReauthStatus}, missingErr.Missing)
	assert.Contains(t, missingErr.Error(), ColReauthStatus)
}

func TestParser_ExtraColumnsIgnored(t *testing.T) {
	header := append([]string{"Internal Notes"}, ExpectedColumns()...)
	row := append([]string{"ignore me"}, referralRow(map[string]string{ColMemberID: "IMP-003"})...)
	data := buildWorkbook(t, header, [][]string{row})

	parser := NewParser(nil)
	referrals, err := parser.Parse(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, referrals, 1)
	assert.Equal(t, "IMP-003", referrals[0].MemberID)
}

func TestParser_NotAWorkbook(t *testing.T) {
	parser := NewParser(nil)
	_, err := parser.Parse(bytes.NewReader([]byte("definitely not xlsx")))
	require.Error(t, err)
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2026-03-15", time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)},
		{"3/15/2026", time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)},
		{"2026-03-15 14:30:00", time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)},
		{"", time.Time{}},
		{"not a date", time.Time{}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseDate(tt.in))
		})
	}
}

func TestParseDate_ExcelSerial(t *testing.T) {
	// Serial 45000 is 2023-03-15 in the 1900 date system.
	got := parseDate("45000")
	assert.Equal(t, time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC), got)
}

func TestParseCount(t *testing.T) {
	assert.Equal(t, 0, parseCount(""))
	assert.Equal(t, 7, parseCount("7"))
	assert.Equal(t, 3, parseCount("3.0"))
	assert.Equal(t, 1200, parseCount("1,200"))
	assert.Equal(t, 0, parseCount("several"))
}
