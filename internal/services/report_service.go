package services

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"refdash/internal/config"
	"refdash/internal/dataprocessing"
	apierrors "refdash/internal/errors"
	"refdash/internal/exporter"
	"refdash/pkg/contracts/domain"
)

// ReportService runs the full analysis: parse the uploaded workbook,
// derive per-row fields, classify into categories, summarize, and render
// the downloadable artifacts. Generated reports are kept in the store
// until they expire.
type ReportService struct {
	parser *dataprocessing.Parser
	excel  *exporter.ExcelBuilder
	store  *ReportStore
	logger *slog.Logger
	now    func() time.Time
}

// NewReportService creates a report service.
func NewReportService(cfg *config.Config, logger *slog.Logger) *ReportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportService{
		parser: dataprocessing.NewParser(logger),
		excel:  exporter.NewExcelBuilder(logger),
		store:  NewReportStore(cfg.Reports.Retention, cfg.Reports.MaxStored),
		logger: logger.With(slog.String("component", "report_service")),
		now:    time.Now,
	}
}

// Generate processes an uploaded workbook and stores the resulting report.
// analysisDate is the optional override; the zero time means "today".
func (s *ReportService) Generate(ctx context.Context, workbook io.Reader, analysisDate time.Time) (*domain.Report, error) {
	if analysisDate.IsZero() {
		analysisDate = s.now()
	}
	analysisDate = dataprocessing.NormalizeDate(analysisDate)

	s.logger.InfoContext(ctx, "generating report",
		slog.String("analysis_date", analysisDate.Format("2006-01-02")))

	referrals, err := s.parser.Parse(workbook)
	if err != nil {
		return nil, err
	}
	if len(referrals) == 0 {
		return nil, ErrEmptyWorkbook
	}

	report := s.build(referrals, analysisDate)

	excelData, err := s.excel.Bytes(report)
	if err != nil {
		return nil, apierrors.NewExportError("failed to render workbook", err)
	}
	csvData, err := exporter.SummaryCSV(report.Summary)
	if err != nil {
		return nil, apierrors.NewExportError("failed to render summary csv", err)
	}

	if err := s.store.Put(report.ID, report, excelData, csvData); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "report generated",
		slog.String("report_id", report.ID),
		slog.Int("referral_count", len(report.Referrals)),
		slog.Int("excel_bytes", len(excelData)))
	return report, nil
}

// GenerateFromFile runs the same analysis over a workbook on disk without
// storing the result (used by the batch CLI).
func (s *ReportService) GenerateFromFile(ctx context.Context, path string, analysisDate time.Time) (*domain.Report, error) {
	if analysisDate.IsZero() {
		analysisDate = s.now()
	}
	analysisDate = dataprocessing.NormalizeDate(analysisDate)

	referrals, err := s.parser.ParseFile(path)
	if err != nil {
		return nil, err
	}
	if len(referrals) == 0 {
		return nil, ErrEmptyWorkbook
	}
	return s.build(referrals, analysisDate), nil
}

// build assembles the report from parsed rows.
func (s *ReportService) build(referrals []domain.Referral, analysisDate time.Time) *domain.Report {
	processed := dataprocessing.Process(referrals, analysisDate)
	categories := dataprocessing.Classify(processed, analysisDate)

	return &domain.Report{
		ID:           uuid.New().String(),
		AnalysisDate: analysisDate,
		GeneratedAt:  s.now(),
		Referrals:    processed,
		Categories:   categories,
		Summary:      dataprocessing.Summarize(categories),
	}
}

// Get returns a stored report by id.
func (s *ReportService) Get(ctx context.Context, id string) (*domain.Report, error) {
	report, ok := s.store.Get(id)
	if !ok {
		return nil, ErrReportNotFound
	}
	return report, nil
}

// ExcelDownload returns the rendered workbook bytes for a stored report.
func (s *ReportService) ExcelDownload(ctx context.Context, id string) ([]byte, error) {
	data, ok := s.store.ExcelData(id)
	if !ok {
		return nil, ErrReportNotFound
	}
	return data, nil
}

// CSVDownload returns the rendered summary CSV bytes for a stored report.
func (s *ReportService) CSVDownload(ctx context.Context, id string) ([]byte, error) {
	data, ok := s.store.CSVData(id)
	if !ok {
		return nil, ErrReportNotFound
	}
	return data, nil
}
