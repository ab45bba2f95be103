package http

import (
	"context"
	"io"
	"time"

	"refdash/pkg/contracts/domain"
)

// ReportServiceInterface defines the report operations the handler needs.
// Kept as an interface so handler tests can substitute a mock service.
type ReportServiceInterface interface {
	Generate(ctx context.Context, workbook io.Reader, analysisDate time.Time) (*domain.Report, error)
	Get(ctx context.Context, id string) (*domain.Report, error)
	ExcelDownload(ctx context.Context, id string) ([]byte, error)
	CSVDownload(ctx context.Context, id string) ([]byte, error)
}
