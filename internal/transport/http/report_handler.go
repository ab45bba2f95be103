package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"refdash/internal/dataprocessing"
	apierrors "refdash/internal/errors"
	mw "refdash/internal/middleware"
	"refdash/internal/services"
	"refdash/pkg/contracts/domain"
)

// analysisDateFormat is the wire format of the optional date override.
const analysisDateFormat = "2006-01-02"

// ReportHandler handles report generation and download requests.
type ReportHandler struct {
	service        ReportServiceInterface
	logger         *slog.Logger
	errorHandler   *apierrors.ErrorHandler
	validate       *validator.Validate
	maxUploadBytes int64
}

// uploadRequest carries the validated form values of an upload.
type uploadRequest struct {
	AnalysisDate string `validate:"omitempty,datetime=2006-01-02"`
}

// NewReportHandler creates a new report handler.
func NewReportHandler(service ReportServiceInterface, maxUploadBytes int64, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *ReportHandler {
	return &ReportHandler{
		service:        service,
		logger:         logger.With(slog.String("component", "report_handler")),
		errorHandler:   errorHandler,
		validate:       validator.New(),
		maxUploadBytes: maxUploadBytes,
	}
}

// Routes returns the report routes.
func (h *ReportHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Post("/", h.CreateReport)

	r.Route("/{id}", func(r chi.Router) {
		r.Use(h.ReportCtx)
		r.Get("/", h.GetReport)
		r.Get("/categories/{key}", h.GetCategory)
		r.Get("/download/excel", h.DownloadExcel)
		r.Get("/download/csv", h.DownloadCSV)
	})

	return r
}

// ReportCtx validates the report id parameter.
func (h *ReportHandler) ReportCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if _, err := uuid.Parse(id); err != nil {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("id", "Invalid report id"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// CreateReport handles POST /api/reports: a multipart upload with the
// workbook under "file" and an optional "analysis_date" form value.
func (h *ReportHandler) CreateReport(w http.ResponseWriter, r *http.Request) {
	reqID := mw.GetReqID(r.Context())

	h.logger.InfoContext(r.Context(), "report upload received",
		slog.String("request_id", reqID),
		slog.Int64("content_length", r.ContentLength),
	)

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.errorHandler.HandleError(w, r, apierrors.ErrPayloadTooLarge)
			return
		}
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}

	req := uploadRequest{AnalysisDate: r.FormValue("analysis_date")}
	if err := h.validate.Struct(&req); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("analysis_date", "Analysis date must use the YYYY-MM-DD format"))
		return
	}

	var analysisDate time.Time
	if req.AnalysisDate != "" {
		analysisDate, _ = time.Parse(analysisDateFormat, req.AnalysisDate)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("file", "An Excel file upload is required"))
		return
	}
	defer file.Close()

	h.logger.InfoContext(r.Context(), "processing uploaded workbook",
		slog.String("request_id", reqID),
		slog.String("filename", header.Filename),
		slog.Int64("size", header.Size),
	)

	report, err := h.service.Generate(r.Context(), file, analysisDate)
	if err != nil {
		h.handleGenerateError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, h.reportResponse(report))
}

// handleGenerateError maps service and parsing failures onto API errors.
func (h *ReportHandler) handleGenerateError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.ErrorContext(r.Context(), "report generation failed",
		slog.String("error", err.Error()),
		slog.String("request_id", mw.GetReqID(r.Context())),
	)

	var missingErr *dataprocessing.MissingColumnsError
	switch {
	case errors.As(err, &missingErr):
		h.errorHandler.HandleError(w, r, apierrors.NewWithDetails(
			http.StatusUnprocessableEntity,
			"INVALID_WORKBOOK",
			missingErr.Error(),
			map[string]interface{}{"missing_columns": missingErr.Missing},
		))
	case errors.Is(err, services.ErrEmptyWorkbook):
		h.errorHandler.HandleError(w, r, apierrors.NewWithDetails(
			http.StatusUnprocessableEntity,
			"INVALID_WORKBOOK",
			"The uploaded workbook contains no referral rows",
			nil,
		))
	default:
		h.errorHandler.HandleError(w, r, apierrors.InvalidWorkbookError(err))
	}
}

// GetReport handles GET /api/reports/{id}.
func (h *ReportHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	report, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrReportNotFound) {
			h.errorHandler.HandleError(w, r, apierrors.ErrReportNotFound)
			return
		}
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, h.reportResponse(report))
}

// GetCategory handles GET /api/reports/{id}/categories/{key} and returns
// the rows matched by one category.
func (h *ReportHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	key := domain.CategoryKey(chi.URLParam(r, "key"))

	if _, ok := domain.CategoryByKey(key); !ok {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("key", fmt.Sprintf("Unknown category: %s", key)))
		return
	}

	report, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrReportNotFound) {
			h.errorHandler.HandleError(w, r, apierrors.ErrReportNotFound)
			return
		}
		h.errorHandler.HandleError(w, r, err)
		return
	}

	result, _ := report.CategoryResult(key)
	render.JSON(w, r, map[string]interface{}{
		"status":   "success",
		"category": result.Category,
		"count":    len(result.Rows),
		"rows":     result.Rows,
	})
}

// DownloadExcel handles GET /api/reports/{id}/download/excel.
func (h *ReportHandler) DownloadExcel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	data, err := h.service.ExcelDownload(r.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrReportNotFound) {
			h.errorHandler.HandleError(w, r, apierrors.ErrReportNotFound)
			return
		}
		h.errorHandler.HandleError(w, r, err)
		return
	}

	filename := fmt.Sprintf("referral_dashboard_%s.xlsx", time.Now().Format("20060102_1504"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// DownloadCSV handles GET /api/reports/{id}/download/csv.
func (h *ReportHandler) DownloadCSV(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	data, err := h.service.CSVDownload(r.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrReportNotFound) {
			h.errorHandler.HandleError(w, r, apierrors.ErrReportNotFound)
			return
		}
		h.errorHandler.HandleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="pending_tasks_summary.csv"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// reportResponse shapes the JSON returned for a generated report.
func (h *ReportHandler) reportResponse(report *domain.Report) map[string]interface{} {
	counts := make([]map[string]interface{}, 0, len(report.Categories))
	for _, cr := range report.Categories {
		counts = append(counts, map[string]interface{}{
			"key":   cr.Category.Key,
			"label": cr.Category.Label,
			"count": len(cr.Rows),
		})
	}

	return map[string]interface{}{
		"status":        "success",
		"id":            report.ID,
		"analysis_date": report.AnalysisDate.Format(analysisDateFormat),
		"generated_at":  report.GeneratedAt,
		"total_records": len(report.Referrals),
		"summary":       report.Summary,
		"categories":    counts,
		"downloads": map[string]string{
			"excel": fmt.Sprintf("/api/reports/%s/download/excel", report.ID),
			"csv":   fmt.Sprintf("/api/reports/%s/download/csv", report.ID),
		},
	}
}
