package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"refdash/internal/config"
	"refdash/internal/dataprocessing"
	"refdash/internal/exporter"
	"refdash/internal/infrastructure"
	"refdash/internal/services"
)

func main() {
	inFile := flag.String("in", "", "input referral workbook (.xlsx), required")
	outDir := flag.String("out", "", "output directory for generated reports (defaults to data/reports relative to executable)")
	dateStr := flag.String("date", "", "analysis date in YYYY-MM-DD format (defaults to today)")
	flag.Parse()

	if *inFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: reportgen -in referrals.xlsx [-out dir] [-date YYYY-MM-DD]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	cfg.Logging.Output = "console"

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("Failed to initialize logger", "error", err)
		os.Exit(1)
	}

	paths, err := config.NewPaths(cfg.Paths)
	if err != nil {
		logger.Error("Failed to resolve paths", "error", err)
		os.Exit(1)
	}
	if *outDir == "" {
		*outDir = paths.ReportsDir
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		logger.Error("Failed to create output directory", "dir", *outDir, "error", err)
		os.Exit(1)
	}

	analysisDate := dataprocessing.NormalizeDate(time.Now())
	if *dateStr != "" {
		parsed, err := time.Parse("2006-01-02", *dateStr)
		if err != nil {
			logger.Error("Invalid analysis date", "date", *dateStr, "error", err)
			os.Exit(1)
		}
		analysisDate = dataprocessing.NormalizeDate(parsed)
	}

	svc := services.NewReportService(cfg, logger)

	start := time.Now()
	report, err := svc.GenerateFromFile(context.Background(), *inFile, analysisDate)
	if err != nil {
		logger.Error("Report generation failed", "file", *inFile, "error", err)
		os.Exit(1)
	}

	excelPath := filepath.Join(*outDir,
		fmt.Sprintf("referral_dashboard_%s.xlsx", report.GeneratedAt.Format("20060102_1504")))
	csvPath := filepath.Join(*outDir, "pending_tasks_summary.csv")

	builder := exporter.NewExcelBuilder(logger)
	if err := builder.WriteFile(report, excelPath); err != nil {
		logger.Error("Failed to write Excel report", "path", excelPath, "error", err)
		os.Exit(1)
	}

	writer := exporter.NewCSVWriter(*outDir)
	if err := writer.WriteSummaryCSV(csvPath, report.Summary); err != nil {
		logger.Error("Failed to write CSV summary", "path", csvPath, "error", err)
		os.Exit(1)
	}

	fmt.Printf("Analysis date: %s\n", report.AnalysisDate.Format("2006-01-02"))
	fmt.Printf("Referrals processed: %d\n", len(report.Referrals))
	fmt.Println()
	for _, row := range report.Summary {
		fmt.Printf("  %-28s %d\n", row.Category, row.Referrals)
	}
	fmt.Println()
	fmt.Printf("Excel report: %s\n", excelPath)
	fmt.Printf("CSV summary:  %s\n", csvPath)

	logger.Info("Report generation complete",
		"referrals", len(report.Referrals),
		"duration", time.Since(start).String())
}
