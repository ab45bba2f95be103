// Package services contains the business logic layer between the HTTP
// handlers and the data processing packages. ReportService orchestrates a
// full analysis run (parse, process, classify, summarize, render) and
// keeps generated reports in an in-memory store for download;
// HealthService reports process health and build information.
package services
