// Package http contains the HTTP handlers of the referral dashboard:
// report upload and generation, per-category detail, workbook and CSV
// downloads, health and version endpoints, Prometheus metrics, and the
// upload page itself. Handlers translate service errors into RFC 7807
// problem documents through the shared error handler.
package http
