// Package exporter renders generated referral reports into downloadable
// artifacts.
//
// ExcelBuilder produces the styled multi-sheet workbook: the full referral
// overview, the pending tasks summary with its timestamp banner, and one
// sheet per category, all with bold filled headers, frozen panes,
// autofilters, and auto-sized columns.
//
// CSVWriter and SummaryCSV produce the pending tasks summary as CSV with a
// UTF-8 BOM for Excel compatibility; the CSV output carries no timestamps
// so identical inputs produce byte-identical files.
package exporter
