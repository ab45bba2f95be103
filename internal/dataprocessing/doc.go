// Package dataprocessing turns an uploaded referral overview workbook
// into classified results: parsing the expected column structure,
// deriving the days-in-activity field for a given analysis date, running
// the pending-task category predicates, and counting matches into the
// summary table.
//
// The typical flow through this package:
//
//	Workbook → Parser → Referrals → Process → Classify → Summarize
//
// Parsing validates that every expected column is present and reports
// the missing ones in a MissingColumnsError. Classification is a single
// pass of independent predicates; a row may appear in any number of
// categories.
package dataprocessing
