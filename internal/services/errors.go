package services

import "errors"

// Report service errors
var (
	ErrReportNotFound = errors.New("report not found")
	ErrEmptyWorkbook  = errors.New("workbook contains no referral rows")
	ErrInvalidDate    = errors.New("invalid analysis date")
	ErrStoreFull      = errors.New("report store is full")
)
