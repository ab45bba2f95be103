package services

import (
	"sync"
	"time"

	"refdash/pkg/contracts/domain"
)

// storedReport couples a generated report with its rendered artifacts so
// downloads never re-render (and the CSV stays byte-identical between
// requests for the same report).
type storedReport struct {
	report    *domain.Report
	excelData []byte
	csvData   []byte
	createdAt time.Time
}

// ReportStore holds generated reports in memory for later download.
// Entries expire after the retention window; there is no persistence
// (a report not downloaded in time is simply regenerated by re-upload).
type ReportStore struct {
	mu        sync.RWMutex
	reports   map[string]*storedReport
	retention time.Duration
	maxStored int
	now       func() time.Time
}

// NewReportStore creates a store with the given retention and capacity.
func NewReportStore(retention time.Duration, maxStored int) *ReportStore {
	return &ReportStore{
		reports:   make(map[string]*storedReport),
		retention: retention,
		maxStored: maxStored,
		now:       time.Now,
	}
}

// Put stores a report and its artifacts. When the store is at capacity the
// oldest entry is evicted first.
func (s *ReportStore) Put(id string, report *domain.Report, excelData, csvData []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.evictExpiredLocked()
	if len(s.reports) >= s.maxStored {
		if !s.evictOldestLocked() {
			return ErrStoreFull
		}
	}

	s.reports[id] = &storedReport{
		report:    report,
		excelData: excelData,
		csvData:   csvData,
		createdAt: s.now(),
	}
	return nil
}

// Get returns a stored report by id.
func (s *ReportStore) Get(id string) (*domain.Report, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.liveEntry(id)
	if !ok {
		return nil, false
	}
	return entry.report, true
}

// ExcelData returns the rendered workbook bytes for a stored report.
func (s *ReportStore) ExcelData(id string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.liveEntry(id)
	if !ok {
		return nil, false
	}
	return entry.excelData, true
}

// CSVData returns the rendered summary CSV bytes for a stored report.
func (s *ReportStore) CSVData(id string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.liveEntry(id)
	if !ok {
		return nil, false
	}
	return entry.csvData, true
}

// Len returns the number of live entries.
func (s *ReportStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, entry := range s.reports {
		if !s.expired(entry) {
			n++
		}
	}
	return n
}

// liveEntry returns an entry when present and not expired. Callers hold
// at least a read lock; expired entries are skipped here and reaped on
// the next write.
func (s *ReportStore) liveEntry(id string) (*storedReport, bool) {
	entry, ok := s.reports[id]
	if !ok || s.expired(entry) {
		return nil, false
	}
	return entry, true
}

func (s *ReportStore) expired(entry *storedReport) bool {
	return s.now().Sub(entry.createdAt) > s.retention
}

func (s *ReportStore) evictExpiredLocked() {
	for id, entry := range s.reports {
		if s.expired(entry) {
			delete(s.reports, id)
		}
	}
}

func (s *ReportStore) evictOldestLocked() bool {
	var oldestID string
	var oldestAt time.Time
	for id, entry := range s.reports {
		if oldestID == "" || entry.createdAt.Before(oldestAt) {
			oldestID = id
			oldestAt = entry.createdAt
		}
	}
	if oldestID == "" {
		return false
	}
	delete(s.reports, oldestID)
	return true
}
