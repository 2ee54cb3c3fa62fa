// Package stats keeps monthly counters of publishing-gate outcomes and
// persists them as a small JSON file.
package stats

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/seo-optimizer/contentgate/analyzer"
)

const monthLayout = "2006-01"

// MonthlyStats represents gate statistics for a specific month
type MonthlyStats struct {
	Analyses           int       `json:"analyses"`
	Publishable        int       `json:"publishable"`
	BlockedSEO         int       `json:"blocked_seo"`
	BlockedQuality     int       `json:"blocked_quality"`
	BlockedOriginality int       `json:"blocked_originality"`
	ExportsAllowed     int       `json:"exports_allowed"`
	ExportsBlocked     int       `json:"exports_blocked"`
	Requests           int       `json:"requests"`
	Errors             int       `json:"errors"`
	TotalLatencyMs     float64   `json:"total_latency_ms"`
	AverageLatencyMs   float64   `json:"average_latency_ms"`
	LastUpdated        time.Time `json:"last_updated"`
}

// Storage handles persistent storage of statistics
type Storage struct {
	mutex       sync.RWMutex
	stats       map[string]*MonthlyStats // key: "YYYY-MM"
	filePath    string
	lastWrite   time.Time
	writeBuffer chan struct{}
	stop        chan struct{}
	done        chan struct{}
	closeOnce   sync.Once
	now         func() time.Time
	logger      *slog.Logger
}

// Option configures a Storage
type Option func(*Storage)

// WithClock sets the time source used to pick the current month
func WithClock(now func() time.Time) Option {
	return func(s *Storage) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the logger for background write failures
func WithLogger(logger *slog.Logger) Option {
	return func(s *Storage) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewStorage creates a new statistics storage instance in dataDir
func NewStorage(dataDir string, opts ...Option) (*Storage, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	s := &Storage{
		stats:       make(map[string]*MonthlyStats),
		filePath:    filepath.Join(dataDir, "stats.json"),
		writeBuffer: make(chan struct{}, 1),
		stop:        make(chan struct{}),
		done:        make(chan struct{}),
		now:         time.Now,
		logger:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load stats: %w", err)
	}

	go s.backgroundWriter()

	return s, nil
}

// load reads statistics from file
func (s *Storage) load() error {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	return json.Unmarshal(data, &s.stats)
}

// save writes statistics to file through a temporary file and a rename
func (s *Storage) save() error {
	s.mutex.RLock()
	data, err := json.Marshal(s.stats)
	s.mutex.RUnlock()

	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}

	tempFile := s.filePath + ".tmp"
	if err := os.WriteFile(tempFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write temporary file: %w", err)
	}

	if err := os.Rename(tempFile, s.filePath); err != nil {
		os.Remove(tempFile)
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	return nil
}

func (s *Storage) saveAndLog() {
	if err := s.save(); err != nil {
		s.logger.Error("failed to persist statistics", "path", s.filePath, "error", err)
	}
}

// backgroundWriter handles periodic writes to disk until Shutdown
func (s *Storage) backgroundWriter() {
	defer close(s.done)

	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.writeBuffer:
			s.saveAndLog()
		case <-ticker.C:
			s.saveAndLog()
		case <-s.stop:
			return
		}
	}
}

// requestWrite signals that a write to disk is needed
func (s *Storage) requestWrite() {
	select {
	case s.writeBuffer <- struct{}{}:
	default:
		// write already pending
	}
}

// Shutdown stops the background writer and writes the counters one last
// time.
func (s *Storage) Shutdown() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.stop)
		<-s.done
		err = s.save()
	})
	return err
}

func (s *Storage) currentMonth() string {
	return s.now().Format(monthLayout)
}

// update applies fn to the current month's counters. Callers must not hold
// the mutex.
func (s *Storage) update(fn func(*MonthlyStats)) {
	month := s.currentMonth()

	s.mutex.Lock()
	defer s.mutex.Unlock()

	stats, exists := s.stats[month]
	if !exists {
		stats = &MonthlyStats{}
		s.stats[month] = stats
	}
	fn(stats)
	stats.LastUpdated = s.now()

	// Request a write if enough time has passed
	if s.now().Sub(s.lastWrite) > time.Minute {
		s.requestWrite()
		s.lastWrite = s.now()
	}
}

// RecordAnalysis counts the outcome of one publishing-gate decision
func (s *Storage) RecordAnalysis(report *analyzer.FullAnalysisReport) {
	if report == nil {
		return
	}
	s.update(func(m *MonthlyStats) {
		m.Analyses++
		if report.CanPublish {
			m.Publishable++
		}
		if !report.SEO.Passed {
			m.BlockedSEO++
		}
		if !report.Quality.Passed {
			m.BlockedQuality++
		}
		if !report.Plagiarism.Passed {
			m.BlockedOriginality++
		}
	})
}

// RecordExport counts one export-gate decision
func (s *Storage) RecordExport(allowed bool) {
	s.update(func(m *MonthlyStats) {
		if allowed {
			m.ExportsAllowed++
		} else {
			m.ExportsBlocked++
		}
	})
}

// RecordRequest counts one API request and its latency
func (s *Storage) RecordRequest(latency time.Duration, failed bool) {
	s.update(func(m *MonthlyStats) {
		m.Requests++
		if failed {
			m.Errors++
		}
		m.TotalLatencyMs += float64(latency) / float64(time.Millisecond)
		m.AverageLatencyMs = m.TotalLatencyMs / float64(m.Requests)
	})
}

// GetCurrentStats returns statistics for the current month
func (s *Storage) GetCurrentStats() MonthlyStats {
	month := s.currentMonth()

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if stats, exists := s.stats[month]; exists {
		return *stats
	}
	return MonthlyStats{}
}

// Cleanup removes statistics for every month except the current and the
// previous one
func (s *Storage) Cleanup() {
	now := s.now()
	currentMonth := now.Format(monthLayout)
	previousMonth := now.AddDate(0, -1, 0).Format(monthLayout)

	s.mutex.Lock()
	removed := 0
	for key := range s.stats {
		if key != currentMonth && key != previousMonth {
			delete(s.stats, key)
			removed++
		}
	}
	s.mutex.Unlock()

	s.requestWrite()
	s.logger.Debug("statistics cleaned up", "retained", []string{currentMonth, previousMonth}, "removed", removed)
}

// GetMonthlyStats returns statistics for a specific month
func (s *Storage) GetMonthlyStats(yearMonth string) (MonthlyStats, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if stats, exists := s.stats[yearMonth]; exists {
		return *stats, true
	}
	return MonthlyStats{}, false
}

// GetAllMonths returns all months that have statistics, newest first
func (s *Storage) GetAllMonths() []string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	months := make([]string, 0, len(s.stats))
	for month := range s.stats {
		months = append(months, month)
	}

	sort.Sort(sort.Reverse(sort.StringSlice(months)))

	return months
}
