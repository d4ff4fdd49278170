package store

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/stepanukha/Weather-App/internal/advisor"
)

var (
	// ErrNotFound is returned when no report is available for a given place.
	ErrNotFound = errors.New("no reports for place")
)

// ReportHistory holds a time-ordered list of reports for a place.
type ReportHistory struct {
	Reports []advisor.Report
}

// MemoryStore is a concurrency-safe in-memory store of briefing reports.
type MemoryStore struct {
	mu sync.RWMutex

	// key: place name, value: history
	data map[string]*ReportHistory

	// retention configuration
	maxHistory int           // max number of reports per place
	maxAge     time.Duration // optional max age for reports

	now func() time.Time
}

// NewMemoryStore creates a new MemoryStore with optional limits.
// If maxHistory is <= 0, it is treated as unlimited.
func NewMemoryStore(maxHistory int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		data:       make(map[string]*ReportHistory),
		maxHistory: maxHistory,
		maxAge:     maxAge,
		now:        time.Now,
	}
}

// Save appends a new report for a place and enforces retention.
func (s *MemoryStore) Save(place string, report advisor.Report) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history, ok := s.data[place]
	if !ok {
		history = &ReportHistory{}
		s.data[place] = history
	}

	history.Reports = append(history.Reports, report)

	// Enforce retention by count.
	if s.maxHistory > 0 && len(history.Reports) > s.maxHistory {
		over := len(history.Reports) - s.maxHistory
		history.Reports = history.Reports[over:]
	}

	// Enforce retention by age; the newest report is always kept.
	if s.maxAge > 0 {
		cutoff := s.now().Add(-s.maxAge)
		i := 0
		for ; i < len(history.Reports)-1; i++ {
			if !history.Reports[i].GeneratedAt.Before(cutoff) {
				break
			}
		}
		history.Reports = history.Reports[i:]
	}
}

// Latest returns the most recent report for a place.
func (s *MemoryStore) Latest(place string) (advisor.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history, ok := s.data[place]
	if !ok || len(history.Reports) == 0 {
		return advisor.Report{}, ErrNotFound
	}
	return history.Reports[len(history.Reports)-1], nil
}

// Range returns all reports for a place generated between from and to (inclusive).
func (s *MemoryStore) Range(place string, from, to time.Time) ([]advisor.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history, ok := s.data[place]
	if !ok || len(history.Reports) == 0 {
		return nil, ErrNotFound
	}

	var result []advisor.Report
	for _, r := range history.Reports {
		if !r.GeneratedAt.Before(from) && !r.GeneratedAt.After(to) {
			result = append(result, r)
		}
	}

	if len(result) == 0 {
		return nil, ErrNotFound
	}

	return result, nil
}

// Places lists every place with at least one report, sorted by name.
func (s *MemoryStore) Places() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	places := make([]string, 0, len(s.data))
	for place, history := range s.data {
		if len(history.Reports) > 0 {
			places = append(places, place)
		}
	}
	sort.Strings(places)
	return places
}
