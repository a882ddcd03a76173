// Package runlog keeps a bounded in-memory history of projection runs.
// The engine itself is stateless; the log exists so operators can see what
// recent runs produced without re-running them.
package runlog

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cwaltman/replen/pkg/application/dto"
)

// Record is the retained summary of one projection run
type Record struct {
	RunID         uuid.UUID `json:"runId"`
	GeneratedAt   time.Time `json:"generatedAt"`
	CurrentWeek   int       `json:"currentWeek"`
	HorizonWeeks  int       `json:"horizonWeeks"`
	ProjectedSKUs int       `json:"projectedSkus"`
	Suggestions   int       `json:"suggestions"`
	CriticalCount int       `json:"criticalCount"`
	Warnings      int       `json:"warnings"`
}

// Store holds run records newest-first up to a fixed capacity
type Store struct {
	mu       sync.RWMutex
	records  []Record
	capacity int
}

// NewStore creates a run log that retains the most recent capacity runs
func NewStore(capacity int) *Store {
	if capacity < 1 {
		capacity = 1
	}
	return &Store{capacity: capacity}
}

// Record summarizes a run result and appends it to the log, evicting the
// oldest record once the log is full
func (s *Store) Record(result *dto.PlanningResult) {
	record := Record{
		RunID:         result.RunID,
		GeneratedAt:   result.GeneratedAt,
		CurrentWeek:   result.CurrentWeek,
		HorizonWeeks:  result.HorizonWeeks,
		ProjectedSKUs: len(result.Projections),
		Suggestions:   len(result.Suggestions),
		CriticalCount: result.Summary.CriticalCount,
		Warnings:      len(result.Warnings),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append([]Record{record}, s.records...)
	if len(s.records) > s.capacity {
		s.records = s.records[:s.capacity]
	}
}

// Recent returns up to n records, newest first
func (s *Store) Recent(n int) []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if n < 0 || n > len(s.records) {
		n = len(s.records)
	}

	out := make([]Record, n)
	copy(out, s.records[:n])
	return out
}
