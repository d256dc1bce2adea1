package stats

import (
	"log/slog"
	"sync"

	"github.com/laiambryant/scoped-reader/reader"
	s "github.com/laiambryant/scoped-reader/structs"
)

// ReadStats tracks how many read attempts completed and how many failed, per kind
type ReadStats struct {
	mu           sync.Mutex
	Completed    int
	NotFound     int
	AccessDenied int
	IOFailure    int
}

// RecordCompleted increments the completed counter
func (rs *ReadStats) RecordCompleted() {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.Completed++
}

// RecordFailure increments the failure counter for the given kind
func (rs *ReadStats) RecordFailure(kind s.ErrorKind) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	switch kind {
	case s.NotFound:
		rs.NotFound++
	case s.AccessDenied:
		rs.AccessDenied++
	default:
		rs.IOFailure++
	}
}

// RecordOutcome records a read outcome under the matching counter
func (rs *ReadStats) RecordOutcome(outcome reader.ReadOutcome) {
	if outcome.Completed() {
		rs.RecordCompleted()
		return
	}
	rs.RecordFailure(outcome.Err.Kind)
}

// Failed returns the number of failed attempts of any kind
func (rs *ReadStats) Failed() int {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return rs.NotFound + rs.AccessDenied + rs.IOFailure
}

// Total returns the number of recorded attempts
func (rs *ReadStats) Total() int {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return rs.Completed + rs.NotFound + rs.AccessDenied + rs.IOFailure
}

// Snapshot returns a copy of the counters safe to read without the lock
func (rs *ReadStats) Snapshot() (completed, notFound, accessDenied, ioFailure int) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return rs.Completed, rs.NotFound, rs.AccessDenied, rs.IOFailure
}

// PrintSummary prints a summary of the read statistics
func (rs *ReadStats) PrintSummary() {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	slog.Info("=== File Read Summary ===")
	if rs.Completed > 0 {
		slog.Info("Completed", "count", rs.Completed)
	}
	if rs.NotFound > 0 {
		slog.Info(s.NotFound.String(), "count", rs.NotFound)
	}
	if rs.AccessDenied > 0 {
		slog.Info(s.AccessDenied.String(), "count", rs.AccessDenied)
	}
	if rs.IOFailure > 0 {
		slog.Info(s.IOFailure.String(), "count", rs.IOFailure)
	}
	totalFailed := rs.NotFound + rs.AccessDenied + rs.IOFailure
	slog.Info("Total", "completed", rs.Completed, "failed", totalFailed)
}
