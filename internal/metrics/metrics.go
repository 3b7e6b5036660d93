package metrics

import (
	"fmt"
	"sync"
	"time"
)

// Stats is a snapshot of the counters for one search.
type Stats struct {
	ArticlesScanned    int
	ArticlesDiscovered int
	RequestsFailed     int
	MatchesFound       int
	Elapsed            time.Duration
}

// Tracker holds and manages per-search counters
type Tracker struct {
	mu                 sync.Mutex
	startTime          time.Time
	articlesScanned    int
	articlesDiscovered int
	requestsFailed     int
	matchesFound       int
}

// NewTracker creates a new metrics tracker
func NewTracker() *Tracker {
	return &Tracker{startTime: time.Now()}
}

// IncrementArticlesScanned increments the scanned (expanded) articles counter
func (t *Tracker) IncrementArticlesScanned() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.articlesScanned++
}

// IncrementArticlesDiscovered increments the discovered articles counter
func (t *Tracker) IncrementArticlesDiscovered() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.articlesDiscovered++
}

// IncrementRequestsFailed increments the failed requests counter
func (t *Tracker) IncrementRequestsFailed() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.requestsFailed++
}

// IncrementMatchesFound increments the found paths counter
func (t *Tracker) IncrementMatchesFound() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.matchesFound++
}

// Snapshot returns a copy of the current counters
func (t *Tracker) Snapshot() Stats {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Stats{
		ArticlesScanned:    t.articlesScanned,
		ArticlesDiscovered: t.articlesDiscovered,
		RequestsFailed:     t.requestsFailed,
		MatchesFound:       t.matchesFound,
		Elapsed:            time.Since(t.startTime),
	}
}

// Summary returns a one-line human-readable progress report
func (t *Tracker) Summary() string {
	s := t.Snapshot()
	return fmt.Sprintf("scanned=%d discovered=%d failed=%d matches=%d elapsed=%s",
		s.ArticlesScanned, s.ArticlesDiscovered, s.RequestsFailed, s.MatchesFound,
		s.Elapsed.Round(time.Millisecond))
}
