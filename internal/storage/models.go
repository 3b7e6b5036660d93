package storage

import "time"

// SearchRecord is the stored outcome of one completed path search.
// Only the result is kept; discovered articles are never persisted.
type SearchRecord struct {
	SearchID   int
	Start      string
	Target     string
	Path       string // identifiers joined with " -> ", empty when nothing was found
	Length     int
	DurationMs int64
	CreatedAt  time.Time
}
