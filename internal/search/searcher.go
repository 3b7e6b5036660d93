package search

import (
	"context"
	"time"

	"github.com/alvmarrod/wikipath/internal/metrics"
	"github.com/sirupsen/logrus"
)

// Fetcher downloads the page body for one article identifier.
type Fetcher interface {
	Fetch(ctx context.Context, article string) (string, error)
}

// ExtractFunc turns a fetched document body into candidate article
// identifiers in document order.
type ExtractFunc func(body string) ([]string, error)

// Options describe one search invocation.
type Options struct {
	Start    string
	Target   string
	MaxDepth int
	Verbose  bool
	All      bool
}

// Match is one discovered path from start to target.
type Match struct {
	Path    []string
	Depth   int
	Elapsed time.Duration
}

// Searcher drives the level-synchronized breadth-first expansion of the
// article graph. All nodes at one depth are fetched before any node at
// the next, so in stop-at-first-hit mode the first match has the
// minimum number of hops.
type Searcher struct {
	fetcher Fetcher
	extract ExtractFunc
	tracker *metrics.Tracker
	onMatch func(Match)
}

// NewSearcher creates a searcher. onMatch is invoked for every path
// found, as soon as it is found.
func NewSearcher(fetcher Fetcher, extract ExtractFunc, tracker *metrics.Tracker, onMatch func(Match)) *Searcher {
	return &Searcher{
		fetcher: fetcher,
		extract: extract,
		tracker: tracker,
		onMatch: onMatch,
	}
}

// Run expands the frontier level by level until the target is found
// (unless Options.All keeps it going), the depth bound is reached, or a
// level turns up no new articles. Per-node fetch and parse failures are
// logged and treated as dead ends; they never abort the search.
func (s *Searcher) Run(ctx context.Context, opts Options) error {
	startTime := time.Now()

	registry := NewRegistry(opts.Start)

	currIdx := 0
	nextLevelLen := 1

	for depth := 0; depth <= opts.MaxDepth; depth++ {
		levelLen := nextLevelLen
		nextLevelLen = 0

		for endIdx := currIdx + levelLen; currIdx < endIdx; {
			if err := ctx.Err(); err != nil {
				return err
			}

			currIdx++
			article := registry.Identifier(currIdx)

			if opts.Verbose {
				logrus.Infof("Expanding %s (depth=%d)", article, depth)
			}
			s.tracker.IncrementArticlesScanned()

			body, err := s.fetcher.Fetch(ctx, article)
			if err != nil {
				s.tracker.IncrementRequestsFailed()
				logrus.Errorf("Failed to fetch %s: %v", article, err)
				continue
			}

			candidates, err := s.extract(body)
			if err != nil {
				s.tracker.IncrementRequestsFailed()
				logrus.Errorf("Failed to parse %s: %v", article, err)
				continue
			}

			for _, candidate := range candidates {
				idx, ok := registry.InsertIfNew(candidate, currIdx)
				if !ok {
					continue
				}
				nextLevelLen++
				s.tracker.IncrementArticlesDiscovered()

				if candidate != opts.Target {
					continue
				}

				s.tracker.IncrementMatchesFound()
				s.onMatch(Match{
					Path:    registry.PathTo(idx),
					Depth:   depth + 1,
					Elapsed: time.Since(startTime),
				})

				if !opts.All {
					return nil
				}
			}
		}

		if nextLevelLen == 0 {
			break
		}
	}

	return nil
}
