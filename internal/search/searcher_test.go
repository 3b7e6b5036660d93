package search_test

import (
	"context"
	"errors"
	"testing"

	"github.com/alvmarrod/wikipath/internal/metrics"
	"github.com/alvmarrod/wikipath/internal/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// graphFetcher serves a frozen link graph: fetching an article returns
// the article name as the "body", and the paired extract func resolves
// that body to the article's outgoing links.
type graphFetcher struct {
	graph   map[string][]string
	errs    map[string]error
	fetched []string
}

func (g *graphFetcher) Fetch(_ context.Context, article string) (string, error) {
	g.fetched = append(g.fetched, article)
	if err := g.errs[article]; err != nil {
		return "", err
	}
	return article, nil
}

func (g *graphFetcher) extract(body string) ([]string, error) {
	return g.graph[body], nil
}

func runSearch(t *testing.T, g *graphFetcher, opts search.Options) ([]search.Match, *metrics.Tracker) {
	t.Helper()

	tracker := metrics.NewTracker()

	var matches []search.Match
	s := search.NewSearcher(g, g.extract, tracker, func(m search.Match) {
		matches = append(matches, m)
	})

	require.NoError(t, s.Run(context.Background(), opts))
	return matches, tracker
}

func TestRun_EndToEnd(t *testing.T) {
	t.Parallel()

	g := &graphFetcher{graph: map[string][]string{
		"A": {"B", "C"},
		"B": {"D"},
		"C": {},
	}}

	matches, tracker := runSearch(t, g, search.Options{
		Start: "A", Target: "D", MaxDepth: 25,
	})

	require.Len(t, matches, 1)
	assert.Equal(t, []string{"A", "B", "D"}, matches[0].Path)
	assert.Equal(t, 2, matches[0].Depth)

	// The hit lands mid-level: C is never fetched.
	assert.Equal(t, []string{"A", "B"}, g.fetched)

	stats := tracker.Snapshot()
	assert.Equal(t, 2, stats.ArticlesScanned)
	assert.Equal(t, 3, stats.ArticlesDiscovered)
	assert.Equal(t, 1, stats.MatchesFound)
}

func TestRun_FirstMatchIsShortest(t *testing.T) {
	t.Parallel()

	// A long route to the target exists, but BFS must report the
	// two-hop one.
	g := &graphFetcher{graph: map[string][]string{
		"A":     {"Long1", "B"},
		"B":     {"Target"},
		"Long1": {"Long2"},
		"Long2": {"Target"},
	}}

	matches, _ := runSearch(t, g, search.Options{
		Start: "A", Target: "Target", MaxDepth: 25,
	})

	require.Len(t, matches, 1)
	assert.Equal(t, []string{"A", "B", "Target"}, matches[0].Path)
	assert.Len(t, matches[0].Path, 3)
}

func TestRun_Deterministic(t *testing.T) {
	t.Parallel()

	graph := map[string][]string{
		"A": {"C", "B"},
		"B": {"E"},
		"C": {"D", "E"},
		"D": {"F"},
		"E": {"F"},
	}

	run := func() ([]string, []search.Match) {
		g := &graphFetcher{graph: graph}
		matches, _ := runSearch(t, g, search.Options{
			Start: "A", Target: "F", MaxDepth: 25,
		})
		return g.fetched, matches
	}

	fetched1, matches1 := run()
	fetched2, matches2 := run()

	assert.Equal(t, fetched1, fetched2)
	require.Len(t, matches1, 1)
	require.Len(t, matches2, 1)
	assert.Equal(t, matches1[0].Path, matches2[0].Path)
}

func TestRun_FetchFailureIsDeadEnd(t *testing.T) {
	t.Parallel()

	g := &graphFetcher{
		graph: map[string][]string{
			"A": {"B", "C"},
			"C": {"D"},
		},
		errs: map[string]error{
			"B": errors.New("connection refused"),
		},
	}

	matches, tracker := runSearch(t, g, search.Options{
		Start: "A", Target: "D", MaxDepth: 25,
	})

	// B fails, yields no children; the search continues through C.
	require.Len(t, matches, 1)
	assert.Equal(t, []string{"A", "C", "D"}, matches[0].Path)
	assert.Equal(t, 1, tracker.Snapshot().RequestsFailed)
}

func TestRun_DepthBoundRespected(t *testing.T) {
	t.Parallel()

	g := &graphFetcher{graph: map[string][]string{
		"A": {"B"},
		"B": {"C"},
		"C": {"D"},
	}}

	matches, _ := runSearch(t, g, search.Options{
		Start: "A", Target: "D", MaxDepth: 1,
	})

	assert.Empty(t, matches)
	// C is discovered at depth 2 but never fetched.
	assert.Equal(t, []string{"A", "B"}, g.fetched)
}

func TestRun_ExhaustsWhenFrontierEmpties(t *testing.T) {
	t.Parallel()

	g := &graphFetcher{graph: map[string][]string{
		"A": {"B"},
		"B": {"A"}, // already registered, nothing new
	}}

	matches, _ := runSearch(t, g, search.Options{
		Start: "A", Target: "Z", MaxDepth: 25,
	})

	assert.Empty(t, matches)
	assert.Equal(t, []string{"A", "B"}, g.fetched)
}

func TestRun_AllPathsMode(t *testing.T) {
	t.Parallel()

	// Two depth-2 routes to the target; dedup reports it once, but the
	// search must keep going instead of stopping at the first hit.
	g := &graphFetcher{graph: map[string][]string{
		"A": {"B", "C"},
		"B": {"D"},
		"C": {"D", "E"},
	}}

	matches, _ := runSearch(t, g, search.Options{
		Start: "A", Target: "D", MaxDepth: 3, All: true,
	})

	require.Len(t, matches, 1)
	assert.Equal(t, []string{"A", "B", "D"}, matches[0].Path)

	// C, D and E were still expanded after the match.
	assert.Equal(t, []string{"A", "B", "C", "D", "E"}, g.fetched)
}

func TestRun_StartNodeNeverMatchesItself(t *testing.T) {
	t.Parallel()

	g := &graphFetcher{graph: map[string][]string{
		"A": {"B"},
		"B": {"A"},
	}}

	matches, _ := runSearch(t, g, search.Options{
		Start: "A", Target: "A", MaxDepth: 5,
	})

	// A is registered up front, so a link back to it is never a new
	// discovery and never reported.
	assert.Empty(t, matches)
}

func TestRun_CancelledContextStopsSearch(t *testing.T) {
	t.Parallel()

	g := &graphFetcher{graph: map[string][]string{
		"A": {"B"},
	}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := search.NewSearcher(g, g.extract, metrics.NewTracker(), func(search.Match) {})
	err := s.Run(ctx, search.Options{Start: "A", Target: "B", MaxDepth: 5})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, g.fetched)
}
