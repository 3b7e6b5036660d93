package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alvmarrod/wikipath/internal/config"
	"github.com/alvmarrod/wikipath/internal/metrics"
	"github.com/alvmarrod/wikipath/internal/search"
	"github.com/alvmarrod/wikipath/internal/storage"
	"github.com/alvmarrod/wikipath/internal/wiki"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// pathSeparator joins the article identifiers of a reported path.
const pathSeparator = " -> "

func pathCommand() *cobra.Command {
	var (
		verbose  bool
		all      bool
		external bool
		maxDepth int
	)

	cmd := &cobra.Command{
		Use:   "path START END",
		Short: "Find paths from one article to another",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPath(cmd.Context(), args[0], args[1], pathOptions{
				verbose:  verbose,
				all:      all,
				external: external,
				maxDepth: maxDepth,
			})
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false,
		"print article name and depth for each searched article")
	cmd.Flags().IntVarP(&maxDepth, "max-depth", "d", config.DefaultMaxDepth,
		"maximum depth to search")
	cmd.Flags().BoolVarP(&all, "all", "a", false,
		"find all paths up to the maximum depth")
	cmd.Flags().BoolVarP(&external, "external", "e", false,
		`search articles in the "External links" section`)

	return cmd
}

type pathOptions struct {
	verbose  bool
	all      bool
	external bool
	maxDepth int
}

func runPath(ctx context.Context, start, end string, opts pathOptions) error {
	cfg, err := config.Resolve(resolveToken())
	if err != nil {
		return err
	}

	if cfg.Authenticated() {
		logrus.Debugf("Using authenticated API mode (%d requests/hour)", cfg.RequestsPerHour)
	} else {
		logrus.Debugf("Using anonymous mode (%d requests/hour)", cfg.RequestsPerHour)
	}

	fetcher := wiki.NewFetcher(cfg)
	extract := func(body string) ([]string, error) {
		return wiki.Links(body, wiki.ExtractOptions{
			LinkPrefix:      cfg.LinkPrefix,
			HomePage:        config.HomePage,
			IncludeExternal: opts.external,
		})
	}

	tracker := metrics.NewTracker()

	var lastMatch *search.Match
	searcher := search.NewSearcher(fetcher, extract, tracker, func(m search.Match) {
		lastMatch = &m
		fmt.Println("Path: " + strings.Join(m.Path, pathSeparator))
		fmt.Printf("Length: %d\n", len(m.Path))
		fmt.Printf("Took %s\n", m.Elapsed.Round(time.Millisecond))
	})

	startTime := time.Now()
	if err := searcher.Run(ctx, search.Options{
		Start:    start,
		Target:   end,
		MaxDepth: opts.maxDepth,
		Verbose:  opts.verbose,
		All:      opts.all,
	}); err != nil {
		return err
	}

	logrus.Info("Search finished: " + tracker.Summary())

	recordOutcome(start, end, lastMatch, time.Since(startTime))
	return nil
}

// recordOutcome appends the completed search to the history store.
// History is best-effort: failures are logged, never returned.
func recordOutcome(start, end string, match *search.Match, elapsed time.Duration) {
	store, err := openStore()
	if err != nil {
		logrus.Warnf("Failed to open history store: %v", err)
		return
	}
	defer store.Close()

	rec := storage.SearchRecord{
		Start:      start,
		Target:     end,
		DurationMs: elapsed.Milliseconds(),
	}
	if match != nil {
		rec.Path = strings.Join(match.Path, pathSeparator)
		rec.Length = len(match.Path)
	}

	if err := store.RecordSearch(rec); err != nil {
		logrus.Warnf("Failed to record search: %v", err)
	}
}
