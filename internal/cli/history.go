package cli

import (
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

const (
	// defaultHistorySize is how many searches are listed by default
	defaultHistorySize = 10

	// maxPathPreviewLength truncates long paths in the table
	maxPathPreviewLength = 80
)

func historyCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent searches",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", defaultHistorySize,
		"number of searches to show")

	return cmd
}

func runHistory(limit int) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.RecentSearches(limit)
	if err != nil {
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"When", "Start", "Target", "Path", "Length", "Took"})

	for _, rec := range records {
		path := rec.Path
		if path == "" {
			path = "(not found)"
		}
		if len(path) > maxPathPreviewLength {
			path = path[:maxPathPreviewLength] + "..."
		}

		t.AppendRow(table.Row{
			rec.CreatedAt.Format(time.DateTime),
			rec.Start,
			rec.Target,
			path,
			rec.Length,
			(time.Duration(rec.DurationMs) * time.Millisecond).String(),
		})
	}

	t.Render()
	return nil
}
