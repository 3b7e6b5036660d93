// Package cli implements the wikipath command-line interface.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/alvmarrod/wikipath/internal/storage"
	"github.com/alvmarrod/wikipath/internal/version"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "wikipath",
	Short: "Find hyperlink paths between Wikipedia articles",
	Long: `wikipath discovers a shortest chain of article-to-article hyperlinks
connecting two Wikipedia articles, fetching pages lazily as the
breadth-first search expands.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute runs the root command
func Execute() error {
	// Load .env file early so environment variables are available
	_ = godotenv.Load()

	// Configure logging
	logrus.SetLevel(logrus.InfoLevel)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("wikipath version %s\n", version.Version)
		},
	})

	rootCmd.AddCommand(pathCommand())
	rootCmd.AddCommand(tokenCommand())
	rootCmd.AddCommand(historyCommand())
}

// openStore opens the persisted token/history store at its default
// location.
func openStore() (*storage.Store, error) {
	path, err := storage.DefaultPath()
	if err != nil {
		return nil, err
	}
	return storage.NewStore(path)
}

// resolveToken returns the API token to use: the WIKIPATH_TOKEN
// environment variable beats the stored one. Store failures are logged
// and the search falls back to anonymous mode.
func resolveToken() string {
	if token := os.Getenv("WIKIPATH_TOKEN"); token != "" {
		return token
	}

	store, err := openStore()
	if err != nil {
		logrus.Errorf("Failed to open token store, using anonymous mode: %v", err)
		return ""
	}
	defer store.Close()

	token, err := store.Token()
	if err != nil {
		logrus.Errorf("Failed to load token, using anonymous mode: %v", err)
		return ""
	}

	return token
}
