package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func tokenCommand() *cobra.Command {
	var (
		token string
		unset bool
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage the Wikimedia API token",
		Long: `Manage the personal Wikimedia API token. A stored token switches
fetching to the authenticated REST API, decreasing the request wait
from 7.2s to 0.72s (https://api.wikimedia.org/wiki/Authentication).

Without flags the stored token is printed, if any.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runToken(token, unset)
		},
	}

	cmd.Flags().StringVarP(&token, "token", "t", "", "token to store")
	cmd.Flags().BoolVarP(&unset, "unset", "u", false, "remove the stored token")

	return cmd
}

func runToken(token string, unset bool) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	switch {
	case unset:
		return store.ClearToken()
	case token != "":
		return store.SetToken(token)
	default:
		stored, err := store.Token()
		if err != nil {
			return err
		}
		if stored != "" {
			fmt.Println(stored)
		}
		return nil
	}
}
