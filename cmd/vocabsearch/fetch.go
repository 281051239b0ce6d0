// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/vocabsearch/internal/client"
	"github.com/pdiddy/vocabsearch/internal/render"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [search-key]",
	Short: "Load a stored result set from a running server",
	Long: `Fetch loads the result set stored under a search key from
/api/results/{key} on a running server and prints it. With --query it first
runs the search on the server and then loads the new key.

Output is a terminal table by default, or the HTML table with --html.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFetch,
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	query, _ := cmd.Flags().GetString("query")
	htmlOutput, _ := cmd.Flags().GetBool("html")

	c, err := client.New(cfg.Client)
	if err != nil {
		return err
	}

	var key string
	columns := cfg.Store.Columns
	switch {
	case query != "":
		res, err := c.Search(cmd.Context(), query)
		if err != nil {
			return err
		}
		key = res.Key
		if len(res.Columns) > 0 {
			columns = res.Columns
		}
		fmt.Fprintf(os.Stderr, "search key: %s (%d results)\n", key, res.Count)
	case len(args) == 1:
		key = args[0]
	default:
		return fmt.Errorf("provide a search key or --query")
	}

	if htmlOutput {
		if err := c.Display(cmd.Context(), os.Stdout, key, columns); err != nil {
			return err
		}
		fmt.Println()
		return nil
	}

	rows, err := c.Fetch(cmd.Context(), key, columns)
	if err != nil {
		return err
	}
	return render.Text(os.Stdout, columns, rows)
}

func init() {
	fetchCmd.Flags().String("server", "", "server base URL (default http://localhost:8000)")
	fetchCmd.Flags().String("query", "", "run this search on the server first")
	fetchCmd.Flags().Bool("html", false, "print the HTML table")
	mustBind("client.base_url", fetchCmd.Flags().Lookup("server"))

	rootCmd.AddCommand(fetchCmd)
}
