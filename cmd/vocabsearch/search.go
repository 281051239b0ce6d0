// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/vocabsearch/internal/render"
	"github.com/pdiddy/vocabsearch/internal/vocab"
	"github.com/pdiddy/vocabsearch/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search <term...>",
	Short: "Search the local database",
	Long: `Search matches the search string as a substring of every configured
column and prints the matching rows as a table. Use --json for the
results API body or --html for the HTML table.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	store, err := vocab.NewStore(loadConfig().Store)
	if err != nil {
		return err
	}
	defer store.Close()

	rows, err := store.Search(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	htmlOutput, _ := cmd.Flags().GetBool("html")
	return formatSearchOutput(os.Stdout, store.Columns(), rows, jsonOutput, htmlOutput)
}

func formatSearchOutput(w io.Writer, columns []string, rows []types.Row, jsonOutput, htmlOutput bool) error {
	switch {
	case jsonOutput:
		if rows == nil {
			rows = []types.Row{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(types.ResultsResponse{Result: rows})
	case htmlOutput:
		if err := render.Table(w, columns, rows); err != nil {
			return err
		}
		_, err := io.WriteString(w, "\n")
		return err
	default:
		return render.Text(w, columns, rows)
	}
}

func init() {
	searchCmd.Flags().Int("max-results", 0, "maximum rows to return (0 = no limit)")
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	searchCmd.Flags().Bool("html", false, "output results as an HTML table")
	mustBind("store.max_results", searchCmd.Flags().Lookup("max-results"))

	rootCmd.AddCommand(searchCmd)
}
