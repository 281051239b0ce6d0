// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render turns result rows into an HTML table, a full search page,
// or a terminal table. Column names and the search key are passed in
// explicitly; nothing is read from package state.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/pdiddy/vocabsearch/pkg/types"
)

// NoResults is the placeholder shown in place of a table for an empty result set.
const NoResults = "No results found."

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// tableData is the input of the "table" template.
type tableData struct {
	Columns []string
	Rows    []types.Row
}

// Table writes rows as a bordered HTML table with one header row of column
// names followed by one row per result row. A row shorter than columns is
// padded with blank cells; a longer row keeps all of its cells. When rows is
// empty the NoResults paragraph is written and no table element.
func Table(w io.Writer, columns []string, rows []types.Row) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintf(w, "<p>%s</p>", NoResults)
		return err
	}

	padded := make([]types.Row, len(rows))
	for i, r := range rows {
		padded[i] = pad(r, len(columns))
	}

	if err := templates.ExecuteTemplate(w, "table", tableData{Columns: columns, Rows: padded}); err != nil {
		return fmt.Errorf("rendering table: %w", err)
	}
	return nil
}

// TableHTML is Table into a string, for embedding in a page.
func TableHTML(columns []string, rows []types.Row) (template.HTML, error) {
	var b strings.Builder
	if err := Table(&b, columns, rows); err != nil {
		return "", err
	}
	return template.HTML(b.String()), nil
}

// PageData is the input of Page.
type PageData struct {
	// Title is the document title.
	Title string

	// Path is the page path the search form returns to.
	Path string

	// SearchStr is the current search string, echoed into the input box.
	SearchStr string

	// SearchKey is the key of the displayed result set, empty when no
	// search has run.
	SearchKey string

	// Columns are the header labels of the result table.
	Columns []string

	// Count is the number of result rows.
	Count int

	// Results is the pre-rendered content of the results container.
	Results template.HTML

	// Version is shown in the page footer.
	Version string
}

// Page writes the search page.
func Page(w io.Writer, data PageData) error {
	if data.Title == "" {
		data.Title = "Vocabulary search"
	}
	if data.Path == "" {
		data.Path = "/"
	}
	if err := templates.ExecuteTemplate(w, "page", data); err != nil {
		return fmt.Errorf("rendering page: %w", err)
	}
	return nil
}

// Text writes rows as an aligned terminal table, or the NoResults line when
// rows is empty.
func Text(w io.Writer, columns []string, rows []types.Row) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, NoResults)
		return err
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader(columns)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	for _, r := range rows {
		table.Append(pad(r, len(columns)))
	}
	table.Render()

	_, err := fmt.Fprintf(w, "\n%d results\n", len(rows))
	return err
}

func pad(r types.Row, n int) types.Row {
	if len(r) >= n {
		return r
	}
	out := make(types.Row, n)
	copy(out, r)
	return out
}
