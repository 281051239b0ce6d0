// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package vocab

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/pdiddy/vocabsearch/pkg/types"
)

// ErrEmptyQuery is returned by Search when the search string is blank.
var ErrEmptyQuery = errors.New("empty search string")

// likeEscaper escapes LIKE wildcards so the search string matches literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Search returns every row in which any configured column contains term as
// a substring. Matching follows SQLite LIKE, so it is case-insensitive for
// ASCII. Rows carry the configured columns in order; NULL values become
// empty cells. When the store has a result cap, at most that many rows are
// returned.
func (s *Store) Search(ctx context.Context, term string) ([]types.Row, error) {
	if strings.TrimSpace(term) == "" {
		return nil, ErrEmptyQuery
	}

	if err := s.checkColumns(ctx); err != nil {
		return nil, err
	}

	query, args := s.buildQuery(term)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", s.table, err)
	}
	defer rows.Close()

	var (
		results []types.Row
		cells   = make([]sql.NullString, len(s.columns))
		dest    = make([]any, len(s.columns))
	)
	for i := range cells {
		dest[i] = &cells[i]
	}

	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		row := make(types.Row, len(cells))
		for i, c := range cells {
			if c.Valid {
				row[i] = c.String
			}
		}
		results = append(results, row)
	}

	return results, rows.Err()
}

// buildQuery renders the SELECT for term. Column names are quoted
// identifiers and the pattern is bound once per column.
func (s *Store) buildQuery(term string) (string, []any) {
	pattern := "%" + likeEscaper.Replace(term) + "%"

	var (
		qb    strings.Builder
		args  = make([]any, 0, len(s.columns)+1)
		likes = make([]string, len(s.columns))
	)

	for i, col := range s.columns {
		likes[i] = quoteIdent(col) + ` LIKE ? ESCAPE '\'`
		args = append(args, pattern)
	}

	fmt.Fprintf(&qb, `SELECT %s FROM %s WHERE %s`,
		joinIdents(s.columns), quoteIdent(s.table), strings.Join(likes, " OR "))

	if s.maxResults > 0 {
		qb.WriteString(` LIMIT ?`)
		args = append(args, s.maxResults)
	}

	return qb.String(), args
}

// checkColumns verifies the table exists and has every configured column.
func (s *Store) checkColumns(ctx context.Context) error {
	have, err := s.tableColumns(ctx)
	if err != nil {
		return err
	}
	if len(have) == 0 {
		return fmt.Errorf("table %s does not exist: run import first", s.table)
	}

	present := make(map[string]bool, len(have))
	for _, c := range have {
		present[c] = true
	}
	var missing []string
	for _, c := range s.columns {
		if !present[c] {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("table %s is missing configured columns: %s", s.table, strings.Join(missing, ", "))
	}
	return nil
}
