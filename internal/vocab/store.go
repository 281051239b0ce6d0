// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package vocab persists vocabulary mapping rows in SQLite and searches them.
// A pipe-delimited CSV is imported into a single table whose columns are
// taken from the CSV header; searches select and match a configured,
// ordered subset of those columns.
package vocab

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/vocabsearch/pkg/types"
)

const (
	defaultTable     = "data"
	defaultDelimiter = '|'
	insertBatchSize  = 5000
)

// Store manages the vocabulary SQLite database.
type Store struct {
	db         *sql.DB
	table      string
	columns    []string
	delimiter  rune
	maxResults int
}

// NewStore opens or creates the SQLite database at cfg.DBPath. The parent
// directory is created if needed. The table itself is created by Import.
func NewStore(cfg types.StoreConfig) (*Store, error) {
	if cfg.DBPath == "" {
		return nil, fmt.Errorf("database path is required")
	}
	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.DBPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("opening database: %w", err)
	}

	delim := defaultDelimiter
	if cfg.Delimiter != "" {
		r, size := utf8.DecodeRuneInString(cfg.Delimiter)
		if size != len(cfg.Delimiter) || r == utf8.RuneError {
			db.Close()
			return nil, fmt.Errorf("delimiter %q must be a single character", cfg.Delimiter)
		}
		delim = r
	}

	table := cfg.Table
	if table == "" {
		table = defaultTable
	}

	columns := cfg.Columns
	if len(columns) == 0 {
		columns = types.DefaultColumns
	}

	return &Store{
		db:         db,
		table:      table,
		columns:    append([]string(nil), columns...),
		delimiter:  delim,
		maxResults: cfg.MaxResults,
	}, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Columns returns the ordered column names used by Search.
func (s *Store) Columns() []string {
	return append([]string(nil), s.columns...)
}

// ImportSummary holds counts from one CSV import.
type ImportSummary struct {
	Columns  []string
	Imported int
	Skipped  int
}

// Import replaces the table with the contents of a delimited CSV read from r.
// The first record is the header and names the columns; every value is stored
// as TEXT. Records with the wrong number of fields or a parse error are
// skipped and counted, the way a lenient loader drops bad lines. Progress
// lines are written to w.
func (s *Store) Import(ctx context.Context, r io.Reader, w io.Writer) (ImportSummary, error) {
	cr := csv.NewReader(r)
	cr.Comma = s.delimiter
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return ImportSummary{}, fmt.Errorf("reading header: empty input")
		}
		return ImportSummary{}, fmt.Errorf("reading header: %w", err)
	}
	header = normalizeHeader(header)
	cr.FieldsPerRecord = len(header)

	summary := ImportSummary{Columns: header}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return summary, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.replaceTable(ctx, tx, header); err != nil {
		return summary, err
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(header)), ", ")
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
		quoteIdent(s.table), joinIdents(header), placeholders))
	if err != nil {
		return summary, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	args := make([]any, len(header))
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				summary.Skipped++
				continue
			}
			return summary, fmt.Errorf("reading record: %w", err)
		}

		for i, v := range record {
			args[i] = v
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return summary, fmt.Errorf("inserting record %d: %w", summary.Imported+1, err)
		}
		summary.Imported++

		if summary.Imported%insertBatchSize == 0 {
			select {
			case <-ctx.Done():
				return summary, ctx.Err()
			default:
			}
			fmt.Fprintf(w, "imported %d rows\n", summary.Imported)
		}
	}

	if err := tx.Commit(); err != nil {
		return summary, fmt.Errorf("committing import: %w", err)
	}

	fmt.Fprintf(w, "\nimported: %d, skipped: %d, columns: %d\n",
		summary.Imported, summary.Skipped, len(header))
	return summary, nil
}

func (s *Store) replaceTable(ctx context.Context, tx *sql.Tx, header []string) error {
	defs := make([]string, len(header))
	for i, col := range header {
		defs[i] = quoteIdent(col) + " TEXT"
	}

	statements := []string{
		fmt.Sprintf(`DROP TABLE IF EXISTS %s`, quoteIdent(s.table)),
		fmt.Sprintf(`CREATE TABLE %s (%s)`, quoteIdent(s.table), strings.Join(defs, ", ")),
	}
	for _, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("replacing table: %w", err)
		}
	}
	return nil
}

// CreateIndexes creates one index per configured column, named idx_<column>.
// Existing indexes are left alone.
func (s *Store) CreateIndexes(ctx context.Context, w io.Writer) error {
	for _, col := range s.columns {
		stmt := fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s ON %s (%s)`,
			quoteIdent("idx_"+col), quoteIdent(s.table), quoteIdent(col))
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("creating index on %s: %w", col, err)
		}
		fmt.Fprintf(w, "indexed %s\n", col)
	}
	return nil
}

// tableColumns returns the column names of the table in declaration order.
func (s *Store) tableColumns(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`PRAGMA table_info(%s)`, quoteIdent(s.table)))
	if err != nil {
		return nil, fmt.Errorf("reading table info: %w", err)
	}
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var (
			cid      int
			name     string
			colType  string
			notNull  int
			defValue sql.NullString
			pk       int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &defValue, &pk); err != nil {
			return nil, fmt.Errorf("scanning table info: %w", err)
		}
		cols = append(cols, name)
	}
	return cols, rows.Err()
}

// normalizeHeader trims header names, names empty ones by position and
// suffixes repeats so every column name is unique.
func normalizeHeader(header []string) []string {
	out := make([]string, len(header))
	used := make(map[string]bool, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if h == "" {
			h = fmt.Sprintf("column_%d", i+1)
		}
		base := h
		for n := 2; used[h]; n++ {
			h = fmt.Sprintf("%s_%d", base, n)
		}
		used[h] = true
		out[i] = h
	}
	return out
}

// quoteIdent quotes a SQLite identifier.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func joinIdents(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = quoteIdent(n)
	}
	return strings.Join(quoted, ", ")
}
