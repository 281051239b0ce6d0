package vocab

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/vocabsearch/pkg/types"
)

// --- test helpers ---

const sampleCSV = `code|code_description|vocabulary|target_name
E11.9|Type 2 diabetes mellitus without complications|ICD10CM|Type 2 diabetes mellitus
I10|Essential (primary) hypertension|ICD10CM|Essential hypertension
J45|Asthma|ICD10CM|Asthma
bad line without enough fields
50%_OFF|Literal wildcard row|LOCAL|Discount
`

var sampleColumns = []string{"code", "code_description", "vocabulary", "target_name"}

func testStore(t *testing.T, columns []string, maxResults int) *Store {
	t.Helper()
	cfg := types.StoreConfig{
		DBPath:     filepath.Join(t.TempDir(), "db", "vocab.db"),
		Table:      "data",
		Columns:    columns,
		Delimiter:  "|",
		MaxResults: maxResults,
	}
	store, err := NewStore(cfg)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func importSample(t *testing.T, store *Store) ImportSummary {
	t.Helper()
	var buf strings.Builder
	summary, err := store.Import(context.Background(), strings.NewReader(sampleCSV), &buf)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	return summary
}

// --- store tests ---

func TestNewStoreRejectsBadDelimiter(t *testing.T) {
	cfg := types.StoreConfig{
		DBPath:    filepath.Join(t.TempDir(), "vocab.db"),
		Delimiter: "||",
	}
	if _, err := NewStore(cfg); err == nil {
		t.Fatal("expected error for multi-character delimiter")
	}
}

func TestNewStoreDefaultsColumns(t *testing.T) {
	store := testStore(t, nil, 0)
	got := store.Columns()
	if len(got) != len(types.DefaultColumns) {
		t.Fatalf("len(Columns()) = %d, want %d", len(got), len(types.DefaultColumns))
	}
	if got[0] != "source_code" || got[len(got)-1] != "target_concept_class_id" {
		t.Errorf("Columns() = %v", got)
	}
}

// --- import tests ---

func TestImportSkipsBadLines(t *testing.T) {
	store := testStore(t, sampleColumns, 0)
	summary := importSample(t, store)

	if summary.Imported != 4 {
		t.Errorf("Imported = %d, want 4", summary.Imported)
	}
	if summary.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", summary.Skipped)
	}
	if strings.Join(summary.Columns, ",") != strings.Join(sampleColumns, ",") {
		t.Errorf("Columns = %v, want %v", summary.Columns, sampleColumns)
	}
}

func TestImportReplacesTable(t *testing.T) {
	store := testStore(t, sampleColumns, 0)
	importSample(t, store)
	importSample(t, store)

	var count int
	if err := store.db.QueryRow(`SELECT count(*) FROM data`).Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 4 {
		t.Errorf("row count after second import = %d, want 4", count)
	}
}

func TestImportEmptyInput(t *testing.T) {
	store := testStore(t, sampleColumns, 0)
	var buf strings.Builder
	if _, err := store.Import(context.Background(), strings.NewReader(""), &buf); err == nil {
		t.Fatal("expected error for empty input")
	}
}

func TestImportNormalizesHeader(t *testing.T) {
	tests := []struct {
		in, want []string
	}{
		{[]string{"\ufeffcode", " name ", "", "name"}, []string{"code", "name", "column_3", "name_2"}},
		{[]string{"name", "name_2", "name"}, []string{"name", "name_2", "name_3"}},
		{[]string{"a", "a", "a_2"}, []string{"a", "a_2", "a_2_2"}},
	}
	for _, tt := range tests {
		got := normalizeHeader(tt.in)
		if strings.Join(got, ",") != strings.Join(tt.want, ",") {
			t.Errorf("normalizeHeader(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestImportHeaderWithSuffixedDuplicate(t *testing.T) {
	store := testStore(t, []string{"name", "name_2", "name_3"}, 0)
	csv := "name|name_2|name\nx|y|z\n"
	sum, err := store.Import(context.Background(), strings.NewReader(csv), io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if sum.Imported != 1 {
		t.Fatalf("imported = %d, want 1", sum.Imported)
	}
	rows, err := store.Search(context.Background(), "z")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || strings.Join(rows[0], ",") != "x,y,z" {
		t.Errorf("rows = %v, want [[x y z]]", rows)
	}
}

func TestImportSummaryOutput(t *testing.T) {
	store := testStore(t, sampleColumns, 0)
	var buf strings.Builder
	if _, err := store.Import(context.Background(), strings.NewReader(sampleCSV), &buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "imported: 4, skipped: 1") {
		t.Errorf("output = %q", buf.String())
	}
}

// --- index tests ---

func TestCreateIndexes(t *testing.T) {
	store := testStore(t, sampleColumns, 0)
	importSample(t, store)

	var buf strings.Builder
	if err := store.CreateIndexes(context.Background(), &buf); err != nil {
		t.Fatal(err)
	}
	// Second run is a no-op.
	if err := store.CreateIndexes(context.Background(), &buf); err != nil {
		t.Fatal(err)
	}

	for _, col := range sampleColumns {
		var count int
		err := store.db.QueryRow(
			`SELECT count(*) FROM sqlite_master WHERE type = 'index' AND name = ?`, "idx_"+col,
		).Scan(&count)
		if err != nil {
			t.Fatal(err)
		}
		if count != 1 {
			t.Errorf("index idx_%s: count = %d, want 1", col, count)
		}
	}
}

// --- search tests ---

func TestSearch(t *testing.T) {
	store := testStore(t, sampleColumns, 0)
	importSample(t, store)

	tests := []struct {
		name      string
		term      string
		wantCodes []string
	}{
		{"matches description", "hypertension", []string{"I10"}},
		{"matches code", "E11", []string{"E11.9"}},
		{"case insensitive", "ASTHMA", []string{"J45"}},
		{"matches across rows", "ICD10CM", []string{"E11.9", "I10", "J45"}},
		{"percent is literal", "%", []string{"50%_OFF"}},
		{"underscore is literal", "_", []string{"50%_OFF"}},
		{"no match", "xyzzy", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := store.Search(context.Background(), tt.term)
			if err != nil {
				t.Fatal(err)
			}
			var codes []string
			for _, r := range rows {
				codes = append(codes, r[0])
			}
			if strings.Join(codes, ",") != strings.Join(tt.wantCodes, ",") {
				t.Errorf("codes = %v, want %v", codes, tt.wantCodes)
			}
		})
	}
}

func TestSearchRowsFollowColumnOrder(t *testing.T) {
	store := testStore(t, []string{"target_name", "code"}, 0)
	importSample(t, store)

	rows, err := store.Search(context.Background(), "I10")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if rows[0][0] != "Essential hypertension" || rows[0][1] != "I10" {
		t.Errorf("row = %v", rows[0])
	}
}

func TestSearchEmptyTerm(t *testing.T) {
	store := testStore(t, sampleColumns, 0)
	importSample(t, store)

	for _, term := range []string{"", "   "} {
		if _, err := store.Search(context.Background(), term); !errors.Is(err, ErrEmptyQuery) {
			t.Errorf("Search(%q) err = %v, want ErrEmptyQuery", term, err)
		}
	}
}

func TestSearchMaxResults(t *testing.T) {
	store := testStore(t, sampleColumns, 2)
	importSample(t, store)

	rows, err := store.Search(context.Background(), "ICD10CM")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Errorf("got %d rows, want 2", len(rows))
	}
}

func TestSearchWithoutImport(t *testing.T) {
	store := testStore(t, sampleColumns, 0)
	_, err := store.Search(context.Background(), "anything")
	if err == nil || !strings.Contains(err.Error(), "run import first") {
		t.Errorf("err = %v, want missing table error", err)
	}
}

func TestSearchMissingColumn(t *testing.T) {
	store := testStore(t, []string{"code", "not_a_column"}, 0)
	importSample(t, store)

	_, err := store.Search(context.Background(), "I10")
	if err == nil || !strings.Contains(err.Error(), "not_a_column") {
		t.Errorf("err = %v, want missing column error", err)
	}
}

// --- export tests ---

func TestExportJSON(t *testing.T) {
	store := testStore(t, sampleColumns, 0)
	importSample(t, store)

	var buf strings.Builder
	if err := store.ExportJSON(context.Background(), &buf, "asthma"); err != nil {
		t.Fatal(err)
	}

	var got []map[string]string
	if err := json.Unmarshal([]byte(buf.String()), &got); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, buf.String())
	}
	if len(got) != 1 {
		t.Fatalf("got %d entries, want 1", len(got))
	}
	if got[0]["code"] != "J45" || got[0]["vocabulary"] != "ICD10CM" {
		t.Errorf("entry = %v", got[0])
	}
	// Keys are written in column order.
	if strings.Index(buf.String(), `"code"`) > strings.Index(buf.String(), `"target_name"`) {
		t.Errorf("columns out of order:\n%s", buf.String())
	}
}

func TestExportYAML(t *testing.T) {
	store := testStore(t, sampleColumns, 0)
	importSample(t, store)

	var buf strings.Builder
	if err := store.ExportYAML(context.Background(), &buf, "ICD10CM"); err != nil {
		t.Fatal(err)
	}

	var got []map[string]string
	if err := yaml.Unmarshal([]byte(buf.String()), &got); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, buf.String())
	}
	if len(got) != 3 {
		t.Fatalf("got %d entries, want 3", len(got))
	}
	if got[1]["code"] != "I10" {
		t.Errorf("second entry = %v", got[1])
	}
}

func TestExportEntryGet(t *testing.T) {
	e := ExportEntry{columns: []string{"a", "b"}, values: types.Row{"x"}}
	if e.Get("a") != "x" {
		t.Errorf("Get(a) = %q", e.Get("a"))
	}
	if e.Get("b") != "" || e.Get("c") != "" {
		t.Error("missing values should be empty")
	}
}
