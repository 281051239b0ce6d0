// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package vocab

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/vocabsearch/pkg/types"
)

// ExportEntry is one matching row keyed by column name. It marshals as an
// ordered mapping so exported records keep the configured column order.
type ExportEntry struct {
	columns []string
	values  types.Row
}

// Get returns the value of the named column, or "" if absent.
func (e ExportEntry) Get(column string) string {
	for i, c := range e.columns {
		if c == column && i < len(e.values) {
			return e.values[i]
		}
	}
	return ""
}

// MarshalYAML implements yaml.Marshaler.
func (e ExportEntry) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for i, c := range e.columns {
		var v string
		if i < len(e.values) {
			v = e.values[i]
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: c},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v},
		)
	}
	return node, nil
}

// MarshalJSON implements json.Marshaler.
func (e ExportEntry) MarshalJSON() ([]byte, error) {
	buf := []byte{'{'}
	for i, c := range e.columns {
		if i > 0 {
			buf = append(buf, ',')
		}
		k, err := json.Marshal(c)
		if err != nil {
			return nil, err
		}
		var v string
		if i < len(e.values) {
			v = e.values[i]
		}
		val, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		buf = append(buf, k...)
		buf = append(buf, ':')
		buf = append(buf, val...)
	}
	return append(buf, '}'), nil
}

// ExportYAML writes the rows matching term to w as a YAML list of records.
func (s *Store) ExportYAML(ctx context.Context, w io.Writer, term string) error {
	entries, err := s.exportEntries(ctx, term)
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return enc.Close()
}

// ExportJSON writes the rows matching term to w as a JSON array of records.
func (s *Store) ExportJSON(ctx context.Context, w io.Writer, term string) error {
	entries, err := s.exportEntries(ctx, term)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return nil
}

func (s *Store) exportEntries(ctx context.Context, term string) ([]ExportEntry, error) {
	rows, err := s.Search(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}

	entries := make([]ExportEntry, len(rows))
	for i, r := range rows {
		entries[i] = ExportEntry{columns: s.columns, values: r}
	}
	return entries, nil
}
