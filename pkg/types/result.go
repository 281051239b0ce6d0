// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for vocabsearch: result rows,
// stored result sets, the results API envelope, and configuration.
package types

import "time"

// Row is one result row: display values matched positionally to the
// column names of the result set it belongs to.
type Row []string

// ResultSet is the outcome of one search, addressable by its search key.
type ResultSet struct {
	// Key is the opaque search key under which the set is stored.
	Key string `json:"key" yaml:"key"`

	// Query is the search string that produced the set.
	Query string `json:"query" yaml:"query"`

	// Columns establishes header order for Rows.
	Columns []string `json:"columns" yaml:"columns"`

	Rows []Row `json:"rows" yaml:"rows"`

	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// Len returns the number of rows.
func (s ResultSet) Len() int { return len(s.Rows) }

// ResultsResponse is the body of GET /api/results/{searchKey}.
type ResultsResponse struct {
	Result []Row `json:"result"`
}

// SearchResponse is the body of POST /api/search.
type SearchResponse struct {
	Key     string   `json:"key"`
	Count   int      `json:"count"`
	Columns []string `json:"columns"`
}

// ErrorResponse is the body of API error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}
