// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package client fetches stored result sets from a vocabsearch server and
// renders them. It is the programmatic counterpart of the search page: run
// a search, then load the result set by its search key and draw the table.
package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/pdiddy/vocabsearch/internal/httputil"
	"github.com/pdiddy/vocabsearch/internal/render"
	"github.com/pdiddy/vocabsearch/pkg/types"
)

// ErrNotFound is returned when the server has no result set for a search key.
var ErrNotFound = errors.New("result set not found")

// maxBodySize bounds the response body read from the server.
const maxBodySize = 64 << 20

// Client talks to one vocabsearch server.
type Client struct {
	baseURL    string
	userAgent  string
	maxRetries int
	http       *http.Client
}

// New returns a Client for cfg.BaseURL.
func New(cfg types.ClientConfig) (*Client, error) {
	base := strings.TrimRight(cfg.BaseURL, "/")
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q", cfg.BaseURL)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		baseURL:    base,
		userAgent:  cfg.UserAgent,
		maxRetries: cfg.MaxRetries,
		http:       &http.Client{Timeout: timeout},
	}, nil
}

// Fetch loads the result set stored under searchKey with one GET of
// /api/results/{searchKey}. Rows may arrive as arrays of values or as
// objects keyed by column name; objects are reordered into arrays by
// columns. A missing or null "result" is an empty set.
func (c *Client) Fetch(ctx context.Context, searchKey string, columns []string) ([]types.Row, error) {
	if searchKey == "" {
		return nil, fmt.Errorf("search key is required")
	}

	body, err := c.get(ctx, "/api/results/"+url.PathEscape(searchKey))
	if err != nil {
		return nil, err
	}
	return DecodeResults(body, columns)
}

// Display fetches searchKey and writes the HTML table, or the no-results
// placeholder, to w. An empty key writes nothing: there is no search to
// load yet.
func (c *Client) Display(ctx context.Context, w io.Writer, searchKey string, columns []string) error {
	if searchKey == "" {
		return nil
	}
	rows, err := c.Fetch(ctx, searchKey, columns)
	if err != nil {
		return err
	}
	return render.Table(w, columns, rows)
}

// Search asks the server to run term and returns the new search key along
// with the server's column order and row count.
func (c *Client) Search(ctx context.Context, term string) (types.SearchResponse, error) {
	form := url.Values{"search_str": {term}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/search",
		strings.NewReader(form.Encode()))
	if err != nil {
		return types.SearchResponse{}, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	body, err := c.do(ctx, req)
	if err != nil {
		return types.SearchResponse{}, err
	}

	if !gjson.ValidBytes(body) {
		return types.SearchResponse{}, fmt.Errorf("malformed JSON response")
	}
	res := gjson.ParseBytes(body)
	out := types.SearchResponse{
		Key:   res.Get("key").String(),
		Count: int(res.Get("count").Int()),
	}
	for _, col := range res.Get("columns").Array() {
		out.Columns = append(out.Columns, col.String())
	}
	if out.Key == "" {
		return out, fmt.Errorf("search response has no key")
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	return c.do(ctx, req)
}

// do sends req and returns the body of a 2xx JSON response.
func (c *Client) do(ctx context.Context, req *http.Request) ([]byte, error) {
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, c.http, req, c.maxRetries)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		msg := gjson.GetBytes(body, "error").String()
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, fmt.Errorf("%s %s: server returned %d: %s", req.Method, req.URL.Path, resp.StatusCode, msg)
	}
	return body, nil
}
