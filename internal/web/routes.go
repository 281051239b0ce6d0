// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package web

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/pdiddy/vocabsearch/internal/render"
	"github.com/pdiddy/vocabsearch/internal/vocab"
	"github.com/pdiddy/vocabsearch/pkg/types"
)

func (s *Server) routes() {
	e := s.echo

	// page
	e.GET("/", s.handleFrontpage)         // "/?search_str=asthma", "/?key=<searchKey>"
	e.POST("/search", s.handleSearchForm) // form handler, 303 to "/?search_str=..."

	// api
	e.GET("/api/results/:key", s.handleResults) // {"result": [[...], ...]}
	e.POST("/api/search", s.handleAPISearch)   // {"key": ..., "count": ..., "columns": [...]}

	e.GET("/healthz", s.handleHealth)
}

// handleFrontpage renders the search page. With a search string the search
// runs and its result set is stored; with a search key a stored set is
// redisplayed. An unknown or expired key shows the empty-results message.
func (s *Server) handleFrontpage(c echo.Context) error {
	data := render.PageData{
		Path:    c.Request().URL.Path,
		Columns: s.store.Columns(),
		Version: s.version,
	}

	var set types.ResultSet
	switch term, key := c.QueryParam("search_str"), c.QueryParam("key"); {
	case strings.TrimSpace(term) != "":
		var err error
		set, err = s.runSearch(c, term)
		if err != nil {
			return err
		}
	case key != "":
		stored, ok := s.vault.Get(key)
		if !ok {
			stored = types.ResultSet{Columns: data.Columns}
		}
		set = stored
	default:
		return s.page(c, data)
	}

	table, err := render.TableHTML(set.Columns, set.Rows)
	if err != nil {
		return err
	}
	data.SearchStr = set.Query
	data.SearchKey = set.Key
	data.Columns = set.Columns
	data.Count = set.Len()
	data.Results = table
	return s.page(c, data)
}

// handleSearchForm turns a submitted search form into a full navigation to
// {path}?search_str={term}.
func (s *Server) handleSearchForm(c echo.Context) error {
	target := SearchURL(localPath(c.FormValue("path")), c.FormValue("search_str"))
	return c.Redirect(http.StatusSeeOther, target)
}

// handleResults serves a stored result set as {"result": rows}.
func (s *Server) handleResults(c echo.Context) error {
	set, ok := s.vault.Get(c.Param("key"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "unknown search key")
	}
	rows := set.Rows
	if rows == nil {
		rows = []types.Row{}
	}
	return c.JSON(http.StatusOK, types.ResultsResponse{Result: rows})
}

// handleAPISearch runs search_str (form or query) and returns the new key.
func (s *Server) handleAPISearch(c echo.Context) error {
	term := c.FormValue("search_str")
	if strings.TrimSpace(term) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "search_str is required")
	}
	set, err := s.runSearch(c, term)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, types.SearchResponse{
		Key:     set.Key,
		Count:   set.Len(),
		Columns: set.Columns,
	})
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.version,
		"stored":  s.vault.Len(),
	})
}

// runSearch searches term and stores the result set under a new key.
func (s *Server) runSearch(c echo.Context, term string) (types.ResultSet, error) {
	start := time.Now()
	rows, err := s.store.Search(c.Request().Context(), term)
	if err != nil {
		if errors.Is(err, vocab.ErrEmptyQuery) {
			return types.ResultSet{}, echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return types.ResultSet{}, err
	}

	set := types.ResultSet{
		Query:   term,
		Columns: s.store.Columns(),
		Rows:    rows,
	}
	set.Key = s.vault.Put(set)

	s.log.WithFields(logrus.Fields{
		"key":     set.Key,
		"rows":    len(rows),
		"elapsed": time.Since(start).String(),
	}).Info("search")
	return set, nil
}

func (s *Server) page(c echo.Context, data render.PageData) error {
	var b strings.Builder
	if err := render.Page(&b, data); err != nil {
		return err
	}
	return c.HTML(http.StatusOK, b.String())
}
