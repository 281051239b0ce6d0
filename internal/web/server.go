// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package web serves the search page, the form handler and the results API
// over echo. Searches run against a Searcher; their result sets are held in
// a results.Vault under a search key that the page and the API share.
package web

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/pdiddy/vocabsearch/internal/results"
	"github.com/pdiddy/vocabsearch/pkg/types"
)

const shutdownTimeout = 10 * time.Second

// Searcher runs a search over an ordered set of columns.
type Searcher interface {
	Search(ctx context.Context, term string) ([]types.Row, error)
	Columns() []string
}

// Server is the vocabsearch web server.
type Server struct {
	cfg     types.ServerConfig
	store   Searcher
	vault   *results.Vault
	log     *logrus.Logger
	version string
	echo    *echo.Echo
}

// New builds a Server and registers its middleware and routes. It does not
// start listening; see Run.
func New(cfg types.ServerConfig, store Searcher, vault *results.Vault, log *logrus.Logger, version string) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.ReadTimeout
	e.Server.WriteTimeout = cfg.WriteTimeout

	s := &Server{
		cfg:     cfg,
		store:   store,
		vault:   vault,
		log:     log,
		version: version,
		echo:    e,
	}
	e.HTTPErrorHandler = s.handleError

	e.Use(middleware.Recover())
	e.Use(s.requestLogger())

	if cfg.RequestsPerSecond > 0 {
		e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(cfg.RequestsPerSecond))))
	}
	if cfg.Gzip {
		e.Use(middleware.GzipWithConfig(middleware.GzipConfig{Level: 5}))
	}

	s.routes()
	return s
}

// Handler returns the server's http.Handler.
func (s *Server) Handler() http.Handler { return s.echo }

// Run listens on the configured address until ctx is cancelled, then shuts
// down gracefully. The vault's expiry loop runs for the lifetime of Run.
func (s *Server) Run(ctx context.Context) error {
	go s.vault.Start()
	defer s.vault.Stop()

	addr := s.cfg.Addr
	if addr == "" {
		addr = ":8000"
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", addr).Info("listening")
		errCh <- s.echo.Start(addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.log.Info("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.echo.Shutdown(sctx)
	}
}

func (s *Server) requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:   true,
		LogURI:      true,
		LogMethod:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogError:    true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			entry := s.log.WithFields(logrus.Fields{
				"method":  v.Method,
				"uri":     v.URI,
				"status":  v.Status,
				"latency": v.Latency.String(),
				"ip":      v.RemoteIP,
			})
			if v.Error != nil {
				entry.WithError(v.Error).Warn("request failed")
				return nil
			}
			entry.Debug("request")
			return nil
		},
	})
}

// handleError writes API errors as JSON and page errors as plain text.
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := http.StatusText(code)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			msg = m
		} else {
			msg = http.StatusText(code)
		}
	}
	if code >= http.StatusInternalServerError {
		s.log.WithError(err).WithField("uri", c.Request().RequestURI).Error("handler error")
	}

	var werr error
	switch {
	case c.Request().Method == http.MethodHead:
		werr = c.NoContent(code)
	case strings.HasPrefix(c.Request().URL.Path, "/api/"):
		werr = c.JSON(code, types.ErrorResponse{Error: msg})
	default:
		werr = c.String(code, msg)
	}
	if werr != nil {
		s.log.WithError(werr).Warn("writing error response")
	}
}
