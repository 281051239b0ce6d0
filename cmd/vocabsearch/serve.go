// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pdiddy/vocabsearch/internal/logging"
	"github.com/pdiddy/vocabsearch/internal/results"
	"github.com/pdiddy/vocabsearch/internal/vocab"
	"github.com/pdiddy/vocabsearch/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the search page and results API",
	Long: `Serve runs the web server. GET / shows the search form and, given
search_str, runs the search and renders the results table. Each result set
is stored under a search key and served as JSON at /api/results/{key} until
it expires. Stops gracefully on SIGINT or SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	log, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}

	store, err := vocab.NewStore(cfg.Store)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	vault := results.NewVault(cfg.Server.ResultTTL, cfg.Server.MaxStoredResults)
	srv := web.New(cfg.Server, store, vault, log, version)

	log.WithField("db", cfg.Store.DBPath).WithField("columns", len(store.Columns())).Info("starting vocabsearch " + version)
	return srv.Run(ctx)
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default :8000)")
	serveCmd.Flags().Duration("result-ttl", 0, "how long a result set stays reachable by its key (default 30m)")
	serveCmd.Flags().Bool("gzip", false, "compress responses")
	mustBind("server.addr", serveCmd.Flags().Lookup("addr"))
	mustBind("server.result_ttl", serveCmd.Flags().Lookup("result-ttl"))
	mustBind("server.gzip", serveCmd.Flags().Lookup("gzip"))

	rootCmd.AddCommand(serveCmd)
}
