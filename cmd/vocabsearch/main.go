// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the vocabsearch CLI: load a vocabulary
// mapping CSV into SQLite, search it from the terminal, or serve the search
// page and results API, and fetch stored result sets from a running server.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the vocabsearch CLI.
var rootCmd = &cobra.Command{
	Use:   "vocabsearch",
	Short: "Search a vocabulary mapping table from the terminal or the browser",
	Long: `vocabsearch loads a pipe-delimited vocabulary mapping CSV into a local
SQLite database and searches it: every configured column is matched as a
substring of the search string.

Use import and index to build the database, search or export to query it
locally, serve to run the search page and results API, and fetch to load a
stored result set from a running server by its search key.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./vocabsearch.yaml or ~/.config/vocabsearch/vocabsearch.yaml)")
	rootCmd.PersistentFlags().String("db", "", "SQLite database path (default data/vocab.db)")
	rootCmd.PersistentFlags().StringSlice("columns", nil, "ordered columns to search and display (default: vocabulary map columns)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "", "log format: text or json")

	mustBind("store.db_path", rootCmd.PersistentFlags().Lookup("db"))
	mustBind("store.columns", rootCmd.PersistentFlags().Lookup("columns"))
	mustBind("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	mustBind("log.format", rootCmd.PersistentFlags().Lookup("log-format"))

	setDefaults()
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("vocabsearch")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "vocabsearch"))
		}
	}

	bindEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
