// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/vocabsearch/internal/vocab"
)

var importCmd = &cobra.Command{
	Use:   "import <csv-file>",
	Short: "Load a delimited vocabulary CSV into the database",
	Long: `Import reads a delimited CSV whose first line names the columns and
replaces the database table with its rows. Lines with the wrong number of
fields are skipped and counted. Use --index to build per-column indexes
after loading.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	store, err := vocab.NewStore(loadConfig().Store)
	if err != nil {
		return err
	}
	defer store.Close()

	if _, err := store.Import(cmd.Context(), f, os.Stdout); err != nil {
		return err
	}

	if withIndex, _ := cmd.Flags().GetBool("index"); withIndex {
		return store.CreateIndexes(cmd.Context(), os.Stdout)
	}
	return nil
}

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Create one index per configured column",
	Long: `Index creates idx_<column> on every configured search column. Indexes
that already exist are left alone.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := vocab.NewStore(loadConfig().Store)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.CreateIndexes(cmd.Context(), os.Stdout); err != nil {
			return err
		}
		fmt.Println("Indexes ready.")
		return nil
	},
}

func init() {
	importCmd.Flags().String("delimiter", "", "field separator (default |)")
	importCmd.Flags().String("table", "", "table to replace (default data)")
	importCmd.Flags().Bool("index", false, "create per-column indexes after loading")
	mustBind("store.delimiter", importCmd.Flags().Lookup("delimiter"))
	mustBind("store.table", importCmd.Flags().Lookup("table"))

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(indexCmd)
}
