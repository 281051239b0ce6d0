// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/vocabsearch/internal/vocab"
)

var exportCmd = &cobra.Command{
	Use:   "export <term...>",
	Short: "Export matching rows as YAML or JSON records",
	Long: `Export runs a search and writes every matching row as a record keyed
by column name, in configured column order. Output goes to stdout unless
--output names a file.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")

	store, err := vocab.NewStore(loadConfig().Store)
	if err != nil {
		return err
	}
	defer store.Close()

	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	term := strings.Join(args, " ")
	switch format {
	case "yaml", "":
		err = store.ExportYAML(cmd.Context(), w, term)
	case "json":
		err = store.ExportJSON(cmd.Context(), w, term)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	if err != nil {
		return err
	}

	if output != "" {
		fmt.Fprintf(os.Stderr, "Exported to %s\n", output)
	}
	return nil
}

func init() {
	exportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	exportCmd.Flags().StringP("output", "o", "", "write to file instead of stdout")

	rootCmd.AddCommand(exportCmd)
}
