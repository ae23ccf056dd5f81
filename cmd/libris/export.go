// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/libris/internal/export"
	"github.com/pdiddy/libris/internal/search"
	"github.com/pdiddy/libris/pkg/types"
)

var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Export the catalog or a query's results",
	Long: `Export writes the whole catalog, or the results of --query, in one of:
bibtex (bib), csv, json, markdown (md), xlsx (excel), yaml (CSL-YAML) or
parquet.

Files are written to export.dir as libris_<catalog|search>_<timestamp>.<ext>
unless --stdout is given.`,
	Example: `  libris export bibtex
  libris export csv --query "natural law" --mode conceptual
  libris export json --stdout`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	f, err := export.ParseFormat(args[0])
	if err != nil {
		return err
	}

	if dir, _ := cmd.Flags().GetString("output-dir"); dir != "" {
		viper.Set("export.dir", dir)
	}

	l, _, err := openLibrarian(cmd.Context())
	if err != nil {
		return err
	}
	defer l.Close()

	records := l.Catalog().Entries()
	prefix := "catalog"
	if query, _ := cmd.Flags().GetString("query"); query != "" {
		var opts search.Options
		opts.MaxResults, _ = cmd.Flags().GetInt("max-results")
		if modeFlag, _ := cmd.Flags().GetString("mode"); modeFlag != "" {
			if opts.Mode, err = search.ParseMode(modeFlag); err != nil {
				return err
			}
		}
		results, err := l.Search(query, opts)
		if err != nil {
			return err
		}
		records = types.Records(results)
		prefix = "search"
	}

	if toStdout, _ := cmd.Flags().GetBool("stdout"); toStdout {
		return export.Write(cmd.OutOrStdout(), records, f)
	}

	path, err := l.Export(records, f, prefix)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "exported %d records to %s\n", len(records), path)
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

func init() {
	exportCmd.Flags().String("query", "", "export the results of this query instead of the whole catalog")
	exportCmd.Flags().String("mode", "", "search mode for --query (default from search.mode)")
	exportCmd.Flags().Int("max-results", 0, "maximum results for --query (default from search.max_results)")
	exportCmd.Flags().String("output-dir", "", "directory for export files (default from export.dir)")
	exportCmd.Flags().Bool("stdout", false, "write to stdout instead of a file")

	rootCmd.AddCommand(exportCmd)
}
