// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/libris/internal/export"
	"github.com/pdiddy/libris/internal/search"
	"github.com/pdiddy/libris/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the catalog",
	Long: `Search ranks catalog entries against a free-text query.

Modes:
  keyword        exact words in title, author, themes, period, notes, date
  fuzzy          tolerates misspellings (Levenshtein similarity)
  conceptual     keyword plus related concepts ("liberty" finds "freedom")
  comprehensive  all three combined (default)

Use --save to keep a query and its results, and --query-file to run a
saved query again.`,
	Example: `  libris search "social contract"
  libris search --mode fuzzy machiavelli
  libris search justice --report report.md --export bibtex`,
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	modeFlag, _ := cmd.Flags().GetString("mode")
	maxResults, _ := cmd.Flags().GetInt("max-results")

	opts := search.Options{MaxResults: maxResults}
	if modeFlag != "" {
		mode, err := search.ParseMode(modeFlag)
		if err != nil {
			return err
		}
		opts.Mode = mode
	}

	if qfPath, _ := cmd.Flags().GetString("query-file"); qfPath != "" {
		qf, err := search.ReadQueryFile(qfPath)
		if err != nil {
			return err
		}
		if query == "" {
			query = qf.Query.Text
		}
		saved := qf.Query.Options()
		if opts.Mode == "" {
			opts.Mode = saved.Mode
		}
		if opts.MaxResults <= 0 {
			opts.MaxResults = saved.MaxResults
		}
	}
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("%w: provide a query or --query-file", search.ErrEmptyQuery)
	}

	l, _, err := openLibrarian(cmd.Context())
	if err != nil {
		return err
	}
	defer l.Close()

	opts = l.SearchOptions(opts)
	results, err := l.Search(query, opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		if err := search.FormatJSON(results, out); err != nil {
			return err
		}
	} else {
		search.FormatTable(results, out)
	}

	if path, _ := cmd.Flags().GetString("save"); path != "" {
		if err := search.WriteQueryFile(path, query, opts, results); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "saved query to %s\n", path)
	}

	if path, _ := cmd.Flags().GetString("report"); path != "" {
		if err := writeReport(path, query, opts.Mode, results, l.Concepts()); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "wrote report to %s\n", path)
	}

	if name, _ := cmd.Flags().GetString("export"); name != "" {
		f, err := export.ParseFormat(name)
		if err != nil {
			return err
		}
		path, err := l.Export(types.Records(results), f, "search")
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "exported %d records to %s\n", len(results), path)
	}
	return nil
}

func writeReport(path, query string, mode types.SearchMode, results []types.SearchResult, concepts search.ConceptTable) error {
	rep := search.Report{
		Query:       query,
		Mode:        mode,
		Results:     results,
		GeneratedAt: time.Now(),
	}
	if path == "-" {
		return search.WriteReport(os.Stdout, rep, concepts)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report: %w", err)
	}
	if err := search.WriteReport(f, rep, concepts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func init() {
	searchCmd.Flags().String("mode", "", "search mode: keyword, fuzzy, conceptual, comprehensive (default from search.mode)")
	searchCmd.Flags().Int("max-results", 0, "maximum number of results (default from search.max_results)")
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	searchCmd.Flags().String("report", "", "write a Markdown research report to this file (- for stdout)")
	searchCmd.Flags().String("export", "", "export results: bibtex, csv, json, markdown, xlsx, yaml, parquet")
	searchCmd.Flags().String("save", "", "save the query and results to a YAML file")
	searchCmd.Flags().String("query-file", "", "run a query saved with --save")

	rootCmd.AddCommand(searchCmd)
}
