// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/libris/internal/index"
	"github.com/pdiddy/libris/pkg/types"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the catalog by author, theme, period and date",
	Long: `Browse lists catalog entries in chronological order, narrowed by any
combination of filters. Author matches any part of a name; theme and
period match exactly, ignoring case. --from and --to accept years such as
1651, "375 BCE" or "5th century BCE".

With --facets, browse prints entry counts per author, theme and period
instead.`,
	Example: `  libris browse --period enlightenment
  libris browse --theme justice --from "500 BCE" --to 1500
  libris browse --facets`,
	Args: cobra.NoArgs,
	RunE: runBrowse,
}

func runBrowse(cmd *cobra.Command, args []string) error {
	f, err := browseFilterFromFlags(cmd)
	if err != nil {
		return err
	}

	l, _, err := openLibrarian(cmd.Context())
	if err != nil {
		return err
	}
	defer l.Close()

	out := cmd.OutOrStdout()
	jsonOutput, _ := cmd.Flags().GetBool("json")

	if facets, _ := cmd.Flags().GetBool("facets"); facets {
		fc, err := l.Facets(cmd.Context())
		if err != nil {
			return err
		}
		if jsonOutput {
			return writeJSON(out, fc)
		}
		printFacets(out, fc)
		return nil
	}

	records, err := l.Browse(cmd.Context(), f)
	if err != nil {
		return err
	}
	if jsonOutput {
		if records == nil {
			records = []types.Record{}
		}
		return writeJSON(out, records)
	}
	printRecords(out, records)
	return nil
}

func browseFilterFromFlags(cmd *cobra.Command) (index.Filter, error) {
	var f index.Filter
	f.Author, _ = cmd.Flags().GetString("author")
	f.Theme, _ = cmd.Flags().GetString("theme")
	f.Limit, _ = cmd.Flags().GetInt("limit")

	if s, _ := cmd.Flags().GetString("period"); s != "" {
		p, ok := types.ParsePeriod(s)
		if !ok {
			names := make([]string, len(types.Periods))
			for i, p := range types.Periods {
				names[i] = string(p)
			}
			return f, fmt.Errorf("unknown period %q (want one of %s)", s, strings.Join(names, ", "))
		}
		f.Period = string(p)
	}

	for _, flag := range []struct {
		name  string
		dst   **int
		start bool
	}{
		{"from", &f.FromYear, true},
		{"to", &f.ToYear, false},
	} {
		s, _ := cmd.Flags().GetString(flag.name)
		if s == "" {
			continue
		}
		span, err := types.ParseDate(s)
		if err != nil {
			return f, fmt.Errorf("--%s: %w", flag.name, err)
		}
		y := span.End
		if flag.start {
			y = span.Start
		}
		*flag.dst = &y
	}
	return f, nil
}

func printRecords(w io.Writer, records []types.Record) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No entries found.")
		return
	}
	fmt.Fprintf(w, "%-14s  %-44s  %-24s  %s\n", "Date", "Title", "Author", "Themes")
	fmt.Fprintln(w, strings.Repeat("-", 112))
	for _, r := range records {
		fmt.Fprintf(w, "%-14s  %-44s  %-24s  %s\n",
			clip(r.Date, 14),
			clip(r.Title, 44),
			clip(r.Author(), 24),
			strings.Join(r.Themes, ", "))
	}
	fmt.Fprintf(w, "\n%d entries\n", len(records))
}

func printFacets(w io.Writer, fc index.Facets) {
	section := func(title string, facets []index.Facet) {
		fmt.Fprintf(w, "%s:\n", title)
		for _, f := range facets {
			fmt.Fprintf(w, "  %-40s %3d\n", clip(f.Value, 40), f.Count)
		}
		fmt.Fprintln(w)
	}
	section("Periods", fc.Periods)
	section("Themes", fc.Themes)
	section("Authors", fc.Authors)
}

// clip shortens s to at most n runes.
func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	browseCmd.Flags().String("author", "", "author name or part of one")
	browseCmd.Flags().String("theme", "", "theme tag")
	browseCmd.Flags().String("period", "", "historical period (Ancient, Medieval, Renaissance, Early Modern, Enlightenment, Modern, Contemporary)")
	browseCmd.Flags().String("from", "", "earliest year")
	browseCmd.Flags().String("to", "", "latest year")
	browseCmd.Flags().Int("limit", 0, "maximum entries to list (0 for all)")
	browseCmd.Flags().Bool("facets", false, "show counts per author, theme and period")
	browseCmd.Flags().Bool("json", false, "output as JSON")

	rootCmd.AddCommand(browseCmd)
}
