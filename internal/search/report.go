// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/pdiddy/libris/pkg/types"
)

// FormatTable writes results as a human-readable table to w.
func FormatTable(results []types.SearchResult, w io.Writer) {
	if len(results) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-44s  %-24s  %-14s  %-13s  %s\n",
		"Rank", "Title", "Author", "Date", "Period", "Score")
	fmt.Fprintln(w, strings.Repeat("-", 112))

	for i, r := range results {
		fmt.Fprintf(w, "%-4d  %-44s  %-24s  %-14s  %-13s  %.2f\n",
			i+1,
			truncate(r.Record.Title, 44),
			truncate(formatAuthors(r.Record.Authors), 24),
			truncate(r.Record.Date, 14),
			r.Record.Period,
			r.Score)
	}

	fmt.Fprintf(w, "\n%d results\n", len(results))
}

// FormatJSON writes results as indented JSON to w.
func FormatJSON(results []types.SearchResult, w io.Writer) error {
	if results == nil {
		results = []types.SearchResult{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

// Report is the input to a research report.
type Report struct {
	Query       string
	Mode        types.SearchMode
	Results     []types.SearchResult
	GeneratedAt time.Time
}

// WriteReport renders a Markdown research report: a summary, the results
// grouped by period in chronological order, the theme distribution and
// related themes suggested by the concept table.
func WriteReport(w io.Writer, rep Report, concepts ConceptTable) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Research Report: %s\n\n", rep.Query)
	fmt.Fprintf(&b, "_Generated %s, %s search._\n\n", rep.GeneratedAt.Format("2006-01-02 15:04"), rep.Mode)

	b.WriteString("## Summary\n\n")
	if len(rep.Results) == 0 {
		b.WriteString("No works in the catalog matched this query.\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	records := types.Records(rep.Results)
	authors := make(map[string]bool)
	span := types.DateRange{}
	for i, r := range records {
		for _, a := range r.Authors {
			authors[a] = true
		}
		if i == 0 || r.Years.Start < span.Start {
			span.Start = r.Years.Start
		}
		if i == 0 || r.Years.End > span.End {
			span.End = r.Years.End
		}
	}
	byPeriod := groupByPeriod(records)
	fmt.Fprintf(&b, "%d works by %d authors, spanning %s to %s across %d periods.\n\n",
		len(records), len(authors),
		types.FormatYear(span.Start), types.FormatYear(span.End), len(byPeriod))

	b.WriteString("## Works by Period\n")
	for _, p := range types.Periods {
		group := byPeriod[p]
		if len(group) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n### %s\n\n", p)
		for _, r := range group {
			fmt.Fprintf(&b, "- **%s**, %s (%s)", r.Title, r.Author(), r.Date)
			if len(r.Themes) > 0 {
				fmt.Fprintf(&b, ". _Themes:_ %s", strings.Join(r.Themes, ", "))
			}
			b.WriteString("\n")
			if r.Notes != "" {
				fmt.Fprintf(&b, "  %s\n", r.Notes)
			}
		}
	}

	themes := themeCounts(records)
	b.WriteString("\n## Theme Distribution\n\n")
	b.WriteString("| Theme | Works |\n|---|---|\n")
	names := make([]string, 0, len(themes))
	for _, tc := range themes {
		fmt.Fprintf(&b, "| %s | %d |\n", tc.theme, tc.count)
		names = append(names, tc.theme)
	}

	if related := concepts.Suggest(names, 10); len(related) > 0 {
		b.WriteString("\n## Related Themes\n\n")
		b.WriteString("Consider also searching for: ")
		b.WriteString(strings.Join(related, ", "))
		b.WriteString(".\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// groupByPeriod buckets records by period, each bucket in chronological
// order.
func groupByPeriod(records []types.Record) map[types.Period][]types.Record {
	out := make(map[types.Period][]types.Record)
	for _, r := range records {
		out[r.Period] = append(out[r.Period], r)
	}
	for _, group := range out {
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Years.Start < group[j].Years.Start
		})
	}
	return out
}

type themeCount struct {
	theme string
	count int
}

func themeCounts(records []types.Record) []themeCount {
	counts := make(map[string]int)
	for _, r := range records {
		for _, t := range r.Themes {
			counts[t]++
		}
	}
	out := make([]themeCount, 0, len(counts))
	for t, n := range counts {
		out = append(out, themeCount{t, n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return out[i].theme < out[j].theme
	})
	return out
}

func formatAuthors(authors []string) string {
	switch len(authors) {
	case 0:
		return "Unknown"
	case 1:
		return authors[0]
	default:
		return authors[0] + " et al."
	}
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
