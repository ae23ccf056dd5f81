// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"strings"

	"github.com/pdiddy/libris/internal/search"
	"github.com/pdiddy/libris/pkg/types"
)

// headerAliases maps folded header cells to record fields.
var headerAliases = map[string]string{
	"title":            "title",
	"work":             "title",
	"book":             "title",
	"name":             "title",
	"reading":          "title",
	"author":           "authors",
	"authors":          "authors",
	"writer":           "authors",
	"creator":          "authors",
	"by":               "authors",
	"date":             "date",
	"year":             "date",
	"published":        "date",
	"publication date": "date",
	"year published":   "date",
	"theme":            "themes",
	"themes":           "themes",
	"keywords":         "themes",
	"subject":          "themes",
	"subjects":         "themes",
	"tags":             "themes",
	"topics":           "themes",
	"period":           "period",
	"era":              "period",
	"notes":            "notes",
	"note":             "notes",
	"comments":         "notes",
	"description":      "notes",
	"annotation":       "notes",
}

// mapHeader returns the column index of each recognized field. The header
// is usable only if it names a title column.
func mapHeader(header []string) (map[string]int, bool) {
	cols := make(map[string]int)
	for i, cell := range header {
		key := strings.Join(strings.Fields(search.Fold(strings.TrimSpace(cell))), " ")
		if field, ok := headerAliases[key]; ok {
			if _, dup := cols[field]; !dup {
				cols[field] = i
			}
		}
	}
	_, ok := cols["title"]
	return cols, ok
}

// fromTable maps rows to candidates by header. It returns nil when the
// first row is not a recognizable header, so the caller falls back to the
// text patterns.
func (x *Extractor) fromTable(rows [][]string) []types.Candidate {
	if len(rows) < 2 {
		return nil
	}
	cols, ok := mapHeader(rows[0])
	if !ok {
		return nil
	}

	cell := func(row []string, field string) string {
		i, ok := cols[field]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	out := []types.Candidate{}
	for n, row := range rows[1:] {
		title := cleanTitle(cell(row, "title"))
		if title == "" {
			continue
		}
		p := parsed{
			pattern: PatternTable,
			title:   title,
			authors: parseAuthors(cell(row, "authors")),
			notes:   cell(row, "notes"),
			themes:  splitList(cell(row, "themes")),
		}
		if d := cell(row, "date"); d != "" {
			if date, _, ok := findDate(d); ok {
				p.date = date
			} else if _, err := types.ParseDate(d); err == nil {
				p.date = d
			}
		}
		if period, ok := types.ParsePeriod(cell(row, "period")); ok {
			p.period = period
		}
		raw := strings.Join(row, "\t")
		out = append(out, x.candidate(p, n+2, raw))
	}
	return out
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == ';' || r == ',' || r == '|' }) {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
