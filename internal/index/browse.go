// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/pdiddy/libris/internal/search"
	"github.com/pdiddy/libris/pkg/types"
)

// Filter holds structured browse criteria. Zero-valued fields are ignored;
// set fields combine with AND.
type Filter struct {
	// Author matches a substring of any author name, ignoring case and
	// diacritics.
	Author string

	// Theme matches a theme tag exactly, ignoring case and diacritics.
	Theme string

	// Period matches the record's period, ignoring case.
	Period string

	// FromYear and ToYear select records whose span overlaps the range.
	// Either bound may be nil.
	FromYear *int
	ToYear   *int

	// Limit caps the result count. Zero means no limit.
	Limit int
}

// IsEmpty reports whether the filter selects everything.
func (f Filter) IsEmpty() bool {
	return f.Author == "" && f.Theme == "" && f.Period == "" && f.FromYear == nil && f.ToYear == nil
}

// Browse returns records matching the filter in chronological order.
func (idx *Index) Browse(ctx context.Context, f Filter) ([]types.Record, error) {
	var (
		qb   strings.Builder
		args []any
	)

	qb.WriteString(
		`SELECT r.id, r.title, r.authors, r.date, r.start_year, r.end_year,
			r.period, r.notes, r.source,
			(SELECT json_group_array(theme) FROM
				(SELECT theme FROM themes t WHERE t.record_id = r.id ORDER BY t.ord))
		FROM records r
		WHERE 1=1`)

	if f.Author != "" {
		qb.WriteString(` AND EXISTS (SELECT 1 FROM json_each(r.authors_key) WHERE value LIKE ? ESCAPE '\')`)
		args = append(args, "%"+escapeLike(search.Fold(f.Author))+"%")
	}
	if f.Theme != "" {
		qb.WriteString(` AND EXISTS (SELECT 1 FROM themes t WHERE t.record_id = r.id AND t.theme_key = ?)`)
		args = append(args, search.Fold(strings.TrimSpace(f.Theme)))
	}
	if f.Period != "" {
		qb.WriteString(` AND lower(r.period) = lower(?)`)
		args = append(args, f.Period)
	}
	if f.FromYear != nil {
		qb.WriteString(` AND r.end_year >= ?`)
		args = append(args, *f.FromYear)
	}
	if f.ToYear != nil {
		qb.WriteString(` AND r.start_year <= ?`)
		args = append(args, *f.ToYear)
	}

	qb.WriteString(` ORDER BY r.start_year, r.id`)
	if f.Limit > 0 {
		qb.WriteString(` LIMIT ?`)
		args = append(args, f.Limit)
	}

	rows, err := idx.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying index: %w", err)
	}
	defer rows.Close()

	var out []types.Record
	for rows.Next() {
		var (
			r           types.Record
			authorsJSON string
			themesJSON  sql.NullString
			period      string
			notes       sql.NullString
			source      sql.NullString
		)
		if err := rows.Scan(
			&r.ID, &r.Title, &authorsJSON, &r.Date, &r.Years.Start, &r.Years.End,
			&period, &notes, &source, &themesJSON,
		); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		if err := json.Unmarshal([]byte(authorsJSON), &r.Authors); err != nil {
			return nil, fmt.Errorf("decoding authors for %s: %w", r.ID, err)
		}
		if themesJSON.Valid {
			if err := json.Unmarshal([]byte(themesJSON.String), &r.Themes); err != nil {
				return nil, fmt.Errorf("decoding themes for %s: %w", r.ID, err)
			}
		}
		r.Period = types.Period(period)
		r.Notes = notes.String
		r.Source = source.String
		out = append(out, r)
	}
	return out, rows.Err()
}

// Facet is a distinct value with the number of records carrying it.
type Facet struct {
	Value string `json:"value" yaml:"value"`
	Count int    `json:"count" yaml:"count"`
}

// Facets lists the browseable values for each dimension.
type Facets struct {
	Authors []Facet `json:"authors" yaml:"authors"`
	Themes  []Facet `json:"themes" yaml:"themes"`
	Periods []Facet `json:"periods" yaml:"periods"`
}

// Facets returns distinct authors and themes (by descending count, then
// name) and periods (chronologically).
func (idx *Index) Facets(ctx context.Context) (Facets, error) {
	var (
		out Facets
		err error
	)

	out.Authors, err = idx.facet(ctx,
		`SELECT value, count(*) FROM records, json_each(records.authors)
		 GROUP BY value ORDER BY count(*) DESC, value`)
	if err != nil {
		return Facets{}, fmt.Errorf("author facets: %w", err)
	}

	out.Themes, err = idx.facet(ctx,
		`SELECT theme, count(*) FROM themes GROUP BY theme ORDER BY count(*) DESC, theme`)
	if err != nil {
		return Facets{}, fmt.Errorf("theme facets: %w", err)
	}

	out.Periods, err = idx.facet(ctx,
		`SELECT period, count(*) FROM records GROUP BY period`)
	if err != nil {
		return Facets{}, fmt.Errorf("period facets: %w", err)
	}
	sort.SliceStable(out.Periods, func(i, j int) bool {
		return types.Period(out.Periods[i].Value).Order() < types.Period(out.Periods[j].Value).Order()
	})

	return out, nil
}

func (idx *Index) facet(ctx context.Context, query string) ([]Facet, error) {
	rows, err := idx.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Facet
	for rows.Next() {
		var f Facet
		if err := rows.Scan(&f.Value, &f.Count); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
