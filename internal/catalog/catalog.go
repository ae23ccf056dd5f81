// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog holds the LIBRIS knowledge base: the curated base
// collection, the generated catalog file, and read-only lookups over the
// loaded records.
package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/pdiddy/libris/pkg/types"
)

var (
	// ErrInvalidRecord is returned when a record violates a catalog invariant.
	ErrInvalidRecord = errors.New("invalid record")

	// ErrNotFound is returned when no record has the requested ID.
	ErrNotFound = errors.New("record not found")
)

// Catalog is an ordered, read-only mapping from record ID to Record.
type Catalog struct {
	entries []types.Record
	byID    map[string]int
}

// New validates records and builds a catalog. Every record must have a
// unique non-empty ID, a title, at least one author, and a parseable date.
// Years is derived from Date; an empty Period is inferred from the start year.
func New(records []types.Record) (*Catalog, error) {
	c := &Catalog{
		entries: make([]types.Record, 0, len(records)),
		byID:    make(map[string]int, len(records)),
	}
	for _, r := range records {
		norm, err := normalize(r)
		if err != nil {
			return nil, err
		}
		if _, dup := c.byID[norm.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidRecord, norm.ID)
		}
		c.byID[norm.ID] = len(c.entries)
		c.entries = append(c.entries, norm)
	}
	return c, nil
}

func normalize(r types.Record) (types.Record, error) {
	r.ID = strings.TrimSpace(r.ID)
	r.Title = strings.TrimSpace(r.Title)
	if r.ID == "" {
		return r, fmt.Errorf("%w: empty id (title %q)", ErrInvalidRecord, r.Title)
	}
	if r.Title == "" {
		return r, fmt.Errorf("%w: %s: empty title", ErrInvalidRecord, r.ID)
	}

	authors := r.Authors[:0:0]
	for _, a := range r.Authors {
		if a = strings.TrimSpace(a); a != "" {
			authors = append(authors, a)
		}
	}
	if len(authors) == 0 {
		return r, fmt.Errorf("%w: %s: no author", ErrInvalidRecord, r.ID)
	}
	r.Authors = authors

	years, err := types.ParseDate(r.Date)
	if err != nil {
		return r, fmt.Errorf("%w: %s: %v", ErrInvalidRecord, r.ID, err)
	}
	r.Years = years

	if r.Period == "" {
		r.Period = types.PeriodForYear(years.Start)
	} else {
		p, ok := types.ParsePeriod(string(r.Period))
		if !ok {
			return r, fmt.Errorf("%w: %s: unknown period %q", ErrInvalidRecord, r.ID, r.Period)
		}
		r.Period = p
	}

	themes := r.Themes[:0:0]
	seen := make(map[string]bool, len(r.Themes))
	for _, t := range r.Themes {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		themes = append(themes, t)
	}
	r.Themes = themes

	return r, nil
}

// Len returns the number of records.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Entries returns a copy of all records in catalog order.
func (c *Catalog) Entries() []types.Record {
	out := make([]types.Record, len(c.entries))
	copy(out, c.entries)
	return out
}

// Get returns the record with the given ID.
func (c *Catalog) Get(id string) (types.Record, error) {
	i, ok := c.byID[id]
	if !ok {
		return types.Record{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return c.entries[i], nil
}

// Authors returns the distinct author names, sorted.
func (c *Catalog) Authors() []string {
	seen := make(map[string]bool)
	for _, r := range c.entries {
		for _, a := range r.Authors {
			seen[a] = true
		}
	}
	return sortedKeys(seen)
}

// Themes returns the distinct theme tags, sorted.
func (c *Catalog) Themes() []string {
	seen := make(map[string]bool)
	for _, r := range c.entries {
		for _, t := range r.Themes {
			seen[t] = true
		}
	}
	return sortedKeys(seen)
}

// Periods returns the periods present in the catalog in chronological order.
func (c *Catalog) Periods() []types.Period {
	present := make(map[types.Period]bool)
	for _, r := range c.entries {
		present[r.Period] = true
	}
	var out []types.Period
	for _, p := range types.Periods {
		if present[p] {
			out = append(out, p)
		}
	}
	return out
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
