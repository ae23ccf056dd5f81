// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import "github.com/pdiddy/libris/pkg/types"

// Statistics summarizes the catalog.
type Statistics struct {
	TotalEntries int                  `json:"total_entries" yaml:"total_entries"`
	TotalAuthors int                  `json:"total_authors" yaml:"total_authors"`
	TotalThemes  int                  `json:"total_themes" yaml:"total_themes"`
	Sources      int                  `json:"sources" yaml:"sources"`
	DateRange    *types.DateRange     `json:"date_range,omitempty" yaml:"date_range,omitempty"`
	ByPeriod     map[types.Period]int `json:"by_period" yaml:"by_period"`
}

// Statistics computes catalog-wide counts. DateRange is nil for an empty
// catalog.
func (c *Catalog) Statistics() Statistics {
	sources := make(map[string]bool)
	stats := Statistics{
		TotalEntries: len(c.entries),
		TotalAuthors: len(c.Authors()),
		TotalThemes:  len(c.Themes()),
		ByPeriod:     make(map[types.Period]int),
	}

	for i, r := range c.entries {
		src := r.Source
		if src == "" {
			src = types.SourceBaseCollection
		}
		sources[src] = true
		stats.ByPeriod[r.Period]++

		if i == 0 {
			dr := r.Years
			stats.DateRange = &dr
			continue
		}
		if r.Years.Start < stats.DateRange.Start {
			stats.DateRange.Start = r.Years.Start
		}
		if r.Years.End > stats.DateRange.End {
			stats.DateRange.End = r.Years.End
		}
	}
	stats.Sources = len(sources)
	return stats
}
