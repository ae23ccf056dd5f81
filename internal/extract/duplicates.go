// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"math"
	"strings"

	"github.com/pdiddy/libris/internal/search"
	"github.com/pdiddy/libris/pkg/types"
)

// DuplicateThreshold is the normalized title similarity at or above which
// a candidate sharing an author surname is a duplicate.
const DuplicateThreshold = 0.9

// FindDuplicates pairs each candidate with the most similar catalog record
// whose title similarity reaches DuplicateThreshold and that shares an
// author surname.
func FindDuplicates(cands []types.Candidate, catalog []types.Record) []types.DuplicateMatch {
	type entry struct {
		id       string
		title    string
		surnames map[string]bool
	}
	entries := make([]entry, len(catalog))
	for i, r := range catalog {
		entries[i] = entry{id: r.ID, title: normTitle(r.Title), surnames: surnames(r.Authors)}
	}

	var out []types.DuplicateMatch
	for _, c := range cands {
		title := normTitle(c.Title)
		names := surnames(c.Authors)
		if title == "" || len(names) == 0 {
			continue
		}
		best := types.DuplicateMatch{}
		for _, e := range entries {
			if !overlaps(names, e.surnames) {
				continue
			}
			if sim := search.Similarity(title, e.title); sim >= DuplicateThreshold && sim > best.Similarity {
				best = types.DuplicateMatch{CandidateID: c.ID, CatalogID: e.id, Similarity: math.Round(sim*100) / 100}
			}
		}
		if best.CatalogID != "" {
			out = append(out, best)
		}
	}
	return out
}

func normTitle(s string) string {
	return strings.Join(search.Tokenize(s), " ")
}

func surnames(authors []string) map[string]bool {
	out := make(map[string]bool, len(authors))
	for _, a := range authors {
		if s := surname(search.Fold(a)); s != "" {
			out[s] = true
		}
	}
	return out
}

func overlaps(a, b map[string]bool) bool {
	for k := range a {
		if b[k] {
			return true
		}
	}
	return false
}
