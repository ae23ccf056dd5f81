// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// SearchMode selects the matching strategy.
type SearchMode string

const (
	ModeComprehensive SearchMode = "comprehensive"
	ModeKeyword       SearchMode = "keyword"
	ModeConceptual    SearchMode = "conceptual"
	ModeFuzzy         SearchMode = "fuzzy"
)

// SearchModes lists the accepted modes.
var SearchModes = []SearchMode{ModeComprehensive, ModeKeyword, ModeConceptual, ModeFuzzy}

// SearchResult is a catalog record matched by a query.
type SearchResult struct {
	// Record is the matched catalog entry.
	Record Record `json:"entry" yaml:"entry"`

	// Score is the relevance in (0, 1].
	Score float64 `json:"score" yaml:"score"`

	// MatchedFields names the record fields that contributed to the score
	// (e.g. "title", "themes").
	MatchedFields []string `json:"matched_fields" yaml:"matched_fields"`
}

// Records unwraps a result list.
func Records(results []SearchResult) []Record {
	out := make([]Record, len(results))
	for i, r := range results {
		out[i] = r.Record
	}
	return out
}
