// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search ranks catalog records against free-text queries using
// keyword, fuzzy and concept-expansion matching.
package search

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/pdiddy/libris/pkg/types"
)

var (
	// ErrEmptyQuery is returned when a query has no searchable words.
	ErrEmptyQuery = errors.New("query is empty")

	// ErrUnknownMode is returned for a mode outside types.SearchModes.
	ErrUnknownMode = errors.New("unknown search mode")
)

const (
	// DefaultMaxResults applies when Options.MaxResults is not positive.
	DefaultMaxResults = 15

	// DefaultFuzzyThreshold is the minimum similarity for a fuzzy match.
	DefaultFuzzyThreshold = 0.75

	minFuzzyRunes   = 4
	phraseBonus     = 0.5
	conceptWeight   = 0.6
	conceptShare    = 0.7
	fuzzyShare      = 0.5
	scoreSaturation = 3.0
)

// Field weights.
var weights = map[string]float64{
	"title":   3,
	"authors": 3,
	"themes":  2,
	"period":  1.5,
	"notes":   1,
	"date":    1,
}

var fieldOrder = []string{"title", "authors", "themes", "period", "notes", "date"}

// ParseMode validates a mode name. The empty string selects comprehensive.
func ParseMode(s string) (types.SearchMode, error) {
	if s == "" {
		return types.ModeComprehensive, nil
	}
	for _, m := range types.SearchModes {
		if strings.EqualFold(s, string(m)) {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w %q (want one of %s)", ErrUnknownMode, s, modeList())
}

func modeList() string {
	names := make([]string, len(types.SearchModes))
	for i, m := range types.SearchModes {
		names[i] = string(m)
	}
	return strings.Join(names, ", ")
}

// Options control a single search.
type Options struct {
	Mode       types.SearchMode
	MaxResults int
}

// field is one searchable attribute of a record. Multi-valued attributes
// (authors, themes) keep one phrase per value.
type field struct {
	name    string
	phrases [][]string
	words   map[string]bool
}

type document struct {
	record types.Record
	fields []field
}

// Engine searches a fixed set of records.
type Engine struct {
	docs           []document
	concepts       ConceptTable
	fuzzyThreshold float64
}

// NewEngine indexes records for searching. A non-positive threshold selects
// DefaultFuzzyThreshold.
func NewEngine(records []types.Record, concepts ConceptTable, fuzzyThreshold float64) *Engine {
	if fuzzyThreshold <= 0 || fuzzyThreshold > 1 {
		fuzzyThreshold = DefaultFuzzyThreshold
	}
	e := &Engine{
		docs:           make([]document, len(records)),
		concepts:       concepts,
		fuzzyThreshold: fuzzyThreshold,
	}
	for i, r := range records {
		e.docs[i] = newDocument(r)
	}
	return e
}

// Concepts returns the engine's concept table.
func (e *Engine) Concepts() ConceptTable { return e.concepts }

func newDocument(r types.Record) document {
	values := map[string][]string{
		"title":   {r.Title},
		"authors": r.Authors,
		"themes":  r.Themes,
		"period":  {string(r.Period)},
		"notes":   {r.Notes},
		"date":    {r.Date},
	}
	d := document{record: r}
	for _, name := range fieldOrder {
		f := field{name: name, words: make(map[string]bool)}
		for _, v := range values[name] {
			toks := Tokenize(v)
			if len(toks) == 0 {
				continue
			}
			f.phrases = append(f.phrases, toks)
			for _, w := range toks {
				f.words[w] = true
			}
		}
		d.fields = append(d.fields, f)
	}
	return d
}

func (f field) hasPhrase(tokens []string) bool {
	for _, p := range f.phrases {
		if containsSeq(p, tokens) {
			return true
		}
	}
	return false
}

// Search returns records matching query, best first. Ties are broken by id.
func (e *Engine) Search(query string, opts Options) ([]types.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}
	tokens := Tokenize(query)
	if len(tokens) == 0 {
		return nil, ErrEmptyQuery
	}
	mode := opts.Mode
	if mode == "" {
		mode = types.ModeComprehensive
	}
	if _, err := ParseMode(string(mode)); err != nil {
		return nil, err
	}
	limit := opts.MaxResults
	if limit <= 0 {
		limit = DefaultMaxResults
	}

	var expanded [][]string
	if mode == types.ModeConceptual || mode == types.ModeComprehensive {
		for _, term := range e.concepts.Expand(tokens) {
			expanded = append(expanded, strings.Fields(term))
		}
	}

	var results []types.SearchResult
	for _, d := range e.docs {
		raw, matched := e.score(d, mode, tokens, expanded)
		if raw <= 0 {
			continue
		}
		results = append(results, types.SearchResult{
			Record:        d.record,
			Score:         squash(raw),
			MatchedFields: matched,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Record.ID < results[j].Record.ID
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// score combines the per-mode scorers and returns the raw score with the
// names of the fields that contributed.
func (e *Engine) score(d document, mode types.SearchMode, tokens []string, expanded [][]string) (float64, []string) {
	var (
		total float64
		hit   = make(map[string]bool)
	)
	for _, f := range d.fields {
		w := weights[f.name]
		var s float64
		switch mode {
		case types.ModeKeyword:
			s = keywordScore(f, d.record, tokens)
		case types.ModeFuzzy:
			s = e.fuzzyScore(f, tokens)
		case types.ModeConceptual:
			s = keywordScore(f, d.record, tokens) + conceptScore(f, tokens, expanded)
		default:
			s = keywordScore(f, d.record, tokens) +
				conceptShare*conceptScore(f, tokens, expanded) +
				fuzzyShare*e.fuzzyScore(f, tokens)
		}
		if s > 0 {
			hit[f.name] = true
			total += w * s
		}
	}

	var matched []string
	for _, name := range fieldOrder {
		if hit[name] {
			matched = append(matched, name)
		}
	}
	return total, matched
}

// keywordScore is the share of query words found verbatim in the field,
// plus a bonus when the whole query appears as a phrase. Numeric words also
// match the date field when they fall inside the record's year span.
func keywordScore(f field, r types.Record, tokens []string) float64 {
	found := 0
	for _, t := range tokens {
		if f.words[t] || (f.name == "date" && yearInSpan(t, r.Years)) {
			found++
		}
	}
	s := float64(found) / float64(len(tokens))
	if len(tokens) > 1 && f.hasPhrase(tokens) {
		s += phraseBonus
	}
	return s
}

func yearInSpan(tok string, span types.DateRange) bool {
	y, err := strconv.Atoi(tok)
	if err != nil || span.IsZero() {
		return false
	}
	return y >= span.Start && y <= span.End
}

// conceptScore counts expanded terms present in the field, relative to the
// query length, at the reduced concept weight.
func conceptScore(f field, tokens []string, expanded [][]string) float64 {
	if len(expanded) == 0 {
		return 0
	}
	found := 0
	for _, term := range expanded {
		if f.hasPhrase(term) {
			found++
		}
	}
	return conceptWeight * math.Min(1, float64(found)/float64(len(tokens)))
}

// fuzzyScore averages, over query words, the best Levenshtein similarity to
// any word in the field. Exact hits count at any length; near-misses need
// minFuzzyRunes and a similarity at or above the threshold.
func (e *Engine) fuzzyScore(f field, tokens []string) float64 {
	var sum float64
	for _, t := range tokens {
		if f.words[t] {
			sum++
			continue
		}
		if len([]rune(t)) < minFuzzyRunes {
			continue
		}
		best := 0.0
		for w := range f.words {
			if sim := Similarity(t, w); sim > best {
				best = sim
			}
		}
		if best >= e.fuzzyThreshold {
			sum += best
		}
	}
	return sum / float64(len(tokens))
}

// Similarity returns 1 - normalized Levenshtein distance between a and b,
// in [0, 1].
func Similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	la, lb := len([]rune(a)), len([]rune(b))
	longest := la
	if lb > longest {
		longest = lb
	}
	if longest == 0 {
		return 1
	}
	d := levenshtein.ComputeDistance(a, b)
	return 1 - float64(d)/float64(longest)
}

// squash maps a positive raw score into (0, 1].
func squash(raw float64) float64 {
	s := 1 - math.Exp(-raw/scoreSaturation)
	return math.Round(s*10000) / 10000
}
