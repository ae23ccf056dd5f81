// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"go.yaml.in/yaml/v3"
)

//go:embed concepts.yaml
var defaultConcepts []byte

// ConceptTable maps a concept to related search terms. Keys and terms are
// stored folded and tokenized so lookups are accent- and case-insensitive.
type ConceptTable struct {
	related map[string][]string
	reverse map[string][]string
}

// DefaultConcepts returns the built-in table.
func DefaultConcepts() ConceptTable {
	t, err := ParseConcepts(defaultConcepts)
	if err != nil {
		panic(fmt.Sprintf("built-in concept table: %v", err))
	}
	return t
}

// LoadConcepts reads a concept table from a YAML file of the form
// "concept: [term, term]". An empty path returns the built-in table.
func LoadConcepts(path string) (ConceptTable, error) {
	if path == "" {
		return DefaultConcepts(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ConceptTable{}, fmt.Errorf("reading concept table: %w", err)
	}
	t, err := ParseConcepts(data)
	if err != nil {
		return ConceptTable{}, fmt.Errorf("parsing concept table %s: %w", path, err)
	}
	return t, nil
}

// ParseConcepts decodes a YAML concept table.
func ParseConcepts(data []byte) (ConceptTable, error) {
	var raw map[string][]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return ConceptTable{}, err
	}

	t := ConceptTable{
		related: make(map[string][]string, len(raw)),
		reverse: make(map[string][]string),
	}
	for concept, terms := range raw {
		key := termKey(concept)
		if key == "" {
			return ConceptTable{}, fmt.Errorf("empty concept name")
		}
		for _, term := range terms {
			tk := termKey(term)
			if tk == "" || tk == key {
				continue
			}
			t.related[key] = appendUnique(t.related[key], tk)
			t.reverse[tk] = appendUnique(t.reverse[tk], key)
		}
		if _, ok := t.related[key]; !ok {
			t.related[key] = nil
		}
	}
	for k := range t.related {
		sort.Strings(t.related[k])
	}
	for k := range t.reverse {
		sort.Strings(t.reverse[k])
	}
	return t, nil
}

// Len returns the number of concepts.
func (t ConceptTable) Len() int { return len(t.related) }

// Related returns the terms a concept expands to, or nil if the concept is
// unknown.
func (t ConceptTable) Related(concept string) []string {
	return t.related[termKey(concept)]
}

// Expand returns the terms reachable from the query's words and adjacent
// word pairs, excluding those already present in the query. A query word
// that appears as a related term also pulls in the concepts it belongs to.
func (t ConceptTable) Expand(tokens []string) []string {
	grams := make(map[string]bool, 2*len(tokens))
	for i, tok := range tokens {
		grams[tok] = true
		if i+1 < len(tokens) {
			grams[tok+" "+tokens[i+1]] = true
		}
	}

	seen := make(map[string]bool)
	var out []string
	add := func(term string) {
		if grams[term] || seen[term] {
			return
		}
		seen[term] = true
		out = append(out, term)
	}
	for g := range grams {
		for _, term := range t.related[g] {
			add(term)
		}
		for _, concept := range t.reverse[g] {
			add(concept)
		}
	}
	sort.Strings(out)
	return out
}

// Suggest returns concept-table neighbours of the given themes that are not
// themselves in the list, most frequently suggested first.
func (t ConceptTable) Suggest(themes []string, limit int) []string {
	have := make(map[string]bool, len(themes))
	for _, th := range themes {
		have[termKey(th)] = true
	}
	counts := make(map[string]int)
	for _, th := range themes {
		for _, term := range t.related[termKey(th)] {
			if !have[term] {
				counts[term]++
			}
		}
	}
	out := make([]string, 0, len(counts))
	for term := range counts {
		out = append(out, term)
	}
	sort.Slice(out, func(i, j int) bool {
		if counts[out[i]] != counts[out[j]] {
			return counts[out[i]] > counts[out[j]]
		}
		return out[i] < out[j]
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Match returns the concepts named in text.
func (t ConceptTable) Match(text string) []string {
	tokens := Tokenize(text)
	var out []string
	for concept := range t.related {
		if containsSeq(tokens, strings.Fields(concept)) {
			out = append(out, concept)
		}
	}
	sort.Strings(out)
	return out
}

func termKey(s string) string {
	return strings.Join(Tokenize(s), " ")
}

func appendUnique(list []string, s string) []string {
	for _, v := range list {
		if v == s {
			return list
		}
	}
	return append(list, s)
}
