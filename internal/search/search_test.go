// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/libris/internal/catalog"
	"github.com/pdiddy/libris/pkg/types"
)

func baseEngine(t *testing.T) *Engine {
	t.Helper()
	c, err := catalog.New(catalog.BaseCollection())
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}
	return NewEngine(c.Entries(), DefaultConcepts(), 0)
}

func resultIDs(results []types.SearchResult) []string {
	ids := make([]string, len(results))
	for i, r := range results {
		ids[i] = r.Record.ID
	}
	return ids
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// --- Normalization ---

func TestTokenize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"The Republic", "republic"},
		{"Ibn Sīnā's  Canon!", "ibn sina s canon"},
		{"STATE of Nature", "state nature"},
		{"the of", "the of"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := strings.Join(Tokenize(tt.in), " ")
			if got != tt.want {
				t.Errorf("Tokenize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSimilarity(t *testing.T) {
	if got := Similarity("plato", "plato"); got != 1 {
		t.Errorf("identical = %v, want 1", got)
	}
	if got := Similarity("platto", "plato"); got < 0.8 || got > 0.84 {
		t.Errorf("one insertion = %v, want ~0.83", got)
	}
	if got := Similarity("kant", "hume"); got > 0.3 {
		t.Errorf("unrelated = %v, want low", got)
	}
}

// --- Modes ---

func TestParseMode(t *testing.T) {
	for _, m := range types.SearchModes {
		got, err := ParseMode(strings.ToUpper(string(m)))
		if err != nil || got != m {
			t.Errorf("ParseMode(%q) = %q, %v", m, got, err)
		}
	}
	if got, _ := ParseMode(""); got != types.ModeComprehensive {
		t.Errorf("empty mode = %q, want comprehensive", got)
	}
	if _, err := ParseMode("semantic"); !errors.Is(err, ErrUnknownMode) {
		t.Errorf("err = %v, want ErrUnknownMode", err)
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	e := baseEngine(t)
	for _, q := range []string{"", "   ", "!!!"} {
		if _, err := e.Search(q, Options{}); !errors.Is(err, ErrEmptyQuery) {
			t.Errorf("Search(%q) err = %v, want ErrEmptyQuery", q, err)
		}
	}
}

func TestSearchUnknownMode(t *testing.T) {
	e := baseEngine(t)
	if _, err := e.Search("justice", Options{Mode: "vector"}); !errors.Is(err, ErrUnknownMode) {
		t.Errorf("err = %v, want ErrUnknownMode", err)
	}
}

func TestKeywordSearch(t *testing.T) {
	e := baseEngine(t)

	tests := []struct {
		name  string
		query string
		want  string
		field string
	}{
		{"title", "Leviathan", "hobbes-leviathan", "title"},
		{"author", "hobbes", "hobbes-leviathan", "authors"},
		{"theme", "social contract", "hobbes-leviathan", "themes"},
		{"case insensitive", "LEVIATHAN", "hobbes-leviathan", "title"},
		{"year", "1651", "hobbes-leviathan", "date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Search(tt.query, Options{Mode: types.ModeKeyword})
			if err != nil {
				t.Fatalf("Search: %v", err)
			}
			if !contains(resultIDs(got), tt.want) {
				t.Fatalf("results %v missing %s", resultIDs(got), tt.want)
			}
			for _, r := range got {
				if r.Record.ID == tt.want && !contains(r.MatchedFields, tt.field) {
					t.Errorf("matched fields %v, want %s", r.MatchedFields, tt.field)
				}
			}
		})
	}
}

func TestKeywordSearchNoFuzzyMatches(t *testing.T) {
	e := baseEngine(t)
	got, err := e.Search("Leviathn", Options{Mode: types.ModeKeyword})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("keyword search for misspelling returned %v", resultIDs(got))
	}
}

func TestFuzzySearch(t *testing.T) {
	e := baseEngine(t)

	got, err := e.Search("Leviathn", Options{Mode: types.ModeFuzzy})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) == 0 || got[0].Record.ID != "hobbes-leviathan" {
		t.Errorf("top result = %v, want hobbes-leviathan first", resultIDs(got))
	}
}

func TestFuzzySearchShortTokens(t *testing.T) {
	e := NewEngine([]types.Record{
		{ID: "a", Title: "Art", Authors: []string{"X"}},
	}, DefaultConcepts(), 0)

	got, err := e.Search("arx", Options{Mode: types.ModeFuzzy})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("three-letter near miss matched: %v", resultIDs(got))
	}

	got, err = e.Search("art", Options{Mode: types.ModeFuzzy})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if !contains(resultIDs(got), "a") {
		t.Errorf("exact three-letter word not found: %v", resultIDs(got))
	}
}

func TestFuzzySearchExactShortWords(t *testing.T) {
	e := baseEngine(t)
	for _, q := range []string{"war", "art of war"} {
		got, err := e.Search(q, Options{Mode: types.ModeFuzzy, MaxResults: 100})
		if err != nil {
			t.Fatalf("Search(%q): %v", q, err)
		}
		if !contains(resultIDs(got), "sunzi-art-of-war") {
			t.Errorf("Search(%q) fuzzy = %v, want sunzi-art-of-war", q, resultIDs(got))
		}
	}
}

func TestConceptualSearch(t *testing.T) {
	records := []types.Record{
		{ID: "liberty", Title: "On Liberty", Authors: []string{"John Stuart Mill"}},
		{ID: "other", Title: "Meditations", Authors: []string{"Marcus Aurelius"}},
	}
	e := NewEngine(records, DefaultConcepts(), 0)

	kw, err := e.Search("freedom", Options{Mode: types.ModeKeyword})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(kw) != 0 {
		t.Errorf("keyword search found %v", resultIDs(kw))
	}

	got, err := e.Search("freedom", Options{Mode: types.ModeConceptual})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if ids := resultIDs(got); len(ids) != 1 || ids[0] != "liberty" {
		t.Errorf("conceptual results = %v, want [liberty]", ids)
	}
}

func TestComprehensiveRanksDirectAboveConceptual(t *testing.T) {
	records := []types.Record{
		{ID: "b-direct", Title: "Essay on Freedom", Authors: []string{"A"}},
		{ID: "a-concept", Title: "On Liberty", Authors: []string{"B"}},
	}
	e := NewEngine(records, DefaultConcepts(), 0)

	got, err := e.Search("freedom", Options{})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if ids := resultIDs(got); len(ids) != 2 || ids[0] != "b-direct" {
		t.Errorf("results = %v, want b-direct first", ids)
	}
}

func TestSearchScoresAndOrdering(t *testing.T) {
	e := baseEngine(t)
	got, err := e.Search("ethics", Options{MaxResults: 100})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) == 0 {
		t.Fatal("no results")
	}
	for i, r := range got {
		if r.Score <= 0 || r.Score > 1 {
			t.Errorf("%s score %v out of (0,1]", r.Record.ID, r.Score)
		}
		if len(r.MatchedFields) == 0 {
			t.Errorf("%s has no matched fields", r.Record.ID)
		}
		if i > 0 {
			prev := got[i-1]
			if prev.Score < r.Score || (prev.Score == r.Score && prev.Record.ID > r.Record.ID) {
				t.Errorf("results out of order at %d: %s(%v) before %s(%v)",
					i, prev.Record.ID, prev.Score, r.Record.ID, r.Score)
			}
		}
	}
}

func TestSearchMaxResults(t *testing.T) {
	e := baseEngine(t)

	got, err := e.Search("politics", Options{MaxResults: 3})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("len = %d, want 3", len(got))
	}

	got, err = e.Search("politics", Options{})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != DefaultMaxResults {
		t.Errorf("default len = %d, want %d", len(got), DefaultMaxResults)
	}
}

func TestSearchDiacritics(t *testing.T) {
	e := NewEngine([]types.Record{
		{ID: "avicenna", Title: "The Book of Healing", Authors: []string{"Ibn Sīnā"}},
	}, DefaultConcepts(), 0)

	got, err := e.Search("ibn sina", Options{Mode: types.ModeKeyword})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("results = %v, want avicenna", resultIDs(got))
	}
}

// --- Concepts ---

func TestConceptExpand(t *testing.T) {
	c := DefaultConcepts()

	got := c.Expand(Tokenize("freedom"))
	if !contains(got, "liberty") || !contains(got, "autonomy") {
		t.Errorf("Expand(freedom) = %v, want liberty and autonomy", got)
	}
	if contains(got, "freedom") {
		t.Errorf("Expand(freedom) includes the query word: %v", got)
	}

	got = c.Expand(Tokenize("social contract"))
	if !contains(got, "consent") {
		t.Errorf("bigram expansion = %v, want consent", got)
	}
}

func TestLoadConcepts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "concepts.yaml")
	if err := writeFile(path, "Stoicism: [Virtue, \"Marcus Aurelius\", stoicism]\n"); err != nil {
		t.Fatal(err)
	}

	c, err := LoadConcepts(path)
	if err != nil {
		t.Fatalf("LoadConcepts: %v", err)
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1", c.Len())
	}
	got := c.Related("STOICISM")
	if strings.Join(got, "|") != "marcus aurelius|virtue" {
		t.Errorf("Related = %v", got)
	}

	if _, err := LoadConcepts(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
	if err := writeFile(path, "- not a map\n"); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConcepts(path); err == nil {
		t.Error("expected error for malformed table")
	}
}

func TestConceptSuggest(t *testing.T) {
	c := DefaultConcepts()
	got := c.Suggest([]string{"justice", "equality"}, 3)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	for _, s := range got {
		if s == "justice" || s == "equality" {
			t.Errorf("suggested an existing theme: %s", s)
		}
	}
	// fairness and rights are related to both themes.
	if got[0] != "fairness" && got[0] != "rights" {
		t.Errorf("top suggestion = %s", got[0])
	}
}

// --- Output ---

func TestFormatTable(t *testing.T) {
	var buf bytes.Buffer
	FormatTable(nil, &buf)
	if !strings.Contains(buf.String(), "No results found") {
		t.Errorf("empty output = %q", buf.String())
	}

	buf.Reset()
	FormatTable([]types.SearchResult{{
		Record: types.Record{ID: "x", Title: strings.Repeat("Long ", 20), Authors: []string{"A", "B"},
			Date: "1651", Period: types.PeriodEarlyModern},
		Score: 0.5,
	}}, &buf)
	out := buf.String()
	for _, want := range []string{"Rank", "A et al.", "...", "Early Modern", "0.50", "1 results"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestFormatJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := FormatJSON(nil, &buf); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Errorf("empty JSON = %q", buf.String())
	}

	buf.Reset()
	in := []types.SearchResult{{Record: types.Record{ID: "x", Title: "T"}, Score: 0.9, MatchedFields: []string{"title"}}}
	if err := FormatJSON(in, &buf); err != nil {
		t.Fatal(err)
	}
	var got []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if got[0]["entry"].(map[string]any)["id"] != "x" {
		t.Errorf("entry = %v", got[0]["entry"])
	}
}

func TestWriteReport(t *testing.T) {
	e := baseEngine(t)
	results, err := e.Search("social contract", Options{})
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	err = WriteReport(&buf, Report{
		Query:       "social contract",
		Mode:        types.ModeComprehensive,
		Results:     results,
		GeneratedAt: time.Date(2026, 1, 2, 3, 4, 0, 0, time.UTC),
	}, e.Concepts())
	if err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"# Research Report: social contract",
		"2026-01-02 03:04",
		"## Summary",
		"## Works by Period",
		"### Early Modern",
		"**Leviathan**",
		"## Theme Distribution",
		"| social contract |",
		"## Related Themes",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q", want)
		}
	}
	if strings.Index(out, "### Early Modern") > strings.Index(out, "### Enlightenment") && strings.Contains(out, "### Enlightenment") {
		t.Error("periods not in chronological order")
	}
}

func TestWriteReportNoResults(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteReport(&buf, Report{Query: "zzz"}, DefaultConcepts()); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "No works in the catalog matched") {
		t.Errorf("report = %q", buf.String())
	}
}

// --- Query files ---

func TestQueryFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "q.yaml")
	results := []types.SearchResult{{
		Record:        types.Record{ID: "x", Title: "T", Authors: []string{"A"}, Period: types.PeriodModern},
		Score:         0.75,
		MatchedFields: []string{"title"},
	}}
	opts := Options{Mode: types.ModeFuzzy, MaxResults: 5}

	if err := WriteQueryFile(path, "justice", opts, results); err != nil {
		t.Fatalf("WriteQueryFile: %v", err)
	}
	qf, err := ReadQueryFile(path)
	if err != nil {
		t.Fatalf("ReadQueryFile: %v", err)
	}
	if qf.Query.Text != "justice" || qf.Query.Options() != opts {
		t.Errorf("query = %+v", qf.Query)
	}
	if qf.Summary.Total != 1 || len(qf.Results) != 1 || qf.Results[0].Record.ID != "x" {
		t.Errorf("results = %+v summary = %+v", qf.Results, qf.Summary)
	}
}

func TestReadQueryFileBadMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "q.yaml")
	if err := writeFile(path, "query:\n  text: x\n  mode: telepathy\n"); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadQueryFile(path); !errors.Is(err, ErrUnknownMode) {
		t.Errorf("err = %v, want ErrUnknownMode", err)
	}
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}
