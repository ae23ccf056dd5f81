// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract turns semi-structured documents (syllabi, reading lists,
// reference lists, spreadsheets) into candidate bibliographic records.
// Candidates carry a confidence score; weak ones are flagged, not dropped.
package extract

import (
	"crypto/sha256"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/pdiddy/libris/internal/convert"
	"github.com/pdiddy/libris/internal/search"
	"github.com/pdiddy/libris/pkg/types"
)

// DefaultMinConfidence is the flagging threshold when none is configured.
const DefaultMinConfidence = 0.6

// Confidence penalties.
const (
	penaltyNoAuthor      = 0.3
	penaltyNoYear        = 0.15
	penaltyTitleLength   = 0.2
	penaltyAuthorNotName = 0.2
)

// Extractor parses documents into candidates and checks them against a
// catalog.
type Extractor struct {
	minConfidence float64
	concepts      search.ConceptTable
	vocabulary    []vocabTerm
}

// vocabTerm is a known theme with its tokenized form.
type vocabTerm struct {
	theme  string
	tokens []string
}

// New returns an Extractor. Themes are detected from the concept table and
// from vocabulary, typically the catalog's theme list. A non-positive
// minConfidence selects DefaultMinConfidence.
func New(minConfidence float64, concepts search.ConceptTable, vocabulary []string) *Extractor {
	if minConfidence <= 0 || minConfidence > 1 {
		minConfidence = DefaultMinConfidence
	}
	x := &Extractor{minConfidence: minConfidence, concepts: concepts}
	for _, v := range vocabulary {
		if toks := search.Tokenize(v); len(toks) > 0 {
			x.vocabulary = append(x.vocabulary, vocabTerm{theme: v, tokens: toks})
		}
	}
	return x
}

// Process extracts candidates from doc and builds its report. Candidates
// matching a record in catalog are listed as duplicates. RunID is left for
// the caller to assign.
func (x *Extractor) Process(doc convert.Document, catalog []types.Record) types.ProcessReport {
	var cands []types.Candidate
	lines := doc.Lines()
	if doc.Format.Tabular() {
		cands = x.fromTable(doc.Rows)
		lines = rowLines(doc.Rows)
	}
	if cands == nil {
		cands = x.fromText(lines)
	}
	assignIDs(cands)
	for i := range cands {
		cands[i].Source = doc.Name
	}

	rep := types.ProcessReport{
		File:        doc.Name,
		Format:      string(doc.Format),
		ProcessedAt: time.Now().UTC(),
		Candidates:  cands,
		Duplicates:  FindDuplicates(cands, catalog),
	}
	rep.ThemesDetected, rep.DateRange = summarize(cands)
	rep.QualityIssues = x.qualityIssues(cands)
	if rep.ThemesDetected == nil {
		rep.ThemesDetected = []string{}
	}
	if rep.Candidates == nil {
		rep.Candidates = []types.Candidate{}
	}
	return rep
}

// rowLines renders headerless table rows as comma-joined lines for the
// text patterns.
func rowLines(rows [][]string) []string {
	out := make([]string, len(rows))
	for i, row := range rows {
		var cells []string
		for _, c := range row {
			if c = strings.TrimSpace(c); c != "" {
				cells = append(cells, c)
			}
		}
		out[i] = strings.Join(cells, ", ")
	}
	return out
}

// fromText runs the line patterns over the document's spans.
func (x *Extractor) fromText(lines []string) []types.Candidate {
	var out []types.Candidate
	for _, s := range spans(lines) {
		p, ok := parseSpan(s.text)
		if !ok {
			continue
		}
		out = append(out, x.candidate(p, s.line, s.text))
	}
	return out
}

// candidate completes a parsed entry: date span, period, themes and
// confidence.
func (x *Extractor) candidate(p parsed, line int, raw string) types.Candidate {
	c := types.Candidate{
		Record: types.Record{
			Title:   p.title,
			Authors: p.authors,
			Date:    p.date,
			Notes:   p.notes,
		},
		Line:    line,
		Raw:     raw,
		Pattern: p.pattern,
	}
	if p.date != "" {
		if span, err := types.ParseDate(p.date); err == nil {
			c.Years = span
			c.Period = types.PeriodForYear(span.Start)
		} else {
			c.Date = ""
		}
	}
	if p.period != "" {
		c.Period = p.period
	}
	c.Themes = x.detectThemes(p.themes, raw)
	c.Confidence = confidence(p.pattern, c.Record)
	c.LowConfidence = c.Confidence < x.minConfidence
	return c
}

// confidence scores a candidate in [0, 1] from its pattern's base score
// less penalties for missing or implausible fields.
func confidence(pattern string, r types.Record) float64 {
	score := baseConfidence[pattern]
	if len(r.Authors) == 0 {
		score -= penaltyNoAuthor
	} else {
		for _, a := range r.Authors {
			if !nameLike(a) {
				score -= penaltyAuthorNotName
				break
			}
		}
	}
	if r.Years.IsZero() {
		score -= penaltyNoYear
	}
	if n := len([]rune(r.Title)); n < 3 || n > 200 {
		score -= penaltyTitleLength
	}
	score = math.Max(0, math.Min(1, score))
	return math.Round(score*100) / 100
}

// detectThemes combines explicit themes with concepts and catalog themes
// named in the text.
func (x *Extractor) detectThemes(explicit []string, text string) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(t string) {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" && !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	for _, t := range explicit {
		add(t)
	}
	for _, t := range x.concepts.Match(text) {
		add(t)
	}
	tokens := search.Tokenize(text)
	for _, v := range x.vocabulary {
		if containsTokens(tokens, v.tokens) {
			add(v.theme)
		}
	}
	sort.Strings(out)
	return out
}

func containsTokens(haystack, needle []string) bool {
outer:
	for i := 0; i+len(needle) <= len(haystack); i++ {
		for j := range needle {
			if haystack[i+j] != needle[j] {
				continue outer
			}
		}
		return true
	}
	return false
}

func (x *Extractor) qualityIssues(cands []types.Candidate) []string {
	if len(cands) == 0 {
		return []string{"no bibliographic entries recognized"}
	}
	var issues []string
	for _, c := range cands {
		var missing []string
		if len(c.Authors) == 0 {
			missing = append(missing, "author")
		}
		if c.Years.IsZero() {
			missing = append(missing, "date")
		}
		switch {
		case c.LowConfidence:
			msg := fmt.Sprintf("line %d: low confidence %.2f for %q", c.Line, c.Confidence, c.Title)
			if len(missing) > 0 {
				msg += " (missing " + strings.Join(missing, ", ") + ")"
			}
			issues = append(issues, msg)
		case len(missing) > 0:
			issues = append(issues, fmt.Sprintf("line %d: %q missing %s", c.Line, c.Title, strings.Join(missing, ", ")))
		}
	}
	return issues
}

// summarize returns the sorted theme union and the overall date span.
func summarize(cands []types.Candidate) ([]string, *types.DateRange) {
	themes := make(map[string]bool)
	var span *types.DateRange
	for _, c := range cands {
		for _, t := range c.Themes {
			themes[t] = true
		}
		if c.Years.IsZero() {
			continue
		}
		if span == nil {
			s := c.Years
			span = &s
			continue
		}
		span.Start = min(span.Start, c.Years.Start)
		span.End = max(span.End, c.Years.End)
	}
	var out []string
	for t := range themes {
		out = append(out, t)
	}
	sort.Strings(out)
	return out, span
}

// assignIDs gives each candidate a slug of the first author's surname and
// the leading title words, suffixed to stay unique within the document.
func assignIDs(cands []types.Candidate) {
	used := make(map[string]int)
	for i := range cands {
		base := slugID(cands[i].Record, cands[i].Raw)
		used[base]++
		id := base
		if n := used[base]; n > 1 {
			id = fmt.Sprintf("%s-%d", base, n)
		}
		cands[i].ID = id
	}
}

func slugID(r types.Record, raw string) string {
	var parts []string
	if len(r.Authors) > 0 {
		parts = append(parts, surname(r.Authors[0]))
	} else {
		parts = append(parts, "unknown")
	}
	words := search.Tokenize(r.Title)
	if len(words) > 4 {
		words = words[:4]
	}
	parts = append(parts, words...)
	if id := slugify(strings.Join(parts, " ")); id != "" && id != "unknown" {
		return id
	}
	sum := sha256.Sum256([]byte(raw))
	return fmt.Sprintf("entry-%x", sum[:4])
}

func slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range search.Fold(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}
