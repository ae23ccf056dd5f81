// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"regexp"
	"strings"

	"github.com/pdiddy/libris/pkg/types"
)

// Pattern names recorded on candidates.
const (
	PatternAuthorYear  = "author-year"
	PatternTitleBy     = "title-by-author"
	PatternPeriods     = "period-separated"
	PatternAuthorTitle = "author-title-year"
	PatternAuthorColon = "author-colon-title"
	PatternQuotedTitle = "quoted-title"
	PatternTable       = "table"
)

// base confidence per pattern, before penalties.
var baseConfidence = map[string]float64{
	PatternAuthorYear:  0.95,
	PatternTitleBy:     0.9,
	PatternPeriods:     0.85,
	PatternAuthorTitle: 0.85,
	PatternAuthorColon: 0.75,
	PatternQuotedTitle: 0.6,
	PatternTable:       0.95,
}

// parsed holds the raw fields a pattern pulled from a span.
type parsed struct {
	pattern string
	title   string
	authors []string
	date    string
	notes   string
	period  types.Period
	themes  []string
}

type matcher func(text string) (parsed, bool)

// matchers are tried in order; the first that accepts a span wins.
var matchers = []matcher{
	matchAuthorYear,
	matchTitleBy,
	matchPeriods,
	matchAuthorTitle,
	matchAuthorColon,
	matchQuotedTitle,
}

func parseSpan(text string) (parsed, bool) {
	for _, m := range matchers {
		if p, ok := m(text); ok && p.title != "" {
			return p, true
		}
	}
	return parsed{}, false
}

var (
	authorYearRe  = regexp.MustCompile(`^(.{2,80}?)\s*\(([^()]*\d[^()]*)\)[.,:]?\s+(.+)$`)
	titleByRe     = regexp.MustCompile(`^(.+?),?\s+[Bb]y\s+(.+)$`)
	authorTitleRe = regexp.MustCompile(`^([^,]{2,60}),\s+(.+?)\s*\(([^()]*\d[^()]*)\)\.?$`)
	authorColonRe = regexp.MustCompile(`^([^:]{2,60}):\s+(.+)$`)
	quotedRe      = regexp.MustCompile(`["“]([^"”]{2,200})["”]`)
)

// matchAuthorYear parses "Author (Year). Title. Publisher."
func matchAuthorYear(text string) (parsed, bool) {
	m := authorYearRe.FindStringSubmatch(text)
	if m == nil {
		return parsed{}, false
	}
	date, _, ok := findDate("(" + m[2] + ")")
	if !ok {
		return parsed{}, false
	}
	parts := splitOnPeriods(m[3])
	if len(parts) == 0 {
		return parsed{}, false
	}
	return parsed{
		pattern: PatternAuthorYear,
		authors: parseAuthors(m[1]),
		title:   cleanTitle(parts[0]),
		date:    date,
		notes:   strings.Join(parts[1:], ". "),
	}, true
}

// matchTitleBy parses "Title by Author (Year)" and "Title by Author, Year".
func matchTitleBy(text string) (parsed, bool) {
	m := titleByRe.FindStringSubmatch(text)
	if m == nil || creditedBy(m[1]) {
		return parsed{}, false
	}
	rest := m[2]
	date, _, _ := findDate(rest)
	author := rest
	if i := strings.IndexAny(author, "(,"); i >= 0 {
		author = author[:i]
	}
	author = strings.TrimRight(strings.TrimSpace(author), ".")
	if !nameLike(author) {
		return parsed{}, false
	}
	return parsed{
		pattern: PatternTitleBy,
		title:   cleanTitle(m[1]),
		authors: parseAuthors(author),
		date:    date,
	}, true
}

// creditWords precede "by" when it names an editor or translator rather
// than the author.
var creditWords = map[string]bool{
	"edited": true, "ed.": true, "eds.": true, "translated": true, "trans.": true,
	"tr.": true, "introduced": true, "introduction": true, "foreword": true,
	"compiled": true, "selected": true, "revised": true, "annotated": true,
	"illustrated": true,
}

// creditedBy reports whether the text before " by " ends in a credit word.
func creditedBy(head string) bool {
	words := strings.Fields(head)
	if len(words) == 0 {
		return false
	}
	last := strings.ToLower(strings.TrimRight(words[len(words)-1], ","))
	return creditWords[last]
}

// matchPeriods parses "Author. Title. Publisher, Year." The first segment
// must read as a name.
func matchPeriods(text string) (parsed, bool) {
	parts := splitOnPeriods(text)
	if len(parts) < 2 {
		return parsed{}, false
	}
	authors := parseAuthors(parts[0])
	if len(authors) == 0 {
		return parsed{}, false
	}
	for _, a := range authors {
		if !nameLike(a) {
			return parsed{}, false
		}
	}
	title := parts[1]
	rest := strings.Join(parts[2:], ". ")
	date, _, ok := findDate(rest)
	if !ok {
		if date, _, ok = findDate(title); ok {
			title = stripDate(title, date)
		}
	}
	return parsed{
		pattern: PatternPeriods,
		authors: authors,
		title:   cleanTitle(title),
		date:    date,
		notes:   strings.TrimSpace(stripDate(rest, date)),
	}, true
}

// matchAuthorTitle parses "Author, Title (Year)".
func matchAuthorTitle(text string) (parsed, bool) {
	m := authorTitleRe.FindStringSubmatch(text)
	if m == nil {
		return parsed{}, false
	}
	date, _, ok := findDate("(" + m[3] + ")")
	if !ok {
		return parsed{}, false
	}
	return parsed{
		pattern: PatternAuthorTitle,
		authors: parseAuthors(m[1]),
		title:   cleanTitle(m[2]),
		date:    date,
	}, true
}

// matchAuthorColon parses "Author: Title", with an optional date anywhere
// in the title part.
func matchAuthorColon(text string) (parsed, bool) {
	m := authorColonRe.FindStringSubmatch(text)
	if m == nil || !nameLike(m[1]) {
		return parsed{}, false
	}
	title := m[2]
	date, _, ok := findDate(title)
	if ok {
		title = stripDate(title, date)
	}
	return parsed{
		pattern: PatternAuthorColon,
		authors: parseAuthors(m[1]),
		title:   cleanTitle(title),
		date:    date,
	}, true
}

// matchQuotedTitle takes a quoted or emphasized title, with any name-like
// text before it as the author.
func matchQuotedTitle(text string) (parsed, bool) {
	loc := quotedRe.FindStringSubmatchIndex(text)
	if loc == nil {
		return parsed{}, false
	}
	p := parsed{
		pattern: PatternQuotedTitle,
		title:   cleanTitle(text[loc[2]:loc[3]]),
	}
	before := strings.TrimSpace(strings.TrimRight(strings.TrimSpace(text[:loc[0]]), ",:;-–"))
	if nameLike(before) {
		p.authors = parseAuthors(before)
	}
	p.date, _, _ = findDate(text[loc[1]:])
	return p, true
}
