// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/pdiddy/libris/pkg/types"
)

// initialRe matches single-letter initials like "A." so they survive
// period-based splitting.
var initialRe = regexp.MustCompile(`\b([A-Z])\.`)

// splitOnPeriods splits a reference into sentence-like segments at ". ",
// leaving abbreviations (et al., e.g., i.e., c., ca., ed., trans., vol.)
// and single-letter initials intact.
func splitOnPeriods(text string) []string {
	safe := text
	for _, abbr := range []string{"et al.", "e.g.", "i.e.", "c.", "ca.", "ed.", "eds.", "trans.", "vol.", "pp.", "Ch.", "St."} {
		safe = replaceWord(safe, abbr, strings.ReplaceAll(abbr, ".", "\x00"))
	}
	safe = initialRe.ReplaceAllString(safe, "${1}\x00")

	var out []string
	for _, p := range strings.Split(safe, ". ") {
		p = strings.ReplaceAll(p, "\x00", ".")
		p = strings.TrimSpace(strings.TrimRight(p, "."))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// replaceWord replaces abbr only where it starts a word.
func replaceWord(s, abbr, repl string) string {
	var b strings.Builder
	for {
		i := strings.Index(s, abbr)
		if i < 0 {
			b.WriteString(s)
			return b.String()
		}
		if i > 0 && isWordRune(rune(s[i-1])) {
			b.WriteString(s[:i+len(abbr)])
		} else {
			b.WriteString(s[:i])
			b.WriteString(repl)
		}
		s = s[i+len(abbr):]
	}
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

var (
	centuryRe = regexp.MustCompile(`(?i)\b\d{1,2}(?:st|nd|rd|th)\s+century(?:\s+(?:bce|bc|ce|ad)\b)?`)
	dateRe    = regexp.MustCompile(`(?i)(\()?\b(?:(?:c\.|ca\.|circa)\s*)?(\d{1,4})\b(?:\s*(?:bce|bc|ce|ad)\b)?(?:\s*[-–]\s*\d{1,4}(?:\s*(?:bce|bc|ce|ad)\b)?)?(\))?`)
	eraRe     = regexp.MustCompile(`(?i)\b(?:bce|bc|ce|ad)\b|\bc\.|\bca\.|circa`)
)

// findDate locates the first plausible date in text and returns its display
// form and parsed span. Bare numbers count only when they are parenthesized,
// carry an era or circa marker, or look like a four-digit year, so page
// ranges and edition numbers are skipped.
func findDate(text string) (string, types.DateRange, bool) {
	if m := centuryRe.FindString(text); m != "" {
		if span, err := types.ParseDate(m); err == nil {
			return m, span, true
		}
	}
	for _, loc := range dateRe.FindAllStringSubmatchIndex(text, -1) {
		match := text[loc[0]:loc[1]]
		year := text[loc[4]:loc[5]]
		parenthesized := loc[2] >= 0 && loc[6] >= 0
		if !parenthesized && !eraRe.MatchString(match) && !isFourDigitYear(year) {
			continue
		}
		display := strings.TrimSpace(strings.Trim(match, "()"))
		if span, err := types.ParseDate(display); err == nil {
			return display, span, true
		}
	}
	return "", types.DateRange{}, false
}

func isFourDigitYear(s string) bool {
	return len(s) == 4 && (s[0] == '1' || (s[0] == '2' && s[1] == '0'))
}

// stripDate removes the first occurrence of date (and any enclosing
// parentheses) from text.
func stripDate(text, date string) string {
	if date == "" {
		return text
	}
	text = strings.Replace(text, "("+date+")", "", 1)
	text = strings.Replace(text, date, "", 1)
	return strings.TrimSpace(strings.TrimRight(strings.TrimSpace(text), ",;:"))
}

// nameParticles may appear in lowercase inside a personal name.
var nameParticles = map[string]bool{
	"de": true, "da": true, "del": true, "della": true, "di": true, "du": true,
	"la": true, "le": true, "van": true, "von": true, "der": true, "den": true,
	"ibn": true, "al": true, "bin": true, "of": true, "y": true, "st.": true,
}

// nameLike reports whether s reads as a personal name: one to six words,
// no digits, each word capitalized, an initial, or a name particle.
func nameLike(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 60 || strings.ContainsAny(s, "0123456789") {
		return false
	}
	words := strings.Fields(s)
	if len(words) > 6 {
		return false
	}
	first := []rune(words[0])
	if !unicode.IsUpper(first[0]) {
		return false
	}
	for _, w := range words {
		w = strings.Trim(w, ",")
		if nameParticles[strings.ToLower(w)] || strings.HasPrefix(strings.ToLower(w), "al-") {
			continue
		}
		r := []rune(w)
		if len(r) == 0 || !unicode.IsUpper(r[0]) {
			return false
		}
	}
	return true
}

// parseAuthors splits an author string on "and", "&" and ";" and turns
// inverted names ("Hobbes, Thomas") into display order.
func parseAuthors(s string) []string {
	s = strings.TrimSpace(strings.TrimRight(s, ",;: "))
	s = strings.TrimSuffix(strings.TrimSuffix(s, " et al."), ",")
	if strings.HasSuffix(s, ".") && !endsWithInitial(s) {
		s = strings.TrimSuffix(s, ".")
	}
	if s == "" {
		return nil
	}
	s = strings.NewReplacer(" & ", ";", " and ", ";").Replace(s)

	var out []string
	for _, part := range strings.Split(s, ";") {
		name := invertName(strings.TrimSpace(strings.TrimRight(strings.TrimSpace(part), ",")))
		if name != "" {
			out = append(out, name)
		}
	}
	return out
}

// endsWithInitial reports whether s ends in a single-letter initial like
// "J.".
func endsWithInitial(s string) bool {
	r := []rune(strings.TrimSuffix(s, "."))
	n := len(r)
	if n == 0 || !unicode.IsUpper(r[n-1]) {
		return false
	}
	return n == 1 || !isWordRune(r[n-2])
}

// invertName turns "Surname, Given" into "Given Surname". Names with zero
// or several commas are returned unchanged.
func invertName(s string) string {
	if strings.Count(s, ",") != 1 {
		return s
	}
	surname, given, _ := strings.Cut(s, ",")
	surname, given = strings.TrimSpace(surname), strings.TrimSpace(given)
	if surname == "" || given == "" || !nameLike(given) || len(strings.Fields(surname)) > 3 {
		return s
	}
	return given + " " + surname
}

// surname returns the last word of a display-order name, folded for
// comparison.
func surname(name string) string {
	words := strings.Fields(name)
	if len(words) == 0 {
		return ""
	}
	return strings.ToLower(strings.Trim(words[len(words)-1], ".,"))
}

// cleanTitle trims quotes, emphasis markers and trailing punctuation.
func cleanTitle(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "\"'“”‘’*_ ")
	s = strings.TrimRight(s, ".,;: ")
	return strings.TrimSpace(strings.Trim(s, "\"'“”‘’*_ "))
}
