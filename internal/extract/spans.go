// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"regexp"
	"strings"
	"unicode"
)

// span is a logical entry: one source line plus any wrapped continuation
// lines, cleaned of list markup.
type span struct {
	line int
	text string
}

var (
	bulletRe   = regexp.MustCompile(`^(?:[-*•–+·]|\d{1,3}[.)]|\[\d{1,3}\]|\(\d{1,3}\)|[a-z][.)])\s+`)
	sessionRe  = regexp.MustCompile(`(?i)^(?:week|session|day|lecture|class|unit|module|part|topic)\s+\d{1,3}\s*(?:[:.\-–]\s*|$)`)
	labelRe    = regexp.MustCompile(`(?i)^(?:required|recommended|optional|supplementary|further)?\s*(?:reading|readings|text|texts)\s*:\s*`)
	mdHeadRe   = regexp.MustCompile(`^#{1,6}\s`)
	ruleRe     = regexp.MustCompile(`^[-=*_\s]{3,}$`)
	mdLinkRe   = regexp.MustCompile(`\[([^\]]+)\]\([^)]*\)`)
	strongRe   = regexp.MustCompile(`\*\*([^*]+)\*\*|__([^_]+)__`)
	emRe       = regexp.MustCompile(`\*([^*\s][^*]*)\*`)
	underEmRe  = regexp.MustCompile(`(^|[\s(])_([^_\s][^_]*)_`)
	whitespace = regexp.MustCompile(`\s+`)
)

// cleanLine removes list markers, session labels and Markdown markup.
// Emphasis becomes double quotes, which the title patterns recognize.
func cleanLine(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "`", "")
	s = mdLinkRe.ReplaceAllString(s, "$1")
	for i := 0; i < 3; i++ {
		prev := s
		s = strings.TrimSpace(bulletRe.ReplaceAllString(s, ""))
		s = strings.TrimSpace(sessionRe.ReplaceAllString(s, ""))
		s = strings.TrimSpace(labelRe.ReplaceAllString(s, ""))
		if s == prev {
			break
		}
	}
	s = strongRe.ReplaceAllStringFunc(s, func(m string) string {
		return `"` + strings.Trim(m, "*_") + `"`
	})
	s = emRe.ReplaceAllString(s, `"$1"`)
	s = underEmRe.ReplaceAllString(s, `$1"$2"`)
	return whitespace.ReplaceAllString(s, " ")
}

// isHeading reports whether a trimmed source line is a section heading
// rather than an entry.
func isHeading(line string) bool {
	if mdHeadRe.MatchString(line) || ruleRe.MatchString(line) {
		return true
	}
	if sessionRe.MatchString(line) && strings.TrimSpace(sessionRe.ReplaceAllString(line, "")) == "" {
		return true
	}
	words := strings.Fields(line)
	if len(words) == 0 || strings.ContainsAny(line, "0123456789") {
		return false
	}
	if strings.HasSuffix(line, ":") && len(words) <= 6 {
		return true
	}
	return len(words) <= 8 && isAllCaps(line)
}

func isAllCaps(s string) bool {
	letters := 0
	for _, r := range s {
		if unicode.IsLetter(r) {
			letters++
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return letters > 1
}

// isContinuation reports whether a raw line continues the previous entry:
// it is indented without a list marker, or starts with a lowercase letter.
func isContinuation(raw string) bool {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || bulletRe.MatchString(trimmed) {
		return false
	}
	if strings.HasPrefix(raw, "\t") || strings.HasPrefix(raw, "   ") {
		return true
	}
	first := []rune(trimmed)[0]
	return unicode.IsLower(first)
}

// spans groups lines into cleaned entries. Blank lines and headings end
// the current entry.
func spans(lines []string) []span {
	var (
		out []span
		cur *span
	)
	flush := func() {
		if cur != nil {
			cur.text = cleanLine(cur.text)
			if cur.text != "" {
				out = append(out, *cur)
			}
			cur = nil
		}
	}

	for i, raw := range lines {
		trimmed := strings.TrimSpace(raw)
		switch {
		case trimmed == "":
			flush()
		case isHeading(trimmed):
			flush()
		case cur != nil && isContinuation(raw):
			cur.text = joinWrapped(cur.text, trimmed)
		default:
			flush()
			cur = &span{line: i + 1, text: trimmed}
		}
	}
	flush()
	return out
}

// joinWrapped joins a wrapped line, mending words hyphenated across the
// break.
func joinWrapped(prev, next string) string {
	if strings.HasSuffix(prev, "-") && len(prev) > 1 && unicode.IsLetter(rune(prev[len(prev)-2])) {
		return strings.TrimSuffix(prev, "-") + next
	}
	return prev + " " + next
}
