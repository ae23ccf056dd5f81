// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/libris/pkg/types"
)

// bibEscapes are the characters BibTeX treats specially inside values.
var bibEscapes = strings.NewReplacer(
	`\`, `\\`,
	`{`, `\{`,
	`}`, `\}`,
	`&`, `\&`,
	`%`, `\%`,
	`$`, `\$`,
	`#`, `\#`,
	`_`, `\_`,
)

func writeBibTeX(w io.Writer, records []types.Record) error {
	bw := bufio.NewWriter(w)
	for i, r := range records {
		if i > 0 {
			bw.WriteString("\n")
		}
		fmt.Fprintf(bw, "@book{%s,\n", bibKey(r))
		bibField(bw, "title", r.Title)
		bibField(bw, "author", strings.Join(r.Authors, " and "))
		bibField(bw, "year", r.Date)
		bibField(bw, "keywords", strings.Join(r.Themes, "; "))
		bibField(bw, "period", string(r.Period))
		bibField(bw, "note", r.Notes)
		bibField(bw, "source", r.Source)
		bw.WriteString("}\n")
	}
	return bw.Flush()
}

// bibKey returns the citation key. Keys may not contain spaces or commas.
func bibKey(r types.Record) string {
	key := strings.Map(func(c rune) rune {
		switch c {
		case ' ', ',', '{', '}', '"', '#', '%', '\'', '(', ')', '=', '~', '\\':
			return '_'
		}
		return c
	}, r.ID)
	if key == "" {
		key = "untitled"
	}
	return key
}

func bibField(w *bufio.Writer, name, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(w, "  %s = {%s},\n", name, bibEscapes.Replace(value))
}

// readBibTeX parses entries written by writeBibTeX and tolerates ordinary
// hand-written files: quoted or braced values, nested braces and comments
// outside entries.
func readBibTeX(r io.Reader) ([]types.Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	p := &bibParser{src: []rune(string(data))}

	var records []types.Record
	for p.next('@') {
		kind := strings.ToLower(strings.TrimSpace(p.until('{', '(')))
		if !p.expectOpen() {
			return nil, p.errorf("expected '{' after @%s", kind)
		}
		if kind == "comment" || kind == "preamble" || kind == "string" {
			p.skipBalanced()
			continue
		}
		key := strings.TrimSpace(p.until(',', '}'))
		fields, err := p.fields()
		if err != nil {
			return nil, err
		}
		records = append(records, recordFromBib(key, fields))
	}
	return records, nil
}

func recordFromBib(key string, f map[string]string) types.Record {
	rec := types.Record{
		ID:     key,
		Title:  f["title"],
		Date:   f["year"],
		Themes: splitList(f["keywords"]),
		Notes:  f["note"],
		Source: f["source"],
	}
	if a := f["author"]; a != "" {
		for _, name := range strings.Split(a, " and ") {
			if name = strings.TrimSpace(name); name != "" {
				rec.Authors = append(rec.Authors, name)
			}
		}
	}
	if p, ok := types.ParsePeriod(f["period"]); ok {
		rec.Period = p
	}
	return rec
}

type bibParser struct {
	src []rune
	pos int
}

func (p *bibParser) errorf(format string, args ...any) error {
	return fmt.Errorf("bibtex offset %d: %s", p.pos, fmt.Sprintf(format, args...))
}

// next advances past the next occurrence of c.
func (p *bibParser) next(c rune) bool {
	for p.pos < len(p.src) {
		p.pos++
		if p.src[p.pos-1] == c {
			return true
		}
	}
	return false
}

// until returns the text up to, not including, the first of stops.
func (p *bibParser) until(stops ...rune) string {
	start := p.pos
	for p.pos < len(p.src) {
		for _, s := range stops {
			if p.src[p.pos] == s {
				return string(p.src[start:p.pos])
			}
		}
		p.pos++
	}
	return string(p.src[start:])
}

func (p *bibParser) skipSpace() {
	for p.pos < len(p.src) && strings.ContainsRune(" \t\r\n", p.src[p.pos]) {
		p.pos++
	}
}

func (p *bibParser) expectOpen() bool {
	if p.pos < len(p.src) && (p.src[p.pos] == '{' || p.src[p.pos] == '(') {
		p.pos++
		return true
	}
	return false
}

// skipBalanced skips to the brace closing the current entry.
func (p *bibParser) skipBalanced() {
	depth := 1
	for p.pos < len(p.src) && depth > 0 {
		switch p.src[p.pos] {
		case '\\':
			p.pos++
		case '{':
			depth++
		case '}':
			depth--
		}
		p.pos++
	}
}

// fields reads "name = value" pairs up to the entry's closing brace.
func (p *bibParser) fields() (map[string]string, error) {
	out := make(map[string]string)
	for {
		p.skipSpace()
		if p.pos >= len(p.src) {
			return nil, p.errorf("unterminated entry")
		}
		switch p.src[p.pos] {
		case ',':
			p.pos++
			continue
		case '}', ')':
			p.pos++
			return out, nil
		}
		name := strings.ToLower(strings.TrimSpace(p.until('=', '}')))
		if p.pos >= len(p.src) || p.src[p.pos] != '=' {
			return nil, p.errorf("field %q has no value", name)
		}
		p.pos++
		p.skipSpace()
		value, err := p.value()
		if err != nil {
			return nil, err
		}
		// Notes keep their line breaks and spacing; other fields are
		// single-line values that hand-written files often wrap.
		if name == "note" {
			value = strings.TrimSpace(value)
		} else {
			value = normalizeSpace(value)
		}
		out[name] = value
	}
}

func (p *bibParser) value() (string, error) {
	if p.pos >= len(p.src) {
		return "", p.errorf("missing value")
	}
	var b strings.Builder
	switch p.src[p.pos] {
	case '{':
		p.pos++
		depth := 1
		for p.pos < len(p.src) {
			c := p.src[p.pos]
			p.pos++
			switch c {
			case '\\':
				if p.pos < len(p.src) {
					b.WriteRune(p.src[p.pos])
					p.pos++
				}
				continue
			case '{':
				depth++
				continue
			case '}':
				depth--
				if depth == 0 {
					return b.String(), nil
				}
				continue
			}
			b.WriteRune(c)
		}
		return "", p.errorf("unterminated value")
	case '"':
		p.pos++
		for p.pos < len(p.src) {
			c := p.src[p.pos]
			p.pos++
			switch c {
			case '\\':
				if p.pos < len(p.src) {
					b.WriteRune(p.src[p.pos])
					p.pos++
				}
				continue
			case '"':
				return b.String(), nil
			case '{', '}':
				continue
			}
			b.WriteRune(c)
		}
		return "", p.errorf("unterminated value")
	default:
		return strings.TrimSpace(p.until(',', '}')), nil
	}
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
