// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/libris/pkg/types"
)

const markdownTitle = "# LIBRIS Export"

// continuation indents the second and later lines of a multi-line value.
const continuation = "  "

func writeMarkdown(w io.Writer, records []types.Record) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s\n\nEntries: %d\n", markdownTitle, len(records))
	for _, r := range records {
		fmt.Fprintf(bw, "\n## %s\n\n", r.Title)
		field(bw, "ID", r.ID)
		field(bw, "Authors", strings.Join(r.Authors, "; "))
		field(bw, "Date", r.Date)
		field(bw, "Period", string(r.Period))
		field(bw, "Themes", strings.Join(r.Themes, "; "))
		field(bw, "Notes", strings.ReplaceAll(r.Notes, "\n", "\n"+continuation))
		field(bw, "Source", r.Source)
	}
	return bw.Flush()
}

func field(w io.Writer, key, value string) {
	if value != "" {
		fmt.Fprintf(w, "- **%s:** %s\n", key, value)
	}
}

func readMarkdown(r io.Reader) ([]types.Record, error) {
	var (
		records []types.Record
		cur     *types.Record
	)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	var lastKey string
	for sc.Scan() {
		line := sc.Text()
		if more, ok := strings.CutPrefix(line, continuation); ok && cur != nil && lastKey == "Notes" {
			cur.Notes += "\n" + more
			continue
		}
		lastKey = ""
		if title, ok := strings.CutPrefix(line, "## "); ok {
			records = append(records, types.Record{Title: strings.TrimSpace(title)})
			cur = &records[len(records)-1]
			continue
		}
		rest, ok := strings.CutPrefix(line, "- **")
		if !ok || cur == nil {
			continue
		}
		key, value, ok := strings.Cut(rest, ":** ")
		if !ok {
			continue
		}
		lastKey = key
		if key == "Notes" {
			cur.Notes = value
			continue
		}
		value = strings.TrimSpace(value)
		switch key {
		case "ID":
			cur.ID = value
		case "Authors":
			cur.Authors = splitList(value)
		case "Date":
			cur.Date = value
		case "Period":
			if p, ok := types.ParsePeriod(value); ok {
				cur.Period = p
			}
		case "Themes":
			cur.Themes = splitList(value)
		case "Source":
			cur.Source = value
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
