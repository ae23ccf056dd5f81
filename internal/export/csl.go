// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"errors"
	"io"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/libris/pkg/types"
)

// CSLItem is a bibliographic entry in CSL-YAML, consumable by Pandoc and
// reference managers. Period and source travel in the custom block.
type CSLItem struct {
	ID      string            `yaml:"id"`
	Type    string            `yaml:"type"`
	Title   string            `yaml:"title"`
	Author  []CSLName         `yaml:"author,omitempty"`
	Issued  *CSLDate          `yaml:"issued,omitempty"`
	Keyword string            `yaml:"keyword,omitempty"`
	Note    string            `yaml:"note,omitempty"`
	Custom  map[string]string `yaml:"custom,omitempty"`
}

// CSLName is a person's name in CSL form.
type CSLName struct {
	Family  string `yaml:"family,omitempty"`
	Given   string `yaml:"given,omitempty"`
	Literal string `yaml:"literal,omitempty"`
}

// CSLDate carries the start year as date-parts and the display date as
// the literal.
type CSLDate struct {
	DateParts [][]int `yaml:"date-parts,omitempty"`
	Literal   string  `yaml:"literal,omitempty"`
}

func writeCSL(w io.Writer, records []types.Record) error {
	items := make([]CSLItem, len(records))
	for i, r := range records {
		items[i] = toCSLItem(r)
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(items)
}

func toCSLItem(r types.Record) CSLItem {
	item := CSLItem{
		ID:      r.ID,
		Type:    "book",
		Title:   r.Title,
		Keyword: strings.Join(r.Themes, "; "),
		Note:    r.Notes,
	}
	for _, a := range r.Authors {
		item.Author = append(item.Author, parseAuthorName(a))
	}
	if r.Date != "" {
		item.Issued = &CSLDate{Literal: r.Date}
		if !r.Years.IsZero() {
			item.Issued.DateParts = [][]int{{r.Years.Start}}
		}
	}
	if r.Period != "" || r.Source != "" {
		item.Custom = make(map[string]string)
		if r.Period != "" {
			item.Custom["period"] = string(r.Period)
		}
		if r.Source != "" {
			item.Custom["source"] = r.Source
		}
	}
	return item
}

// parseAuthorName splits on the last space: everything before is given,
// the last token is family. Single-token names use the literal field.
func parseAuthorName(name string) CSLName {
	name = strings.TrimSpace(name)
	if name == "" {
		return CSLName{}
	}
	idx := strings.LastIndex(name, " ")
	if idx < 0 {
		return CSLName{Literal: name}
	}
	return CSLName{
		Given:  name[:idx],
		Family: name[idx+1:],
	}
}

func (n CSLName) String() string {
	if n.Literal != "" {
		return n.Literal
	}
	return strings.TrimSpace(n.Given + " " + n.Family)
}

func readCSL(r io.Reader) ([]types.Record, error) {
	var items []CSLItem
	if err := yaml.NewDecoder(r).Decode(&items); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	records := make([]types.Record, 0, len(items))
	for _, it := range items {
		rec := types.Record{
			ID:     it.ID,
			Title:  it.Title,
			Themes: splitList(it.Keyword),
			Notes:  it.Note,
		}
		for _, a := range it.Author {
			if s := a.String(); s != "" {
				rec.Authors = append(rec.Authors, s)
			}
		}
		if it.Issued != nil {
			rec.Date = it.Issued.Literal
			if rec.Date == "" && len(it.Issued.DateParts) > 0 && len(it.Issued.DateParts[0]) > 0 {
				rec.Date = types.FormatYear(it.Issued.DateParts[0][0])
			}
		}
		if p, ok := types.ParsePeriod(it.Custom["period"]); ok {
			rec.Period = p
		}
		rec.Source = it.Custom["source"]
		records = append(records, rec)
	}
	return records, nil
}
