// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/libris/pkg/types"
)

func record(id, title string, authors []string, date string, period types.Period, themes []string, notes, source string) types.Record {
	span, _ := types.ParseDate(date)
	return types.Record{
		ID:      id,
		Title:   title,
		Authors: authors,
		Date:    date,
		Years:   span,
		Period:  period,
		Themes:  themes,
		Notes:   notes,
		Source:  source,
	}
}

func fixture() []types.Record {
	return []types.Record{
		record("plato-republic", "The Republic", []string{"Plato"}, "c. 375 BCE",
			types.PeriodAncient, []string{"justice", "ideal state"},
			"Dialogue on justice & the city; 100% Socratic {mostly} with_underscores", types.SourceBaseCollection),
		record("machiavelli-prince", "The Prince", []string{"Niccolò Machiavelli"}, "1513",
			types.PeriodRenaissance, []string{"power", "statecraft"}, "", types.SourceBaseCollection),
		record("marx-manifesto", "The Communist Manifesto", []string{"Karl Marx", "Friedrich Engels"}, "1848",
			types.PeriodModern, []string{"class struggle", "revolution"}, "", "reading-list.pdf"),
		record("kant-critique", "Critique of Pure Reason", []string{"Immanuel Kant"}, "1781-1787",
			types.PeriodEnlightenment, nil, "Two editions.\n\nA (1781)  and B (1787).", ""),
	}
}

// normalize treats nil and empty slices alike.
func normalize(records []types.Record) []types.Record {
	out := make([]types.Record, len(records))
	for i, r := range records {
		if len(r.Authors) == 0 {
			r.Authors = nil
		}
		if len(r.Themes) == 0 {
			r.Themes = nil
		}
		out[i] = r
	}
	return out
}

func TestRoundTrip(t *testing.T) {
	want := normalize(fixture())
	for _, f := range Formats {
		t.Run(string(f), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Write(&buf, fixture(), f))
			require.NotZero(t, buf.Len())

			got, err := Read(&buf, f)
			require.NoError(t, err)
			assert.Equal(t, want, normalize(got))
		})
	}
}

func TestRoundTripEmpty(t *testing.T) {
	for _, f := range Formats {
		t.Run(string(f), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Write(&buf, nil, f))
			got, err := Read(&buf, f)
			require.NoError(t, err)
			assert.Empty(t, got)
		})
	}
}

func TestParseFormat(t *testing.T) {
	cases := map[string]Format{
		"bibtex":  FormatBibTeX,
		"BIB":     FormatBibTeX,
		"csv":     FormatCSV,
		"json":    FormatJSON,
		"md":      FormatMarkdown,
		"excel":   FormatXLSX,
		" xlsx ":  FormatXLSX,
		"csl":     FormatYAML,
		"yml":     FormatYAML,
		"parquet": FormatParquet,
	}
	for in, want := range cases {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFormat("docx")
	assert.ErrorIs(t, err, ErrUnknownFormat)
	assert.Contains(t, err.Error(), "parquet")
}

func TestFormatForPath(t *testing.T) {
	f, err := FormatForPath("out/libris_catalog.BIB")
	require.NoError(t, err)
	assert.Equal(t, FormatBibTeX, f)

	f, err = FormatForPath("refs.yml")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = FormatForPath("notes.txt")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestWriteUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, Write(&buf, fixture(), Format("rtf")), ErrUnknownFormat)
	_, err := Read(&buf, Format("rtf"))
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestWriteFile(t *testing.T) {
	saved := now
	now = func() time.Time { return time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC) }
	t.Cleanup(func() { now = saved })

	dir := filepath.Join(t.TempDir(), "exports")
	path, err := WriteFile(dir, "search", fixture(), FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "libris_search_20260314_092653.csv"), path)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temporary file left behind")

	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, got, 4)

	_, err = WriteFile(dir, "search", fixture(), Format("rtf"))
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestBibTeXOutput(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, fixture()[:1], FormatBibTeX))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "@book{plato-republic,\n"))
	assert.Contains(t, out, `justice \& the city; 100\% Socratic \{mostly\} with\_underscores`)
	assert.Contains(t, out, "  year = {c. 375 BCE},\n")
	assert.Contains(t, out, "  keywords = {justice; ideal state},\n")
}

func TestReadBibTeXHandWritten(t *testing.T) {
	src := `@comment{exported by hand}
% a stray line
@Book{locke1689,
  title = "Two Treatises of {Government}",
  author = {John Locke},
  year = 1689,
  keywords = {property; consent}
}

@article{wollstonecraft,
  author = {Mary Wollstonecraft and William Godwin},
  title = {A Vindication of the Rights of Woman},
  year = {1792}
}
`
	got, err := Read(strings.NewReader(src), FormatBibTeX)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "locke1689", got[0].ID)
	assert.Equal(t, "Two Treatises of Government", got[0].Title)
	assert.Equal(t, []string{"John Locke"}, got[0].Authors)
	assert.Equal(t, "1689", got[0].Date)
	assert.Equal(t, types.DateRange{Start: 1689, End: 1689}, got[0].Years)
	assert.Equal(t, []string{"property", "consent"}, got[0].Themes)

	assert.Equal(t, []string{"Mary Wollstonecraft", "William Godwin"}, got[1].Authors)
}

func TestBibTeXNotesKeepLayout(t *testing.T) {
	src := `@book{hume,
  title = {A Treatise
           of Human Nature},
  author = {David Hume},
  year = {1739},
  note = {Book I.
  Of the Understanding}
}
`
	got, err := Read(strings.NewReader(src), FormatBibTeX)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "A Treatise of Human Nature", got[0].Title)
	assert.Equal(t, "Book I.\n  Of the Understanding", got[0].Notes)
}

func TestMarkdownMultilineNotes(t *testing.T) {
	kant := fixture()[3]
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, []types.Record{kant}, FormatMarkdown))
	assert.Contains(t, buf.String(), "- **Notes:** Two editions.\n  \n  A (1781)  and B (1787).\n")

	got, err := Read(&buf, FormatMarkdown)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, kant.Notes, got[0].Notes)
}

func TestReadBibTeXUnterminated(t *testing.T) {
	_, err := Read(strings.NewReader("@book{x,\n  title = {Open"), FormatBibTeX)
	assert.Error(t, err)
}

func TestCSVHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, fixture()[2:3], FormatCSV))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "id,title,authors,date,period,themes,notes,source", lines[0])
	assert.Equal(t, "marx-manifesto,The Communist Manifesto,Karl Marx; Friedrich Engels,1848,Modern,class struggle; revolution,,reading-list.pdf", lines[1])
}

func TestReadCSVRequiresTitle(t *testing.T) {
	_, err := Read(strings.NewReader("name,year\nfoo,1900\n"), FormatCSV)
	assert.Error(t, err)
}

func TestCSLAuthors(t *testing.T) {
	assert.Equal(t, CSLName{Literal: "Plato"}, parseAuthorName("Plato"))
	assert.Equal(t, CSLName{Given: "Niccolò", Family: "Machiavelli"}, parseAuthorName(" Niccolò Machiavelli "))
	assert.Equal(t, CSLName{Given: "Mary Wollstonecraft", Family: "Shelley"}, parseAuthorName("Mary Wollstonecraft Shelley"))
	assert.Equal(t, CSLName{}, parseAuthorName(""))

	item := toCSLItem(fixture()[0])
	assert.Equal(t, "book", item.Type)
	require.NotNil(t, item.Issued)
	assert.Equal(t, [][]int{{-375}}, item.Issued.DateParts)
	assert.Equal(t, "Ancient", item.Custom["period"])
}

func TestMarkdownLayout(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, fixture()[1:2], FormatMarkdown))
	assert.Equal(t, "# LIBRIS Export\n\nEntries: 1\n\n## The Prince\n\n"+
		"- **ID:** machiavelli-prince\n"+
		"- **Authors:** Niccolò Machiavelli\n"+
		"- **Date:** 1513\n"+
		"- **Period:** Renaissance\n"+
		"- **Themes:** power; statecraft\n"+
		"- **Source:** base_collection\n", buf.String())
}
