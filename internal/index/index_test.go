// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/libris/internal/catalog"
	"github.com/pdiddy/libris/pkg/types"
)

func fixture() []types.Record {
	return []types.Record{
		{ID: "hobbes", Title: "Leviathan", Authors: []string{"Thomas Hobbes"}, Date: "1651",
			Years: types.DateRange{Start: 1651, End: 1651}, Period: types.PeriodEarlyModern,
			Themes: []string{"political philosophy", "sovereignty"}, Source: "base_collection"},
		{ID: "plato", Title: "The Republic", Authors: []string{"Plato"}, Date: "c. 375 BCE",
			Years: types.DateRange{Start: -375, End: -375}, Period: types.PeriodAncient,
			Themes: []string{"political philosophy", "justice"}, Notes: "Dialogue on justice"},
		{ID: "manifesto", Title: "The Communist Manifesto", Authors: []string{"Karl Marx", "Friedrich Engels"},
			Date: "1848", Years: types.DateRange{Start: 1848, End: 1848}, Period: types.PeriodModern,
			Themes: []string{"political economy"}},
		{ID: "under_score", Title: "Essays", Authors: []string{"Michel de Montaigne"}, Date: "1580",
			Years: types.DateRange{Start: 1580, End: 1580}, Period: types.PeriodRenaissance},
	}
}

func build(t *testing.T, records []types.Record) *Index {
	t.Helper()
	idx, err := Build(context.Background(), records)
	require.NoError(t, err)
	t.Cleanup(func() { idx.Close() })
	return idx
}

func ids(records []types.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func intp(v int) *int { return &v }

func TestBrowse(t *testing.T) {
	idx := build(t, fixture())

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"empty filter is chronological", Filter{}, []string{"plato", "under_score", "hobbes", "manifesto"}},
		{"author substring", Filter{Author: "hob"}, []string{"hobbes"}},
		{"author case insensitive", Filter{Author: "ENGELS"}, []string{"manifesto"}},
		{"author percent is literal", Filter{Author: "%"}, nil},
		{"theme exact", Filter{Theme: "Political Philosophy"}, []string{"plato", "hobbes"}},
		{"theme no partial", Filter{Theme: "political"}, nil},
		{"period", Filter{Period: "modern"}, []string{"manifesto"}},
		{"year range", Filter{FromYear: intp(1500), ToYear: intp(1700)}, []string{"under_score", "hobbes"}},
		{"from only", Filter{FromYear: intp(1800)}, []string{"manifesto"}},
		{"to only BCE", Filter{ToYear: intp(-1)}, []string{"plato"}},
		{"combined", Filter{Theme: "political philosophy", FromYear: intp(0)}, []string{"hobbes"}},
		{"limit", Filter{Limit: 2}, []string{"plato", "under_score"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := idx.Browse(context.Background(), tt.filter)
			require.NoError(t, err)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestBrowseFoldsDiacritics(t *testing.T) {
	records := append(fixture(), types.Record{
		ID: "durkheim", Title: "Le Suicide", Authors: []string{"Émile Durkheim"}, Date: "1897",
		Years: types.DateRange{Start: 1897, End: 1897}, Period: types.PeriodModern,
		Themes: []string{"sociologie", "société"},
	})
	idx := build(t, records)

	for _, f := range []Filter{
		{Author: "émile"},
		{Author: "ÉMILE"},
		{Author: "Emile Durk"},
		{Theme: "SOCIÉTÉ"},
		{Theme: "societe"},
	} {
		got, err := idx.Browse(context.Background(), f)
		require.NoError(t, err)
		assert.Equal(t, []string{"durkheim"}, ids(got), "%+v", f)
	}

	got, err := idx.Browse(context.Background(), Filter{Author: "Émile"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []string{"Émile Durkheim"}, got[0].Authors)
	assert.Equal(t, []string{"sociologie", "société"}, got[0].Themes)
}

func TestBrowseRestoresRecords(t *testing.T) {
	records := fixture()
	idx := build(t, records)

	got, err := idx.Browse(context.Background(), Filter{Author: "plato"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, records[1], got[0])
}

func TestBrowseRecordWithoutThemes(t *testing.T) {
	idx := build(t, fixture())

	got, err := idx.Browse(context.Background(), Filter{Author: "montaigne"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Empty(t, got[0].Themes)
}

func TestFacets(t *testing.T) {
	idx := build(t, fixture())

	f, err := idx.Facets(context.Background())
	require.NoError(t, err)

	assert.Len(t, f.Authors, 5)
	assert.Equal(t, Facet{Value: "political philosophy", Count: 2}, f.Themes[0])

	var periods []string
	for _, p := range f.Periods {
		periods = append(periods, p.Value)
	}
	assert.Equal(t, []string{"Ancient", "Renaissance", "Early Modern", "Modern"}, periods)
}

func TestIndexesAreIsolated(t *testing.T) {
	a := build(t, fixture()[:1])
	b := build(t, fixture())

	got, err := a.Browse(context.Background(), Filter{})
	require.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = b.Browse(context.Background(), Filter{})
	require.NoError(t, err)
	assert.Len(t, got, 4)
}

func TestBaseCollectionIndex(t *testing.T) {
	c, err := catalog.New(catalog.BaseCollection())
	require.NoError(t, err)
	idx := build(t, c.Entries())

	all, err := idx.Browse(context.Background(), Filter{})
	require.NoError(t, err)
	assert.Len(t, all, c.Len())

	plato, err := idx.Browse(context.Background(), Filter{Author: "Plato"})
	require.NoError(t, err)
	assert.NotEmpty(t, plato)
	for _, r := range plato {
		assert.Equal(t, types.PeriodAncient, r.Period)
	}
}

func TestFilterIsEmpty(t *testing.T) {
	assert.True(t, Filter{Limit: 3}.IsEmpty())
	assert.False(t, Filter{Theme: "ethics"}.IsEmpty())
	assert.False(t, Filter{ToYear: intp(0)}.IsEmpty())
}
