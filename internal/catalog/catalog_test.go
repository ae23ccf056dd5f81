// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/libris/pkg/types"
)

func TestBaseCollection(t *testing.T) {
	c, err := New(BaseCollection())
	require.NoError(t, err)
	assert.Equal(t, 74, c.Len())

	for _, r := range c.Entries() {
		assert.NotEmpty(t, r.Title, r.ID)
		assert.NotEmpty(t, r.Authors, r.ID)
		assert.NotEmpty(t, r.Themes, r.ID)
		assert.False(t, r.Years.IsZero(), r.ID)
		assert.LessOrEqual(t, r.Years.Start, r.Years.End, r.ID)
		assert.Equal(t, types.SourceBaseCollection, r.Source, r.ID)
		_, ok := types.ParsePeriod(string(r.Period))
		assert.True(t, ok, "%s has period %q", r.ID, r.Period)
	}
}

func TestNewValidation(t *testing.T) {
	valid := types.Record{ID: "a", Title: "T", Authors: []string{"X"}, Date: "1700"}

	tests := []struct {
		name   string
		mutate func(r *types.Record)
		errMsg string
	}{
		{"empty id", func(r *types.Record) { r.ID = " " }, "empty id"},
		{"empty title", func(r *types.Record) { r.Title = "" }, "empty title"},
		{"no author", func(r *types.Record) { r.Authors = []string{" "} }, "no author"},
		{"bad date", func(r *types.Record) { r.Date = "someday" }, "unrecognized date"},
		{"bad period", func(r *types.Record) { r.Period = "Jurassic" }, "unknown period"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid
			tt.mutate(&r)
			_, err := New([]types.Record{r})
			require.ErrorIs(t, err, ErrInvalidRecord)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestNewRejectsDuplicateIDs(t *testing.T) {
	r := types.Record{ID: "dup", Title: "T", Authors: []string{"X"}, Date: "1700"}
	_, err := New([]types.Record{r, r})
	require.ErrorIs(t, err, ErrInvalidRecord)
	assert.Contains(t, err.Error(), "duplicate id")
}

func TestNewNormalizes(t *testing.T) {
	c, err := New([]types.Record{{
		ID: "x", Title: " Title ", Authors: []string{"A", ""}, Date: "c. 1650",
		Themes: []string{"Ethics", "ethics", " Politics "}, Period: "early modern",
	}})
	require.NoError(t, err)

	r, err := c.Get("x")
	require.NoError(t, err)
	assert.Equal(t, "Title", r.Title)
	assert.Equal(t, []string{"A"}, r.Authors)
	assert.Equal(t, []string{"ethics", "politics"}, r.Themes)
	assert.Equal(t, types.PeriodEarlyModern, r.Period)
	assert.Equal(t, types.DateRange{Start: 1650, End: 1650}, r.Years)
}

func TestGetNotFound(t *testing.T) {
	c, err := New(BaseCollection())
	require.NoError(t, err)
	_, err = c.Get("nobody-nothing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStatistics(t *testing.T) {
	c, err := New(BaseCollection())
	require.NoError(t, err)

	stats := c.Statistics()
	assert.Equal(t, 74, stats.TotalEntries)
	assert.Equal(t, 1, stats.Sources)
	assert.Greater(t, stats.TotalAuthors, 50)
	assert.Greater(t, stats.TotalThemes, 20)
	require.NotNil(t, stats.DateRange)
	assert.Equal(t, -500, stats.DateRange.Start)
	assert.Equal(t, 1971, stats.DateRange.End)

	total := 0
	for _, n := range stats.ByPeriod {
		total += n
	}
	assert.Equal(t, 74, total)
}

func TestStatisticsEmpty(t *testing.T) {
	c, err := New(nil)
	require.NoError(t, err)
	stats := c.Statistics()
	assert.Zero(t, stats.TotalEntries)
	assert.Nil(t, stats.DateRange)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kb", "catalog.json")

	orig, err := Initialize(path)
	require.NoError(t, err)

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, orig.Entries(), loaded.Entries())
}

func TestLoadOrInitRegeneratesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")

	c, err := LoadOrInit(path, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, 74, c.Len())

	_, err = os.Stat(path)
	assert.NoError(t, err, "catalog file should be written")
}

func TestLoadOrInitReportsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := LoadOrInit(path, zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing catalog")
}

func TestAuthorsThemesPeriods(t *testing.T) {
	c, err := New(BaseCollection())
	require.NoError(t, err)

	assert.Contains(t, c.Authors(), "Plato")
	assert.Contains(t, c.Authors(), "Friedrich Engels")
	assert.Contains(t, c.Themes(), "social contract")
	assert.Equal(t, types.Periods, c.Periods())
}
