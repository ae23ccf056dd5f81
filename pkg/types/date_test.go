// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want DateRange
	}{
		{"1651", DateRange{1651, 1651}},
		{"c. 375 BCE", DateRange{-375, -375}},
		{"ca. 1200", DateRange{1200, 1200}},
		{"1781-1787", DateRange{1781, 1787}},
		{"1781-87", DateRange{1781, 1787}},
		{"c. 1798-05", DateRange{1798, 1805}},
		{"1781–1787", DateRange{1781, 1787}},
		{"470-399 BCE", DateRange{-470, -399}},
		{"5th century BCE", DateRange{-500, -401}},
		{"13th century", DateRange{1201, 1300}},
		{"4 BCE - 65 CE", DateRange{-4, 65}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDateRejects(t *testing.T) {
	for _, in := range []string{"", "soon", "1800-1700", "0th century"} {
		_, err := ParseDate(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestDateRangeStringRoundTrip(t *testing.T) {
	for _, d := range []DateRange{{1651, 1651}, {-375, -375}, {-470, -399}, {-4, 65}, {1781, 1787}} {
		got, err := ParseDate(d.String())
		require.NoError(t, err, d.String())
		assert.Equal(t, d, got)
	}
}

func TestPeriodForYear(t *testing.T) {
	assert.Equal(t, PeriodAncient, PeriodForYear(-375))
	assert.Equal(t, PeriodMedieval, PeriodForYear(1265))
	assert.Equal(t, PeriodRenaissance, PeriodForYear(1513))
	assert.Equal(t, PeriodEarlyModern, PeriodForYear(1651))
	assert.Equal(t, PeriodEnlightenment, PeriodForYear(1781))
	assert.Equal(t, PeriodModern, PeriodForYear(1887))
	assert.Equal(t, PeriodContemporary, PeriodForYear(1971))
}

func TestParsePeriod(t *testing.T) {
	p, ok := ParsePeriod("early modern")
	assert.True(t, ok)
	assert.Equal(t, PeriodEarlyModern, p)

	_, ok = ParsePeriod("future")
	assert.False(t, ok)
}
