// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for LIBRIS: catalog records,
// search results, extraction candidates, processing reports, and
// configuration.
package types

import "strings"

// SourceBaseCollection marks records that come from the curated base
// collection rather than an uploaded document.
const SourceBaseCollection = "base_collection"

// Period is a historical era tag attached to every record.
type Period string

const (
	PeriodAncient       Period = "Ancient"
	PeriodMedieval      Period = "Medieval"
	PeriodRenaissance   Period = "Renaissance"
	PeriodEarlyModern   Period = "Early Modern"
	PeriodEnlightenment Period = "Enlightenment"
	PeriodModern        Period = "Modern"
	PeriodContemporary  Period = "Contemporary"
)

// Periods lists every period in chronological order.
var Periods = []Period{
	PeriodAncient,
	PeriodMedieval,
	PeriodRenaissance,
	PeriodEarlyModern,
	PeriodEnlightenment,
	PeriodModern,
	PeriodContemporary,
}

// ParsePeriod matches s case-insensitively against the known periods.
func ParsePeriod(s string) (Period, bool) {
	s = strings.TrimSpace(s)
	for _, p := range Periods {
		if strings.EqualFold(string(p), s) {
			return p, true
		}
	}
	return "", false
}

// PeriodForYear infers the period a year belongs to. Negative years are BCE.
func PeriodForYear(year int) Period {
	switch {
	case year < 500:
		return PeriodAncient
	case year < 1450:
		return PeriodMedieval
	case year < 1600:
		return PeriodRenaissance
	case year < 1700:
		return PeriodEarlyModern
	case year < 1800:
		return PeriodEnlightenment
	case year < 1946:
		return PeriodModern
	default:
		return PeriodContemporary
	}
}

// Order returns the chronological position of the period, or len(Periods)
// for an unknown period so that it sorts last.
func (p Period) Order() int {
	for i, q := range Periods {
		if q == p {
			return i
		}
	}
	return len(Periods)
}

// Record is a single bibliographic entry.
type Record struct {
	// ID is a stable slug, unique within a catalog (e.g. "plato-republic").
	ID string `json:"id" yaml:"id"`

	// Title is the work's title.
	Title string `json:"title" yaml:"title"`

	// Authors lists the work's authors in citation order.
	Authors []string `json:"authors" yaml:"authors"`

	// Date is the display form of the composition or publication date
	// (e.g. "c. 375 BCE", "1651", "1781-1787").
	Date string `json:"date" yaml:"date"`

	// Years is the parsed form of Date.
	Years DateRange `json:"years" yaml:"years"`

	// Themes are lowercase topic tags.
	Themes []string `json:"themes" yaml:"themes"`

	// Period is the historical era of the work.
	Period Period `json:"period" yaml:"period"`

	// Notes is free-text commentary.
	Notes string `json:"notes,omitempty" yaml:"notes,omitempty"`

	// Source records provenance: SourceBaseCollection or an uploaded file name.
	Source string `json:"source,omitempty" yaml:"source,omitempty"`
}

// Author returns the authors joined for display, or "Unknown".
func (r Record) Author() string {
	if len(r.Authors) == 0 {
		return "Unknown"
	}
	return strings.Join(r.Authors, "; ")
}

// HasTheme reports whether the record carries the theme, ignoring case.
func (r Record) HasTheme(theme string) bool {
	for _, t := range r.Themes {
		if strings.EqualFold(t, theme) {
			return true
		}
	}
	return false
}
