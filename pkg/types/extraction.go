// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Candidate is a record extracted from an uploaded document. Candidates
// are transient: they are reported and exported but never merged into the
// catalog.
type Candidate struct {
	Record `yaml:",inline"`

	// Confidence is the extraction certainty in [0, 1].
	Confidence float64 `json:"confidence" yaml:"confidence"`

	// LowConfidence is set when Confidence fell below the configured
	// threshold. Such candidates are flagged, not rejected.
	LowConfidence bool `json:"low_confidence,omitempty" yaml:"low_confidence,omitempty"`

	// Line is the 1-based line (or table row) the candidate came from.
	Line int `json:"line" yaml:"line"`

	// Raw is the source text the candidate was parsed from.
	Raw string `json:"raw" yaml:"raw"`

	// Pattern names the heuristic that produced the candidate.
	Pattern string `json:"pattern" yaml:"pattern"`
}

// DuplicateMatch links a candidate to the catalog record it duplicates.
type DuplicateMatch struct {
	CandidateID string  `json:"candidate_id" yaml:"candidate_id"`
	CatalogID   string  `json:"catalog_id" yaml:"catalog_id"`
	Similarity  float64 `json:"similarity" yaml:"similarity"`
}

// ProcessReport summarizes the processing of one document.
type ProcessReport struct {
	// RunID uniquely identifies this processing run.
	RunID string `json:"run_id" yaml:"run_id"`

	// File is the processed document's base name.
	File string `json:"file" yaml:"file"`

	// Format is the detected input format (e.g. "pdf", "csv").
	Format string `json:"format" yaml:"format"`

	// ProcessedAt is when processing finished.
	ProcessedAt time.Time `json:"processed_at" yaml:"processed_at"`

	// Candidates are the extracted entries in document order.
	Candidates []Candidate `json:"candidates" yaml:"candidates"`

	// Duplicates lists candidates already present in the catalog.
	Duplicates []DuplicateMatch `json:"duplicates,omitempty" yaml:"duplicates,omitempty"`

	// ThemesDetected is the sorted union of candidate themes.
	ThemesDetected []string `json:"themes_detected" yaml:"themes_detected"`

	// DateRange spans the dated candidates. Nil when none carried a date.
	DateRange *DateRange `json:"date_range,omitempty" yaml:"date_range,omitempty"`

	// QualityIssues are human-readable warnings (low confidence, missing fields).
	QualityIssues []string `json:"quality_issues,omitempty" yaml:"quality_issues,omitempty"`
}

// EntriesFound returns the number of candidates.
func (r ProcessReport) EntriesFound() int {
	return len(r.Candidates)
}

// NewEntries returns candidates that do not duplicate a catalog record.
func (r ProcessReport) NewEntries() []Candidate {
	dup := make(map[string]bool, len(r.Duplicates))
	for _, d := range r.Duplicates {
		dup[d.CandidateID] = true
	}
	var out []Candidate
	for _, c := range r.Candidates {
		if !dup[c.ID] {
			out = append(out, c)
		}
	}
	return out
}

// CandidateRecords unwraps candidates into plain records for export.
func CandidateRecords(cands []Candidate) []Record {
	out := make([]Record, len(cands))
	for i, c := range cands {
		out[i] = c.Record
	}
	return out
}
