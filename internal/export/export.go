// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export writes record sets to bibliographic and tabular formats
// and reads them back.
package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdiddy/libris/pkg/types"
)

// ErrUnknownFormat is returned for a format name no writer handles.
var ErrUnknownFormat = errors.New("unknown export format")

// Format names an export format.
type Format string

const (
	FormatBibTeX   Format = "bibtex"
	FormatCSV      Format = "csv"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
	FormatXLSX     Format = "xlsx"
	FormatYAML     Format = "yaml"
	FormatParquet  Format = "parquet"
)

// Formats lists every supported format.
var Formats = []Format{FormatBibTeX, FormatCSV, FormatJSON, FormatMarkdown, FormatXLSX, FormatYAML, FormatParquet}

var aliases = map[string]Format{
	"bib":   FormatBibTeX,
	"md":    FormatMarkdown,
	"excel": FormatXLSX,
	"csl":   FormatYAML,
	"yml":   FormatYAML,
}

var extensions = map[Format]string{
	FormatBibTeX:   ".bib",
	FormatCSV:      ".csv",
	FormatJSON:     ".json",
	FormatMarkdown: ".md",
	FormatXLSX:     ".xlsx",
	FormatYAML:     ".yaml",
	FormatParquet:  ".parquet",
}

// ParseFormat resolves a format name or common alias, ignoring case.
func ParseFormat(s string) (Format, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if f, ok := aliases[name]; ok {
		return f, nil
	}
	for _, f := range Formats {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w %q (want one of %s)", ErrUnknownFormat, s, formatList())
}

// FormatForPath infers a format from a file extension.
func FormatForPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	for f, e := range extensions {
		if e == ext {
			return f, nil
		}
	}
	if ext == ".yml" {
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: extension %q", ErrUnknownFormat, ext)
}

func formatList() string {
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

// Ext returns the file extension, including the dot.
func (f Format) Ext() string { return extensions[f] }

// Write serializes records to w.
func Write(w io.Writer, records []types.Record, f Format) error {
	switch f {
	case FormatBibTeX:
		return writeBibTeX(w, records)
	case FormatCSV:
		return writeCSV(w, records)
	case FormatJSON:
		return writeJSON(w, records)
	case FormatMarkdown:
		return writeMarkdown(w, records)
	case FormatXLSX:
		return writeXLSX(w, records)
	case FormatYAML:
		return writeCSL(w, records)
	case FormatParquet:
		return writeParquet(w, records)
	default:
		return fmt.Errorf("%w %q", ErrUnknownFormat, f)
	}
}

// Read parses records previously written in format f. Years are derived
// from each record's date where the format does not store them.
func Read(r io.Reader, f Format) ([]types.Record, error) {
	var (
		records []types.Record
		err     error
	)
	switch f {
	case FormatBibTeX:
		records, err = readBibTeX(r)
	case FormatCSV:
		records, err = readCSV(r)
	case FormatJSON:
		records, err = readJSON(r)
	case FormatMarkdown:
		records, err = readMarkdown(r)
	case FormatXLSX:
		records, err = readXLSX(r)
	case FormatYAML:
		records, err = readCSL(r)
	case FormatParquet:
		records, err = readParquet(r)
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownFormat, f)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", f, err)
	}
	for i := range records {
		if records[i].Years.IsZero() && records[i].Date != "" {
			if span, err := types.ParseDate(records[i].Date); err == nil {
				records[i].Years = span
			}
		}
	}
	return records, nil
}

// ReadFile reads an export file, choosing the format by extension.
func ReadFile(path string) ([]types.Record, error) {
	f, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return Read(file, f)
}

// now is replaced in tests.
var now = time.Now

// FileName returns "libris_<prefix>_<YYYYMMDD_HHMMSS><ext>".
func FileName(prefix string, f Format, at time.Time) string {
	return fmt.Sprintf("libris_%s_%s%s", prefix, at.Format("20060102_150405"), f.Ext())
}

// WriteFile writes records into dir under a timestamped name and returns
// the path. The file is written to a temporary name first and renamed, so
// a failed export leaves nothing behind.
func WriteFile(dir, prefix string, records []types.Record, f Format) (string, error) {
	if _, ok := extensions[f]; !ok {
		return "", fmt.Errorf("%w %q", ErrUnknownFormat, f)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}
	path := filepath.Join(dir, FileName(prefix, f, now()))

	tmp, err := os.CreateTemp(dir, ".libris-export-*")
	if err != nil {
		return "", fmt.Errorf("creating export file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := Write(tmp, records, f); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("writing export file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("writing export file: %w", err)
	}
	return path, nil
}

// splitList splits a "; "-joined cell.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ";") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
