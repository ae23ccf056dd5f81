// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/libris/pkg/types"
)

// QueryFile is the on-disk representation of a search and its results, so
// a search can be saved with --save and exported later without re-running.
type QueryFile struct {
	Query   QueryParams          `yaml:"query"`
	Results []types.SearchResult `yaml:"results"`
	Summary QuerySummary         `yaml:"summary"`
}

// QueryParams stores the query parameters.
type QueryParams struct {
	Text       string           `yaml:"text"`
	Mode       types.SearchMode `yaml:"mode"`
	MaxResults int              `yaml:"max_results"`
}

// QuerySummary stores result statistics and a timestamp.
type QuerySummary struct {
	Total     int       `yaml:"total"`
	Timestamp time.Time `yaml:"timestamp"`
}

// WriteQueryFile saves a query and its results to a YAML file.
func WriteQueryFile(path string, text string, opts Options, results []types.SearchResult) error {
	qf := QueryFile{
		Query: QueryParams{
			Text:       text,
			Mode:       opts.Mode,
			MaxResults: opts.MaxResults,
		},
		Results: results,
		Summary: QuerySummary{
			Total:     len(results),
			Timestamp: time.Now().UTC(),
		},
	}

	data, err := yaml.Marshal(&qf)
	if err != nil {
		return fmt.Errorf("marshaling query file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadQueryFile loads a previously saved query file.
func ReadQueryFile(path string) (*QueryFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading query file: %w", err)
	}
	var qf QueryFile
	if err := yaml.Unmarshal(data, &qf); err != nil {
		return nil, fmt.Errorf("parsing query file: %w", err)
	}
	if qf.Query.Mode != "" {
		if _, err := ParseMode(string(qf.Query.Mode)); err != nil {
			return nil, fmt.Errorf("query file %s: %w", path, err)
		}
	}
	return &qf, nil
}

// Options returns the search options recorded in the file.
func (p QueryParams) Options() Options {
	return Options{Mode: p.Mode, MaxResults: p.MaxResults}
}
