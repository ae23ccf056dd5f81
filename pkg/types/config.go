// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// CatalogConfig holds settings for the knowledge base.
type CatalogConfig struct {
	// Path is the generated catalog JSON file.
	Path string `json:"path" yaml:"path" mapstructure:"path"`
}

// SearchConfig holds settings for the search engine.
type SearchConfig struct {
	// Mode is the default search mode (default comprehensive).
	Mode SearchMode `json:"mode" yaml:"mode" mapstructure:"mode"`

	// MaxResults is the default result limit (default 15).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`

	// FuzzyThreshold is the minimum similarity in [0,1] for a fuzzy token
	// match (default 0.75).
	FuzzyThreshold float64 `json:"fuzzy_threshold" yaml:"fuzzy_threshold" mapstructure:"fuzzy_threshold"`

	// ConceptsFile optionally replaces the built-in concept table.
	ConceptsFile string `json:"concepts_file,omitempty" yaml:"concepts_file,omitempty" mapstructure:"concepts_file"`

	// CacheTTL is how long identical queries reuse cached results.
	CacheTTL time.Duration `json:"cache_ttl" yaml:"cache_ttl" mapstructure:"cache_ttl"`
}

// ExtractConfig holds settings for bibliographic extraction.
type ExtractConfig struct {
	// MinConfidence is the threshold below which candidates are flagged
	// (default 0.6).
	MinConfidence float64 `json:"min_confidence" yaml:"min_confidence" mapstructure:"min_confidence"`
}

// ConversionBackend identifies the document-to-text tool.
type ConversionBackend string

const (
	BackendNative     ConversionBackend = "native"
	BackendMarkitdown ConversionBackend = "markitdown"
)

// ConvertConfig holds settings for document reading.
type ConvertConfig struct {
	// Backend selects native readers or the markitdown container for PDF
	// and DOCX input.
	Backend ConversionBackend `json:"backend" yaml:"backend" mapstructure:"backend"`
}

// ExportConfig holds settings for export.
type ExportConfig struct {
	// Dir is where export files are written.
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`
}

// LogConfig holds diagnostic logging settings.
type LogConfig struct {
	// Level is the minimum level: debug, info, warn, error.
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format is console or json.
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

// Config groups every component's settings.
type Config struct {
	Catalog CatalogConfig `json:"catalog" yaml:"catalog" mapstructure:"catalog"`
	Search  SearchConfig  `json:"search" yaml:"search" mapstructure:"search"`
	Extract ExtractConfig `json:"extract" yaml:"extract" mapstructure:"extract"`
	Convert ConvertConfig `json:"convert" yaml:"convert" mapstructure:"convert"`
	Export  ExportConfig  `json:"export" yaml:"export" mapstructure:"export"`
	Log     LogConfig     `json:"log" yaml:"log" mapstructure:"log"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Catalog: CatalogConfig{Path: "knowledge_base/libris_catalog.json"},
		Search: SearchConfig{
			Mode:           ModeComprehensive,
			MaxResults:     15,
			FuzzyThreshold: 0.75,
			CacheTTL:       5 * time.Minute,
		},
		Extract: ExtractConfig{MinConfidence: 0.6},
		Convert: ConvertConfig{Backend: BackendNative},
		Export:  ExportConfig{Dir: "exports"},
		Log:     LogConfig{Level: "warn", Format: "console"},
	}
}
