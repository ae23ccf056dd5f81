// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package librarian ties the catalog, browse index, search engine,
// document extractor and exporter together behind the operations the CLI
// exposes.
package librarian

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"

	"github.com/pdiddy/libris/internal/catalog"
	"github.com/pdiddy/libris/internal/convert"
	"github.com/pdiddy/libris/internal/export"
	"github.com/pdiddy/libris/internal/extract"
	"github.com/pdiddy/libris/internal/index"
	"github.com/pdiddy/libris/internal/search"
	"github.com/pdiddy/libris/pkg/types"
)

// Librarian serves one catalog for the life of a command.
type Librarian struct {
	cfg       types.Config
	log       zerolog.Logger
	catalog   *catalog.Catalog
	index     *index.Index
	engine    *search.Engine
	extractor *extract.Extractor
	cache     *gocache.Cache

	converter convert.Converter
	reader    *convert.Reader
	newRunID  func() string
}

// Option customizes a Librarian.
type Option func(*Librarian)

// WithConverter sends PDF and DOCX files through c instead of the
// configured backend.
func WithConverter(c convert.Converter) Option {
	return func(l *Librarian) { l.converter = c }
}

// WithRunIDs replaces the run id generator.
func WithRunIDs(next func() string) Option {
	return func(l *Librarian) { l.newRunID = next }
}

// Open loads the catalog named by cfg, regenerating it from the base
// collection when the file is missing, and prepares every component.
func Open(ctx context.Context, cfg types.Config, log zerolog.Logger, opts ...Option) (*Librarian, error) {
	cat, err := catalog.LoadOrInit(cfg.Catalog.Path, log)
	if err != nil {
		return nil, err
	}
	return New(ctx, cat, cfg, log, opts...)
}

// New prepares a Librarian over an already loaded catalog.
func New(ctx context.Context, cat *catalog.Catalog, cfg types.Config, log zerolog.Logger, opts ...Option) (*Librarian, error) {
	concepts := search.DefaultConcepts()
	if path := cfg.Search.ConceptsFile; path != "" {
		c, err := search.LoadConcepts(path)
		if err != nil {
			return nil, err
		}
		concepts = c
		log.Debug().Str("path", path).Int("concepts", c.Len()).Msg("concept table loaded")
	}

	idx, err := index.Build(ctx, cat.Entries())
	if err != nil {
		return nil, fmt.Errorf("building browse index: %w", err)
	}

	l := &Librarian{
		cfg:       cfg,
		log:       log,
		catalog:   cat,
		index:     idx,
		engine:    search.NewEngine(cat.Entries(), concepts, cfg.Search.FuzzyThreshold),
		extractor: extract.New(cfg.Extract.MinConfidence, concepts, cat.Themes()),
		newRunID:  uuid.NewString,
	}
	if ttl := cfg.Search.CacheTTL; ttl > 0 {
		l.cache = gocache.New(ttl, 2*ttl)
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Close releases the browse index.
func (l *Librarian) Close() error {
	return l.index.Close()
}

// Catalog returns the loaded catalog.
func (l *Librarian) Catalog() *catalog.Catalog { return l.catalog }

// Concepts returns the concept table in use.
func (l *Librarian) Concepts() search.ConceptTable { return l.engine.Concepts() }

// SearchOptions fills unset fields of opts from configuration.
func (l *Librarian) SearchOptions(opts search.Options) search.Options {
	if opts.Mode == "" {
		opts.Mode = l.cfg.Search.Mode
	}
	if opts.MaxResults <= 0 {
		opts.MaxResults = l.cfg.Search.MaxResults
	}
	return opts
}

// Search ranks the catalog against query. Identical queries within the
// cache TTL reuse earlier results.
func (l *Librarian) Search(query string, opts search.Options) ([]types.SearchResult, error) {
	opts = l.SearchOptions(opts)
	key := cacheKey(query, opts)
	if l.cache != nil {
		if v, ok := l.cache.Get(key); ok {
			l.log.Debug().Str("query", query).Msg("search cache hit")
			return append([]types.SearchResult(nil), v.([]types.SearchResult)...), nil
		}
	}

	start := time.Now()
	results, err := l.engine.Search(query, opts)
	if err != nil {
		return nil, err
	}
	l.log.Debug().
		Str("query", query).
		Str("mode", string(opts.Mode)).
		Int("results", len(results)).
		Dur("elapsed", time.Since(start)).
		Msg("search")

	if l.cache != nil {
		l.cache.SetDefault(key, append([]types.SearchResult(nil), results...))
	}
	return results, nil
}

func cacheKey(query string, opts search.Options) string {
	q := strings.Join(strings.Fields(strings.ToLower(query)), " ")
	return fmt.Sprintf("%s\x00%s\x00%d", q, strings.ToLower(string(opts.Mode)), opts.MaxResults)
}

// Browse lists records matching f in chronological order.
func (l *Librarian) Browse(ctx context.Context, f index.Filter) ([]types.Record, error) {
	return l.index.Browse(ctx, f)
}

// Facets counts records per author, theme and period.
func (l *Librarian) Facets(ctx context.Context) (index.Facets, error) {
	return l.index.Facets(ctx)
}

// Statistics summarizes the catalog.
func (l *Librarian) Statistics() catalog.Statistics {
	return l.catalog.Statistics()
}

// Export writes records to the configured export directory and returns
// the file path.
func (l *Librarian) Export(records []types.Record, f export.Format, prefix string) (string, error) {
	path, err := export.WriteFile(l.cfg.Export.Dir, prefix, records, f)
	if err != nil {
		return "", err
	}
	l.log.Info().Str("path", path).Int("records", len(records)).Str("format", string(f)).Msg("exported")
	return path, nil
}

// ExportCandidates exports the candidates of one or more processing
// reports to a single file. Ids repeated across reports get a numeric
// suffix so the exported set stays unique.
func (l *Librarian) ExportCandidates(reports []types.ProcessReport, f export.Format) (string, error) {
	var records []types.Record
	for _, rep := range reports {
		records = append(records, types.CandidateRecords(rep.Candidates)...)
	}
	return l.Export(uniqueIDs(records), f, "candidates")
}

func uniqueIDs(records []types.Record) []types.Record {
	taken := make(map[string]bool, len(records))
	for _, r := range records {
		taken[r.ID] = true
	}
	seen := make(map[string]bool, len(records))
	for i, r := range records {
		if !seen[r.ID] {
			seen[r.ID] = true
			continue
		}
		id := r.ID
		for n := 2; taken[id]; n++ {
			id = fmt.Sprintf("%s-%d", r.ID, n)
		}
		taken[id], seen[id] = true, true
		records[i].ID = id
	}
	return records
}
