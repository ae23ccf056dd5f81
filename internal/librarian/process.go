// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package librarian

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pdiddy/libris/internal/convert"
	"github.com/pdiddy/libris/internal/logging"
	"github.com/pdiddy/libris/pkg/types"
)

// BatchSummary holds counts from a batch processing run.
type BatchSummary struct {
	Processed int
	Skipped   int
	Failed    int
}

// Total returns the number of files considered.
func (s BatchSummary) Total() int {
	return s.Processed + s.Skipped + s.Failed
}

// HasFailures reports whether any file failed.
func (s BatchSummary) HasFailures() bool {
	return s.Failed > 0
}

// documentReader builds the reader on first use. A container backend is
// only probed when a PDF or DOCX needs it.
func (l *Librarian) documentReader() (*convert.Reader, error) {
	if l.reader != nil {
		return l.reader, nil
	}
	if l.converter != nil {
		l.reader = convert.NewReaderWith(l.converter)
		return l.reader, nil
	}
	r, err := convert.NewBackendReader(l.cfg.Convert.Backend)
	if err != nil {
		return nil, err
	}
	l.reader = r
	return r, nil
}

// ProcessDocument extracts candidate records from the file at path and
// checks them against the catalog. The catalog itself is not modified.
func (l *Librarian) ProcessDocument(ctx context.Context, path string) (types.ProcessReport, error) {
	reader, err := l.documentReader()
	if err != nil {
		return types.ProcessReport{}, err
	}
	doc, err := reader.Read(ctx, path)
	if err != nil {
		return types.ProcessReport{}, err
	}

	rep := l.extractor.Process(doc, l.catalog.Entries())
	rep.RunID = l.newRunID()

	log := logging.WithRun(l.log, rep.RunID, rep.File)
	log.Debug().
		Str("format", rep.Format).
		Int("entries", rep.EntriesFound()).
		Int("duplicates", len(rep.Duplicates)).
		Msg("document processed")
	for _, issue := range rep.QualityIssues {
		log.Debug().Msg(issue)
	}
	return rep, nil
}

// ProcessBatch processes each file in turn. A file that cannot be read or
// parsed is reported on w and counted; the rest of the batch continues.
// Files named twice are skipped. Only cancellation stops the batch early.
func (l *Librarian) ProcessBatch(ctx context.Context, paths []string, w io.Writer) ([]types.ProcessReport, BatchSummary, error) {
	var (
		reports []types.ProcessReport
		summary BatchSummary
		seen    = make(map[string]bool)
	)
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return reports, summary, err
		}
		name := filepath.Base(path)

		key := filepath.Clean(path)
		if abs, err := filepath.Abs(path); err == nil {
			key = abs
		}
		if seen[key] {
			fmt.Fprintf(w, "skipped %s: listed twice\n", name)
			summary.Skipped++
			continue
		}
		seen[key] = true

		if info, err := os.Stat(path); err == nil && info.IsDir() {
			fmt.Fprintf(w, "skipped %s: is a directory\n", name)
			summary.Skipped++
			continue
		}

		rep, err := l.ProcessDocument(ctx, path)
		if err != nil {
			if ctx.Err() != nil {
				return reports, summary, ctx.Err()
			}
			fmt.Fprintf(w, "failed  %s: %v\n", name, err)
			summary.Failed++
			continue
		}

		fmt.Fprintf(w, "processed %s (%d entries, %d new)\n", name, rep.EntriesFound(), len(rep.NewEntries()))
		reports = append(reports, rep)
		summary.Processed++
	}
	return reports, summary, nil
}
