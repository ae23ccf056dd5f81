// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert reads uploaded documents (PDF, DOCX, XLSX, CSV, TSV,
// plain text and Markdown) into text lines or table rows for extraction.
package convert

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pdiddy/libris/pkg/types"
)

var (
	// ErrUnsupportedFormat is returned for file extensions no reader handles.
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// ErrEmptyDocument is returned when a document yields no text and no
	// table rows.
	ErrEmptyDocument = errors.New("document contains no text")
)

// MaxFileSize bounds the documents Read accepts.
const MaxFileSize = 50 << 20

// Format identifies an input document type.
type Format string

const (
	FormatPDF      Format = "pdf"
	FormatDOCX     Format = "docx"
	FormatXLSX     Format = "xlsx"
	FormatCSV      Format = "csv"
	FormatTSV      Format = "tsv"
	FormatText     Format = "txt"
	FormatMarkdown Format = "md"
)

var extensions = map[string]Format{
	".pdf":      FormatPDF,
	".docx":     FormatDOCX,
	".xlsx":     FormatXLSX,
	".csv":      FormatCSV,
	".tsv":      FormatTSV,
	".txt":      FormatText,
	".text":     FormatText,
	".md":       FormatMarkdown,
	".markdown": FormatMarkdown,
}

// DetectFormat maps a file name to its Format by extension.
func DetectFormat(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if f, ok := extensions[ext]; ok {
		return f, nil
	}
	if ext == "" {
		return "", fmt.Errorf("%w: %s has no extension", ErrUnsupportedFormat, filepath.Base(path))
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
}

// Tabular reports whether documents of this format are read as rows.
func (f Format) Tabular() bool {
	return f == FormatXLSX || f == FormatCSV || f == FormatTSV
}

// Document is the readable content of one file. Prose formats fill Text;
// tabular formats fill Rows (first row is the header) and a tab-joined Text.
type Document struct {
	Name   string
	Format Format
	Text   string
	Rows   [][]string
}

// Lines splits Text into lines with trailing whitespace trimmed.
func (d Document) Lines() []string {
	lines := strings.Split(strings.ReplaceAll(d.Text, "\r\n", "\n"), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " \t\r")
	}
	return lines
}

// Converter turns a prose document (PDF or DOCX) into text. The native
// readers and the markitdown container both implement it.
type Converter interface {
	Convert(ctx context.Context, path string) (string, error)
}

// Reader dispatches files to the right reader by format.
type Reader struct {
	pdf  Converter
	docx Converter
}

// NewReader returns a Reader using the native PDF and DOCX converters.
func NewReader() *Reader {
	return &Reader{pdf: PDFConverter{}, docx: DOCXConverter{}}
}

// NewReaderWith returns a Reader that sends PDF and DOCX files through c.
func NewReaderWith(c Converter) *Reader {
	return &Reader{pdf: c, docx: c}
}

// Read loads the document at path.
func (r *Reader) Read(ctx context.Context, path string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	format, err := DetectFormat(path)
	if err != nil {
		return Document{}, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return Document{}, fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}
	if info.IsDir() {
		return Document{}, fmt.Errorf("reading %s: is a directory", filepath.Base(path))
	}
	if info.Size() > MaxFileSize {
		return Document{}, fmt.Errorf("reading %s: file exceeds %d MB", filepath.Base(path), MaxFileSize>>20)
	}

	doc := Document{Name: filepath.Base(path), Format: format}
	switch format {
	case FormatPDF:
		doc.Text, err = r.pdf.Convert(ctx, path)
	case FormatDOCX:
		doc.Text, err = r.docx.Convert(ctx, path)
	case FormatXLSX:
		doc.Rows, err = readXLSX(path)
	case FormatCSV:
		doc.Rows, err = readDelimited(path, ',')
	case FormatTSV:
		doc.Rows, err = readDelimited(path, '\t')
	case FormatText, FormatMarkdown:
		doc.Text, err = readText(path)
	}
	if err != nil {
		return Document{}, fmt.Errorf("reading %s: %w", doc.Name, err)
	}

	doc.Rows = dropBlankRows(doc.Rows)
	if format.Tabular() {
		doc.Text = joinRows(doc.Rows)
	}
	if strings.TrimSpace(doc.Text) == "" && len(doc.Rows) == 0 {
		return Document{}, fmt.Errorf("%w: %s", ErrEmptyDocument, doc.Name)
	}
	return doc, nil
}

// NewBackendReader returns a Reader for the configured backend. Plain text
// and tabular files always use the native readers. With the markitdown
// backend the container runtime is looked up when the first PDF or DOCX
// arrives, and a failed lookup is remembered for the life of the Reader.
func NewBackendReader(backend types.ConversionBackend) (*Reader, error) {
	switch backend {
	case "", types.BackendNative:
		return NewReader(), nil
	case types.BackendMarkitdown:
		return NewReaderWith(&lazyConverter{resolve: func(ctx context.Context) (Converter, error) {
			return NewMarkitdownConverter(ctx, nil)
		}}), nil
	default:
		return nil, fmt.Errorf("unknown conversion backend %q", backend)
	}
}

// lazyConverter resolves its converter once, on first use.
type lazyConverter struct {
	resolve func(ctx context.Context) (Converter, error)

	once sync.Once
	c    Converter
	err  error
}

func (l *lazyConverter) Convert(ctx context.Context, path string) (string, error) {
	l.once.Do(func() { l.c, l.err = l.resolve(ctx) })
	if l.err != nil {
		return "", l.err
	}
	return l.c.Convert(ctx, path)
}

func dropBlankRows(rows [][]string) [][]string {
	var out [][]string
	for _, row := range rows {
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				out = append(out, row)
				break
			}
		}
	}
	return out
}

func joinRows(rows [][]string) string {
	var b strings.Builder
	for _, row := range rows {
		b.WriteString(strings.Join(row, "\t"))
		b.WriteByte('\n')
	}
	return b.String()
}
