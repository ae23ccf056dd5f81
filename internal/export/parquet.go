// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/parquet-go/parquet-go"

	"github.com/pdiddy/libris/pkg/types"
)

// parquetRecord is the columnar layout of a record.
type parquetRecord struct {
	ID        string   `parquet:"id"`
	Title     string   `parquet:"title"`
	Authors   []string `parquet:"authors,list"`
	Date      string   `parquet:"date"`
	StartYear int32    `parquet:"start_year"`
	EndYear   int32    `parquet:"end_year"`
	Period    string   `parquet:"period"`
	Themes    []string `parquet:"themes,list"`
	Notes     string   `parquet:"notes,optional"`
	Source    string   `parquet:"source,optional"`
}

func writeParquet(w io.Writer, records []types.Record) error {
	rows := make([]parquetRecord, len(records))
	for i, r := range records {
		rows[i] = parquetRecord{
			ID:        r.ID,
			Title:     r.Title,
			Authors:   r.Authors,
			Date:      r.Date,
			StartYear: int32(r.Years.Start),
			EndYear:   int32(r.Years.End),
			Period:    string(r.Period),
			Themes:    r.Themes,
			Notes:     r.Notes,
			Source:    r.Source,
		}
	}
	pw := parquet.NewGenericWriter[parquetRecord](w)
	if _, err := pw.Write(rows); err != nil {
		pw.Close()
		return fmt.Errorf("writing rows: %w", err)
	}
	return pw.Close()
}

func readParquet(r io.Reader) ([]types.Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	pf, err := parquet.OpenFile(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening parquet: %w", err)
	}

	reader := parquet.NewGenericReader[parquetRecord](pf)
	defer reader.Close()

	var records []types.Record
	rows := make([]parquetRecord, 128)
	for {
		n, err := reader.Read(rows)
		for _, row := range rows[:n] {
			rec := types.Record{
				ID:      row.ID,
				Title:   row.Title,
				Authors: slices.Clone(row.Authors),
				Date:    row.Date,
				Years:   types.DateRange{Start: int(row.StartYear), End: int(row.EndYear)},
				Themes:  slices.Clone(row.Themes),
				Notes:   row.Notes,
				Source:  row.Source,
			}
			if p, ok := types.ParsePeriod(row.Period); ok {
				rec.Period = p
			}
			records = append(records, rec)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading rows: %w", err)
		}
	}
	return records, nil
}
