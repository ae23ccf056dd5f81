// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/libris/pkg/types"
)

// sheetName is the worksheet written to XLSX exports.
const sheetName = "Catalog"

var columns = []string{"id", "title", "authors", "date", "period", "themes", "notes", "source"}

func toRow(r types.Record) []string {
	return []string{
		r.ID,
		r.Title,
		strings.Join(r.Authors, "; "),
		r.Date,
		string(r.Period),
		strings.Join(r.Themes, "; "),
		r.Notes,
		r.Source,
	}
}

// fromRows maps data rows to records by the header in rows[0]. Unknown
// columns are ignored.
func fromRows(rows [][]string) ([]types.Record, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	col := make(map[string]int)
	for i, h := range rows[0] {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := col["title"]; !ok {
		return nil, fmt.Errorf("header has no title column")
	}
	cell := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var records []types.Record
	for _, row := range rows[1:] {
		rec := types.Record{
			ID:      cell(row, "id"),
			Title:   cell(row, "title"),
			Authors: splitList(cell(row, "authors")),
			Date:    cell(row, "date"),
			Themes:  splitList(cell(row, "themes")),
			Notes:   cell(row, "notes"),
			Source:  cell(row, "source"),
		}
		if rec.ID == "" && rec.Title == "" {
			continue
		}
		if p, ok := types.ParsePeriod(cell(row, "period")); ok {
			rec.Period = p
		}
		records = append(records, rec)
	}
	return records, nil
}

func writeCSV(w io.Writer, records []types.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return err
	}
	for _, r := range records {
		if err := cw.Write(toRow(r)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func readCSV(r io.Reader) ([]types.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	return fromRows(rows)
}

func writeXLSX(w io.Writer, records []types.Record) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return err
	}
	header := make([]any, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	last, _ := excelize.CoordinatesToCellName(len(columns), 1)
	if err := f.SetCellStyle(sheetName, "A1", last, bold); err != nil {
		return err
	}
	if err := f.SetColWidth(sheetName, "B", "C", 40); err != nil {
		return err
	}

	for i, r := range records {
		cells := toRow(r)
		row := make([]any, len(cells))
		for j, c := range cells {
			row[j] = c
		}
		start, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheetName, start, &row); err != nil {
			return err
		}
	}
	_, err = f.WriteTo(w)
	return err
}

func readXLSX(r io.Reader) ([]types.Record, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet := sheetName
	if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	return fromRows(rows)
}
