package importer

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

const formatXLSX = "xlsx"

// XLSXReader reads the first sheet of an Excel workbook. The first non-blank
// row is the header.
type XLSXReader struct{}

// Format returns the reader name.
func (r *XLSXReader) Format() string { return formatXLSX }

// Read loads every row of the first sheet as strings.
func (r *XLSXReader) Read(in io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(in)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, errors.New("workbook has no sheets")
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}

	var table *Table
	for i, row := range rows {
		if blank(row) {
			continue
		}
		if table == nil {
			table = &Table{Header: row}
			continue
		}
		if len(row) > len(table.Header) {
			return nil, fmt.Errorf("row %d: %w: expected %d, got %d", i+1, ErrRowTooLong, len(table.Header), len(row))
		}
		table.Rows = append(table.Rows, RawRow{Line: i + 1, Cells: row})
	}
	if table == nil {
		return nil, ErrEmptyFile
	}
	return table, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
