package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	formatCSV = "csv"
	utf8BOM   = "\ufeff"
)

// CSVReader reads comma-separated exports with a header row.
type CSVReader struct{}

// Format returns the reader name.
func (r *CSVReader) Format() string { return formatCSV }

// Read loads the whole CSV. Blank lines are skipped and a UTF-8 byte order
// mark on the header is dropped. A quote is only special at the start of a
// cell, so `55" TV` reads as written; a quoted cell left open at the end of
// the input is an error.
func (r *CSVReader) Read(in io.Reader) (*Table, error) {
	data, err := io.ReadAll(in)
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}
	lastLine, lastCol := cr.FieldPos(len(header) - 1)

	var rows []RawRow
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV: %w", err)
		}
		line, _ := cr.FieldPos(0)
		lastLine, lastCol = cr.FieldPos(len(rec) - 1)
		if len(rec) > len(header) {
			return nil, fmt.Errorf("row %d: %w: expected %d, got %d", line, ErrRowTooLong, len(header), len(rec))
		}
		rows = append(rows, RawRow{Line: line, Cells: rec})
	}

	if openQuote(data, lastLine, lastCol) {
		return nil, fmt.Errorf("reading CSV: %w", &csv.ParseError{
			StartLine: lastLine, Line: lastLine, Column: lastCol, Err: csv.ErrQuote,
		})
	}

	header[0] = strings.TrimPrefix(header[0], utf8BOM)
	return &Table{Header: header, Rows: rows}, nil
}

// openQuote reports whether the cell starting at line:col (1-based, as
// csv.Reader.FieldPos reports it) opens a quote that is never closed. Such a
// cell swallows the rest of the input, so only the last cell read can be one.
// It is closed when it ends in an odd run of quotes: pairs are escapes and the
// odd one out is the closing quote.
func openQuote(data []byte, line, col int) bool {
	off := 0
	for l := 1; l < line; l++ {
		i := bytes.IndexByte(data[off:], '\n')
		if i < 0 {
			return false
		}
		off += i + 1
	}
	off += col - 1
	if off < 0 || off >= len(data) || data[off] != '"' {
		return false
	}

	rest := bytes.TrimRight(data[off+1:], "\r\n")
	run := len(rest) - len(bytes.TrimRight(rest, `"`))
	return run%2 == 0
}
