// Package importer turns an uploaded bank export into normalized
// transactions: it reads the file into a table, resolves the column roles
// once and transforms every row.
package importer

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

var (
	// ErrEmptyFile is returned when a file has no header row.
	ErrEmptyFile = errors.New("file has no header row")
	// ErrRowTooLong is returned when a row has more cells than the header.
	ErrRowTooLong = errors.New("row has more fields than header")
	// ErrUnsupportedFormat is returned for a format no reader handles.
	ErrUnsupportedFormat = errors.New("unsupported file format")
)

// RawRow is one data row as found in the file. Cells line up with the
// header; cells past the end of a short row read as missing.
type RawRow struct {
	Line  int // 1-based position in the file, header is line 1
	Cells []string
}

// Cell returns the cell at idx, or "" when the row is too short.
func (r RawRow) Cell(idx int) string {
	if idx < 0 || idx >= len(r.Cells) {
		return ""
	}
	return r.Cells[idx]
}

// Table is a whole file held in memory: its header and data rows, all cells
// as strings.
type Table struct {
	Header []string
	Rows   []RawRow
}

// Reader decodes one file format into a Table.
type Reader interface {
	Read(r io.Reader) (*Table, error)
	Format() string
}

// Registry holds readers by format and file extension.
type Registry struct {
	readers    map[string]Reader
	extensions map[string]string
	fallback   string
}

// NewRegistry creates an empty registry. Files whose extension no reader
// claims are read with the fallback format.
func NewRegistry(fallback string) *Registry {
	return &Registry{
		readers:    make(map[string]Reader),
		extensions: make(map[string]string),
		fallback:   strings.ToLower(fallback),
	}
}

// Register adds a reader for the given extensions. Panics on duplicate format.
func (r *Registry) Register(rd Reader, exts ...string) {
	key := strings.ToLower(rd.Format())
	if _, ok := r.readers[key]; ok {
		panic("duplicate reader format: " + key)
	}
	r.readers[key] = rd
	for _, ext := range exts {
		r.extensions[strings.ToLower(ext)] = key
	}
}

// Get returns the reader for format, or nil.
func (r *Registry) Get(format string) Reader {
	return r.readers[strings.ToLower(format)]
}

// ForFile returns the reader for name's extension.
func (r *Registry) ForFile(name string) (Reader, error) {
	format, ok := r.extensions[strings.ToLower(filepath.Ext(name))]
	if !ok {
		format = r.fallback
	}
	rd := r.Get(format)
	if rd == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
	}
	return rd, nil
}

// DefaultRegistry returns a registry with all built-in readers. Unknown
// extensions are read as CSV.
func DefaultRegistry() *Registry {
	r := NewRegistry(formatCSV)
	r.Register(&CSVReader{}, ".csv", ".txt")
	r.Register(&XLSXReader{}, ".xlsx")
	return r
}
