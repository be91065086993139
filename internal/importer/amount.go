package importer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/smartspend-dev/spendcsv/internal/columns"
)

// ErrInvalidAmount is returned when a money cell does not parse as a number
// once currency symbols and thousands separators are removed.
var ErrInvalidAmount = errors.New("invalid amount")

var amountCleaner = strings.NewReplacer("$", "", ",", "")

// nullMarkers are the spreadsheet and export placeholders read as an absent
// value. Matching is exact after trimming spaces.
var nullMarkers = map[string]struct{}{
	"#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {},
	"N/A": {}, "NA": {}, "NULL": {}, "NaN": {}, "None": {},
	"n/a": {}, "nan": {}, "null": {},
}

// missing reports whether a cell is blank or holds a null marker.
func missing(cell string) bool {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return true
	}
	_, ok := nullMarkers[cell]
	return ok
}

// ParseAmount strips "$" and "," from cell and parses what is left.
func ParseAmount(cell string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(amountCleaner.Replace(cell))
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w %q", ErrInvalidAmount, cell)
	}
	return d, nil
}

// ResolveAmount returns the signed amount of row. The amount column is read
// first; a non-empty debit cell then overrides it with its negation, or
// failing that a non-empty credit cell overrides it as is.
func ResolveAmount(row RawRow, roles columns.Roles) (decimal.Decimal, error) {
	var (
		amount decimal.Decimal
		have   bool
	)
	if cell := row.Cell(roles.Amount); !missing(cell) {
		d, err := ParseAmount(cell)
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("column %q: %w", roles.Name(roles.Amount), err)
		}
		amount, have = d, true
	}

	if roles.HasDebit() {
		if cell := row.Cell(roles.Debit); !missing(cell) {
			d, err := ParseAmount(cell)
			if err != nil {
				return decimal.Decimal{}, fmt.Errorf("column %q: %w", roles.Name(roles.Debit), err)
			}
			return d.Neg(), nil
		}
	}
	if roles.HasCredit() {
		if cell := row.Cell(roles.Credit); !missing(cell) {
			d, err := ParseAmount(cell)
			if err != nil {
				return decimal.Decimal{}, fmt.Errorf("column %q: %w", roles.Name(roles.Credit), err)
			}
			return d, nil
		}
	}

	if !have {
		return decimal.Decimal{}, fmt.Errorf("column %q: %w: empty cell", roles.Name(roles.Amount), ErrInvalidAmount)
	}
	return amount, nil
}
