// Package columns maps the headers of a bank export onto the roles the
// importer needs: date, description, amount and the optional debit/credit.
package columns

import (
	"errors"
	"fmt"
	"strings"
)

// ErrTooFewColumns is returned when a header has fewer than three columns,
// so the positional fallbacks cannot all be satisfied.
var ErrTooFewColumns = errors.New("header needs at least 3 columns")

const (
	minColumns = 3

	debitName  = "debit"
	creditName = "credit"
)

// Roles is the resolved column layout of one file. Indices point into the
// header (and every row) the roles were resolved from.
type Roles struct {
	Date        int
	Description int
	Amount      int
	Debit       int // -1 when the file has no debit column
	Credit      int // -1 when the file has no credit column

	// Names holds the normalized header, for logging and error messages.
	Names []string
}

// HasDebit reports whether a column named exactly "debit" exists.
func (r Roles) HasDebit() bool { return r.Debit >= 0 }

// HasCredit reports whether a column named exactly "credit" exists.
func (r Roles) HasCredit() bool { return r.Credit >= 0 }

// Name returns the normalized header name of column idx.
func (r Roles) Name(idx int) string {
	if idx < 0 || idx >= len(r.Names) {
		return ""
	}
	return r.Names[idx]
}

// Normalize lowercases a header name and replaces spaces with underscores.
func Normalize(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "_")
}

// NormalizeAll returns a normalized copy of header.
func NormalizeAll(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		out[i] = Normalize(h)
	}
	return out
}

// Resolve picks a column for each role from a raw header row.
//
// Date is the first column containing "date", description the first
// containing "desc" or "narr", amount the first containing "amount" or
// "sum". Each falls back to the 1st, 2nd or 3rd column respectively.
func Resolve(header []string) (Roles, error) {
	if len(header) < minColumns {
		return Roles{}, fmt.Errorf("%w, got %d", ErrTooFewColumns, len(header))
	}

	names := NormalizeAll(header)
	return Roles{
		Date:        firstContaining(names, 0, "date"),
		Description: firstContaining(names, 1, "desc", "narr"),
		Amount:      firstContaining(names, 2, "amount", "sum"),
		Debit:       indexOf(names, debitName),
		Credit:      indexOf(names, creditName),
		Names:       names,
	}, nil
}

func firstContaining(names []string, fallback int, subs ...string) int {
	for i, n := range names {
		for _, s := range subs {
			if strings.Contains(n, s) {
				return i
			}
		}
	}
	return fallback
}

func indexOf(names []string, want string) int {
	for i, n := range names {
		if n == want {
			return i
		}
	}
	return -1
}
