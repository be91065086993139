// Package dates normalizes the date cells of bank exports to ISO form.
package dates

import "time"

// ISOLayout is the output layout.
const ISOLayout = "2006-01-02"

// Layouts are tried in order; the first that parses wins. Month-first comes
// before day-first, so 01/02/2023 is January 2.
//
// Single-digit month and day fields also accept two digits, so "1/2/2006"
// covers both 1/2/2023 and 01/02/2023.
var Layouts = []string{
	"1/2/2006", // MM/DD/YYYY
	"2006-1-2", // YYYY-MM-DD
	"2/1/2006", // DD/MM/YYYY
	"1-2-2006", // MM-DD-YYYY
	"2-1-2006", // DD-MM-YYYY
	"1/2/06",   // MM/DD/YY
	"2/1/06",   // DD/MM/YY
	"2006/1/2", // YYYY/MM/DD
}

// Parse returns the first successful parse of s against Layouts.
func Parse(s string) (time.Time, bool) {
	for _, layout := range Layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Normalize renders s as YYYY-MM-DD, or returns it unchanged when no layout
// matches.
func Normalize(s string) string {
	t, ok := Parse(s)
	if !ok {
		return s
	}
	return t.Format(ISOLayout)
}
