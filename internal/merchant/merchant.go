// Package merchant derives a readable merchant name from a bank
// transaction description.
package merchant

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// Bank boilerplate. Alternation order matters where phrases overlap.
	boilerplate = regexp.MustCompile(`(payment to|payment from|purchase at|pos |txn\*|debit card |card purchase |ach |direct deposit )`)
	longNumber  = regexp.MustCompile(`\d{6,}`)
	shortDate   = regexp.MustCompile(`\d{2}/\d{2}`)
)

// Extract strips boilerplate phrases, reference numbers and DD/DD dates from
// desc and title-cases what is left. If nothing is left, desc is returned
// unchanged.
func Extract(desc string) string {
	cleaned := strings.ToLower(desc)
	cleaned = boilerplate.ReplaceAllString(cleaned, "")
	cleaned = longNumber.ReplaceAllString(cleaned, "")
	cleaned = shortDate.ReplaceAllString(cleaned, "")

	words := strings.Fields(cleaned)
	if len(words) == 0 {
		return desc
	}
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}

// capitalize upper-cases the first rune of a lowercase word.
func capitalize(w string) string {
	r, size := utf8.DecodeRuneInString(w)
	if r == utf8.RuneError {
		return w
	}
	return string(unicode.ToTitle(r)) + w[size:]
}
