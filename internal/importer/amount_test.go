package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartspend-dev/spendcsv/internal/columns"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"-4.50", "-4.5"},
		{"$2,500.00", "2500"},
		{"-$1,023.99", "-1023.99"},
		{" 12 ", "12"},
		{"1e3", "1000"},
	}
	for _, tt := range tests {
		got, err := ParseAmount(tt.in)
		require.NoError(t, err, "ParseAmount(%q)", tt.in)
		assert.Equal(t, tt.want, got.String(), "ParseAmount(%q)", tt.in)
	}
}

func TestParseAmount_Invalid(t *testing.T) {
	for _, in := range []string{"", "abc", "12.3.4", "$", "(12.00)"} {
		_, err := ParseAmount(in)
		require.Error(t, err, "ParseAmount(%q)", in)
		assert.ErrorIs(t, err, ErrInvalidAmount)
	}
}

func roles(t *testing.T, header ...string) columns.Roles {
	t.Helper()
	r, err := columns.Resolve(header)
	require.NoError(t, err)
	return r
}

func row(cells ...string) RawRow {
	return RawRow{Line: 2, Cells: cells}
}

func TestResolveAmount_AmountColumn(t *testing.T) {
	r := roles(t, "Date", "Description", "Amount")
	got, err := ResolveAmount(row("01/02/2023", "x", "-4.50"), r)
	require.NoError(t, err)
	assert.Equal(t, "-4.5", got.String())
}

func TestResolveAmount_DebitOverride(t *testing.T) {
	r := roles(t, "Date", "Description", "Amount", "Debit", "Credit")

	got, err := ResolveAmount(row("d", "x", "99", "12.00", ""), r)
	require.NoError(t, err)
	assert.Equal(t, "-12", got.String())

	got, err = ResolveAmount(row("d", "x", "99", "", "$1,000"), r)
	require.NoError(t, err)
	assert.Equal(t, "1000", got.String())
}

func TestResolveAmount_DebitBeatsCredit(t *testing.T) {
	r := roles(t, "Date", "Description", "Debit", "Credit")
	got, err := ResolveAmount(row("d", "x", "10.00", "10.00"), r)
	require.NoError(t, err)
	assert.True(t, got.IsNegative())
	assert.Equal(t, "-10", got.String())
}

func TestResolveAmount_WhitespaceCellIsMissing(t *testing.T) {
	r := roles(t, "Date", "Description", "Amount", "Debit", "Credit")
	got, err := ResolveAmount(row("d", "x", "5", "  ", "7"), r)
	require.NoError(t, err)
	assert.Equal(t, "7", got.String())
}

func TestResolveAmount_NullMarkersAreMissing(t *testing.T) {
	r := roles(t, "Date", "Description", "Amount", "Debit", "Credit")

	for _, marker := range []string{"N/A", "NA", "null", "None", "nan", "#N/A", " NULL "} {
		got, err := ResolveAmount(row("d", "x", "-5", marker, "7"), r)
		require.NoError(t, err, marker)
		assert.Equal(t, "7", got.String(), marker)

		got, err = ResolveAmount(row("d", "x", marker, "4", marker), r)
		require.NoError(t, err, marker)
		assert.Equal(t, "-4", got.String(), marker)
	}

	_, err := ResolveAmount(row("d", "x", "N/A", "n/a", "#N/A"), r)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	// Markers are matched exactly, not case-folded.
	_, err = ResolveAmount(row("d", "x", "-5", "Null"), r)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestResolveAmount_EmptyAmountNoOverride(t *testing.T) {
	r := roles(t, "Date", "Description", "Amount")
	_, err := ResolveAmount(row("d", "x", ""), r)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidAmount)
	assert.Contains(t, err.Error(), `"amount"`)
}

func TestResolveAmount_ShortRowUsesOverride(t *testing.T) {
	r := roles(t, "Date", "Description", "Amount", "Credit")
	got, err := ResolveAmount(row("d", "x", "", "3"), r)
	require.NoError(t, err)
	assert.Equal(t, "3", got.String())

	_, err = ResolveAmount(row("d", "x"), r)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestResolveAmount_BadCells(t *testing.T) {
	r := roles(t, "Date", "Description", "Amount", "Debit")

	// The amount cell is parsed even when a debit override follows.
	_, err := ResolveAmount(row("d", "x", "tbd", "5"), r)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = ResolveAmount(row("d", "x", "5", "five"), r)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidAmount)
	assert.Contains(t, err.Error(), `"debit"`)
}
