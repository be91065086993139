package categorize

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartspend-dev/spendcsv/internal/model"
)

var expense = decimal.NewFromFloat(-12.5)

func TestCategorize_Keywords(t *testing.T) {
	c := Default()
	tests := []struct {
		desc string
		want model.Category
	}{
		{"WHOLE FOODS MARKET #102", model.CategoryGroceries},
		{"Seafoodstuff Co", model.CategoryGroceries}, // substring, not whole word
		{"STARBUCKS STORE 1234", model.CategoryDining},
		{"Uber *Trip", model.CategoryTransportation},
		{"City Water Dept", model.CategoryUtilities},
		{"NETFLIX.COM", model.CategoryEntertainment},
		{"AMAZON MKTPLACE", model.CategoryShopping},
		{"HOA dues", model.CategoryHousing},
		{"Check #1042", model.CategoryUncategorized},
		{"", model.CategoryUncategorized},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, c.Categorize(tt.desc, expense), "Categorize(%q)", tt.desc)
	}
}

func TestCategorize_TableOrder(t *testing.T) {
	c := Default()
	// dining is declared before transportation.
	assert.Equal(t, model.CategoryDining, c.Categorize("coffee then uber", expense))
	assert.Equal(t, model.CategoryDining, c.Categorize("uber then coffee", expense))
}

func TestCategorize_PositiveIsIncome(t *testing.T) {
	c := Default()
	assert.Equal(t, model.CategoryIncome, c.Categorize("STARBUCKS REFUND", decimal.NewFromInt(5)))
	assert.Equal(t, model.CategoryIncome, c.Categorize("Payroll", decimal.RequireFromString("0.01")))
}

func TestCategorize_ZeroIsNotIncome(t *testing.T) {
	c := Default()
	assert.Equal(t, model.CategoryDining, c.Categorize("cafe", decimal.Zero))
	assert.Equal(t, model.CategoryUncategorized, c.Categorize("adjustment", decimal.Zero))
}

func TestCategorize_Deterministic(t *testing.T) {
	c := Default()
	first := c.Categorize("Target T-1234 phone bill", expense)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, c.Categorize("Target T-1234 phone bill", expense))
	}
	assert.Equal(t, model.CategoryUtilities, first)
}

func TestNew_CustomTable(t *testing.T) {
	table := Table{
		Order: []model.Category{"travel", model.CategoryDining},
		Keywords: map[model.Category][]string{
			"travel":             {"AIRLINE", "hotel"},
			model.CategoryDining: {"hotel bar"},
		},
	}
	c, err := New(table)
	require.NoError(t, err)

	assert.Equal(t, model.Category("travel"), c.Categorize("Hotel Bar Tab", expense))
	assert.Equal(t, model.Category("travel"), c.Categorize("United Airline", expense))
	assert.Equal(t, model.CategoryUncategorized, c.Categorize("starbucks", expense))
}

func TestNew_ReorderChangesPrecedence(t *testing.T) {
	table := DefaultTable()
	table.Order[1], table.Order[2] = table.Order[2], table.Order[1]

	c, err := New(table)
	require.NoError(t, err)
	assert.Equal(t, model.CategoryTransportation, c.Categorize("coffee then uber", expense))
}

func TestValidate(t *testing.T) {
	assert.NoError(t, DefaultTable().Validate())

	tests := []struct {
		name  string
		table Table
	}{
		{"reserved income", Table{Order: []model.Category{model.CategoryIncome}}},
		{"reserved uncategorized", Table{Order: []model.Category{model.CategoryUncategorized}}},
		{"duplicate", Table{Order: []model.Category{"a", "a"}}},
		{"empty", Table{Order: []model.Category{""}}},
		{"orphan keywords", Table{
			Order:    []model.Category{"a"},
			Keywords: map[model.Category][]string{"b": {"x"}},
		}},
	}
	for _, tt := range tests {
		assert.Error(t, tt.table.Validate(), tt.name)
		_, err := New(tt.table)
		assert.Error(t, err, tt.name)
	}
}

func TestClone_Independent(t *testing.T) {
	orig := DefaultTable()
	cp := orig.Clone()
	cp.Order[0] = "changed"
	cp.Keywords[model.CategoryDining][0] = "changed"

	assert.Equal(t, model.CategoryGroceries, orig.Order[0])
	assert.Equal(t, "restaurant", orig.Keywords[model.CategoryDining][0])
}
