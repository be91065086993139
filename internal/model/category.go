package model

// Category labels a transaction's spending bucket.
type Category string

const (
	CategoryGroceries      Category = "groceries"
	CategoryDining         Category = "dining"
	CategoryTransportation Category = "transportation"
	CategoryUtilities      Category = "utilities"
	CategoryEntertainment  Category = "entertainment"
	CategoryShopping       Category = "shopping"
	CategoryHousing        Category = "housing"

	// CategoryIncome is assigned to every positive amount, never by keyword.
	CategoryIncome        Category = "income"
	CategoryUncategorized Category = "uncategorized"
)

// Reserved reports whether c is assigned by the categorizer itself rather
// than through a keyword list.
func (c Category) Reserved() bool {
	return c == CategoryIncome || c == CategoryUncategorized
}
