package categorize

import (
	"errors"
	"fmt"

	"github.com/smartspend-dev/spendcsv/internal/model"
)

// Table is a keyword table. Order alone decides precedence; Keywords is only
// looked up by category.
type Table struct {
	Order    []model.Category            `yaml:"order" mapstructure:"order" json:"order"`
	Keywords map[model.Category][]string `yaml:"keywords" mapstructure:"keywords" json:"keywords"`
}

// DefaultTable returns the built-in keyword table.
func DefaultTable() Table {
	return Table{
		Order: []model.Category{
			model.CategoryGroceries,
			model.CategoryDining,
			model.CategoryTransportation,
			model.CategoryUtilities,
			model.CategoryEntertainment,
			model.CategoryShopping,
			model.CategoryHousing,
		},
		Keywords: map[model.Category][]string{
			model.CategoryGroceries:      {"grocery", "market", "food", "supermarket", "trader", "whole foods"},
			model.CategoryDining:         {"restaurant", "cafe", "coffee", "starbucks", "mcdonalds", "takeout"},
			model.CategoryTransportation: {"uber", "lyft", "taxi", "transport", "transit", "train", "metro"},
			model.CategoryUtilities:      {"electric", "water", "gas", "internet", "phone", "bill"},
			model.CategoryEntertainment:  {"netflix", "spotify", "movie", "theater", "hulu", "disney"},
			model.CategoryShopping:       {"amazon", "store", "shop", "target", "walmart", "purchase"},
			model.CategoryHousing:        {"rent", "mortgage", "home", "hoa", "property"},
		},
	}
}

// Validate checks that Order names each category once and avoids the
// reserved labels.
func (t Table) Validate() error {
	var errs []error
	seen := make(map[model.Category]bool, len(t.Order))
	for _, c := range t.Order {
		switch {
		case c == "":
			errs = append(errs, errors.New("empty category in order"))
		case c.Reserved():
			errs = append(errs, fmt.Errorf("category %q is reserved", c))
		case seen[c]:
			errs = append(errs, fmt.Errorf("category %q listed twice", c))
		}
		seen[c] = true
	}
	for c := range t.Keywords {
		if !seen[c] {
			errs = append(errs, fmt.Errorf("category %q has keywords but is not in order", c))
		}
	}
	return errors.Join(errs...)
}

// Clone returns a deep copy of t.
func (t Table) Clone() Table {
	out := Table{
		Order:    append([]model.Category(nil), t.Order...),
		Keywords: make(map[model.Category][]string, len(t.Keywords)),
	}
	for c, kws := range t.Keywords {
		out.Keywords[c] = append([]string(nil), kws...)
	}
	return out
}
