// Package categorize assigns spending categories by keyword lookup.
package categorize

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/smartspend-dev/spendcsv/internal/model"
)

type rule struct {
	category model.Category
	keywords []string
}

// Categorizer classifies transactions against a fixed Table. It is safe for
// concurrent use.
type Categorizer struct {
	rules []rule
}

// New builds a Categorizer from t. Keywords are matched case-insensitively.
func New(t Table) (*Categorizer, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	rules := make([]rule, 0, len(t.Order))
	for _, c := range t.Order {
		kws := make([]string, 0, len(t.Keywords[c]))
		for _, kw := range t.Keywords[c] {
			if kw == "" {
				continue
			}
			kws = append(kws, strings.ToLower(kw))
		}
		rules = append(rules, rule{category: c, keywords: kws})
	}
	return &Categorizer{rules: rules}, nil
}

// Default returns a Categorizer over DefaultTable.
func Default() *Categorizer {
	c, err := New(DefaultTable())
	if err != nil {
		panic("default category table: " + err.Error())
	}
	return c
}

// Categorize returns income for any positive amount. Otherwise it returns
// the first category in table order with a keyword contained in desc, or
// uncategorized.
func (c *Categorizer) Categorize(desc string, amount decimal.Decimal) model.Category {
	if amount.IsPositive() {
		return model.CategoryIncome
	}
	lower := strings.ToLower(desc)
	for _, r := range c.rules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.category
			}
		}
	}
	return model.CategoryUncategorized
}
