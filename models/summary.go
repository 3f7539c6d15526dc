package models

import (
	"sort"

	"github.com/shopspring/decimal"
)

// CategorySummary aggregates every transaction of one type in one category.
type CategorySummary struct {
	Category string          `json:"category"`
	Type     TransactionType `json:"type"`
	Total    decimal.Decimal `json:"total"`
	Count    int64           `json:"count"`
}

type categoryKey struct {
	category string
	typ      TransactionType
}

// CategoryTotals accumulates CategorySummary values one transaction at a time,
// so callers can stream a cursor through it without holding the records.
type CategoryTotals struct {
	sums  map[categoryKey]*CategorySummary
	count int64
}

func NewCategoryTotals() *CategoryTotals {
	return &CategoryTotals{sums: make(map[categoryKey]*CategorySummary)}
}

func (c *CategoryTotals) Add(category string, typ TransactionType, amount float64) {
	key := categoryKey{category: category, typ: typ}
	s, ok := c.sums[key]
	if !ok {
		s = &CategorySummary{Category: category, Type: typ, Total: decimal.Zero}
		c.sums[key] = s
	}
	s.Total = s.Total.Add(decimal.NewFromFloat(amount))
	s.Count++
	c.count++
}

// Count is the number of transactions added so far.
func (c *CategoryTotals) Count() int64 {
	return c.count
}

// Summaries returns income before expense, larger totals first, ties by category name.
func (c *CategoryTotals) Summaries() []CategorySummary {
	out := make([]CategorySummary, 0, len(c.sums))
	for _, s := range c.sums {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Type != out[j].Type {
			return out[i].Type == TransactionIncome
		}
		if cmp := out[i].Total.Cmp(out[j].Total); cmp != 0 {
			return cmp > 0
		}
		return out[i].Category < out[j].Category
	})
	return out
}
