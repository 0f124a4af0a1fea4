package core

import (
	"sort"
	"strings"
)

// CategorySummary is one row of a summary breakdown. It lives only for the
// duration of a summarize call.
type CategorySummary struct {
	Category   string
	Total      Money
	Count      int
	Percentage float64
}

// Summary is the aggregate over a filtered expense set.
type Summary struct {
	GrandTotal Money
	Breakdown  []CategorySummary
}

// Summarize groups expenses by category and computes per-category totals,
// counts and percentage of the grand total. Grouping is case-insensitive;
// the displayed name uses the most recently seen casing. The breakdown is
// ordered by descending total, ties broken by name ascending. A zero grand
// total yields zero percentages rather than an error.
func Summarize(expenses []Expense) Summary {
	type bucket struct {
		name  string
		cents int64
		count int
	}

	buckets := make(map[string]*bucket)
	for _, e := range expenses {
		key := strings.ToLower(e.Category)
		b, ok := buckets[key]
		if !ok {
			b = &bucket{}
			buckets[key] = b
		}
		b.name = e.Category
		b.cents += e.Amount.Cents
		b.count++
	}

	var grand int64
	breakdown := make([]CategorySummary, 0, len(buckets))
	for _, b := range buckets {
		grand += b.cents
		breakdown = append(breakdown, CategorySummary{
			Category: b.name,
			Total:    Money{Cents: b.cents},
			Count:    b.count,
		})
	}

	for i := range breakdown {
		if grand != 0 {
			breakdown[i].Percentage = 100 * float64(breakdown[i].Total.Cents) / float64(grand)
		}
	}

	sort.Slice(breakdown, func(i, j int) bool {
		if breakdown[i].Total.Cents != breakdown[j].Total.Cents {
			return breakdown[i].Total.Cents > breakdown[j].Total.Cents
		}
		return strings.ToLower(breakdown[i].Category) < strings.ToLower(breakdown[j].Category)
	})

	return Summary{
		GrandTotal: Money{Cents: grand},
		Breakdown:  breakdown,
	}
}
