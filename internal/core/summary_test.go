package core

import (
	"math"
	"testing"
)

func expense(date Date, cents int64, category string) Expense {
	return Expense{Date: date, Amount: Money{Cents: cents}, Category: category}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.GrandTotal.Cents != 0 {
		t.Fatalf("expected zero grand total, got %d", s.GrandTotal.Cents)
	}
	if len(s.Breakdown) != 0 {
		t.Fatalf("expected empty breakdown, got %d rows", len(s.Breakdown))
	}
}

func TestSummarizeScenario(t *testing.T) {
	s := Summarize([]Expense{
		expense(NewDate(2024, 11, 1), 2000, "food"),
		expense(NewDate(2024, 11, 2), 3000, "food"),
		expense(NewDate(2024, 11, 2), 5000, "transport"),
	})

	if s.GrandTotal.Cents != 10000 {
		t.Fatalf("grand total: got %d, want 10000", s.GrandTotal.Cents)
	}
	if len(s.Breakdown) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(s.Breakdown))
	}
	// Equal totals: tie broken by name ascending, food before transport.
	if s.Breakdown[0].Category != "food" || s.Breakdown[1].Category != "transport" {
		t.Fatalf("unexpected order: %q, %q", s.Breakdown[0].Category, s.Breakdown[1].Category)
	}
	for _, row := range s.Breakdown {
		if row.Total.Cents != 5000 {
			t.Fatalf("%s total: got %d, want 5000", row.Category, row.Total.Cents)
		}
		if row.Percentage != 50 {
			t.Fatalf("%s percentage: got %v, want 50", row.Category, row.Percentage)
		}
	}
	if s.Breakdown[0].Count != 2 || s.Breakdown[1].Count != 1 {
		t.Fatalf("unexpected counts: %d, %d", s.Breakdown[0].Count, s.Breakdown[1].Count)
	}
}

func TestSummarizeOrdersByDescendingTotal(t *testing.T) {
	s := Summarize([]Expense{
		expense(NewDate(2024, 1, 1), 100, "a"),
		expense(NewDate(2024, 1, 1), 900, "b"),
		expense(NewDate(2024, 1, 1), 500, "c"),
	})
	got := []string{s.Breakdown[0].Category, s.Breakdown[1].Category, s.Breakdown[2].Category}
	want := []string{"b", "c", "a"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSummarizeCaseInsensitiveGrouping(t *testing.T) {
	s := Summarize([]Expense{
		expense(NewDate(2024, 1, 1), 100, "Food"),
		expense(NewDate(2024, 1, 2), 200, "FOOD"),
		expense(NewDate(2024, 1, 3), 300, "food"),
	})
	if len(s.Breakdown) != 1 {
		t.Fatalf("expected one group, got %d", len(s.Breakdown))
	}
	// Display casing follows the most recently seen record.
	if s.Breakdown[0].Category != "food" {
		t.Fatalf("display name: got %q, want %q", s.Breakdown[0].Category, "food")
	}
	if s.Breakdown[0].Total.Cents != 600 || s.Breakdown[0].Count != 3 {
		t.Fatalf("unexpected aggregate: %+v", s.Breakdown[0])
	}
}

func TestSummarizeSumAndPercentageLaws(t *testing.T) {
	s := Summarize([]Expense{
		expense(NewDate(2024, 3, 1), 1234, "food"),
		expense(NewDate(2024, 3, 2), 5678, "transport"),
		expense(NewDate(2024, 3, 3), 91011, "housing"),
		expense(NewDate(2024, 3, 4), 1213, "food"),
	})

	var sumCents int64
	var sumPct float64
	for _, row := range s.Breakdown {
		sumCents += row.Total.Cents
		sumPct += row.Percentage
	}
	if sumCents != s.GrandTotal.Cents {
		t.Fatalf("category totals sum to %d, grand total is %d", sumCents, s.GrandTotal.Cents)
	}
	if math.Abs(sumPct-100) > 1e-9 {
		t.Fatalf("percentages sum to %v, want 100", sumPct)
	}
}

func TestSummarizeZeroGrandTotal(t *testing.T) {
	// A refund cancelling a spend: grand total is zero, percentages stay zero.
	s := Summarize([]Expense{
		expense(NewDate(2024, 3, 1), 2500, "food"),
		expense(NewDate(2024, 3, 2), -2500, "transport"),
	})
	if s.GrandTotal.Cents != 0 {
		t.Fatalf("expected zero grand total, got %d", s.GrandTotal.Cents)
	}
	for _, row := range s.Breakdown {
		if row.Percentage != 0 {
			t.Fatalf("%s: expected zero percentage, got %v", row.Category, row.Percentage)
		}
	}
}
