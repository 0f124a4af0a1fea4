package core

import (
	"errors"
	"testing"
	"time"
)

// Wednesday 2024-11-27, mid-afternoon.
var refNow = time.Date(2024, 11, 27, 15, 4, 5, 0, time.UTC)

func TestResolveRelativeKeywords(t *testing.T) {
	cases := []struct {
		expr  string
		start Date
		end   Date
	}{
		{"today", NewDate(2024, 11, 27), NewDate(2024, 11, 28)},
		{"Today", NewDate(2024, 11, 27), NewDate(2024, 11, 28)},
		{"yesterday", NewDate(2024, 11, 26), NewDate(2024, 11, 27)},
		{"this week", NewDate(2024, 11, 25), NewDate(2024, 11, 28)},
		{"last week", NewDate(2024, 11, 18), NewDate(2024, 11, 25)},
		{"this month", NewDate(2024, 11, 1), NewDate(2024, 11, 28)},
		{"last month", NewDate(2024, 10, 1), NewDate(2024, 11, 1)},
		{"last 7 days", NewDate(2024, 11, 21), NewDate(2024, 11, 28)},
		{"last 1 day", NewDate(2024, 11, 27), NewDate(2024, 11, 28)},
		{"  last   30   days ", NewDate(2024, 10, 29), NewDate(2024, 11, 28)},
	}
	for _, tc := range cases {
		res, err := ResolveDateExpression(tc.expr, refNow)
		if err != nil {
			t.Fatalf("%q: unexpected error %v", tc.expr, err)
		}
		r := res.Range()
		if !r.Start.Equal(tc.start.Time) || !r.End.Equal(tc.end.Time) {
			t.Fatalf("%q: got [%s, %s), want [%s, %s)",
				tc.expr, r.Start.ISO(), r.End.ISO(), tc.start.ISO(), tc.end.ISO())
		}
	}
}

func TestResolveTodayIsOneDay(t *testing.T) {
	res, err := ResolveDateExpression("today", refNow)
	if err != nil {
		t.Fatal(err)
	}
	r := res.Range()
	if r.Days() != 1 {
		t.Fatalf("expected one-day range, got %d days", r.Days())
	}
	if !r.Contains(DateOf(refNow)) {
		t.Fatal("range should contain the reference date")
	}
	if r.Contains(DateOf(refNow).AddDays(-1)) || r.Contains(DateOf(refNow).AddDays(1)) {
		t.Fatal("range should exclude adjacent days")
	}
}

func TestResolveLastSevenDays(t *testing.T) {
	res, err := ResolveDateExpression("last 7 days", refNow)
	if err != nil {
		t.Fatal(err)
	}
	r := res.Range()
	if r.Days() != 7 {
		t.Fatalf("expected 7 days, got %d", r.Days())
	}
	if !r.End.Equal(DateOf(refNow).Next().Time) {
		t.Fatalf("range should end the day after the reference date, got %s", r.End.ISO())
	}
	if !r.Contains(DateOf(refNow)) {
		t.Fatal("last N days should include today")
	}
}

func TestResolveExplicitDates(t *testing.T) {
	cases := []struct {
		expr string
		want Date
	}{
		{"2024-11-27", NewDate(2024, 11, 27)},
		{"2024/11/02", NewDate(2024, 11, 2)},
		{"Nov 27", NewDate(2024, 11, 27)},
		{"nov 27", NewDate(2024, 11, 27)},
		{"November 27 2024", NewDate(2024, 11, 27)},
		{"November 27, 2024", NewDate(2024, 11, 27)},
		{"27 Nov 2024", NewDate(2024, 11, 27)},
		// Month/day order, most-recent-past bias.
		{"11/2", NewDate(2024, 11, 2)},
		{"11/27/2024", NewDate(2024, 11, 27)},
		// Dec 1 has not happened yet relative to refNow, so it is last year's.
		{"Dec 1", NewDate(2023, 12, 1)},
		{"12/1", NewDate(2023, 12, 1)},
	}
	for _, tc := range cases {
		res, err := ResolveDateExpression(tc.expr, refNow)
		if err != nil {
			t.Fatalf("%q: unexpected error %v", tc.expr, err)
		}
		day, ok := res.Day()
		if !ok {
			t.Fatalf("%q: expected a single-day resolution", tc.expr)
		}
		if !day.Equal(tc.want.Time) {
			t.Fatalf("%q: got %s, want %s", tc.expr, day.ISO(), tc.want.ISO())
		}
	}
}

func TestResolveWeekStartsMonday(t *testing.T) {
	// Sunday 2024-12-01: "this week" should reach back to Monday Nov 25.
	sunday := time.Date(2024, 12, 1, 9, 0, 0, 0, time.UTC)
	res, err := ResolveDateExpression("this week", sunday)
	if err != nil {
		t.Fatal(err)
	}
	if got := res.Range().Start; !got.Equal(NewDate(2024, 11, 25).Time) {
		t.Fatalf("got week start %s, want 2024-11-25", got.ISO())
	}
}

func TestResolveLastMonthOnTheFirst(t *testing.T) {
	first := time.Date(2024, 12, 1, 0, 30, 0, 0, time.UTC)
	res, err := ResolveDateExpression("last month", first)
	if err != nil {
		t.Fatal(err)
	}
	r := res.Range()
	if !r.Start.Equal(NewDate(2024, 11, 1).Time) || !r.End.Equal(NewDate(2024, 12, 1).Time) {
		t.Fatalf("got [%s, %s), want the full previous month", r.Start.ISO(), r.End.ISO())
	}
	if r.Contains(NewDate(2024, 12, 1)) {
		t.Fatal("last month must not contain the current month")
	}
}

func TestResolveInvalidExpressions(t *testing.T) {
	for _, expr := range []string{"", "   ", "fortnight ago", "last days", "last 0 days", "2024-13-40", "soon"} {
		_, err := ResolveDateExpression(expr, refNow)
		if err == nil {
			t.Fatalf("%q: expected error", expr)
		}
		if !errors.Is(err, ErrInvalidDateExpression) {
			t.Fatalf("%q: expected ErrInvalidDateExpression, got %v", expr, err)
		}
	}
}

func TestResolutionDayForRanges(t *testing.T) {
	res, err := ResolveDateExpression("last week", refNow)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := res.Day(); ok {
		t.Fatal("multi-day window should not resolve to a single day")
	}

	res, err = ResolveDateExpression("yesterday", refNow)
	if err != nil {
		t.Fatal(err)
	}
	day, ok := res.Day()
	if !ok || !day.Equal(NewDate(2024, 11, 26).Time) {
		t.Fatalf("yesterday should be the single day 2024-11-26, got %v ok=%v", day, ok)
	}
}
