package core

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateRange is a half-open interval [Start, End) of calendar days. It is a
// transient filtering value and is never persisted.
type DateRange struct {
	Start Date
	End   Date
}

// Contains reports whether d falls inside the interval.
func (r DateRange) Contains(d Date) bool {
	return !d.Before(r.Start) && d.Before(r.End)
}

// Days returns the number of calendar days covered by the interval.
func (r DateRange) Days() int {
	return int(r.End.Sub(r.Start.Time).Hours() / 24)
}

// Resolution is the outcome of resolving a date expression: either a single
// calendar day (explicit dates, "today", "yesterday") or a multi-day range.
// Both come out of the same token vocabulary, so a tagged value avoids a
// second parser.
type Resolution struct {
	rng DateRange
}

func singleDayResolution(d Date) Resolution {
	return Resolution{rng: DateRange{Start: d, End: d.Next()}}
}

func rangeResolution(start, end Date) Resolution {
	return Resolution{rng: DateRange{Start: start, End: end}}
}

// Range returns the resolution as a filtering interval. Single days become
// the one-day interval [day, day+1).
func (r Resolution) Range() DateRange {
	return r.rng
}

// Day returns the resolved calendar day when the resolution covers exactly
// one day. Multi-day windows report false.
func (r Resolution) Day() (Date, bool) {
	if r.rng.Days() == 1 {
		return r.rng.Start, true
	}
	return Date{}, false
}

var lastNDaysRe = regexp.MustCompile(`^last\s+(\d+)\s+days?$`)

// Explicit date layouts tried in order. Numeric slash forms are read as
// month/day: "11/2" is November 2nd, never February 11th.
var explicitDateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"1/2/2006",
	"Jan 2 2006",
	"Jan 2, 2006",
	"January 2 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"2 January 2006",
}

// Year-less layouts resolve to the most recent occurrence that is not in the
// future relative to the reference clock.
var yearlessDateLayouts = []string{
	"Jan 2",
	"January 2",
	"1/2",
	"2 Jan",
	"2 January",
}

// ResolveDateExpression turns a free-form date token into a concrete day or
// half-open day range relative to now. Matching is case-insensitive. Week
// and month boundaries follow now's local calendar; weeks start on Monday.
// Unrecognized input fails with ErrInvalidDateExpression naming the token.
func ResolveDateExpression(expr string, now time.Time) (Resolution, error) {
	token := strings.ToLower(strings.Join(strings.Fields(expr), " "))
	if token == "" {
		return Resolution{}, fmt.Errorf("%w: empty expression", ErrInvalidDateExpression)
	}

	today := DateOf(now)

	switch token {
	case "today":
		return singleDayResolution(today), nil
	case "yesterday":
		return singleDayResolution(today.AddDays(-1)), nil
	case "this week":
		return rangeResolution(startOfWeek(today), today.Next()), nil
	case "last week":
		start := startOfWeek(today).AddDays(-7)
		return rangeResolution(start, start.AddDays(7)), nil
	case "this month":
		return rangeResolution(NewDate(today.Year(), today.Month(), 1), today.Next()), nil
	case "last month":
		firstOfThis := NewDate(today.Year(), today.Month(), 1)
		firstOfPrev := Date{Time: firstOfThis.AddDate(0, -1, 0)}
		return rangeResolution(firstOfPrev, firstOfThis), nil
	}

	if m := lastNDaysRe.FindStringSubmatch(token); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil || n < 1 {
			return Resolution{}, fmt.Errorf("%w: %q", ErrInvalidDateExpression, expr)
		}
		// "last N days" is inclusive of today: N days ending at tomorrow.
		return rangeResolution(today.AddDays(-(n - 1)), today.Next()), nil
	}

	if d, ok := parseExplicitDate(token, today); ok {
		return singleDayResolution(d), nil
	}

	return Resolution{}, fmt.Errorf("%w: %q", ErrInvalidDateExpression, expr)
}

// startOfWeek returns the Monday on or before d.
func startOfWeek(d Date) Date {
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDays(-offset)
}

func parseExplicitDate(token string, today Date) (Date, bool) {
	// time.Parse month names are case-sensitive; the token was lowercased.
	normalized := titleWords(token)

	for _, layout := range explicitDateLayouts {
		if t, err := time.Parse(layout, normalized); err == nil {
			return DateOf(t), true
		}
	}

	for _, layout := range yearlessDateLayouts {
		t, err := time.Parse(layout, normalized)
		if err != nil {
			continue
		}
		// Most recent occurrence not in the future.
		d := NewDate(today.Year(), int(t.Month()), t.Day())
		if today.Before(d) {
			d = NewDate(today.Year()-1, int(t.Month()), t.Day())
		}
		return d, true
	}

	return Date{}, false
}

func titleWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
