package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidDateExpression = errors.New("invalid date expression")
	ErrInvalidAmount         = errors.New("invalid amount")
	ErrNotFound              = errors.New("expense not found")
	ErrStoreUnavailable      = errors.New("store unavailable")
	ErrEmptyCategory         = errors.New("empty category")
)

type (
	// Date is a calendar date with no time component. The zero value is "no date".
	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// Expense is one persisted spending record. ID is assigned by the store
	// on insert and never reused or mutated afterwards.
	Expense struct {
		ID          int64
		Date        Date
		Amount      Money
		Category    string
		Subcategory string
		Note        string
	}
)

const isoDateLayout = "2006-01-02"

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar date, read in t's own location.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

// ParseISODate parses a date in 2006-01-02 form.
func ParseISODate(s string) (Date, error) {
	t, err := time.Parse(isoDateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// ISO renders the date in 2006-01-02 form.
func (d Date) ISO() string {
	return d.Format(isoDateLayout)
}

// AddDays returns the date n days later (earlier for negative n).
func (d Date) AddDays(n int) Date {
	return Date{Time: d.AddDate(0, 0, n)}
}

// Next returns the following calendar day.
func (d Date) Next() Date {
	return d.AddDays(1)
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}

// Month returns the month as an int in 1-12.
func (d Date) Month() int {
	return int(d.Time.Month())
}

func (d Date) Validate() error {
	if d.IsZero() {
		return errors.New("date cannot be zero")
	}
	return nil
}

func (e Expense) Validate() error {
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(e.Category) == "" {
		return ErrEmptyCategory
	}
	if len(e.Note) > 500 {
		return errors.New("note too long (max 500 characters)")
	}
	return nil
}
