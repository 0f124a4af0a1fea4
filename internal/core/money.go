// Package core provides the expense domain model: money handling, natural
// language date resolution and summary aggregation.
//
// This file contains functions for parsing monetary amounts and converting
// between cents and decimal representations. Amounts are kept in cents
// (int64) internally; positive means spend, but the sign is not validated
// here so refunds can be recorded as negative entries.
package core

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// CentsFromFloat converts a decimal currency value to cents with half-up
// rounding. NaN and infinities are rejected, as are values that would
// overflow int64 cents.
func CentsFromFloat(v float64) (Money, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Money{}, fmt.Errorf("%w: %v", ErrInvalidAmount, v)
	}
	cents := math.Round(v * 100)
	if cents > math.MaxInt64 || cents < math.MinInt64 {
		return Money{}, fmt.Errorf("%w: %v out of range", ErrInvalidAmount, v)
	}
	return Money{Cents: int64(cents)}, nil
}

// ParseDecimalToCents converts a decimal string to cents with half-up
// rounding on the third decimal place. It accepts both dot (12.34) and
// comma (12,34) separators and an optional leading sign.
//
// Examples:
//
//	ParseDecimalToCents("12.34")  -> 1234 cents
//	ParseDecimalToCents("12,34")  -> 1234 cents
//	ParseDecimalToCents("-5")     -> -500 cents
//	ParseDecimalToCents("12.346") -> 1235 cents (rounds up)
func ParseDecimalToCents(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, fmt.Errorf("%w: empty", ErrInvalidAmount)
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")

	neg := false
	switch {
	case strings.HasPrefix(s, "-"):
		neg = true
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}

	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return Money{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	if intPart == "0" && fracPart == "" && len(parts) == 2 {
		return Money{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	for _, r := range intPart {
		if !unicode.IsDigit(r) {
			return Money{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
		}
	}
	for _, r := range fracPart {
		if !unicode.IsDigit(r) {
			return Money{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
		}
	}

	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return Money{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	// Prevent overflow when multiplying by 100
	const maxSafeInt64 = (1<<63 - 1) / 100
	if iv > maxSafeInt64 {
		return Money{}, fmt.Errorf("%w: %q out of range", ErrInvalidAmount, s)
	}

	// Take the first two fractional digits, half-up rounding on the third.
	var fracCents int64
	if len(fracPart) > 0 {
		fracCents = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			fracCents += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}

	cents := iv*100 + fracCents
	if neg {
		cents = -cents
	}
	return Money{Cents: cents}, nil
}

// Float64 returns the decimal value for display and wire serialization.
// Use cents for arithmetic to avoid floating-point drift.
func (m Money) Float64() float64 {
	return float64(m.Cents) / 100.0
}
