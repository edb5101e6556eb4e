package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Money is a signed count of minor currency units (cents). All stored and
// computed monetary values use this integer representation; floating point is
// never used for storage or comparison.
type Money int64

// MinorUnitsPerMajor is the number of minor units in one major unit.
const MinorUnitsPerMajor = 100

func (m Money) Add(n Money) Money { return m + n }
func (m Money) Sub(n Money) Money { return m - n }
func (m Money) Neg() Money        { return -m }

func (m Money) IsZero() bool     { return m == 0 }
func (m Money) IsPositive() bool { return m > 0 }
func (m Money) IsNegative() bool { return m < 0 }

// Abs returns the magnitude of m. Liability balances are always aggregated
// through this, irrespective of their stored sign.
func (m Money) Abs() Money {
	if m < 0 {
		return -m
	}
	return m
}

// Major returns the exact major-unit representation with two fraction digits,
// e.g. Money(12345) -> "123.45". Since m is an integer count of minor units
// the conversion never rounds.
func (m Money) Major() string {
	return decimal.New(int64(m), -2).StringFixed(2)
}

// ParseMajor converts a major-unit string such as "123.45" into Money.
// Values with more than two fraction digits cannot be represented exactly
// and are rejected.
func ParseMajor(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid monetary value %q: %w", s, err)
	}
	minor := d.Shift(2)
	if !minor.IsInteger() {
		return 0, fmt.Errorf("monetary value %q has sub-minor-unit precision", s)
	}
	return Money(minor.IntPart()), nil
}
