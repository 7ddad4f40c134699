// Package money provides exact-decimal monetary arithmetic and the two
// rounding policies used throughout the bill computation:
//
//   - RoundBank (half-to-even) for every externally visible total
//   - RoundPlain (half-away-from-zero) for intermediate per-share steps
//
// The distinction matters: using banker's rounding inside the allocation
// would change which diner absorbs residue cents. All values flow through
// github.com/shopspring/decimal; float64 never touches the money path.
package money

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Places is the canonical display and storage precision.
const Places = 2

// ErrNegativePrice is returned when parsing a price below zero.
var ErrNegativePrice = errors.New("price cannot be negative")

// RoundBank rounds to 2 places using half-to-even.
// Idempotent on values already at 2 places.
func RoundBank(d decimal.Decimal) decimal.Decimal {
	return d.RoundBank(Places)
}

// RoundPlain rounds to 2 places using half-away-from-zero.
func RoundPlain(d decimal.Decimal) decimal.Decimal {
	return d.Round(Places)
}

// ParsePrice parses a price string into an exact decimal.
// Prices must be non-negative with at most 2 fractional digits.
func ParsePrice(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid price %q: %w", s, err)
	}
	if d.IsNegative() {
		return decimal.Zero, ErrNegativePrice
	}
	if !d.Equal(d.Round(Places)) {
		return decimal.Zero, fmt.Errorf("price %q has more than %d decimal places", s, Places)
	}
	return d, nil
}

// ParseRate parses a service-charge rate (a fraction, e.g. "0.125" for
// 12.5%). Any non-negative rate is accepted; the fixed menu offered to
// clients lives in the receipt package.
func ParseRate(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid rate %q: %w", s, err)
	}
	if d.IsNegative() {
		return decimal.Zero, errors.New("rate cannot be negative")
	}
	return d, nil
}

// Format renders a value at canonical precision, e.g. "14.00".
func Format(d decimal.Decimal) string {
	return d.StringFixed(Places)
}
