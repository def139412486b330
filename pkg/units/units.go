// Package units implements the fixed-point conversions between
// human-readable decimal amounts, 18-decimal wei values, and the integer
// tick/share units markets settle in.
//
// Every market defines num_ticks, the number of indivisible price ticks
// spanning its price range. Token amounts submitted to the exchange are
// denominated in ticks scaled by 1e18/num_ticks; prices are plain tick
// counts in [0, num_ticks]. All functions are pure; the only error paths
// are malformed numeric strings.
package units

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ToWei converts a decimal amount to 18-decimal fixed point, truncating any
// sub-wei remainder. The result is a decimal string of an integer.
func ToWei(amount decimal.Decimal) string {
	return amount.Shift(18).Truncate(0).String()
}

// FromWei converts an 18-decimal fixed-point integer string back to a
// decimal amount.
func FromWei(amount string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse wei amount %q: %w", amount, err)
	}
	return d.Shift(-18), nil
}

// ToShares maps a decimal outcome-token quantity into the tick-denominated
// integer units of a market: amount * 1e18 / numTicks, rounded to the
// nearest integer (ties away from zero).
func ToShares(amount decimal.Decimal, numTicks string) (string, error) {
	ticks, err := parseNumTicks(numTicks)
	if err != nil {
		return "", err
	}
	return amount.Shift(18).DivRound(ticks, 0).String(), nil
}

// FromShares is the inverse of ToShares: shares * numTicks / 1e18.
// Round trips are exact only when the original amount divides evenly;
// otherwise the result differs by less than one tick unit.
func FromShares(shares string, numTicks string) (decimal.Decimal, error) {
	s, err := decimal.NewFromString(shares)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse share amount %q: %w", shares, err)
	}
	ticks, err := parseNumTicks(numTicks)
	if err != nil {
		return decimal.Zero, err
	}
	return s.Mul(ticks).Shift(-18), nil
}

func parseNumTicks(numTicks string) (decimal.Decimal, error) {
	ticks, err := decimal.NewFromString(numTicks)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse num_ticks %q: %w", numTicks, err)
	}
	if ticks.Sign() <= 0 {
		return decimal.Zero, fmt.Errorf("num_ticks %q must be positive", numTicks)
	}
	return ticks, nil
}
