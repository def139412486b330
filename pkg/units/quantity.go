package units

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Quantity is an amount or price supplied by a trader. It is either a
// human-readable decimal (converted to on-chain units at quote time) or a
// value already denominated in integer tick units (passed through as-is).
type Quantity struct {
	value   decimal.Decimal
	inTicks bool
}

// Decimal wraps a human-readable decimal quantity.
func Decimal(v decimal.Decimal) Quantity {
	return Quantity{value: v}
}

// DecimalFromFloat wraps a human-readable float quantity.
func DecimalFromFloat(v float64) Quantity {
	return Quantity{value: decimal.NewFromFloat(v)}
}

// DecimalFromString parses a human-readable decimal quantity.
func DecimalFromString(s string) (Quantity, error) {
	v, err := decimal.NewFromString(s)
	if err != nil {
		return Quantity{}, fmt.Errorf("parse amount %q: %w", s, err)
	}
	return Quantity{value: v}, nil
}

// Ticks parses a quantity already denominated in integer tick units.
func Ticks(s string) (Quantity, error) {
	v, err := decimal.NewFromString(s)
	if err != nil {
		return Quantity{}, fmt.Errorf("parse tick amount %q: %w", s, err)
	}
	return Quantity{value: v, inTicks: true}, nil
}

// InTicks reports whether the quantity is already in on-chain tick units.
func (q Quantity) InTicks() bool {
	return q.inTicks
}

// NormalizeShares converts q into the integer tick-denominated token amount
// for a market with the given num_ticks. Decimal quantities go through
// ToShares; tick quantities are rounded to the nearest integer.
func NormalizeShares(q Quantity, numTicks string) (string, error) {
	if q.inTicks {
		return q.value.Round(0).String(), nil
	}
	return ToShares(q.value, numTicks)
}

// NormalizePrice converts q into an integer tick price. Decimal prices are
// fractions of the tick range and are scaled by num_ticks first. The result
// is rounded to the nearest tick (ties away from zero) and clamped to
// [0, num_ticks] regardless of how far outside the range the input was.
func NormalizePrice(q Quantity, numTicks string) (string, error) {
	ticks, err := parseNumTicks(numTicks)
	if err != nil {
		return "", err
	}
	price := q.value
	if !q.inTicks {
		price = price.Mul(ticks)
	}
	price = price.Round(0)
	switch {
	case price.Sign() < 0:
		price = decimal.Zero
	case price.GreaterThan(ticks):
		price = ticks.Round(0)
	}
	return price.String(), nil
}
