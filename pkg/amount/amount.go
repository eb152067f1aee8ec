// Package amount converts between human-readable decimal amounts and the
// integer base units the daemon accounts in.
package amount

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// Parse converts a decimal string like "10.5" into base units, given the
// asset's precision (number of decimal places of one whole unit). It fails
// on negative amounts and on amounts with more fractional digits than the
// precision allows, rather than silently truncating value.
func Parse(s string, precision uint) (uint64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("amount must not be negative")
	}

	scaled := d.Mul(decimal.New(1, int32(precision)))
	if !scaled.Equal(scaled.Truncate(0)) {
		return 0, fmt.Errorf(
			"amount %q has more than %d decimal places", s, precision,
		)
	}

	base := scaled.BigInt()
	if !base.IsUint64() {
		return 0, fmt.Errorf("amount %q overflows base units", s)
	}
	return base.Uint64(), nil
}

// Format renders base units as a decimal string with the given precision.
func Format(baseUnits uint64, precision uint) string {
	return decimal.NewFromBigInt(
		new(big.Int).SetUint64(baseUnits), -int32(precision),
	).String()
}
