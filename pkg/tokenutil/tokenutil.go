// Package tokenutil converts between human-readable token amounts and the
// base units moved by the escrow program.
package tokenutil

import (
	"fmt"
	"math"
	"math/big"

	"github.com/shopspring/decimal"
)

var maxBaseUnits = decimal.NewFromBigInt(
	new(big.Int).SetUint64(math.MaxUint64), 0,
)

// ToBaseUnits converts a human-readable amount (ie. "10.00") into base units
// for an asset with the given number of decimals.
func ToBaseUnits(amount string, decimals int32) (uint64, error) {
	dec, err := decimal.NewFromString(amount)
	if err != nil {
		return 0, fmt.Errorf("invalid amount: %w", err)
	}
	if dec.IsNegative() || dec.IsZero() {
		return 0, fmt.Errorf("amount must be greater than zero")
	}
	if dec.Exponent() < -decimals {
		return 0, fmt.Errorf("amount has more than %d decimal places", decimals)
	}

	baseUnits := dec.Shift(decimals)
	if !baseUnits.IsInteger() {
		return 0, fmt.Errorf("amount has more than %d decimal places", decimals)
	}
	if baseUnits.Cmp(maxBaseUnits) > 0 {
		return 0, fmt.Errorf("amount exceeds the maximum representable base units")
	}
	return baseUnits.BigInt().Uint64(), nil
}

// FromBaseUnits formats base units as a human-readable amount for an asset
// with the given number of decimals.
func FromBaseUnits(baseUnits uint64, decimals int32) string {
	dec := decimal.NewFromBigInt(new(big.Int).SetUint64(baseUnits), 0)
	return dec.Shift(-decimals).StringFixed(decimals)
}
