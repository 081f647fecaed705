package mathutil

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// DefaultPrecision is the number of minor-unit decimals of an asset that does
// not declare its own precision.
const DefaultPrecision = 8

func init() {
	decimal.DivisionPrecision = DefaultPrecision
}

// ToMinorUnits converts a human-entered decimal amount to integer minor units
// at the given precision. The result is floored, never rounded up, so the
// converted amount cannot overshoot what the user typed.
func ToMinorUnits(amount decimal.Decimal, precision int) uint64 {
	units := amount.Mul(decimal.New(1, int32(precision))).Floor()
	return units.BigInt().Uint64()
}

// FromMinorUnits converts an integer amount of minor units to a decimal
// amount at the given precision. The conversion is exact.
func FromMinorUnits(amount uint64, precision int) decimal.Decimal {
	units := decimal.NewFromBigInt(new(big.Int).SetUint64(amount), 0)
	return units.Div(decimal.New(1, int32(precision)))
}

// FromUint converts a uint64 to decimal.Decimal without going through the
// int64 range.
func FromUint(x uint64) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(x), 0)
}

// Add takes two uint64 numbers and sums them x + y returning the result as decimal.Decimal
func Add(x, y uint64) decimal.Decimal {
	return FromUint(x).Add(FromUint(y))
}

// Sub takes two uint64 numbers and subtracts them x - y returning the result as decimal.Decimal
func Sub(x, y uint64) decimal.Decimal {
	return FromUint(x).Sub(FromUint(y))
}

// Mul takes two uint64 numbers and multiplies them x * y returning the result as decimal.Decimal
func Mul(x, y uint64) decimal.Decimal {
	return FromUint(x).Mul(FromUint(y))
}

// Div takes two uint64 numbers and divides them x / y returning the result as decimal.Decimal
func Div(x, y uint64) decimal.Decimal {
	return FromUint(x).Div(FromUint(y))
}
