package mathutil

import (
	"github.com/shopspring/decimal"
)

// TenThousands is the divisor for fees expressed in basis points.
var TenThousands = uint64(10000)

// PlusFee returns the given amount with a fee added, along with the
// calculated fee itself. The fee is expressed in basis points (ie. 0.25% = 25).
func PlusFee(amount, feeAsBasisPoint uint64) (withFee, calculatedFee uint64) {
	fee := feeAmount(amount, feeAsBasisPoint)
	withFeeDecimal := FromUint(amount).Add(fee)
	return withFeeDecimal.BigInt().Uint64(), fee.BigInt().Uint64()
}

// LessFee returns the given amount with a fee subtracted, along with the
// calculated fee itself. The fee is expressed in basis points.
func LessFee(amount, feeAsBasisPoint uint64) (withFee, calculatedFee uint64) {
	fee := feeAmount(amount, feeAsBasisPoint)
	withFeeDecimal := FromUint(amount).Sub(fee)
	return withFeeDecimal.BigInt().Uint64(), fee.BigInt().Uint64()
}

func feeAmount(amount, feeAsBasisPoint uint64) decimal.Decimal {
	return Div(amount, TenThousands).Mul(FromUint(feeAsBasisPoint))
}
