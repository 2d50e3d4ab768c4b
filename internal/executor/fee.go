package executor

import (
	"math/big"

	"github.com/relay-hub/settlement-hub/internal/domain"
)

var feeBpsPrecision, _ = new(big.Int).SetString(domain.FeeBpsPrecision, 10)

// FillFee adjusts a quoted fee by the signed 1e18 fixed-point bpsDiff:
// amount + amount*bpsDiff/1e18, with the division truncated toward zero.
// The result is not clamped; a large negative bpsDiff yields a negative fee.
func FillFee(amount, bpsDiff *big.Int) *big.Int {
	adjustment := new(big.Int).Mul(amount, bpsDiff)
	adjustment.Quo(adjustment, feeBpsPrecision)
	return adjustment.Add(adjustment, amount)
}

func negate(v *big.Int) *big.Int {
	return new(big.Int).Neg(v)
}
