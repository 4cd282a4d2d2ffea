package allocator

import (
	"github.com/shopspring/decimal"
)

// ContributionSplit holds the capital added to each party's account for one
// period. Both amounts are always non-negative.
type ContributionSplit struct {
	LP decimal.Decimal
	GP decimal.Decimal
}

// AllocateContribution splits a period's capital call between LP and GP by
// ownership percentage.
// Logic:
//  1. A net cash flow >= 0 is not a call: both contributions are zero
//  2. A negative flow contributes |flow| x lpOwnership to LP
//  3. GP receives the exact remainder, so LP + GP equals |flow| with no
//     rounding loss
func AllocateContribution(netCashFlow, lpOwnership decimal.Decimal) ContributionSplit {
	if netCashFlow.GreaterThanOrEqual(decimal.Zero) {
		return ContributionSplit{LP: decimal.Zero, GP: decimal.Zero}
	}

	call := netCashFlow.Abs()
	lp := call.Mul(lpOwnership)

	return ContributionSplit{
		LP: lp,
		GP: call.Sub(lp),
	}
}
