package distributor

import (
	"github.com/shopspring/decimal"
)

// DistributeResidual allocates all cash remaining after the defined tiers
// by the final tier's fixed split. The residual tier has no capital-account
// ceiling, so remaining is always zero. GP receives the exact complement of
// LP's share, so the two amounts always sum to the available cash.
func DistributeResidual(cashAvailable, lpSplit decimal.Decimal) Result {
	if cashAvailable.LessThanOrEqual(decimal.Zero) {
		return zero()
	}

	lp := cashAvailable.Mul(lpSplit)

	return Result{
		LP:        lp,
		GP:        cashAvailable.Sub(lp),
		Remaining: decimal.Zero,
	}
}
