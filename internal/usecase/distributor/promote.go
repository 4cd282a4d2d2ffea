package distributor

import (
	"github.com/shopspring/decimal"
)

// PromoteInput holds what a promote tier (2..N-1) needs for one period.
// PriorLPDistributions is the sum of LP distributions already made in
// earlier tiers this period that count toward satisfying this tier's LP
// need.
type PromoteInput struct {
	CashAvailable        decimal.Decimal
	LPCapitalAccount     decimal.Decimal
	LPSplit              decimal.Decimal
	GPSplit              decimal.Decimal
	PriorLPDistributions decimal.Decimal
}

// DistributePromote allocates available cash for a promote tier.
// Logic:
//  1. LP need = max(lpCapitalAccount - priorLpDistributions, 0)
//  2. LP distribution = min(lpNeed, cash x lpSplit)
//  3. GP distribution = lpDist / lpSplit x gpSplit, so the tier's configured
//     ratio holds and GP scales down whenever LP's need is below its full
//     split-implied share; zero when lpSplit or lpDist is zero
//
// Remaining cash passes to the next tier.
func DistributePromote(in PromoteInput) Result {
	if in.CashAvailable.LessThanOrEqual(decimal.Zero) {
		return zero()
	}

	lpNeed := in.LPCapitalAccount.Sub(in.PriorLPDistributions)
	if lpNeed.LessThan(decimal.Zero) {
		lpNeed = decimal.Zero
	}

	lp := decimal.Min(lpNeed, in.CashAvailable.Mul(in.LPSplit))
	if lp.LessThan(decimal.Zero) {
		lp = decimal.Zero
	}

	gp := decimal.Zero
	if in.LPSplit.GreaterThan(decimal.Zero) && lp.GreaterThan(decimal.Zero) {
		gp = lp.Div(in.LPSplit).Mul(in.GPSplit)
	}

	return Result{
		LP:        lp,
		GP:        gp,
		Remaining: in.CashAvailable.Sub(lp).Sub(gp),
	}
}
